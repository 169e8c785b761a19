package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oneto133/Agendamento/config"
	"github.com/oneto133/Agendamento/services"
	"github.com/oneto133/Agendamento/utils"
)

type ReservaController struct {
	cfg     *config.Config
	booking *services.BookingService
}

func NewReservaController(cfg *config.Config, booking *services.BookingService) *ReservaController {
	return &ReservaController{
		cfg:     cfg,
		booking: booking,
	}
}

// formularioVazio devolve o estado inicial do formulario.
func (rc *ReservaController) formularioVazio() *services.FormularioReserva {
	return &services.FormularioReserva{
		Servico:        rc.cfg.ServicosDisponiveis()[0],
		Horario:        rc.cfg.Horarios[0],
		FormaPagamento: services.FormaAdiantado,
	}
}

// renderFormulario renderiza a pagina de agendamento com o estado dado.
// Em caso de erro os campos submetidos voltam pre-preenchidos.
func (rc *ReservaController) renderFormulario(c *gin.Context, dados *services.FormularioReserva, erro string) {
	precos, err := rc.cfg.PrecosDoServico(dados.Servico)
	if err != nil {
		precos = rc.cfg.Servicos[rc.cfg.ServicosDisponiveis()[0]]
	}

	hoje, limite := rc.booking.JanelaReserva()

	c.HTML(http.StatusOK, "agendamento.html", gin.H{
		"servicos":       rc.cfg.ServicosDisponiveis(),
		"valor_padrao":   precos.ValorReservado,
		"valor_desconto": precos.ValorComDesconto,
		"data_min":       hoje.Format("2006-01-02"),
		"data_max":       limite.Format("2006-01-02"),
		"horarios":       rc.cfg.Horarios,
		"dados":          dados,
		"erro":           erro,
		"valor_cobranca": utils.FormatarValorBRL(rc.cfg.ValorCobrancaPadrao),
	})
}

// MostrarFormulario -> GET /
func (rc *ReservaController) MostrarFormulario(c *gin.Context) {
	rc.renderFormulario(c, rc.formularioVazio(), "")
}

// CriarReserva -> POST /
// Valida, cria a cobranca no Asaas e persiste a reserva. Falha de
// validacao ou de cobranca volta para o formulario com os campos
// preenchidos e a mensagem; sucesso redireciona para a pagina de
// pagamento.
func (rc *ReservaController) CriarReserva(c *gin.Context) {
	dados := &services.FormularioReserva{
		Servico:        strings.TrimSpace(c.PostForm("servico")),
		Nome:           strings.TrimSpace(c.PostForm("nome")),
		Telefone:       strings.TrimSpace(c.PostForm("telefone")),
		CPF:            strings.TrimSpace(c.PostForm("cpf")),
		Data:           strings.TrimSpace(c.PostForm("data")),
		Horario:        strings.TrimSpace(c.PostForm("horario")),
		FormaPagamento: strings.TrimSpace(c.PostForm("forma_pagamento")),
	}

	// Defaults iguais aos do formulario em branco.
	if dados.Servico == "" {
		dados.Servico = rc.cfg.ServicosDisponiveis()[0]
	}
	if dados.Horario == "" {
		dados.Horario = rc.cfg.Horarios[0]
	}
	if dados.FormaPagamento == "" {
		dados.FormaPagamento = services.FormaAdiantado
	}

	reservaID, err := rc.booking.Submeter(dados)
	if err != nil {
		var erroValidacao *services.ErroValidacao
		var erroCobranca *services.ErroCobranca

		switch {
		case errors.As(err, &erroValidacao):
			rc.renderFormulario(c, dados, erroValidacao.Mensagem)
		case errors.As(err, &erroCobranca):
			utils.ErrorLogger.Printf("Falha ao gerar cobranca: %v", erroCobranca.Causa)
			rc.renderFormulario(c, dados, erroCobranca.Error())
		default:
			utils.ErrorLogger.Printf("Falha ao registrar reserva: %v", err)
			rc.renderFormulario(c, dados, "Nao foi possivel registrar a reserva. Tente novamente.")
		}
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/pagamento/%d", reservaID))
}
