package controllers

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oneto133/Agendamento/config"
	"github.com/oneto133/Agendamento/models"
	"github.com/oneto133/Agendamento/services"
	"github.com/oneto133/Agendamento/utils"
)

type PaymentController struct {
	cfg      *config.Config
	reservas *services.ReservaService
	payments *services.PaymentService
}

func NewPaymentController(cfg *config.Config, reservas *services.ReservaService, payments *services.PaymentService) *PaymentController {
	return &PaymentController{
		cfg:      cfg,
		reservas: reservas,
		payments: payments,
	}
}

func parseReservaID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// PaginaPagamento -> GET /pagamento/:id
// Mostra valor, QR PIX (se houver) e link da fatura. Reserva ja
// confirmada vai direto para a conclusao.
func (pc *PaymentController) PaginaPagamento(c *gin.Context) {
	reservaID, ok := parseReservaID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	reserva, err := pc.reservas.BuscarPorID(reservaID)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if reserva.StatusPagamento == models.StatusPagamentoPago {
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/agendamento-concluido/%d", reserva.ID))
		return
	}

	qrImage := strings.TrimSpace(reserva.PixQrBase64)
	if qrImage != "" && !strings.HasPrefix(qrImage, "data:image") {
		qrImage = "data:image/png;base64," + qrImage
	}

	c.HTML(http.StatusOK, "pagamento.html", gin.H{
		"reserva":        reserva,
		"valor_cobranca": utils.FormatarValorBRL(pc.cfg.ValorCobrancaPadrao),
		"pix_payload":    reserva.PixPayload,
		// data: URLs sao barradas pelo html/template sem o tipo URL
		"pix_qr_image":     template.URL(qrImage),
		"status_pagamento": reserva.StatusPagamento,
	})
}

// StatusPagamento -> GET /pagamento-status/:id
// Endpoint JSON consultado pelo poller da pagina de pagamento.
// Falha ao consultar o Asaas vira 502, distinta de "ainda nao pago";
// erro local (banco) vira 500 sem culpar o gateway.
func (pc *PaymentController) StatusPagamento(c *gin.Context) {
	reservaID, ok := parseReservaID(c)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "erro": "Reserva nao encontrada."})
		return
	}

	resultado, err := pc.payments.VerificarPagamento(reservaID)
	if err != nil {
		var erroConsulta *services.ErroConsultaAsaas
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "erro": "Reserva nao encontrada."})
		case errors.As(err, &erroConsulta):
			utils.ErrorLogger.Printf("Falha ao consultar pagamento da reserva %d: %v", reservaID, erroConsulta.Causa)
			c.JSON(http.StatusBadGateway, gin.H{"ok": false, "erro": fmt.Sprintf("Falha ao consultar Asaas: %v", erroConsulta.Causa)})
		default:
			utils.ErrorLogger.Printf("Erro ao verificar pagamento da reserva %d: %v", reservaID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "erro": "Erro interno ao verificar o pagamento."})
		}
		return
	}

	resposta := gin.H{
		"ok":     true,
		"pago":   resultado.Pago,
		"status": resultado.Status,
	}
	if resultado.RedirectURL != "" {
		resposta["redirect_url"] = resultado.RedirectURL
	}
	c.JSON(http.StatusOK, resposta)
}

// PaginaConcluido -> GET /agendamento-concluido/:id
func (pc *PaymentController) PaginaConcluido(c *gin.Context) {
	reservaID, ok := parseReservaID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	reserva, err := pc.reservas.BuscarPorID(reservaID)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	c.HTML(http.StatusOK, "agendamento_concluido.html", gin.H{
		"reserva":        reserva,
		"valor_cobranca": utils.FormatarValorBRL(pc.cfg.ValorCobrancaPadrao),
	})
}
