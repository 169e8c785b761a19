package services

import (
	"fmt"
	"time"

	"github.com/oneto133/Agendamento/config"
	"github.com/oneto133/Agendamento/models"
	"github.com/oneto133/Agendamento/utils"
)

// Formas de pagamento aceitas no formulario.
const (
	FormaAdiantado = "adiantado"
	FormaNoHorario = "no_horario"
)

// Texto gravado na reserva para exibicao.
const (
	FormaTextoAdiantado = "Pagamento adiantado"
	FormaTextoNoHorario = "Pagamento no horario"
)

// JanelaDias e o tamanho da janela de agendamento (hoje + 7, inclusive).
const JanelaDias = 7

// FormularioReserva e o estado cru submetido pelo cliente. Em caso de
// falha ele volta para o formulario pre-preenchido junto com a mensagem.
type FormularioReserva struct {
	Servico        string
	Nome           string
	Telefone       string
	CPF            string
	Data           string
	Horario        string
	FormaPagamento string
}

// ErroValidacao indica entrada invalida do usuario; nada foi persistido
// nem chamado externamente.
type ErroValidacao struct {
	Mensagem string
}

func (e *ErroValidacao) Error() string {
	return e.Mensagem
}

// ErroCobranca indica que a reserva passou na validacao mas a cobranca
// nao pode ser criada no Asaas; nada foi persistido.
type ErroCobranca struct {
	Causa error
}

func (e *ErroCobranca) Error() string {
	return fmt.Sprintf("Reserva valida, mas nao foi possivel gerar cobranca no Asaas: %v", e.Causa)
}

func (e *ErroCobranca) Unwrap() error {
	return e.Causa
}

// BookingService orquestra o fluxo de agendamento: validacao, preco,
// cobranca externa e persistencia.
type BookingService struct {
	cfg      *config.Config
	reservas *ReservaService
	asaas    *AsaasService
}

func NewBookingService(cfg *config.Config, reservas *ReservaService, asaas *AsaasService) *BookingService {
	return &BookingService{
		cfg:      cfg,
		reservas: reservas,
		asaas:    asaas,
	}
}

// JanelaReserva devolve os limites inclusivos da janela de agendamento.
func (bs *BookingService) JanelaReserva() (time.Time, time.Time) {
	ano, mes, dia := time.Now().Date()
	hoje := time.Date(ano, mes, dia, 0, 0, 0, 0, time.Local)
	return hoje, hoje.AddDate(0, 0, JanelaDias)
}

// Validar aplica as regras na ordem fixa; a primeira falha encerra.
func (bs *BookingService) Validar(form *FormularioReserva) *ErroValidacao {
	if _, ok := bs.cfg.Servicos[form.Servico]; !ok {
		return &ErroValidacao{"Servico invalido. Escolha uma opcao da lista."}
	}

	if form.Nome == "" || form.Telefone == "" || form.CPF == "" || form.Data == "" || form.Horario == "" {
		return &ErroValidacao{"Preencha todos os campos obrigatorios."}
	}

	if !utils.CPFValido(form.CPF) {
		return &ErroValidacao{"CPF invalido. Informe 11 digitos."}
	}

	horarioValido := false
	for _, h := range bs.cfg.Horarios {
		if h == form.Horario {
			horarioValido = true
			break
		}
	}
	if !horarioValido {
		return &ErroValidacao{"Horario invalido. Escolha um horario da lista."}
	}

	if form.FormaPagamento != FormaAdiantado && form.FormaPagamento != FormaNoHorario {
		return &ErroValidacao{"Forma de pagamento invalida."}
	}

	dataEscolhida, err := time.ParseInLocation("2006-01-02", form.Data, time.Local)
	if err != nil {
		return &ErroValidacao{"Data invalida."}
	}

	hoje, limite := bs.JanelaReserva()
	if dataEscolhida.Before(hoje) || dataEscolhida.After(limite) {
		return &ErroValidacao{fmt.Sprintf(
			"A reserva deve estar entre hoje e os proximos 7 dias. Periodo permitido: %s ate %s.",
			hoje.Format("2006-01-02"), limite.Format("2006-01-02"),
		)}
	}

	return nil
}

// Submeter roda o fluxo completo e devolve o ID da reserva criada.
// Erros possiveis: *ErroValidacao (nada aconteceu), *ErroCobranca
// (cobranca externa falhou, nada persistido) ou erro de persistencia.
func (bs *BookingService) Submeter(form *FormularioReserva) (uint, error) {
	if erro := bs.Validar(form); erro != nil {
		return 0, erro
	}

	precos := bs.cfg.Servicos[form.Servico]

	var valorTotal, valorPagoNoAto, valorRestante float64
	var formaTexto string
	if form.FormaPagamento == FormaAdiantado {
		valorTotal = precos.ValorComDesconto
		valorPagoNoAto = precos.ValorComDesconto * 0.5
		valorRestante = valorTotal - valorPagoNoAto
		formaTexto = FormaTextoAdiantado
	} else {
		valorTotal = precos.ValorReservado
		valorPagoNoAto = 0.0
		valorRestante = valorTotal
		formaTexto = FormaTextoNoHorario
	}

	// A cobranca externa sai sempre com o valor padrao fixo,
	// desacoplado do total calculado acima (VALOR_COBRANCA_PADRAO).
	cobranca, err := bs.asaas.CriarClienteECobranca(form.Nome, form.Telefone, form.CPF, form.Data)
	if err != nil {
		return 0, &ErroCobranca{Causa: err}
	}

	// QR e melhor-esforco: a cobranca existe mesmo sem ele e a fatura
	// continua sendo um caminho valido de pagamento.
	pixPayload := ""
	pixQrBase64 := ""
	if qr, err := bs.asaas.BuscarPixQrCode(cobranca.PaymentID); err != nil {
		utils.InfoLogger.Printf("QR Code PIX indisponivel para cobranca %s: %v", cobranca.PaymentID, err)
	} else {
		pixPayload = qr.Payload
		pixQrBase64 = qr.EncodedImage
	}

	reserva := &models.Reserva{
		Nome:             form.Nome,
		Telefone:         form.Telefone,
		CPF:              utils.NormalizarDigitos(form.CPF),
		Servico:          form.Servico,
		DataReserva:      form.Data,
		Horario:          form.Horario,
		FormaPagamento:   formaTexto,
		ValorTotal:       valorTotal,
		ValorPagoNoAto:   valorPagoNoAto,
		ValorRestante:    valorRestante,
		AsaasCustomerID:  cobranca.CustomerID,
		AsaasPaymentID:   cobranca.PaymentID,
		AsaasInvoiceURL:  cobranca.InvoiceURL,
		StatusPagamento:  models.StatusPagamentoPendente,
		PixPayload:       pixPayload,
		PixQrBase64:      pixQrBase64,
		LocalAtendimento: models.LocalPadrao,
	}

	if err := bs.reservas.Criar(reserva); err != nil {
		return 0, err
	}

	utils.InfoLogger.Printf("Reserva %d criada: %s em %s %s (%s)",
		reserva.ID, reserva.Servico, reserva.DataReserva, reserva.Horario, formaTexto)

	return reserva.ID, nil
}
