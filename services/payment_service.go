package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/oneto133/Agendamento/models"
	"github.com/oneto133/Agendamento/utils"
)

// ErroConsultaAsaas marca que a consulta de status no gateway falhou,
// distinguindo-a de erros locais de banco.
type ErroConsultaAsaas struct {
	Causa error
}

func (e *ErroConsultaAsaas) Error() string {
	return fmt.Sprintf("falha ao consultar a cobranca no Asaas: %v", e.Causa)
}

func (e *ErroConsultaAsaas) Unwrap() error {
	return e.Causa
}

// ResultadoPagamento e a resposta da verificacao de status consumida
// pelo poller da pagina de pagamento.
type ResultadoPagamento struct {
	Pago        bool
	Status      string
	RedirectURL string
}

// PaymentService reconcilia o status local da reserva com o status da
// cobranca no Asaas, que e quem manda.
type PaymentService struct {
	reservas *ReservaService
	asaas    *AsaasService
}

func NewPaymentService(reservas *ReservaService, asaas *AsaasService) *PaymentService {
	return &PaymentService{
		reservas: reservas,
		asaas:    asaas,
	}
}

// VerificarPagamento checa o pagamento de uma reserva.
//
// Reserva ja confirmada reporta pago sem chamada externa (caminho rapido
// idempotente). Sem payment id nao ha o que consultar: reporta nao pago
// com o status local. Senao consulta o Asaas e, se o status remoto for
// terminal de sucesso, confirma a reserva localmente com o timestamp
// atual. Falha na consulta sobe para quem chama; "nao deu pra checar"
// nao e o mesmo que "nao pago".
func (ps *PaymentService) VerificarPagamento(reservaID uint) (*ResultadoPagamento, error) {
	reserva, err := ps.reservas.BuscarPorID(reservaID)
	if err != nil {
		return nil, err
	}

	statusLocal := reserva.StatusPagamento
	if statusLocal == "" {
		statusLocal = models.StatusPagamentoPendente
	}

	if statusLocal == models.StatusPagamentoPago {
		return &ResultadoPagamento{
			Pago:        true,
			Status:      statusLocal,
			RedirectURL: fmt.Sprintf("/agendamento-concluido/%d", reservaID),
		}, nil
	}

	paymentID := strings.TrimSpace(reserva.AsaasPaymentID)
	if paymentID == "" {
		return &ResultadoPagamento{Pago: false, Status: statusLocal}, nil
	}

	pagamento, err := ps.asaas.ConsultarPagamento(paymentID)
	if err != nil {
		return nil, &ErroConsultaAsaas{Causa: err}
	}

	statusAsaas := strings.ToUpper(pagamento.Status)
	if models.StatusAsaasPago[statusAsaas] {
		agora := time.Now()
		if err := ps.reservas.AtualizarStatusPagamento(reservaID, models.StatusPagamentoPago, &agora); err != nil {
			return nil, err
		}

		utils.InfoLogger.Printf("Reserva %d confirmada (status Asaas: %s)", reservaID, statusAsaas)

		return &ResultadoPagamento{
			Pago:        true,
			Status:      models.StatusPagamentoPago,
			RedirectURL: fmt.Sprintf("/agendamento-concluido/%d", reservaID),
		}, nil
	}

	if statusAsaas == "" {
		statusAsaas = statusLocal
	}
	return &ResultadoPagamento{Pago: false, Status: statusAsaas}, nil
}
