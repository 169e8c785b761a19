package models

// Status local do pagamento (espelha um subconjunto dos status do Asaas)
const (
	StatusPagamentoPendente = "PENDING"
	StatusPagamentoPago     = "CONFIRMED"
)

// StatusAsaasPago sao os status remotos que contam como pagamento efetivado.
var StatusAsaasPago = map[string]bool{
	"RECEIVED":         true,
	"CONFIRMED":        true,
	"RECEIVED_IN_CASH": true,
}

// LocalPadrao e usado enquanto o endereco do atendimento nao foi definido.
const LocalPadrao = "Endereco ainda nao definido"

// Reserva representa um agendamento e o ciclo de vida do pagamento associado.
// Os nomes de coluna seguem o schema original do reservas.db.
type Reserva struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Nome             string    `gorm:"column:nome;type:varchar(255);not null" json:"nome"`
	Telefone         string    `gorm:"column:telefone;type:varchar(30);not null" json:"telefone"`
	CPF              string    `gorm:"column:cpf;type:varchar(11);not null" json:"cpf"`
	Servico          string    `gorm:"column:servico;type:varchar(100);not null" json:"servico"`
	DataReserva      string    `gorm:"column:data_reserva;type:varchar(10);not null" json:"data_reserva"`
	Horario          string    `gorm:"column:horario;type:varchar(5);not null" json:"horario"`
	FormaPagamento   string    `gorm:"column:forma_pagamento;type:varchar(50);not null" json:"forma_pagamento"`
	ValorTotal       float64   `gorm:"column:valor_total;not null" json:"valor_total"`
	ValorPagoNoAto   float64   `gorm:"column:valor_pago_no_ato;not null" json:"valor_pago_no_ato"`
	ValorRestante    float64   `gorm:"column:valor_restante;not null" json:"valor_restante"`
	AsaasCustomerID  string    `gorm:"column:asaas_customer_id;type:varchar(64)" json:"asaas_customer_id"`
	AsaasPaymentID   string    `gorm:"column:asaas_payment_id;type:varchar(64)" json:"asaas_payment_id"`
	AsaasInvoiceURL  string    `gorm:"column:asaas_invoice_url;type:varchar(255)" json:"asaas_invoice_url"`
	StatusPagamento  string    `gorm:"column:status_pagamento;type:varchar(20);not null;default:'PENDING'" json:"status_pagamento"`
	PixPayload       string    `gorm:"column:pix_payload;type:text" json:"pix_payload"`
	PixQrBase64      string    `gorm:"column:pix_qr_base64;type:text" json:"pix_qr_base64"`
	LocalAtendimento string    `gorm:"column:local_atendimento;type:varchar(255)" json:"local_atendimento"`
	PagoEm           *TempoISO `gorm:"column:pago_em;type:text" json:"pago_em,omitempty"`
	CriadoEm         TempoISO  `gorm:"column:criado_em;type:text;not null" json:"criado_em"`
}

// TableName mantem o nome de tabela do banco original.
func (Reserva) TableName() string {
	return "reservas"
}
