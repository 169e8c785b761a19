package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/oneto133/Agendamento/models"
)

// ReservaService e a camada de persistencia das reservas.
type ReservaService struct {
	db *gorm.DB
}

func NewReservaService(db *gorm.DB) *ReservaService {
	return &ReservaService{db: db}
}

// Criar insere uma reserva nova; o ID e atribuido pelo banco.
func (s *ReservaService) Criar(reserva *models.Reserva) error {
	if reserva.CriadoEm.IsZero() {
		reserva.CriadoEm = models.NovoTempoISO(time.Now())
	}
	return s.db.Create(reserva).Error
}

// BuscarPorID busca pela chave primaria. Ausencia vem como
// gorm.ErrRecordNotFound e e um resultado valido para quem chama.
func (s *ReservaService) BuscarPorID(id uint) (*models.Reserva, error) {
	var reserva models.Reserva
	if err := s.db.First(&reserva, id).Error; err != nil {
		return nil, err
	}
	return &reserva, nil
}

// AtualizarStatusPagamento grava o status incondicionalmente; pago_em so
// e gravado quando um valor e informado, senao o valor existente fica.
// Sem lock otimista: ultima escrita vence (transicao PENDING->CONFIRMED
// e idempotente, entao uma corrida gera no maximo escrita duplicada).
func (s *ReservaService) AtualizarStatusPagamento(id uint, novoStatus string, pagoEm *time.Time) error {
	valores := map[string]interface{}{
		"status_pagamento": novoStatus,
	}
	if pagoEm != nil && !pagoEm.IsZero() {
		valores["pago_em"] = models.NovoTempoISO(*pagoEm)
	}
	return s.db.Model(&models.Reserva{}).Where("id = ?", id).Updates(valores).Error
}

// Listar devolve todas as reservas, mais recentes primeiro (painel admin).
func (s *ReservaService) Listar() ([]models.Reserva, error) {
	var reservas []models.Reserva
	if err := s.db.Order("criado_em DESC").Find(&reservas).Error; err != nil {
		return nil, err
	}
	return reservas, nil
}

// AtualizarLocal define o local de atendimento de uma reserva.
func (s *ReservaService) AtualizarLocal(id uint, local string) error {
	res := s.db.Model(&models.Reserva{}).Where("id = ?", id).Update("local_atendimento", local)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
