package database

import (
	"gorm.io/gorm"

	"github.com/oneto133/Agendamento/models"
	"github.com/oneto133/Agendamento/utils"
)

// Colunas adicionadas depois do schema inicial. Bancos antigos podem nao
// te-las; o startup adiciona as que faltarem sem tocar no resto da tabela.
var colunasLegadas = []string{
	"StatusPagamento",
	"PixPayload",
	"PixQrBase64",
	"LocalAtendimento",
	"PagoEm",
}

// GarantirColunasReserva faz o alargamento nao destrutivo do schema:
// garante que cada coluna conhecida exista na tabela reservas.
func GarantirColunasReserva(db *gorm.DB) error {
	migrator := db.Migrator()

	if !migrator.HasTable(&models.Reserva{}) {
		// Tabela nova: AutoMigrate cria tudo de uma vez.
		return nil
	}

	for _, campo := range colunasLegadas {
		if migrator.HasColumn(&models.Reserva{}, campo) {
			continue
		}
		if err := migrator.AddColumn(&models.Reserva{}, campo); err != nil {
			utils.ErrorLogger.Printf("Erro ao adicionar coluna %s em reservas: %v", campo, err)
			return err
		}
		utils.InfoLogger.Printf("Coluna %s adicionada em reservas (banco antigo)", campo)
	}

	return nil
}
