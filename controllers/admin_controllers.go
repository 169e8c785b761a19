package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oneto133/Agendamento/services"
	"github.com/oneto133/Agendamento/utils"
)

// AdminController expoe a visao da dona do estudio sobre as reservas.
type AdminController struct {
	reservas *services.ReservaService
}

func NewAdminController(reservas *services.ReservaService) *AdminController {
	return &AdminController{reservas: reservas}
}

// ListarReservas -> GET /admin/reservas (mais recentes primeiro)
func (ac *AdminController) ListarReservas(c *gin.Context) {
	reservas, err := ac.reservas.Listar()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Todas as reservas", reservas)
}

// AtualizarLocal -> PATCH /admin/reservas/:id/local
// Define o local de atendimento (a criacao deixa o placeholder padrao).
func (ac *AdminController) AtualizarLocal(c *gin.Context) {
	reservaID, ok := parseReservaID(c)
	if !ok {
		utils.RespondError(c, http.StatusNotFound, errors.New("reserva nao encontrada"))
		return
	}

	var input struct {
		Local string `json:"local" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := ac.reservas.AtualizarLocal(reservaID, input.Local); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, errors.New("reserva nao encontrada"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Local de atendimento atualizado", gin.H{
		"reserva_id": reservaID,
	})
}
