package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/oneto133/Agendamento/models"
	"github.com/oneto133/Agendamento/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Login da conta administrativa -> JWT
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
		Senha string `json:"senha" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("credenciais invalidas"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Senha), []byte(input.Senha)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("credenciais invalidas"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login admin: %s", user.Email)

	utils.RespondJSON(c, http.StatusOK, "Login realizado", gin.H{
		"token": token,
	})
}
