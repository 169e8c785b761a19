package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/oneto133/Agendamento/config"
	"github.com/oneto133/Agendamento/database"
	"github.com/oneto133/Agendamento/models"
	"github.com/oneto133/Agendamento/router"
	"github.com/oneto133/Agendamento/utils"
)

func init() {
	utils.InitLogger()
}

func main() {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("Aviso: arquivo .env nao encontrado")
	}

	cfg := config.Carregar()
	if cfg.AsaasAPIKey == "" {
		utils.InfoLogger.Println("Aviso: ASAAS_API_KEY nao configurada; cobrancas vao falhar")
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Falha ao conectar no banco: %v", err)
	}

	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Bancos antigos podem nao ter as colunas mais novas; o alargamento
	// roda antes do AutoMigrate e so adiciona, nunca remove.
	if err := database.GarantirColunasReserva(db); err != nil {
		utils.ErrorLogger.Fatalf("Falha no alargamento do schema: %v", err)
	}
	autoMigrate(db)
	seedAdmin(db, cfg)

	r := router.SetupRouter(db, cfg)

	utils.InfoLogger.Printf("Servidor ouvindo na porta %s", cfg.Porta)
	if err := r.Run(":" + cfg.Porta); err != nil {
		utils.ErrorLogger.Fatalf("Falha ao subir o servidor: %v", err)
	}
}

func autoMigrate(db *gorm.DB) {
	if err := db.AutoMigrate(
		&models.Reserva{},
		&models.User{},
	); err != nil {
		utils.ErrorLogger.Fatalf("Falha na migracao: %v", err)
	}
}

// seedAdmin cria a conta administrativa a partir do ambiente quando ela
// ainda nao existe. Sem ADMIN_EMAIL/ADMIN_PASSWORD a area admin fica
// inacessivel, o que e aceitavel em desenvolvimento.
func seedAdmin(db *gorm.DB, cfg *config.Config) {
	if cfg.AdminEmail == "" || cfg.AdminSenha == "" {
		utils.InfoLogger.Println("Aviso: ADMIN_EMAIL/ADMIN_PASSWORD nao configurados; area admin sem acesso")
		return
	}

	var count int64
	db.Model(&models.User{}).Where("email = ?", cfg.AdminEmail).Count(&count)
	if count > 0 {
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminSenha), bcrypt.DefaultCost)
	if err != nil {
		utils.ErrorLogger.Printf("Falha ao gerar hash da senha do admin: %v", err)
		return
	}

	user := models.User{
		Nome:  "Administradora",
		Email: cfg.AdminEmail,
		Senha: string(hashed),
		Role:  "admin",
	}
	if err := db.Create(&user).Error; err != nil {
		utils.ErrorLogger.Printf("Falha ao criar conta admin: %v", err)
		return
	}

	utils.InfoLogger.Printf("Conta admin criada: %s", user.Email)
}
