package router

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/oneto133/Agendamento/config"
	"github.com/oneto133/Agendamento/controllers"
	"github.com/oneto133/Agendamento/middlewares"
	"github.com/oneto133/Agendamento/services"
)

// resolveDir procura um diretorio no cwd e no diretorio pai (os testes
// de pacote rodam um nivel abaixo da raiz do projeto).
func resolveDir(nome string) string {
	workDir, _ := os.Getwd()

	caminho := filepath.Join(workDir, nome)
	if _, err := os.Stat(caminho); err == nil {
		return caminho
	}
	return filepath.Join(workDir, "..", nome)
}

// SetupRouter monta o router completo: paginas, endpoint de status e
// area administrativa.
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	rateLimiter := middlewares.NewRateLimiter(50, 1)
	r.Use(rateLimiter.RateLimit())

	r.LoadHTMLGlob(filepath.Join(resolveDir("templates"), "*.html"))
	r.Static("/static", resolveDir("static"))

	// Services
	reservaSvc := services.NewReservaService(db)
	asaasSvc := services.NewAsaasService(cfg)
	bookingSvc := services.NewBookingService(cfg, reservaSvc, asaasSvc)
	paymentSvc := services.NewPaymentService(reservaSvc, asaasSvc)

	// Controllers
	reservaCtrl := controllers.NewReservaController(cfg, bookingSvc)
	paymentCtrl := controllers.NewPaymentController(cfg, reservaSvc, paymentSvc)
	userCtrl := controllers.NewUserController(db)
	adminCtrl := controllers.NewAdminController(reservaSvc)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// ----------------------------------------------------------------
	//                      FLUXO DO CLIENTE
	// ----------------------------------------------------------------
	r.GET("/", reservaCtrl.MostrarFormulario)
	r.POST("/", reservaCtrl.CriarReserva)
	r.GET("/pagamento/:id", paymentCtrl.PaginaPagamento)
	r.GET("/pagamento-status/:id", paymentCtrl.StatusPagamento)
	r.GET("/agendamento-concluido/:id", paymentCtrl.PaginaConcluido)

	// ----------------------------------------------------------------
	//                      AREA ADMINISTRATIVA
	// ----------------------------------------------------------------
	login := r.Group("/admin")
	login.Use(middlewares.NewStrictRateLimiter())
	{
		login.POST("/login", userCtrl.Login)
	}

	admin := r.Group("/admin")
	admin.Use(middlewares.AuthMiddleware())
	{
		admin.GET("/reservas", adminCtrl.ListarReservas)
		admin.PATCH("/reservas/:id/local", adminCtrl.AtualizarLocal)
	}

	return r
}
