package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/oneto133/Agendamento/config"
	"github.com/oneto133/Agendamento/models"
	"github.com/oneto133/Agendamento/router"
)

// asaasFake simula o sandbox do Asaas: cria cliente e cobranca, devolve
// o QR Code e responde a consulta de status com o valor configurado.
type asaasFake struct {
	mu        sync.Mutex
	status    string
	consultas int64
}

func (f *asaasFake) setStatus(status string) {
	f.mu.Lock()
	f.status = status
	f.mu.Unlock()
}

func (f *asaasFake) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/customers":
			w.Write([]byte(`{"id": "cus_001"}`))
		case r.Method == http.MethodPost && r.URL.Path == "/payments":
			w.Write([]byte(`{"id": "pay_001", "invoiceUrl": "https://sandbox.asaas.com/i/pay_001"}`))
		case strings.HasSuffix(r.URL.Path, "/pixQrCode"):
			w.Write([]byte(`{"payload": "00020126pixintegracao", "encodedImage": "aW1n"}`))
		case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/payments/"):
			atomic.AddInt64(&f.consultas, 1)
			f.mu.Lock()
			status := f.status
			f.mu.Unlock()
			w.Write([]byte(`{"id": "pay_001", "status": "` + status + `"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func setupIntegrationTest(t *testing.T) (*gin.Engine, *asaasFake, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("falha ao abrir sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Reserva{}, &models.User{}); err != nil {
		t.Fatalf("falha na migracao: %v", err)
	}

	fake := &asaasFake{status: "PENDING"}
	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	cfg := config.Carregar()
	cfg.AsaasBaseURL = server.URL
	cfg.AsaasAPIKey = "chave-teste"

	return router.SetupRouter(db, cfg), fake, db
}

func TestFluxoCompletoDeAgendamento(t *testing.T) {
	r, fake, db := setupIntegrationTest(t)

	// 1. Formulario de agendamento
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Lash lifting")

	// 2. Submissao valida cria a reserva e redireciona para o pagamento
	form := url.Values{
		"nome":            {"Maria Silva"},
		"telefone":        {"(11) 99999-9999"},
		"cpf":             {"123.456.789-01"},
		"servico":         {"Brow lamination"},
		"data":            {time.Now().AddDate(0, 0, 3).Format("2006-01-02")},
		"horario":         {"14:00"},
		"forma_pagamento": {"adiantado"},
	}
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/pagamento/1", w.Header().Get("Location"))

	var reserva models.Reserva
	assert.NoError(t, db.First(&reserva, 1).Error)
	assert.Equal(t, "12345678901", reserva.CPF)
	assert.Equal(t, models.StatusPagamentoPendente, reserva.StatusPagamento)
	assert.Equal(t, 80.0, reserva.ValorTotal)
	assert.Equal(t, 40.0, reserva.ValorPagoNoAto)
	assert.Equal(t, 40.0, reserva.ValorRestante)
	assert.Equal(t, models.LocalPadrao, reserva.LocalAtendimento)
	assert.Nil(t, reserva.PagoEm)

	// 3. Pagina de pagamento mostra o PIX
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/pagamento/1", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "00020126pixintegracao")

	// 4. Enquanto o Asaas reporta PENDING, o polling nao confirma
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/pagamento-status/1", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var status map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, true, status["ok"])
	assert.Equal(t, false, status["pago"])
	assert.Equal(t, "PENDING", status["status"])

	// 5. O pagamento cai no Asaas; o proximo polling confirma
	fake.setStatus("RECEIVED")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/pagamento-status/1", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, true, status["pago"])
	assert.Equal(t, "CONFIRMED", status["status"])
	assert.Equal(t, "/agendamento-concluido/1", status["redirect_url"])

	assert.NoError(t, db.First(&reserva, 1).Error)
	assert.Equal(t, models.StatusPagamentoPago, reserva.StatusPagamento)
	assert.NotNil(t, reserva.PagoEm)

	// 6. Pagina de conclusao
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/agendamento-concluido/1", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// 7. Pollings seguintes usam o caminho rapido, sem nova consulta
	consultas := atomic.LoadInt64(&fake.consultas)
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/pagamento-status/1", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, true, status["pago"])
	assert.Equal(t, consultas, atomic.LoadInt64(&fake.consultas))

	// 8. Reserva paga nao volta para a pagina de pagamento
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/pagamento/1", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/agendamento-concluido/1", w.Header().Get("Location"))
}

func TestFluxoValidacaoNaoCriaCobranca(t *testing.T) {
	r, fake, db := setupIntegrationTest(t)

	form := url.Values{
		"nome":            {"Maria Silva"},
		"telefone":        {"(11) 99999-9999"},
		"cpf":             {"1234"},
		"servico":         {"Lash lifting"},
		"data":            {time.Now().Format("2006-01-02")},
		"horario":         {"10:00"},
		"forma_pagamento": {"adiantado"},
	}
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "CPF invalido. Informe 11 digitos.")
	assert.Contains(t, w.Body.String(), "Maria Silva")

	var total int64
	db.Model(&models.Reserva{}).Count(&total)
	assert.Equal(t, int64(0), total)
	assert.Equal(t, int64(0), atomic.LoadInt64(&fake.consultas))
}
