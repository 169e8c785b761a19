package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/oneto133/Agendamento/config"
	"github.com/oneto133/Agendamento/utils"
)

// ErrAPIKeyNaoConfigurada indica ausencia da credencial obrigatoria do Asaas.
var ErrAPIKeyNaoConfigurada = errors.New("ASAAS_API_KEY nao configurada")

// ErroAsaas carrega o status HTTP e o corpo devolvido pelo Asaas quando
// uma chamada falha.
type ErroAsaas struct {
	StatusCode int
	Corpo      string
}

func (e *ErroAsaas) Error() string {
	return fmt.Sprintf("Asaas API error (status %d): %s", e.StatusCode, e.Corpo)
}

// AsaasService fala com a API do Asaas: criacao de cliente e cobranca PIX,
// QR Code e consulta de status. Uma tentativa por chamada; retry e decisao
// de quem chama.
type AsaasService struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewAsaasService(cfg *config.Config) *AsaasService {
	return &AsaasService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// CobrancaCriada e o resultado de criar cliente + cobranca no Asaas.
type CobrancaCriada struct {
	CustomerID string
	PaymentID  string
	InvoiceURL string
}

// PixQrCode e o payload copia-e-cola e a imagem base64 de uma cobranca.
type PixQrCode struct {
	Payload        string `json:"payload"`
	EncodedImage   string `json:"encodedImage"`
	ExpirationDate string `json:"expirationDate"`
}

// PagamentoAsaas e o objeto de cobranca como o Asaas devolve (parcial).
type PagamentoAsaas struct {
	ID         string  `json:"id"`
	Status     string  `json:"status"`
	Value      float64 `json:"value"`
	InvoiceURL string  `json:"invoiceUrl"`
	DueDate    string  `json:"dueDate"`
}

func (as *AsaasService) doRequest(method, url string, payload interface{}) ([]byte, error) {
	if as.cfg.AsaasAPIKey == "" {
		return nil, ErrAPIKeyNaoConfigurada
	}

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("error marshaling request: %v", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", as.cfg.AsaasAPIKey)

	resp, err := as.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &ErroAsaas{StatusCode: resp.StatusCode, Corpo: string(respBody)}
	}

	return respBody, nil
}

// CriarClienteECobranca cria o cliente (chaveado por CPF e telefone
// normalizados) e em seguida uma cobranca PIX com o valor padrao,
// vencendo em dueDate (YYYY-MM-DD).
func (as *AsaasService) CriarClienteECobranca(nome, telefone, cpf, dueDate string) (*CobrancaCriada, error) {
	customerPayload := map[string]interface{}{
		"name":        nome,
		"cpfCnpj":     utils.NormalizarDigitos(cpf),
		"mobilePhone": utils.NormalizarDigitos(telefone),
	}

	respBody, err := as.doRequest(http.MethodPost, fmt.Sprintf("%s/customers", as.cfg.AsaasBaseURL), customerPayload)
	if err != nil {
		return nil, err
	}

	var customer struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(respBody, &customer); err != nil {
		return nil, fmt.Errorf("error unmarshaling customer response: %v", err)
	}

	paymentPayload := map[string]interface{}{
		"customer":    customer.ID,
		"billingType": "PIX",
		"value":       as.cfg.ValorCobrancaPadrao,
		"dueDate":     dueDate,
		"description": "Cobranca referente ao agendamento",
	}

	respBody, err = as.doRequest(http.MethodPost, fmt.Sprintf("%s/payments", as.cfg.AsaasBaseURL), paymentPayload)
	if err != nil {
		return nil, err
	}

	var payment PagamentoAsaas
	if err := json.Unmarshal(respBody, &payment); err != nil {
		return nil, fmt.Errorf("error unmarshaling payment response: %v", err)
	}

	utils.InfoLogger.Printf("Cobranca criada no Asaas: customer=%s payment=%s", customer.ID, payment.ID)

	return &CobrancaCriada{
		CustomerID: customer.ID,
		PaymentID:  payment.ID,
		InvoiceURL: payment.InvoiceURL,
	}, nil
}

// BuscarPixQrCode busca o payload PIX e o QR em base64 de uma cobranca
// existente. Quem chama trata a falha como nao fatal.
func (as *AsaasService) BuscarPixQrCode(paymentID string) (*PixQrCode, error) {
	respBody, err := as.doRequest(http.MethodGet, fmt.Sprintf("%s/payments/%s/pixQrCode", as.cfg.AsaasBaseURL, paymentID), nil)
	if err != nil {
		return nil, err
	}

	var qr PixQrCode
	if err := json.Unmarshal(respBody, &qr); err != nil {
		return nil, fmt.Errorf("error unmarshaling pixQrCode response: %v", err)
	}

	return &qr, nil
}

// ConsultarPagamento consulta o estado atual da cobranca no Asaas.
func (as *AsaasService) ConsultarPagamento(paymentID string) (*PagamentoAsaas, error) {
	respBody, err := as.doRequest(http.MethodGet, fmt.Sprintf("%s/payments/%s", as.cfg.AsaasBaseURL, paymentID), nil)
	if err != nil {
		return nil, err
	}

	var payment PagamentoAsaas
	if err := json.Unmarshal(respBody, &payment); err != nil {
		return nil, fmt.Errorf("error unmarshaling payment response: %v", err)
	}

	return &payment, nil
}
