package config

import (
	"fmt"
	"os"
	"strconv"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Servico guarda os dois precos de um servico do catalogo.
type Servico struct {
	ValorReservado   float64 `json:"valor_reservado"`
	ValorComDesconto float64 `json:"valor_com_desconto"`
}

// Config e o valor imutavel de configuracao montado uma unica vez no
// startup e passado explicitamente para services e controllers.
type Config struct {
	Servicos map[string]Servico
	Horarios []string

	AsaasBaseURL        string
	AsaasAPIKey         string
	ValorCobrancaPadrao float64

	DBPath string
	DBDSN  string

	AdminEmail string
	AdminSenha string

	Porta string
}

// ErrServicoDesconhecido e retornado quando o servico nao existe no catalogo.
var ErrServicoDesconhecido = fmt.Errorf("servico desconhecido")

// Carregar monta a configuracao a partir das variaveis de ambiente.
// O catalogo de servicos e a lista de horarios sao fixos.
func Carregar() *Config {
	cfg := &Config{
		Servicos: map[string]Servico{
			"Brow lamination": {ValorReservado: 100.0, ValorComDesconto: 80.0},
			"Fio a Fio":       {ValorReservado: 50.0, ValorComDesconto: 40.0},
			"Lash lifting":    {ValorReservado: 50.0, ValorComDesconto: 40.0},
		},
		Horarios: []string{
			"08:00", "09:00", "10:00", "11:00", "12:00", "13:00",
			"14:00", "15:00", "16:00", "17:00", "18:00", "19:00",
		},
		AsaasBaseURL:        os.Getenv("ASAAS_BASE_URL"),
		AsaasAPIKey:         os.Getenv("ASAAS_API_KEY"),
		ValorCobrancaPadrao: 50.0,
		DBPath:              os.Getenv("DB_PATH"),
		DBDSN:               os.Getenv("DB_DSN"),
		AdminEmail:          os.Getenv("ADMIN_EMAIL"),
		AdminSenha:          os.Getenv("ADMIN_PASSWORD"),
		Porta:               os.Getenv("PORT"),
	}

	if cfg.AsaasBaseURL == "" {
		cfg.AsaasBaseURL = "https://sandbox.asaas.com/api/v3"
	}
	if cfg.DBPath == "" {
		cfg.DBPath = "reservas.db"
	}
	if cfg.Porta == "" {
		cfg.Porta = "8000"
	}
	if v := os.Getenv("VALOR_COBRANCA_PADRAO"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.ValorCobrancaPadrao = f
		}
	}

	return cfg
}

// PrecosDoServico devolve os precos de um servico do catalogo.
func (c *Config) PrecosDoServico(nome string) (Servico, error) {
	s, ok := c.Servicos[nome]
	if !ok {
		return Servico{}, fmt.Errorf("%w: %s", ErrServicoDesconhecido, nome)
	}
	return s, nil
}

// ServicosDisponiveis devolve os nomes do catalogo em ordem fixa,
// para render do formulario.
func (c *Config) ServicosDisponiveis() []string {
	// Ordem fixa para o select do formulario (maps nao tem ordem).
	ordem := []string{"Brow lamination", "Fio a Fio", "Lash lifting"}
	nomes := make([]string, 0, len(ordem))
	for _, n := range ordem {
		if _, ok := c.Servicos[n]; ok {
			nomes = append(nomes, n)
		}
	}
	return nomes
}

// InitDB abre a conexao com o banco. MySQL quando DB_DSN esta definido
// (producao), senao SQLite em arquivo, igual ao banco original.
func InitDB(cfg *Config) (*gorm.DB, error) {
	if cfg.DBDSN != "" {
		return gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
}
