package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Formato gravado nas colunas criado_em e pago_em do reservas.db
// (ISO-8601 sem fracao nem fuso, ex.: 2026-08-31T14:30:00).
const FormatoTempoISO = "2006-01-02T15:04:05"

// Formatos aceitos na leitura. Alem do formato proprio da tabela, o
// Scan tolera o que drivers sqlite/mysql costumam devolver para
// colunas de data.
var formatosTempoAceitos = []string{
	FormatoTempoISO,
	"2006-01-02T15:04:05.999999",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
}

// TempoISO persiste um instante como texto ISO-8601, o formato que o
// reservas.db sempre usou. Colunas gravadas por versoes antigas do
// sistema continuam legiveis sem migracao de dados.
type TempoISO struct {
	time.Time
}

func NovoTempoISO(t time.Time) TempoISO {
	return TempoISO{Time: t}
}

func (t TempoISO) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Format(FormatoTempoISO), nil
}

func (t *TempoISO) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		t.Time = time.Time{}
		return nil
	case time.Time:
		t.Time = v
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("TempoISO: tipo %T nao suportado no Scan", src)
	}
}

func (t *TempoISO) parse(s string) error {
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range formatosTempoAceitos {
		if parsed, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("TempoISO: valor %q nao esta em nenhum formato conhecido", s)
}
