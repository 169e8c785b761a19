package models

import (
	"testing"
	"time"
)

func TestTempoISOScanFormatos(t *testing.T) {
	tests := []struct {
		name    string
		entrada interface{}
		want    time.Time
	}{
		{
			name:    "texto ISO do banco antigo",
			entrada: "2025-06-10T09:15:00",
			want:    time.Date(2025, 6, 10, 9, 15, 0, 0, time.Local),
		},
		{
			name:    "texto ISO com fracao",
			entrada: "2025-06-10T09:15:00.123456",
			want:    time.Date(2025, 6, 10, 9, 15, 0, 123456000, time.Local),
		},
		{
			name:    "formato do driver sqlite",
			entrada: "2025-06-10 09:15:00",
			want:    time.Date(2025, 6, 10, 9, 15, 0, 0, time.Local),
		},
		{
			name:    "bytes em vez de string",
			entrada: []byte("2025-06-10T09:15:00"),
			want:    time.Date(2025, 6, 10, 9, 15, 0, 0, time.Local),
		},
		{
			name:    "time.Time direto",
			entrada: time.Date(2025, 6, 10, 9, 15, 0, 0, time.Local),
			want:    time.Date(2025, 6, 10, 9, 15, 0, 0, time.Local),
		},
		{
			name:    "nulo vira zero",
			entrada: nil,
			want:    time.Time{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tempo TempoISO
			if err := tempo.Scan(tt.entrada); err != nil {
				t.Fatalf("Scan(%v) error = %v", tt.entrada, err)
			}
			if !tempo.Equal(tt.want) {
				t.Errorf("Scan(%v) = %v, esperado %v", tt.entrada, tempo.Time, tt.want)
			}
		})
	}
}

func TestTempoISOScanFormatoDesconhecido(t *testing.T) {
	var tempo TempoISO
	if err := tempo.Scan("10/06/2025 09:15"); err == nil {
		t.Error("Scan() = nil, formato desconhecido deveria falhar")
	}
}

func TestTempoISOValue(t *testing.T) {
	tempo := NovoTempoISO(time.Date(2025, 6, 10, 9, 15, 42, 999999999, time.Local))

	v, err := tempo.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if v != "2025-06-10T09:15:42" {
		t.Errorf("Value() = %v, esperado texto ISO sem fracao", v)
	}

	var zero TempoISO
	v, err = zero.Value()
	if err != nil {
		t.Fatalf("Value() error = %v", err)
	}
	if v != nil {
		t.Errorf("Value() de tempo zero = %v, esperado NULL", v)
	}
}
