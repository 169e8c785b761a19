package utils

import (
	"fmt"
	"strings"
)

// NormalizarDigitos remove tudo que nao for digito (CPF e telefone
// chegam do formulario com pontuacao).
func NormalizarDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// CPFValido normaliza e confere o tamanho. A validacao e so estrutural
// (11 digitos); digito verificador nao e conferido aqui.
func CPFValido(cpf string) bool {
	return len(NormalizarDigitos(cpf)) == 11
}

// FormatarValorBRL formata um valor em reais, ex.: 1234.5 -> "1.234,50".
func FormatarValorBRL(valor float64) string {
	formatted := fmt.Sprintf("%.2f", valor)

	parts := strings.Split(formatted, ".")
	inteiro := parts[0]
	decimal := parts[1]

	negativo := false
	if strings.HasPrefix(inteiro, "-") {
		negativo = true
		inteiro = inteiro[1:]
	}

	// Separador de milhar
	var grupos []string
	for i := len(inteiro); i > 0; i -= 3 {
		inicio := i - 3
		if inicio < 0 {
			inicio = 0
		}
		grupos = append([]string{inteiro[inicio:i]}, grupos...)
	}

	resultado := strings.Join(grupos, ".") + "," + decimal
	if negativo {
		resultado = "-" + resultado
	}
	return resultado
}
