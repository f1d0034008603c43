package oddsmath

import "math"

// ImpliedFromAmerican converte uma odd americana em probabilidade implícita.
// Odds positivas: 100 / (odd + 100). Odds negativas (ou zero): |odd| / (|odd| + 100).
func ImpliedFromAmerican(odd float64) float64 {
	if odd > 0 {
		return 100.0 / (odd + 100.0)
	}
	return math.Abs(odd) / (math.Abs(odd) + 100.0)
}

// RemoveVig normaliza um par de probabilidades implícitas de um mercado de dois
// lados, removendo a margem da casa (vig). O par retornado soma exatamente 1.0.
// Entrada degenerada (soma zero) retorna (0, 0) em vez de dividir por zero.
func RemoveVig(impliedOver, impliedUnder float64) (fairOver, fairUnder float64) {
	total := impliedOver + impliedUnder
	if total <= 0 {
		return 0.0, 0.0
	}
	return impliedOver / total, impliedUnder / total
}

// FairFromAmerican converte as odds americanas over/under de um mercado
// diretamente no par de probabilidades justas (sem vig).
func FairFromAmerican(overOdd, underOdd float64) (fairOver, fairUnder float64) {
	return RemoveVig(ImpliedFromAmerican(overOdd), ImpliedFromAmerican(underOdd))
}
