package engine

import "strings"

// Style é a estrutura de payout do slip.
type Style string

const (
	StylePower Style = "power"
	StyleFlex  Style = "flex"
)

// DefaultThreshold é usado quando o par (style, size) não consta na tabela.
const DefaultThreshold = 54.21

// Probabilidade média mínima de vitória (escala 0–100) para um slip de cada
// formato ser +EV frente aos multiplicadores de payout de cada estilo.
var thresholds = map[Style]map[int]float64{
	StylePower: {
		2: 57.74,
		3: 55.05,
		4: 56.23,
		5: 54.93,
		6: 54.66,
	},
	StyleFlex: {
		3: 57.74,
		4: 55.04,
		5: 54.26,
		6: 54.21,
	},
}

// Threshold devolve o threshold do formato pedido, com fallback no default.
func Threshold(style Style, size int) float64 {
	if t, ok := thresholds[style][size]; ok {
		return t
	}
	return DefaultThreshold
}

// NormalizeStyle mapeia o parâmetro de estilo da requisição para um valor
// conhecido. Valores não reconhecidos caem em power.
func NormalizeStyle(raw string) Style {
	if strings.EqualFold(raw, string(StyleFlex)) {
		return StyleFlex
	}
	return StylePower
}

// NormalizeSize limita o tamanho do slip ao intervalo suportado (1–6).
// Valores fora do intervalo caem no default 6.
func NormalizeSize(size int) int {
	if size < 1 || size > 6 {
		return 6
	}
	return size
}
