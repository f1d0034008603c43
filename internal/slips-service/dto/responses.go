package dto

import "github.com/avik-s/PrizePicker/internal/slips-service/engine"

// SlipsResponse é a resposta de GET /v1/slips: a lista ranqueada e disjunta
// de slips para o formato pedido.
type SlipsResponse struct {
	RunID       string        `json:"runId"` // identifica a geração (cache compartilha o run)
	Style       string        `json:"style"`
	Size        int           `json:"size"`
	Threshold   float64       `json:"threshold,omitempty"` // zero na visão de prop única
	Count       int           `json:"count"`
	GeneratedAt string        `json:"generatedAt"`
	Slips       []engine.Slip `json:"slips"`
}

// PropsResponse é a resposta de GET /v1/props: o pool de candidatos atual.
type PropsResponse struct {
	Count int                `json:"count"`
	Props []engine.Candidate `json:"props"`
}
