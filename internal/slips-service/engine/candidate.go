package engine

import (
	"math"
	"strconv"
	"strings"
)

// Parâmetros fixos de admissão de candidatos (ver DESIGN.md)
const (
	// Tolerância máxima entre as linhas das duas casas
	LineTolerance = 0.5

	// Probabilidade justa mínima para uma perna virar candidata (escala 0–100)
	AdmissionFloor = 53.5

	// Baseline fixa usada no cálculo de edge, independente do threshold do slip
	edgeBaseline = 54.21
)

// MarketQuote é uma linha da tabela de mercados raspada: um jogador/prop com a
// linha das duas casas e o par justo (sem vig) da FanDuel. As linhas chegam
// como string porque o scraper usa marcadores de ausência ("NL", "FF").
type MarketQuote struct {
	Player         string
	Team           string // "TEAM - POS" quando a posição é conhecida
	Sport          string
	PropType       string
	FanDuelLine    string
	PrizePicksLine string
	FairOverPct    float64 // escala 0–100
	FairUnderPct   float64 // escala 0–100
	PlayerImage    string
}

// Direction indica o lado da aposta.
type Direction string

const (
	DirectionOver  Direction = "OVER"
	DirectionUnder Direction = "UNDER"
)

// Candidate é uma oportunidade de aposta individual derivada de uma linha da
// tabela: o lado cuja probabilidade justa supera o piso de admissão.
type Candidate struct {
	ID             string    `json:"id"` // player + prop type; usado no dedup de slips
	Player         string    `json:"player"`
	Initials       string    `json:"initials"`
	PlayerImage    string    `json:"player_image,omitempty"`
	Team           string    `json:"team"`
	Position       string    `json:"position"`
	Sport          string    `json:"sport"`
	PropType       string    `json:"prop_type"`
	FanDuelLine    float64   `json:"fanduel_line"`
	PrizePicksLine float64   `json:"prizepicks_line"`
	LineDiff       float64   `json:"line_diff"`
	Direction      Direction `json:"direction"`
	FairWinPct     float64   `json:"fair_win_pct"`
	Edge           float64   `json:"edge"`
}

// ExtractCandidates varre a tabela completa de quotes e devolve o pool de
// candidatos elegíveis, na ordem das linhas de origem. Linhas malformadas ou
// sem linha em alguma das casas são descartadas em silêncio: uma linha ruim
// nunca interrompe o lote.
func ExtractCandidates(quotes []MarketQuote) []Candidate {
	out := make([]Candidate, 0, len(quotes))
	for _, q := range quotes {
		if c, ok := candidateFromQuote(q); ok {
			out = append(out, c)
		}
	}
	return out
}

// candidateFromQuote aplica os filtros de admissão a uma linha.
// No máximo um candidato por linha: OVER tem precedência sobre UNDER.
func candidateFromQuote(q MarketQuote) (Candidate, bool) {
	if q.Player == "" {
		return Candidate{}, false
	}

	fdLine, ok := parseLine(q.FanDuelLine)
	if !ok {
		return Candidate{}, false
	}
	ppLine, ok := parseLine(q.PrizePicksLine)
	if !ok {
		return Candidate{}, false
	}

	// As duas casas precisam estar cotando materialmente o mesmo número
	lineDiff := math.Abs(fdLine - ppLine)
	if lineDiff > LineTolerance {
		return Candidate{}, false
	}

	var direction Direction
	var fairProb float64
	switch {
	case q.FairOverPct > AdmissionFloor:
		direction = DirectionOver
		fairProb = q.FairOverPct
	case q.FairUnderPct > AdmissionFloor:
		direction = DirectionUnder
		fairProb = q.FairUnderPct
	default:
		return Candidate{}, false
	}

	team, position := splitTeam(q.Team)

	return Candidate{
		ID:             q.Player + "_" + q.PropType,
		Player:         q.Player,
		Initials:       initials(q.Player),
		PlayerImage:    sanitizeImage(q.PlayerImage),
		Team:           team,
		Position:       position,
		Sport:          q.Sport,
		PropType:       q.PropType,
		FanDuelLine:    fdLine,
		PrizePicksLine: ppLine,
		LineDiff:       lineDiff,
		Direction:      direction,
		FairWinPct:     fairProb,
		Edge:           round2(fairProb - edgeBaseline),
	}, true
}

// parseLine interpreta o valor de linha vindo do scraper.
// Marcadores de ausência e valores não numéricos invalidam a linha.
func parseLine(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	switch s {
	case "", "NL", "FF", "nan":
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// splitTeam separa o campo combinado "TEAM - POS" do scraper.
func splitTeam(raw string) (team, position string) {
	if idx := strings.Index(raw, " - "); idx >= 0 {
		return raw[:idx], raw[idx+3:]
	}
	return raw, "N/A"
}

// initials monta as iniciais do jogador (até dois nomes) para o dashboard.
func initials(player string) string {
	parts := strings.Fields(player)
	if len(parts) == 0 {
		return "??"
	}
	if len(parts) > 2 {
		parts = parts[:2]
	}
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(strings.ToUpper(p[:1]))
	}
	return b.String()
}

// sanitizeImage descarta os marcadores de ausência do campo de imagem.
func sanitizeImage(raw string) string {
	switch raw {
	case "nan", "None", "NL":
		return ""
	}
	return raw
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
