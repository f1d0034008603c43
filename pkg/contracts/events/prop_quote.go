package events

import "time"

// Evento publicado no tópico "prop_quotes": uma linha de mercado de prop
// raspada do site de odds, com o par justo (sem vig) já calculado.
// As linhas trafegam como string para preservar os marcadores de ausência
// usados pelo scraper ("NL", "FF").
type PropQuoteUpdate struct {
	Player         string  `json:"player"`
	Team           string  `json:"team"` // formato "TEAM - POS" quando a posição é conhecida
	Sport          string  `json:"sport"`
	PropType       string  `json:"prop_type"`
	FanDuelLine    string  `json:"fanduel_line"`
	FDOverOdds     float64 `json:"fd_over_odds"`
	FDUnderOdds    float64 `json:"fd_under_odds"`
	PrizePicksLine string  `json:"prizepicks_line"`
	FDFairOverPct  float64 `json:"fd_fair_over_pct"`  // escala 0–100
	FDFairUnderPct float64 `json:"fd_fair_under_pct"` // escala 0–100
	PlayerImage    string  `json:"player_image"`

	Source    string    `json:"source"` // "scraper-simulator" | "csv:<arquivo>"
	ScrapedAt time.Time `json:"scraped_at"`
	Version   int       `json:"version"` // incrementado a cada varredura
}

// Key identifica a linha de mercado para particionamento e upsert.
func (p PropQuoteUpdate) Key() string {
	return p.Player + "_" + p.PropType
}
