package engine

// Slip é uma combinação de pernas avaliada em conjunto contra o threshold do
// formato. Produzido e descartado dentro de uma única geração; nada persiste.
type Slip struct {
	AvgWinPct  float64     `json:"avg_win_pct"`
	TotalEdge  float64     `json:"total_edge"`
	Legs       []Candidate `json:"legs"`
	LegIDs     []string    `json:"leg_ids"`
	IsFallback bool        `json:"is_fallback,omitempty"` // visão de props individuais, sem filtro de threshold
}

// newSlip monta um slip qualificado a partir das pernas e da média já validada.
func newSlip(legs []Candidate, avgWinPct, threshold float64) Slip {
	ids := make([]string, len(legs))
	for i, leg := range legs {
		ids[i] = leg.ID
	}
	return Slip{
		AvgWinPct: round2(avgWinPct),
		TotalEdge: round2(avgWinPct - threshold),
		Legs:      legs,
		LegIDs:    ids,
	}
}

// evalCombo testa uma combinação de índices do pool contra o threshold e as
// regras de diversidade; só aloca as pernas quando a combinação qualifica.
func evalCombo(pool []Candidate, idx []int, threshold float64) (Slip, bool) {
	sum := 0.0
	for _, k := range idx {
		sum += pool[k].FairWinPct
	}
	avg := sum / float64(len(idx))
	if avg <= threshold {
		return Slip{}, false
	}
	if !diverseCombo(pool, idx) {
		return Slip{}, false
	}

	legs := make([]Candidate, len(idx))
	for i, k := range idx {
		legs[i] = pool[k]
	}
	return newSlip(legs, avg, threshold), true
}

// diverseCombo exige jogadores todos distintos e pelo menos dois times.
func diverseCombo(pool []Candidate, idx []int) bool {
	players := make(map[string]struct{}, len(idx))
	teams := make(map[string]struct{}, len(idx))
	for _, k := range idx {
		players[pool[k].Player] = struct{}{}
		teams[pool[k].Team] = struct{}{}
	}
	if len(players) != len(idx) {
		return false
	}
	return len(teams) >= 2
}
