package engine

import "sort"

// Teto de slips devolvidos após o dedup
const resultCap = 1000

// rankAndDedup ordena os slips brutos por qualidade e seleciona gulosamente
// um subconjunto sem sobreposição de pernas: nenhum candidato aparece em mais
// de um slip do resultado final. É um conjunto independente maximal guloso
// sobre a ordem de qualidade, não um ótimo global.
func rankAndDedup(slips []Slip) []Slip {
	// sort estável: empates mantêm a ordem de descoberta
	sort.SliceStable(slips, func(i, j int) bool {
		return slips[i].AvgWinPct > slips[j].AvgWinPct
	})

	final := make([]Slip, 0, len(slips))
	used := make(map[string]struct{})

	for _, s := range slips {
		if len(final) >= resultCap {
			break
		}
		if overlaps(s.LegIDs, used) {
			continue
		}
		final = append(final, s)
		for _, id := range s.LegIDs {
			used[id] = struct{}{}
		}
	}
	return final
}

func overlaps(ids []string, used map[string]struct{}) bool {
	for _, id := range ids {
		if _, ok := used[id]; ok {
			return true
		}
	}
	return false
}
