package engine

import "sort"

// Limites de segurança da busca (válvulas de shedding, não fronteiras de corretude)
const (
	// Visão de prop única: quantas entradas o leaderboard devolve
	singlePropLimit = 51

	// Enumeração exaustiva: tetos de combinações examinadas e de slips coletados
	maxCombosExamined  = 3_000_000
	maxQualifyingSlips = 2000

	// Amostragem aleatória: tamanho a partir do qual a enumeração é inviável
	// e número fixo de tentativas por geração
	samplingMinSize = 5
	samplingTrials  = 200_000
)

// sortPool ordena o pool decrescente por probabilidade justa, preservando a
// ordem de origem nos empates.
func sortPool(pool []Candidate) {
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].FairWinPct > pool[j].FairWinPct
	})
}

// topProps é a visão de tamanho 1: não são slips de verdade, apenas as
// melhores props individuais embrulhadas uma a uma, sem filtro de threshold.
func topProps(pool []Candidate) []Slip {
	sortPool(pool)
	n := len(pool)
	if n > singlePropLimit {
		n = singlePropLimit
	}
	out := make([]Slip, 0, n)
	for _, c := range pool[:n] {
		out = append(out, Slip{
			AvgWinPct:  c.FairWinPct,
			TotalEdge:  c.Edge,
			Legs:       []Candidate{c},
			LegIDs:     []string{c.ID},
			IsFallback: true,
		})
	}
	return out
}

// searchPairs implementa o pareamento guloso de 2 pernas do estilo power:
// a melhor prop restante vira leg1 e a varredura procura, do fim do ranking
// para o começo, a primeira parceira que supere o threshold e seja de outro
// time. Pareia um pick forte com um mais fraco que ainda passa na régua, em
// vez de concentrar os slips só no topo. Tombstones substituem a remoção
// estrutural durante a iteração, preservando a ordem exata de pareamento.
func searchPairs(pool []Candidate, threshold float64) []Slip {
	removed := make([]bool, len(pool))
	remaining := len(pool)

	var slips []Slip
	for i := 0; i < len(pool) && remaining >= 2; i++ {
		if removed[i] {
			continue
		}
		leg1 := pool[i]
		removed[i] = true
		remaining--

		for j := len(pool) - 1; j > i; j-- {
			if removed[j] {
				continue
			}
			leg2 := pool[j]

			avg := (leg1.FairWinPct + leg2.FairWinPct) / 2
			if avg <= threshold {
				continue
			}
			if leg1.Team == leg2.Team {
				continue
			}

			slips = append(slips, newSlip([]Candidate{leg1, leg2}, avg, threshold))
			removed[j] = true
			remaining--
			break
		}
		// sem parceira elegível: leg1 fica descartada, sem nova tentativa
	}
	return slips
}

// searchExhaustive enumera todas as combinações do tamanho alvo em ordem do
// pool, com saída antecipada pelos dois tetos de segurança. A enumeração é
// iterativa sobre um vetor de índices, sem recursão.
func searchExhaustive(pool []Candidate, size int, threshold float64) []Slip {
	if len(pool) < size {
		return nil
	}

	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}

	var slips []Slip
	examined := 0
	for {
		examined++
		if examined > maxCombosExamined {
			break
		}

		if s, ok := evalCombo(pool, idx, threshold); ok {
			slips = append(slips, s)
			if len(slips) >= maxQualifyingSlips {
				break
			}
		}

		// avança para a próxima combinação em ordem lexicográfica
		i := size - 1
		for i >= 0 && idx[i] == len(pool)-size+i {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < size; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return slips
}

// searchSampling cobre os tamanhos grandes por amostragem uniforme sem
// reposição: um número fixo de tentativas, cada uma testada com as mesmas
// regras da enumeração. Troca completude por latência limitada; o número de
// tentativas é a única alavanca de latência.
func (e *Engine) searchSampling(pool []Candidate, size int, threshold float64) []Slip {
	if len(pool) < size {
		return nil
	}

	idx := make([]int, len(pool))
	for i := range idx {
		idx[i] = i
	}
	sample := make([]int, size)

	var slips []Slip
	for trial := 0; trial < samplingTrials; trial++ {
		// Fisher-Yates parcial: os primeiros size índices viram a amostra
		for i := 0; i < size; i++ {
			j := i + e.rng.Intn(len(idx)-i)
			idx[i], idx[j] = idx[j], idx[i]
			sample[i] = idx[i]
		}
		if s, ok := evalCombo(pool, sample, threshold); ok {
			slips = append(slips, s)
		}
	}
	return slips
}
