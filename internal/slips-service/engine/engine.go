// Package engine implementa o motor de seleção de slips: transforma a tabela
// de quotes raspadas em candidatos com probabilidade justa, busca combinações
// qualificadas (pareamento guloso, enumeração exaustiva limitada ou
// amostragem aleatória, conforme o tamanho) e devolve a lista final ranqueada
// e sem sobreposição de pernas.
//
// O motor é puro: uma chamada de Generate roda do início ao fim sem estado
// compartilhado entre invocações e sem caminho de erro — entrada vazia ou
// malformada degrada para zero resultados, nunca para uma falha.
package engine

import (
	"math/rand"
	"time"
)

// Engine gera slips a partir de uma tabela de quotes. A fonte aleatória é
// injetável para reprodutibilidade em testes; o comportamento default é
// não determinístico, semeado pelo relógio.
type Engine struct {
	rng *rand.Rand
}

// New cria um motor com semente derivada do relógio.
func New() *Engine {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed cria um motor com semente fixa (execuções reprodutíveis).
func NewWithSeed(seed int64) *Engine {
	return &Engine{rng: rand.New(rand.NewSource(seed))}
}

// Generate roda o pipeline completo: extração de candidatos, busca de
// combinações e ranking com dedup. size e style devem chegar já normalizados
// (NormalizeSize / NormalizeStyle).
func (e *Engine) Generate(quotes []MarketQuote, size int, style Style) []Slip {
	pool := ExtractCandidates(quotes)
	if len(pool) == 0 {
		return []Slip{}
	}

	// Tamanho 1 é um leaderboard de props, não um parlay: sem threshold,
	// sem dedup.
	if size == 1 {
		return topProps(pool)
	}

	threshold := Threshold(style, size)
	sortPool(pool)

	var raw []Slip
	switch {
	case size == 2 && style == StylePower:
		raw = searchPairs(pool, threshold)
	case size < samplingMinSize:
		raw = searchExhaustive(pool, size, threshold)
	default:
		raw = e.searchSampling(pool, size, threshold)
	}

	return rankAndDedup(raw)
}
