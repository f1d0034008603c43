package engine_test

import (
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/avik-s/PrizePicker/internal/slips-service/engine"
)

// Cenário de referência do pareamento power de 2 pernas: A (60%, BOS) pareia
// com B (58%, LAL) e gera um único slip com média 59.0 e edge 1.26 sobre o
// threshold 57.74.
func TestGeneratePowerPair(t *testing.T) {
	quotes := []engine.MarketQuote{
		quote("Jayson Tatum", "BOS - SF", "Points", "27.5", "27.5", 60.0, 40.0),
		quote("LeBron James", "LAL - SF", "Points", "25.5", "25.5", 58.0, 42.0),
	}

	slips := engine.New().Generate(quotes, 2, engine.StylePower)
	if len(slips) != 1 {
		t.Fatalf("esperava 1 slip, got %d", len(slips))
	}

	s := slips[0]
	if s.AvgWinPct != 59.0 {
		t.Errorf("avgWinPct = %v, want 59.0", s.AvgWinPct)
	}
	if s.TotalEdge != 1.26 {
		t.Errorf("totalEdge = %v, want 1.26", s.TotalEdge)
	}
	if len(s.Legs) != 2 || s.Legs[0].Player != "Jayson Tatum" || s.Legs[1].Player != "LeBron James" {
		t.Errorf("pernas inesperadas: %+v", s.Legs)
	}
}

// Par abaixo do threshold ou do mesmo time não qualifica.
func TestGeneratePowerPairRejections(t *testing.T) {
	t.Run("média insuficiente", func(t *testing.T) {
		quotes := []engine.MarketQuote{
			quote("Jayson Tatum", "BOS - SF", "Points", "27.5", "27.5", 58.0, 42.0),
			quote("LeBron James", "LAL - SF", "Points", "25.5", "25.5", 56.0, 44.0),
		}
		if got := engine.New().Generate(quotes, 2, engine.StylePower); len(got) != 0 {
			t.Errorf("esperava 0 slips, got %d", len(got))
		}
	})

	t.Run("mesmo time", func(t *testing.T) {
		quotes := []engine.MarketQuote{
			quote("Jayson Tatum", "BOS - SF", "Points", "27.5", "27.5", 62.0, 38.0),
			quote("Jaylen Brown", "BOS - SG", "Points", "24.5", "24.5", 60.0, 40.0),
		}
		if got := engine.New().Generate(quotes, 2, engine.StylePower); len(got) != 0 {
			t.Errorf("esperava 0 slips, got %d", len(got))
		}
	})
}

// Pool inteiro no mesmo time: a regra de diversidade derruba todas as
// combinações da enumeração exaustiva.
func TestGenerateExhaustiveSameTeam(t *testing.T) {
	var quotes []engine.MarketQuote
	for i := 0; i < 5; i++ {
		quotes = append(quotes, quote(
			fmt.Sprintf("Player %d", i), "BOS - SG", "Points", "20.5", "20.5", 64.0, 36.0,
		))
	}

	if got := engine.New().Generate(quotes, 3, engine.StylePower); len(got) != 0 {
		t.Errorf("esperava 0 slips com um único time, got %d", len(got))
	}
}

// Pool menor que o tamanho pedido: a amostragem retorna vazio imediatamente.
func TestGenerateSamplingUndersizedPool(t *testing.T) {
	quotes := []engine.MarketQuote{
		quote("Jayson Tatum", "BOS - SF", "Points", "27.5", "27.5", 60.0, 40.0),
		quote("LeBron James", "LAL - SF", "Points", "25.5", "25.5", 58.0, 42.0),
	}

	if got := engine.New().Generate(quotes, 5, engine.StylePower); len(got) != 0 {
		t.Errorf("esperava 0 slips, got %d", len(got))
	}
}

// Tamanho 1: leaderboard com no máximo 51 entradas, ordenado decrescente e
// marcado como fallback (sem filtro de threshold).
func TestGenerateSinglePropView(t *testing.T) {
	var quotes []engine.MarketQuote
	for i := 0; i < 100; i++ {
		quotes = append(quotes, quote(
			fmt.Sprintf("Player %d", i),
			fmt.Sprintf("TM%d - PG", i%10),
			"Points", "20.5", "20.5",
			54.0+float64(i)*0.1, 40.0,
		))
	}

	slips := engine.New().Generate(quotes, 1, engine.StylePower)
	if len(slips) != 51 {
		t.Fatalf("esperava 51 entradas, got %d", len(slips))
	}
	for i, s := range slips {
		if !s.IsFallback {
			t.Errorf("entrada %d sem flag de fallback", i)
		}
		if len(s.Legs) != 1 {
			t.Errorf("entrada %d com %d pernas", i, len(s.Legs))
		}
		if i > 0 && slips[i-1].AvgWinPct < s.AvgWinPct {
			t.Errorf("leaderboard fora de ordem na posição %d", i)
		}
	}

	// pool menor que o limite devolve o pool inteiro
	small := engine.New().Generate(quotes[:10], 1, engine.StylePower)
	if len(small) != 10 {
		t.Errorf("esperava 10 entradas, got %d", len(small))
	}
}

func TestGenerateEmptyInput(t *testing.T) {
	for size := 1; size <= 6; size++ {
		if got := engine.New().Generate(nil, size, engine.StylePower); len(got) != 0 {
			t.Errorf("size %d: esperava 0 slips para entrada vazia, got %d", size, len(got))
		}
	}
}

// Propriedades do resultado final: slips válidos, acima do threshold,
// disjuntos entre si e ordenados por qualidade.
func TestGenerateResultProperties(t *testing.T) {
	teams := []string{"BOS", "LAL", "DEN", "GSW"}
	var quotes []engine.MarketQuote
	for i := 0; i < 12; i++ {
		quotes = append(quotes, quote(
			fmt.Sprintf("Player %d", i),
			fmt.Sprintf("%s - PG", teams[i%len(teams)]),
			"Points", "20.5", "20.5",
			55.0+float64(i)*0.5, 40.0,
		))
	}

	for _, tc := range []struct {
		size  int
		style engine.Style
	}{
		{2, engine.StyleFlex}, // flex 2 não consta na tabela: threshold default
		{3, engine.StylePower},
		{4, engine.StyleFlex},
	} {
		t.Run(fmt.Sprintf("%s-%d", tc.style, tc.size), func(t *testing.T) {
			threshold := engine.Threshold(tc.style, tc.size)
			slips := engine.New().Generate(quotes, tc.size, tc.style)
			if len(slips) == 0 {
				t.Fatal("esperava pelo menos um slip")
			}

			used := make(map[string]bool)
			for i, s := range slips {
				if s.AvgWinPct <= threshold {
					t.Errorf("slip %d: avgWinPct %v não supera threshold %v", i, s.AvgWinPct, threshold)
				}
				if i > 0 && slips[i-1].AvgWinPct < s.AvgWinPct {
					t.Errorf("resultado fora de ordem na posição %d", i)
				}

				players := make(map[string]bool)
				teamsSeen := make(map[string]bool)
				for _, leg := range s.Legs {
					players[leg.Player] = true
					teamsSeen[leg.Team] = true
				}
				if len(players) != tc.size {
					t.Errorf("slip %d: jogadores repetidos", i)
				}
				if len(teamsSeen) < 2 {
					t.Errorf("slip %d: menos de dois times", i)
				}

				// disjunção entre slips do resultado final
				for _, id := range s.LegIDs {
					if used[id] {
						t.Errorf("slip %d: perna %s reutilizada", i, id)
					}
					used[id] = true
				}
			}
		})
	}
}

// flex de 2 pernas cai no threshold default (par ausente da tabela).
func TestThresholdFallback(t *testing.T) {
	if got := engine.Threshold(engine.StyleFlex, 2); got != engine.DefaultThreshold {
		t.Errorf("threshold = %v, want default %v", got, engine.DefaultThreshold)
	}
	if got := engine.Threshold(engine.StylePower, 2); got != 57.74 {
		t.Errorf("threshold power/2 = %v, want 57.74", got)
	}
	if got := engine.Threshold(engine.StyleFlex, 6); got != 54.21 {
		t.Errorf("threshold flex/6 = %v, want 54.21", got)
	}
}

func TestNormalizeStyleAndSize(t *testing.T) {
	if engine.NormalizeStyle("Flex") != engine.StyleFlex {
		t.Error("Flex deveria normalizar para flex")
	}
	if engine.NormalizeStyle("power") != engine.StylePower {
		t.Error("power deveria normalizar para power")
	}
	if engine.NormalizeStyle("desconhecido") != engine.StylePower {
		t.Error("estilo desconhecido deveria cair em power")
	}

	for raw, want := range map[int]int{0: 6, 7: 6, -3: 6, 1: 1, 4: 4, 6: 6} {
		if got := engine.NormalizeSize(raw); got != want {
			t.Errorf("NormalizeSize(%d) = %d, want %d", raw, got, want)
		}
	}
}

// A amostragem com a mesma semente produz o mesmo resultado.
func TestGenerateSamplingDeterministicWithSeed(t *testing.T) {
	teams := []string{"BOS", "LAL", "DEN", "GSW", "MIA", "NYK"}
	fairs := []float64{53.6, 53.6, 53.6, 53.6, 53.6, 53.6, 58.0, 58.0}
	var quotes []engine.MarketQuote
	for i := range fairs {
		quotes = append(quotes, quote(
			fmt.Sprintf("Player %d", i),
			fmt.Sprintf("%s - PG", teams[i%len(teams)]),
			"Points", "20.5", "20.5",
			fairs[i], 40.0,
		))
	}

	a := engine.NewWithSeed(42).Generate(quotes, 5, engine.StylePower)
	b := engine.NewWithSeed(42).Generate(quotes, 5, engine.StylePower)
	if !reflect.DeepEqual(a, b) {
		t.Error("mesma semente deveria produzir o mesmo resultado")
	}

	if len(a) == 0 {
		t.Fatal("esperava pelo menos um slip amostrado")
	}
	threshold := engine.Threshold(engine.StylePower, 5)
	for _, s := range a {
		if s.AvgWinPct <= threshold {
			t.Errorf("avgWinPct %v não supera threshold %v", s.AvgWinPct, threshold)
		}
		if math.Abs(s.TotalEdge-round2(s.AvgWinPct-threshold)) > 0.01 {
			t.Errorf("totalEdge %v inconsistente com avg %v", s.TotalEdge, s.AvgWinPct)
		}
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
