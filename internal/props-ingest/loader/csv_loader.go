package loader

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/avik-s/PrizePicker/pkg/contracts/events"
	"github.com/avik-s/PrizePicker/pkg/oddsmath"
)

// Loader lê as tabelas de props depositadas pelo scraper (um CSV por tipo de
// prop) e as converte em eventos PropQuoteUpdate. Leitura é best-effort:
// arquivo ou linha ruim é pulada, nunca derruba o lote.
type Loader struct {
	Dir          string // diretório monitorado
	DefaultSport string // sport para tabelas sem coluna Sport
}

// Pattern dos arquivos gerados pelo scraper: <sport>_props_<prop>.csv
const filePattern = "*_props_*.csv"

// LoadAll varre o diretório e concatena todas as tabelas encontradas.
func (l *Loader) LoadAll() ([]events.PropQuoteUpdate, error) {
	files, err := filepath.Glob(filepath.Join(l.Dir, filePattern))
	if err != nil {
		return nil, fmt.Errorf("glob props dir: %w", err)
	}

	var all []events.PropQuoteUpdate
	for _, f := range files {
		quotes, err := l.loadFile(f)
		if err != nil {
			// arquivo ilegível não bloqueia os demais
			continue
		}
		all = append(all, quotes...)
	}
	return all, nil
}

// loadFile interpreta um CSV do scraper, mapeando colunas pelo cabeçalho.
func (l *Loader) loadFile(path string) ([]events.PropQuoteUpdate, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tabelas antigas podem ter colunas a menos

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, nil
	}

	col := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		col[strings.TrimSpace(name)] = i
	}

	sport := l.sportForFile(path, col)
	now := time.Now().UTC()

	var out []events.PropQuoteUpdate
	for _, row := range rows[1:] {
		get := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[i])
		}

		q := events.PropQuoteUpdate{
			Player:         get("Player"),
			Team:           get("Team"),
			Sport:          sport,
			PropType:       get("Prop Type"),
			FanDuelLine:    get("FanDuel Line"),
			FDOverOdds:     parseFloat(get("FD Over Odds")),
			FDUnderOdds:    parseFloat(get("FD Under Odds")),
			PrizePicksLine: get("PrizePicks Line"),
			FDFairOverPct:  parseFloat(get("FD Fair Over %")),
			FDFairUnderPct: parseFloat(get("FD Fair Under %")),
			PlayerImage:    get("Player Image"),
			Source:         "csv:" + filepath.Base(path),
			ScrapedAt:      now,
		}
		if q.Player == "" {
			continue
		}
		if s := get("Sport"); s != "" {
			q.Sport = s
		}
		if q.Sport == "" {
			q.Sport = l.DefaultSport
		}

		// recalcula o par justo quando as odds cruas estão presentes;
		// sem odds, confia no que o scraper gravou
		if q.FDOverOdds != 0 || q.FDUnderOdds != 0 {
			fairOver, fairUnder := oddsmath.FairFromAmerican(q.FDOverOdds, q.FDUnderOdds)
			q.FDFairOverPct = round2(fairOver * 100)
			q.FDFairUnderPct = round2(fairUnder * 100)
		}

		out = append(out, q)
	}
	return out, nil
}

// sportForFile decide o sport da tabela: coluna Sport quando existe,
// senão heurística de nome de arquivo (convenção do scraper).
func (l *Loader) sportForFile(path string, col map[string]int) string {
	if _, ok := col["Sport"]; ok {
		return "" // resolvido linha a linha
	}
	if strings.Contains(strings.ToLower(filepath.Base(path)), "nfl") {
		return "NFL"
	}
	return l.DefaultSport
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
