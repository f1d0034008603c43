package loader_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/avik-s/PrizePicker/internal/props-ingest/loader"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadAll(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "nba_props_points.csv",
		"Player,Team,Prop Type,FanDuel Line,FD Over Odds,FD Under Odds,PrizePicks Line,FD Fair Over %,FD Fair Under %\n"+
			"Jayson Tatum,BOS - SF,Points,27.5,-120,100,27.5,0,0\n"+
			",BOS - SF,Points,27.5,-120,100,27.5,0,0\n"+ // sem jogador: pulada
			"Luka Doncic,DAL - PG,Assists,8.5,NL,NL,8.5,57.3,42.7\n")

	writeFile(t, dir, "nfl_props_passyards.csv",
		"Player,Team,Prop Type,FanDuel Line,FD Over Odds,FD Under Odds,PrizePicks Line,FD Fair Over %,FD Fair Under %\n"+
			"Josh Allen,BUF - QB,Pass Yards,249.5,-110,-110,249.5,0,0\n")

	// arquivo fora do padrão de nome é ignorado
	writeFile(t, dir, "notes.csv", "a,b\n1,2\n")

	l := &loader.Loader{Dir: dir, DefaultSport: "NBA"}
	quotes, err := l.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(quotes) != 3 {
		t.Fatalf("esperava 3 quotes, got %d", len(quotes))
	}

	bySport := map[string]int{}
	for _, q := range quotes {
		bySport[q.Sport]++
	}
	if bySport["NBA"] != 2 || bySport["NFL"] != 1 {
		t.Errorf("sports inesperados: %v", bySport)
	}

	for _, q := range quotes {
		switch q.Player {
		case "Jayson Tatum":
			// par justo recalculado das odds -120/+100
			if math.Abs(q.FDFairOverPct-52.17) > 0.01 || math.Abs(q.FDFairUnderPct-47.83) > 0.01 {
				t.Errorf("par justo recalculado = (%v, %v)", q.FDFairOverPct, q.FDFairUnderPct)
			}
		case "Luka Doncic":
			// sem odds cruas: mantém o que o scraper gravou
			if q.FDFairOverPct != 57.3 || q.FDFairUnderPct != 42.7 {
				t.Errorf("par justo preservado = (%v, %v)", q.FDFairOverPct, q.FDFairUnderPct)
			}
			if q.FanDuelLine != "8.5" {
				t.Errorf("linha = %q", q.FanDuelLine)
			}
		case "Josh Allen":
			if math.Abs(q.FDFairOverPct-50.0) > 0.01 {
				t.Errorf("mercado simétrico deveria dar 50%%, got %v", q.FDFairOverPct)
			}
		default:
			t.Errorf("quote inesperada: %q", q.Player)
		}
	}
}

func TestLoadAllEmptyDir(t *testing.T) {
	l := &loader.Loader{Dir: t.TempDir(), DefaultSport: "NBA"}
	quotes, err := l.LoadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(quotes) != 0 {
		t.Errorf("esperava 0 quotes, got %d", len(quotes))
	}
}
