package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/avik-s/PrizePicker/internal/slips-service/dto"
	"github.com/avik-s/PrizePicker/internal/slips-service/engine"
	httpapi "github.com/avik-s/PrizePicker/internal/slips-service/http"
)

type fakeQuotes struct {
	quotes []engine.MarketQuote
	err    error
}

func (f *fakeQuotes) ListCurrent(context.Context) ([]engine.MarketQuote, error) {
	return f.quotes, f.err
}

func newAPI(src *fakeQuotes) *httpapi.API {
	return &httpapi.API{
		Log:    zap.NewNop(),
		Quotes: src,
		Engine: engine.NewWithSeed(7),
	}
}

func pairQuotes() []engine.MarketQuote {
	return []engine.MarketQuote{
		{Player: "Jayson Tatum", Team: "BOS - SF", Sport: "NBA", PropType: "Points",
			FanDuelLine: "27.5", PrizePicksLine: "27.5", FairOverPct: 60.0, FairUnderPct: 40.0},
		{Player: "LeBron James", Team: "LAL - SF", Sport: "NBA", PropType: "Points",
			FanDuelLine: "25.5", PrizePicksLine: "25.5", FairOverPct: 58.0, FairUnderPct: 42.0},
	}
}

func TestGetSlips(t *testing.T) {
	api := newAPI(&fakeQuotes{quotes: pairQuotes()})
	srv := httptest.NewServer(api.Router())
	defer srv.Close()

	res, err := srv.Client().Get(srv.URL + "/v1/slips?size=2&style=power")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		t.Fatalf("status = %d", res.StatusCode)
	}

	var resp dto.SlipsResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Style != "power" || resp.Size != 2 {
		t.Errorf("formato ecoado = %s/%d", resp.Style, resp.Size)
	}
	if resp.Threshold != 57.74 {
		t.Errorf("threshold = %v, want 57.74", resp.Threshold)
	}
	if resp.Count != 1 || len(resp.Slips) != 1 {
		t.Fatalf("count = %d, slips = %d", resp.Count, len(resp.Slips))
	}
	if resp.Slips[0].AvgWinPct != 59.0 {
		t.Errorf("avgWinPct = %v, want 59.0", resp.Slips[0].AvgWinPct)
	}
	if resp.RunID == "" {
		t.Error("runId vazio")
	}
}

// Parâmetros fora do domínio caem em defaults seguros, nunca em erro.
func TestGetSlipsNormalizesParams(t *testing.T) {
	api := newAPI(&fakeQuotes{quotes: pairQuotes()})
	srv := httptest.NewServer(api.Router())
	defer srv.Close()

	res, err := srv.Client().Get(srv.URL + "/v1/slips?size=99&style=turbo")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		t.Fatalf("status = %d", res.StatusCode)
	}

	var resp dto.SlipsResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Style != "power" || resp.Size != 6 {
		t.Errorf("esperava fallback power/6, got %s/%d", resp.Style, resp.Size)
	}
}

// Tabela vazia degrada para zero slips, não para erro.
func TestGetSlipsEmptyTable(t *testing.T) {
	api := newAPI(&fakeQuotes{})
	srv := httptest.NewServer(api.Router())
	defer srv.Close()

	res, err := srv.Client().Get(srv.URL + "/v1/slips?size=3&style=flex")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != 200 {
		t.Fatalf("status = %d", res.StatusCode)
	}

	var resp dto.SlipsResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 0 {
		t.Errorf("count = %d, want 0", resp.Count)
	}
}

func TestGetSlipsRepoError(t *testing.T) {
	api := newAPI(&fakeQuotes{err: errors.New("pg down")})
	srv := httptest.NewServer(api.Router())
	defer srv.Close()

	res, err := srv.Client().Get(srv.URL + "/v1/slips")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()
	if res.StatusCode != 500 {
		t.Errorf("status = %d, want 500", res.StatusCode)
	}
}

func TestGetProps(t *testing.T) {
	api := newAPI(&fakeQuotes{quotes: pairQuotes()})
	srv := httptest.NewServer(api.Router())
	defer srv.Close()

	res, err := srv.Client().Get(srv.URL + "/v1/props")
	if err != nil {
		t.Fatal(err)
	}
	defer res.Body.Close()

	var resp dto.PropsResponse
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 2 {
		t.Fatalf("count = %d, want 2", resp.Count)
	}
	if resp.Props[0].Direction != engine.DirectionOver {
		t.Errorf("direction = %s", resp.Props[0].Direction)
	}
}
