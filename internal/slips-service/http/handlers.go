package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/avik-s/PrizePicker/internal/slips-service/cache"
	"github.com/avik-s/PrizePicker/internal/slips-service/dto"
	"github.com/avik-s/PrizePicker/internal/slips-service/engine"
)

// QuoteSource fornece a tabela corrente de quotes para o motor.
type QuoteSource interface {
	ListCurrent(ctx context.Context) ([]engine.MarketQuote, error)
}

// API expõe os endpoints REST de geração de slips
// Utiliza um repositório de leitura (Postgres) e cache de respostas (Redis)
type API struct {
	Log      *zap.Logger
	Quotes   QuoteSource
	Cache    *cache.Cache // cache de respostas; opcional
	Engine   *engine.Engine
	CacheTTL time.Duration

	// OnGenerated recebe formato, quantidade e duração de cada geração (métricas)
	OnGenerated func(style string, size int, slips int, dur time.Duration)
}

// Router retorna o roteador HTTP com os endpoints REST
func (a *API) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/v1/slips", a.getSlips) // Gera a lista ranqueada de slips
	r.Get("/v1/props", a.getProps) // Lista o pool de candidatos atual
	return r
}

// writeJSON serializa a resposta em JSON e define o status HTTP
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// getSlips roda o pipeline completo (extração → busca → ranking) para o
// formato pedido. Parâmetros fora do domínio caem em defaults seguros:
// estilo desconhecido vira power, tamanho inválido vira 6.
func (a *API) getSlips(w http.ResponseWriter, r *http.Request) {
	size := 6
	if raw := r.URL.Query().Get("size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			size = n
		}
	}
	size = engine.NormalizeSize(size)
	style := engine.NormalizeStyle(r.URL.Query().Get("style"))

	// resposta recente no cache evita recomputar a busca combinatória
	if a.Cache != nil {
		var cached dto.SlipsResponse
		if ok, _ := a.Cache.GetSlips(r.Context(), string(style), size, &cached); ok {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	quotes, err := a.Quotes.ListCurrent(r.Context())
	if err != nil {
		a.Log.Warn("quote table read failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	start := time.Now()
	slips := a.Engine.Generate(quotes, size, style)
	if a.OnGenerated != nil {
		a.OnGenerated(string(style), size, len(slips), time.Since(start))
	}

	threshold := 0.0
	if size > 1 {
		threshold = engine.Threshold(style, size)
	}

	resp := dto.SlipsResponse{
		RunID:       uuid.NewString(),
		Style:       string(style),
		Size:        size,
		Threshold:   threshold,
		Count:       len(slips),
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Slips:       slips,
	}

	if a.Cache != nil {
		_ = a.Cache.SetSlips(r.Context(), string(style), size, resp, a.CacheTTL)
	}
	writeJSON(w, http.StatusOK, resp)
}

// getProps devolve o pool de candidatos elegíveis (sem busca de combinações)
func (a *API) getProps(w http.ResponseWriter, r *http.Request) {
	quotes, err := a.Quotes.ListCurrent(r.Context())
	if err != nil {
		a.Log.Warn("quote table read failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	pool := engine.ExtractCandidates(quotes)
	writeJSON(w, http.StatusOK, dto.PropsResponse{
		Count: len(pool),
		Props: pool,
	})
}
