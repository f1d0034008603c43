package main

import (
	"context"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"

	"go.uber.org/zap"

	"github.com/avik-s/PrizePicker/internal/shared/config"
	"github.com/avik-s/PrizePicker/internal/shared/logger"
	"github.com/avik-s/PrizePicker/internal/shared/metrics"
)

func rp(to string) *httputil.ReverseProxy {
	u, _ := url.Parse(to)
	return httputil.NewSingleHostReverseProxy(u)
}

func main() {
	cfg := config.Load()
	log, _ := logger.New(cfg.ServiceName, cfg.Env)
	defer log.Sync()

	// targets
	slipsURL := os.Getenv("SLIPS_URL")
	if slipsURL == "" {
		slipsURL = "http://localhost:8080"
	}
	slips := rp(slipsURL)

	mux := http.NewServeMux()

	// slips e props (ex.: /api/slips -> slips-service /v1/slips)
	mux.Handle("/api/slips", http.StripPrefix("/api", addV1(slips)))
	mux.Handle("/api/props", http.StripPrefix("/api", addV1(slips)))

	// feed WebSocket do dashboard (ex.: /api/ws -> slips-service /ws)
	mux.Handle("/api/ws", http.StripPrefix("/api", slips))

	// métricas e health em porta separada; o gateway não tem dependências
	// próprias além do upstream
	_ = metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		return nil
	})

	addr := ":" + cfg.HTTPPort
	log.Info("dashboard-gateway listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, withCORS(mux)); err != nil && err != http.ErrServerClosed {
		log.Fatal("gateway failed", zap.Error(err))
	}
}

// addV1 reescreve o prefixo de rota pública para o versionamento interno
func addV1(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.URL.Path = "/v1" + r.URL.Path
		h.ServeHTTP(w, r)
	})
}

func withCORS(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		h.ServeHTTP(w, r)
	})
}
