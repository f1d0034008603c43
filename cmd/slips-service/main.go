package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	sharedcache "github.com/avik-s/PrizePicker/internal/shared/cache"
	"github.com/avik-s/PrizePicker/internal/shared/config"
	"github.com/avik-s/PrizePicker/internal/shared/db"
	"github.com/avik-s/PrizePicker/internal/shared/logger"

	slipscache "github.com/avik-s/PrizePicker/internal/slips-service/cache"
	"github.com/avik-s/PrizePicker/internal/slips-service/engine"
	httpapi "github.com/avik-s/PrizePicker/internal/slips-service/http"
	"github.com/avik-s/PrizePicker/internal/slips-service/repo"
	"github.com/avik-s/PrizePicker/internal/slips-service/ws"
)

func main() {
	// carrega config
	cfg := config.Load()

	// inicia logger
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service", zap.String("service", cfg.ServiceName), zap.String("env", cfg.Env))

	// conecta com db Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	log.Info("postgres connected")

	// conecta com cache Redis
	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("failed to connect redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("redis connected")

	// Métricas Prometheus do motor de slips
	generated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "slips_generated_total",
		Help: "slips gerados por formato",
	}, []string{"style", "size"})
	genDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "slips_generation_seconds",
		Help:    "duração da geração de slips",
		Buckets: prometheus.DefBuckets,
	}, []string{"style", "size"})
	prometheus.MustRegister(generated, genDuration)

	// Monta a API REST: repositório de leitura, cache de respostas e motor
	api := &httpapi.API{
		Log:      log,
		Quotes:   &repo.ReadRepo{DB: pg},
		Cache:    slipscache.New(redisClient),
		Engine:   engine.New(),
		CacheTTL: cfg.SlipsCacheTTL,
		OnGenerated: func(style string, size int, slips int, dur time.Duration) {
			labels := []string{style, fmt.Sprintf("%d", size)}
			generated.WithLabelValues(labels...).Add(float64(slips))
			genDuration.WithLabelValues(labels...).Observe(dur.Seconds())
		},
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Hub WebSocket + assinatura do canal Redis de broadcast de quotes
	hub := ws.NewHub(func(r *http.Request) bool { return true })
	ws.StartRedisSubscriber(ctx, redisClient, hub)

	appMux := http.NewServeMux()
	appMux.Handle("/", api.Router())
	appMux.HandleFunc("/ws", hub.HandleWS)

	// sobe servidor de métricas e health
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		// healthz: valida dependências críticas
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			hctx, hcancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer hcancel()

			// ping postgres
			if err := pg.PingContext(hctx); err != nil {
				http.Error(w, "postgres not healthy: "+err.Error(), http.StatusServiceUnavailable)
				return
			}

			// ping redis
			if err := redisClient.Ping(hctx).Err(); err != nil {
				http.Error(w, "redis not healthy: "+err.Error(), http.StatusServiceUnavailable)
				return
			}

			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})

		addr := ":" + cfg.MetricsPort
		log.Info("metrics/health server starting", zap.String("addr", addr))
		_ = http.ListenAndServe(addr, mux)
	}()

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: appMux,
	}

	// encerra o servidor público quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("slips-service listening", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("http server failed", zap.Error(err))
	}
	log.Info("slips-service stopped")
}
