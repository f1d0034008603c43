package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/avik-s/PrizePicker/internal/props-ingest/loader"
	"github.com/avik-s/PrizePicker/internal/props-ingest/publisher"
	"github.com/avik-s/PrizePicker/internal/props-ingest/service"
	"github.com/avik-s/PrizePicker/internal/shared/config"
	"github.com/avik-s/PrizePicker/internal/shared/logger"
)

func main() {
	cfg := config.Load()
	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	log.Info("Kafka brokers", zap.String("brokers", cfg.KafkaBrokers))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Kafka Publisher
	pub := publisher.NewKafkaPublisher(
		strings.Split(cfg.KafkaBrokers, ","),
		cfg.TopicPropQuotes,
		cfg.Env,
		log,
	)
	defer pub.Close()

	// Métricas de ingestão: quotes publicadas por varredura e pelo feed WS
	scanned := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "props_ingest_quotes_scanned_total",
		Help: "quotes publicadas a partir das varreduras de diretório",
	})
	prometheus.MustRegister(scanned)

	// WS Client: feed ao vivo do scraper
	wsClient := &service.WSClient{
		URL:       cfg.ScraperWSURL,
		Log:       log,
		Publisher: pub,
	}
	go wsClient.Start(ctx)

	// Poller de diretório: varre os CSVs do scraper em intervalo fixo
	poller := &service.DirPoller{
		Loader:    &loader.Loader{Dir: cfg.PropsDir, DefaultSport: cfg.DefaultSport},
		Publisher: pub,
		Interval:  cfg.PollInterval,
		Log:       log,
		OnScan:    func(count int) { scanned.Add(float64(count)) },
	}
	go poller.Start(ctx)

	// Metrics e health
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		addr := fmt.Sprintf(":%s", cfg.MetricsPort)
		log.Info("metrics/health listening", zap.String("addr", addr))
		_ = http.ListenAndServe(addr, mux)
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutdown signal received")
	cancel()
	time.Sleep(2 * time.Second)
}
