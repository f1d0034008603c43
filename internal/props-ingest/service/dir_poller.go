package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/avik-s/PrizePicker/internal/props-ingest/loader"
	"github.com/avik-s/PrizePicker/internal/props-ingest/publisher"
)

// DirPoller varre o diretório de CSVs do scraper em intervalo fixo e publica
// a tabela completa a cada varredura. O scraper reescreve os arquivos a cada
// ciclo; a versão incrementa por varredura para o worker distinguir lotes.
type DirPoller struct {
	Loader    *loader.Loader
	Publisher *publisher.KafkaPublisher
	Interval  time.Duration
	Log       *zap.Logger

	// OnScan recebe o tamanho do lote publicado (métricas)
	OnScan func(count int)
}

// Start roda uma varredura imediata e depois segue o ticker até o contexto
// ser cancelado.
func (p *DirPoller) Start(ctx context.Context) {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	version := 1
	p.scan(ctx, version)

	for {
		select {
		case <-ctx.Done():
			p.Log.Info("context canceled, stopping dir poller")
			return
		case <-ticker.C:
			version++
			p.scan(ctx, version)
		}
	}
}

func (p *DirPoller) scan(ctx context.Context, version int) {
	quotes, err := p.Loader.LoadAll()
	if err != nil {
		p.Log.Warn("props dir scan failed", zap.Error(err))
		return
	}
	if len(quotes) == 0 {
		p.Log.Debug("props dir scan: no tables found")
		return
	}

	for i := range quotes {
		quotes[i].Version = version
	}

	if err := p.Publisher.PublishBatch(ctx, quotes); err != nil {
		p.Log.Warn("batch publish failed", zap.Error(err))
		return
	}

	p.Log.Info("props batch published",
		zap.Int("count", len(quotes)),
		zap.Int("version", version),
	)
	if p.OnScan != nil {
		p.OnScan(len(quotes))
	}
}
