package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/avik-s/PrizePicker/internal/props-processor/cache"
	"github.com/avik-s/PrizePicker/internal/props-processor/repository"
	sharedkafka "github.com/avik-s/PrizePicker/internal/shared/kafka"
	"github.com/avik-s/PrizePicker/pkg/contracts/events"
)

// Processor consome quotes de props do Kafka, faz cache e persiste no banco
// Callbacks de métricas podem ser usadas para monitoramento de cada etapa
type Processor struct {
	Log    *zap.Logger
	Reader *kafka.Reader
	Repo   *repository.PostgresRepo
	Cache  *cache.RedisCache

	// DLQ recebe mensagens que falharam no decode; opcional
	DLQ *sharedkafka.Writer

	OnConsumed func()       // métricas (counter++)
	OnCached   func()       // métricas
	OnPersist  func()       // métricas
	OnError    func(string) // métricas por fase

	// Após persistência bem-sucedida, notifica o broadcast (WS do slips-service)
	OnAfterPersist func(events.PropQuoteUpdate)
}

// Run inicia o loop principal de consumo e processamento das mensagens Kafka
func (p *Processor) Run(ctx context.Context) error {
	for {
		m, err := p.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err() // encerra se o contexto for cancelado
			}
			p.Log.Warn("kafka read failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("read")
			}
			time.Sleep(500 * time.Millisecond)
			continue
		}

		if p.OnConsumed != nil {
			p.OnConsumed() // callback de métrica: mensagem consumida
		}

		var quote events.PropQuoteUpdate
		if err := json.Unmarshal(m.Value, &quote); err != nil {
			p.Log.Warn("invalid message", zap.Error(err))
			if p.OnError != nil {
				p.OnError("decode")
			}
			// encaminha a mensagem crua para a DLQ, preservando a chave
			if p.DLQ != nil {
				if dlqErr := sharedkafka.WriteJSON(ctx, p.DLQ, string(m.Key), m.Value); dlqErr != nil {
					p.Log.Warn("dlq write failed", zap.Error(dlqErr))
				}
			}
			continue
		}

		// Atualiza cache Redis com a quote corrente
		if err := p.Cache.SetCurrent(ctx, quote); err != nil {
			p.Log.Warn("redis set failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("cache")
			}
			// não bloqueia persistência se falhar o cache
		} else if p.OnCached != nil {
			p.OnCached() // callback de métrica: cache atualizado
		}

		// Persiste/atualiza quote corrente e histórico no Postgres
		if err := p.Repo.UpsertCurrent(ctx, quote); err != nil {
			p.Log.Warn("db upsert failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("db_upsert")
			}
			continue
		}
		if err := p.Repo.InsertHistory(ctx, quote); err != nil {
			p.Log.Warn("db insert history failed", zap.Error(err))
			if p.OnError != nil {
				p.OnError("db_history")
			}
			continue
		}
		if p.OnPersist != nil {
			p.OnPersist() // callback de métrica: persistência concluída
		}
		if p.OnAfterPersist != nil {
			p.OnAfterPersist(quote)
		}
	}
}
