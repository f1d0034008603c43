package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/avik-s/PrizePicker/internal/props-ingest/publisher"
	"github.com/avik-s/PrizePicker/pkg/contracts/events"
)

// WSClient consome o feed ao vivo do scraper via WebSocket e repassa cada
// quote recebida para o tópico Kafka.
type WSClient struct {
	URL       string                    // endpoint WebSocket do scraper
	Log       *zap.Logger               // Logger estruturado
	Publisher *publisher.KafkaPublisher // Publisher Kafka de quotes
}

// Start inicia o loop de conexão e escuta do WebSocket.
// Em caso de desconexão, tenta reconectar automaticamente com backoff.
func (c *WSClient) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.Log.Info("context canceled, stopping WS client")
			return
		default:
			if err := c.connectAndListen(ctx); err != nil {
				c.Log.Warn("connection closed", zap.Error(err))
				time.Sleep(3 * time.Second) // Aguarda antes de tentar reconectar
			}
		}
	}
}

// connectAndListen estabelece a conexão WebSocket e processa mensagens.
// Mensagem inválida é descartada sem derrubar a conexão.
func (c *WSClient) connectAndListen(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	c.Log.Info("connected to scraper WS", zap.String("url", c.URL))

	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) || errors.Is(err, context.Canceled) {
				return nil
			}
			c.Log.Error("read message failed", zap.Error(err))
			return err
		}

		var quote events.PropQuoteUpdate
		if err := json.Unmarshal(message, &quote); err != nil {
			c.Log.Warn("invalid message", zap.Error(err))
			continue
		}

		// Publica a quote recebida no Kafka
		if err := c.Publisher.Publish(ctx, quote); err != nil {
			c.Log.Error("failed to publish to Kafka", zap.Error(err))
		}
	}
}
