package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/avik-s/PrizePicker/pkg/contracts/events"
)

// KafkaPublisher encapsula o writer Kafka e o logger.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *zap.Logger
}

// NewKafkaPublisher cria um publisher para o tópico de quotes de props.
// Em ambientes local/dev o tópico é criado via controller do cluster antes
// do primeiro envio; o writer é inicializado com timeouts e balanceamento
// por menor carga.
func NewKafkaPublisher(brokers []string, topic string, env string, log *zap.Logger) *KafkaPublisher {
	if len(brokers) == 0 {
		log.Fatal("kafka brokers not provided")
	}

	ctrlCtx, ctrlCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer ctrlCancel()

	// Criação de tópico apenas em ambiente local ou dev.
	if env == "local" || env == "dev" {
		conn, err := kafka.DialContext(ctrlCtx, "tcp", brokers[0])
		if err != nil {
			log.Fatal("failed to connect to kafka", zap.Error(err))
		}
		defer conn.Close()

		controller, err := conn.Controller()
		if err != nil {
			log.Fatal("failed to get kafka controller", zap.Error(err))
		}

		controllerAddr := fmt.Sprintf("%s:%d", controller.Host, controller.Port)
		cconn, err := kafka.DialContext(ctrlCtx, "tcp", controllerAddr)
		if err != nil {
			log.Fatal("failed to dial controller", zap.Error(err))
		}
		defer cconn.Close()

		cfg := kafka.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}

		if err := cconn.CreateTopics(cfg); err != nil && !strings.Contains(err.Error(), "already exists") {
			log.Warn("failed to create kafka topic", zap.String("topic", topic), zap.Error(err))
		} else if err == nil {
			log.Info("kafka topic created", zap.String("topic", topic))
		}
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		ReadTimeout:            10 * time.Second,
		WriteTimeout:           10 * time.Second,
	}

	return &KafkaPublisher{
		writer: writer,
		log:    log,
	}
}

// Publish serializa a quote em JSON e envia para o tópico configurado.
// A chave usa player+prop para manter as atualizações da mesma linha de
// mercado na mesma partição.
func (p *KafkaPublisher) Publish(ctx context.Context, q events.PropQuoteUpdate) error {
	value, err := json.Marshal(q)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(q.Key()),
		Value: value,
		Time:  time.Now(),
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.log.Error("failed to publish prop quote", zap.Error(err))
		return err
	}

	p.log.Debug("published prop quote", zap.String("key", q.Key()))
	return nil
}

// PublishBatch envia um lote completo (uma varredura de diretório).
func (p *KafkaPublisher) PublishBatch(ctx context.Context, quotes []events.PropQuoteUpdate) error {
	msgs := make([]kafka.Message, 0, len(quotes))
	now := time.Now()
	for _, q := range quotes {
		value, err := json.Marshal(q)
		if err != nil {
			continue
		}
		msgs = append(msgs, kafka.Message{
			Key:   []byte(q.Key()),
			Value: value,
			Time:  now,
		})
	}
	if len(msgs) == 0 {
		return nil
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.log.Error("failed to publish prop quote batch", zap.Error(err))
		return err
	}

	p.log.Debug("published prop quote batch", zap.Int("count", len(msgs)))
	return nil
}

// Close finaliza o writer e libera recursos associados.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
