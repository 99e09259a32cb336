package auditlogs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/arbetsytan/arbetsytan/pkg/domain/project"
)

type KafkaConfig struct {
	Host  string
	Port  string
	Topic string
}

type kafkaExporter struct {
	cfg      KafkaConfig
	producer *kafka.Producer
}

func NewKafkaExporter(cfg KafkaConfig) (Exporter, error) {
	if cfg.Host == "" {
		return nil, errors.New("kafka host is required")
	}
	if cfg.Port == "" {
		return nil, errors.New("kafka port is required")
	}
	if cfg.Topic == "" {
		return nil, errors.New("kafka topic is required")
	}

	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &kafkaExporter{
		cfg:      cfg,
		producer: producer,
	}, nil
}

func (e *kafkaExporter) Name() string {
	return "kafka"
}

func (e *kafkaExporter) Handle(ctx context.Context, event *project.Event) error {
	if e.producer == nil {
		return errors.New("kafka producer is not initialized")
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	deliveryChan := make(chan kafka.Event)
	defer close(deliveryChan)

	err = e.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &e.cfg.Topic, Partition: kafka.PartitionAny},
		Value:          data,
	}, deliveryChan)
	if err != nil {
		return fmt.Errorf("failed to produce audit message: %w", err)
	}

	evt := <-deliveryChan
	msg, ok := evt.(*kafka.Message)
	if !ok {
		return fmt.Errorf("unexpected kafka event type %T", evt)
	}
	if msg.TopicPartition.Error != nil {
		return fmt.Errorf("audit delivery failed: %w", msg.TopicPartition.Error)
	}
	return nil
}

func (e *kafkaExporter) Close() {
	if e.producer != nil {
		e.producer.Flush(5000)
		e.producer.Close()
	}
}
