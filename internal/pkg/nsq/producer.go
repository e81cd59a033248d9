package nsq

import (
	"encoding/json"
	"fmt"

	"github.com/nsqio/go-nsq"
	"github.com/piresc/antar/internal/pkg/logger"
)

// publisher is the part of *nsq.Producer the dispatcher uses
type publisher interface {
	Publish(topic string, body []byte) error
	Ping() error
	Stop()
}

// Producer publishes dispatch events to nsqd topics
type Producer struct {
	producer publisher
}

// NewProducer connects to the nsqd at address
func NewProducer(address string) (*Producer, error) {
	config := nsq.NewConfig()
	producer, err := nsq.NewProducer(address, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ producer: %w", err)
	}
	producer.SetLoggerLevel(nsq.LogLevelWarning)

	if err := producer.Ping(); err != nil {
		producer.Stop()
		return nil, fmt.Errorf("failed to ping NSQ daemon: %w", err)
	}

	return &Producer{producer: producer}, nil
}

// Publish sends a raw message to the specified topic
func (p *Producer) Publish(topic string, data []byte) error {
	if err := p.producer.Publish(topic, data); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	logger.Debug("Published message", logger.String("topic", topic))
	return nil
}

// PublishJSON marshals v and publishes it to topic
func (p *Producer) PublishJSON(topic string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	return p.Publish(topic, data)
}

// Ping checks the nsqd connection for health checks
func (p *Producer) Ping() error {
	return p.producer.Ping()
}

// Stop gracefully stops the producer
func (p *Producer) Stop() {
	p.producer.Stop()
}
