// Package events bridges store change notifications to external sinks.
package events

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"lunchero/internal/models"
)

// Sink receives change events emitted by the stores.
type Sink interface {
	Write(ev models.ChangeEvent) error
	Close() error
}

type KafkaSink struct {
	producer sarama.SyncProducer
	prefix   string
}

// NewKafkaSink connects a synchronous producer to the given broker list.
// Events are published to <prefix>.<entity>.
func NewKafkaSink(brokerList, prefix string) (*KafkaSink, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.RequiredAcks = sarama.WaitForAll
	saramaConfig.Producer.Retry.Max = 5
	saramaConfig.Producer.Retry.Backoff = 100 * time.Millisecond
	saramaConfig.Producer.Return.Successes = true // Must be true for SyncProducer
	saramaConfig.Net.DialTimeout = 30 * time.Second
	saramaConfig.Net.ReadTimeout = 30 * time.Second
	saramaConfig.Net.WriteTimeout = 30 * time.Second

	brokers := strings.Split(brokerList, ",")

	producer, err := sarama.NewSyncProducer(brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sarama producer: %w", err)
	}

	log.Printf("Sarama producer created successfully with brokers %v", brokers)
	return &KafkaSink{producer: producer, prefix: prefix}, nil
}

func (k *KafkaSink) Write(ev models.ChangeEvent) error {
	msg, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	topic := k.prefix + "." + ev.Entity
	_, _, err = k.producer.SendMessage(&sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(msg),
	})
	if err != nil {
		log.Printf("Failed to send message to topic %s: %v", topic, err)
		return err
	}
	return nil
}

func (k *KafkaSink) Close() error {
	if k.producer != nil {
		return k.producer.Close()
	}
	return nil
}

// ConsoleSink logs events to stdout, used when Kafka is disabled.
type ConsoleSink struct{}

func (ConsoleSink) Write(ev models.ChangeEvent) error {
	log.Printf("%s %s id=%s", ev.Entity, ev.Action, ev.ID)
	return nil
}

func (ConsoleSink) Close() error { return nil }
