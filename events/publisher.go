package events

import (
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/IBM/sarama"

	"deepresearch/types"
)

// DefaultTopic is used when RESEARCH_EVENTS_TOPIC is unset.
const DefaultTopic = "research-events"

// JobEvent is the JSON payload published for every job lifecycle
// transition.
type JobEvent struct {
	Event        string             `json:"event"`
	JobID        string             `json:"job_id"`
	Status       types.JobStatus    `json:"status"`
	Query        string             `json:"query"`
	ContentStyle types.ContentStyle `json:"content_style"`
	ErrorMessage string             `json:"error_message,omitempty"`
	Timestamp    time.Time          `json:"timestamp"`
}

// KafkaPublisher publishes job lifecycle events to a Kafka topic.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaPublisher connects a synchronous producer to the given brokers.
func NewKafkaPublisher(brokers []string, topic string) (*KafkaPublisher, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 3
	cfg.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &KafkaPublisher{producer: producer, topic: topic}, nil
}

// NewKafkaPublisherFromEnv returns a publisher when
// KAFKA_BOOTSTRAP_SERVERS is set, nil otherwise.
func NewKafkaPublisherFromEnv() (*KafkaPublisher, error) {
	brokers := strings.TrimSpace(os.Getenv("KAFKA_BOOTSTRAP_SERVERS"))
	if brokers == "" {
		return nil, nil
	}

	topic := os.Getenv("RESEARCH_EVENTS_TOPIC")
	if topic == "" {
		topic = DefaultTopic
	}
	return NewKafkaPublisher(strings.Split(brokers, ","), topic)
}

// Publish sends one lifecycle event, keyed by job id so per-job ordering is
// preserved.
func (p *KafkaPublisher) Publish(event string, job types.Job) error {
	payload := JobEvent{
		Event:        event,
		JobID:        job.ID,
		Status:       job.Status,
		Query:        job.Input.Query,
		ContentStyle: job.Input.Style,
		ErrorMessage: job.ErrorMessage,
		Timestamp:    time.Now(),
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(job.ID),
		Value: sarama.ByteEncoder(b),
	}
	_, _, err = p.producer.SendMessage(msg)
	return err
}

// Close shuts the producer down.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
