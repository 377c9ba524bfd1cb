package notify

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/IBM/sarama"

	"github.com/i474232898/clima/internal/weather"
)

// Event is the message published for each successful reading.
type Event struct {
	Weather    weather.Model `json:"weather"`
	Provider   string        `json:"provider"`
	ObservedAt time.Time     `json:"observedAt"`
}

// Publisher is an Observer that sends successful readings to a Kafka topic,
// keyed by city. Failures are logged, never published.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	now      func() time.Time
}

func NewPublisher(producer sarama.SyncProducer, topic string) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// DialPublisher connects a synchronous producer to brokers.
func DialPublisher(brokers []string, topic string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("connect kafka producer: %w", err)
	}
	return NewPublisher(producer, topic), nil
}

func (p *Publisher) OnWeatherUpdated(m weather.Model) {
	if err := p.publish(m); err != nil {
		log.Printf("ERROR: publish weather for %s: %v", m.CityName(), err)
	}
}

func (p *Publisher) publish(m weather.Model) error {
	payload, err := json.Marshal(Event{
		Weather:    m,
		Provider:   "openweathermap",
		ObservedAt: p.now(),
	})
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(cityKey(m.CityName())),
		Value: sarama.ByteEncoder(payload),
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return err
	}

	log.Printf("DEBUG: published weather for %s to %s/%d@%d", m.CityName(), p.topic, partition, offset)
	return nil
}

func (p *Publisher) OnWeatherError(err error) {
	log.Printf("INFO: not publishing failed fetch: %v", err)
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}
