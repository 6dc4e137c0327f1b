package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"

	"staybcn/internal/domain/booking"
)

// Notifier publishes booking confirmations to a Kafka topic for downstream
// consumers (email sender, ops dashboard). Delivery is best effort; the
// confirmation itself never depends on the broker.
type Notifier struct {
	producer sarama.SyncProducer
	topic    string
}

func NewNotifier(brokers []string, topic string, cfg *sarama.Config) (*Notifier, error) {
	if cfg == nil {
		cfg = sarama.NewConfig()
	}
	cfg.Version = sarama.V2_5_0_0
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &Notifier{producer: producer, topic: topic}, nil
}

type confirmationEvent struct {
	EventID     string    `json:"event_id"`
	Code        string    `json:"code"`
	UnitID      string    `json:"unit_id"`
	CheckIn     string    `json:"check_in"`
	CheckOut    string    `json:"check_out"`
	Guests      int       `json:"guests"`
	Email       string    `json:"email"`
	Total       float64   `json:"total"`
	ConfirmedAt time.Time `json:"confirmed_at"`
}

func (n *Notifier) BookingConfirmed(ctx context.Context, conf booking.Confirmation) error {
	evt := confirmationEvent{
		EventID:     uuid.NewString(),
		Code:        conf.Code,
		CheckIn:     conf.Request.CheckIn.Format("2006-01-02"),
		CheckOut:    conf.Request.CheckOut.Format("2006-01-02"),
		Guests:      conf.Request.Guests.Total(),
		Email:       conf.Request.Contact.Email,
		Total:       conf.Price.Total,
		ConfirmedAt: conf.ConfirmedAt,
	}
	if conf.Request.Unit != nil {
		evt.UnitID = string(conf.Request.Unit.ID)
	}
	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	_, _, err = n.producer.SendMessage(&sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(evt.Code),
		Value: sarama.ByteEncoder(payload),
	})
	return err
}

func (n *Notifier) Close() error {
	return n.producer.Close()
}
