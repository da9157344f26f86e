package services

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

// StreamName is the JetStream stream holding every admin event.
const StreamName = "admin-events"

var streamSubjects = []string{"files.*", "participants.*", "guardians.*", "sedes.*", "mensualidades.*", "exports.*"}

var (
	nc *nats.Conn
	js nats.JetStreamContext
)

// ConnectNATS connects to NATS and initializes JetStream and the stream.
func ConnectNATS(url string) (*nats.Conn, nats.JetStreamContext, error) {
	if nc != nil && nc.IsConnected() {
		return nc, js, nil
	}

	opts := []nats.Option{
		nats.Name("rehab-admin-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Printf("[NATS] disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("[NATS] reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Println("[NATS] connection closed")
		}),
	}

	conn, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, nil, err
	}

	jsCtx, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	nc, js = conn, jsCtx

	if err := ensureStream(); err != nil {
		log.Printf("[NATS] warning: failed to ensure stream: %v", err)
	}

	log.Println("[NATS] connected and JetStream initialized")
	return nc, js, nil
}

// CloseNATS drains the connection.
func CloseNATS() {
	if nc == nil {
		return
	}
	if err := nc.Drain(); err != nil {
		log.Printf("[NATS] drain failed: %v", err)
	}
	nc, js = nil, nil
}

func ensureStream() error {
	if _, err := js.StreamInfo(StreamName); err == nil {
		log.Printf("[NATS] stream %s already exists", StreamName)
		return nil
	}

	_, err := js.AddStream(&nats.StreamConfig{
		Name:     StreamName,
		Subjects: streamSubjects,
		Storage:  nats.FileStorage,
		MaxAge:   30 * 24 * time.Hour,
	})
	return err
}

// PublishEvent publishes a JSON event via JetStream with a unique message
// id for deduplication.
func PublishEvent(subject string, payload any) error {
	if js == nil {
		return errors.New("jetstream not initialized")
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	if _, err := js.Publish(subject, data, nats.MsgId(uuid.New().String())); err != nil {
		log.Printf("[NATS] publish failed subject=%s err=%v", subject, err)
		return err
	}
	return nil
}

// SubscribeEvent creates a durable, manual-ack consumer. handler must Ack or
// Nak every message.
func SubscribeEvent(subject, durableName string, handler nats.MsgHandler) (*nats.Subscription, error) {
	if js == nil {
		return nil, errors.New("jetstream not initialized")
	}
	sub, err := js.Subscribe(subject, handler, nats.Durable(durableName), nats.ManualAck())
	if err != nil {
		return nil, err
	}
	log.Printf("[NATS] subscribed (jetstream) subject=%s durable=%s", subject, durableName)
	return sub, nil
}

// EventBus adapts PublishEvent to command.Publisher.
type EventBus struct{}

func (EventBus) Publish(subject string, payload any) error {
	return PublishEvent(subject, payload)
}
