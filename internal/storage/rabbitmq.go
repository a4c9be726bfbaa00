package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/config"
	"github.com/ITNextUK/Mentora-Consulting-Student-Web-API/internal/logger"
	amqp "github.com/rabbitmq/amqp091-go"
)

// CVUploadedEvent is published after a CV file lands in object storage.
// The extraction worker consumes it.
type CVUploadedEvent struct {
	SubmissionUUID string    `json:"submission_uuid"`
	StudentID      string    `json:"student_id"`
	ObjectKey      string    `json:"object_key"`
	FileExt        string    `json:"file_ext"`
	UploadedAt     time.Time `json:"uploaded_at"`
}

// MessageQueue is the event transport between upload and extraction.
type MessageQueue interface {
	PublishCVUploaded(ctx context.Context, event CVUploadedEvent) error
	ConsumeCVUploaded(ctx context.Context, handle func(ctx context.Context, event CVUploadedEvent) error) error
	Close() error
}

var _ MessageQueue = (*RabbitMQ)(nil)

// RabbitMQ provides the cv.uploaded publish/consume flow.
type RabbitMQ struct {
	conn         *amqp.Connection
	channelPool  sync.Pool
	publishMutex sync.Mutex
	cfg          *config.RabbitMQConfig
}

// NewRabbitMQ connects and declares the CV events topology: a durable
// direct exchange, the extraction queue, and the binding between them.
func NewRabbitMQ(cfg *config.RabbitMQConfig) (*RabbitMQ, error) {
	if cfg == nil {
		return nil, fmt.Errorf("rabbitmq config cannot be nil")
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("rabbitmq url is required")
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connecting to rabbitmq: %w", err)
	}

	mq := &RabbitMQ{conn: conn, cfg: cfg}
	mq.channelPool = sync.Pool{
		New: func() interface{} {
			ch, chErr := conn.Channel()
			if chErr != nil {
				logger.Error().Err(chErr).Msg("creating rabbitmq channel failed")
				return nil
			}
			return ch
		},
	}

	if err := mq.declareTopology(); err != nil {
		conn.Close()
		return nil, err
	}
	return mq, nil
}

func (r *RabbitMQ) declareTopology() error {
	ch := r.getChannel()
	if ch == nil {
		return fmt.Errorf("cannot open rabbitmq channel")
	}
	defer r.putChannel(ch)

	if err := ch.ExchangeDeclare(r.cfg.CVEventsExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declaring exchange %s: %w", r.cfg.CVEventsExchange, err)
	}
	if _, err := ch.QueueDeclare(r.cfg.ExtractionQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declaring queue %s: %w", r.cfg.ExtractionQueue, err)
	}
	if err := ch.QueueBind(r.cfg.ExtractionQueue, r.cfg.UploadedKey, r.cfg.CVEventsExchange, false, nil); err != nil {
		return fmt.Errorf("binding queue %s: %w", r.cfg.ExtractionQueue, err)
	}
	return nil
}

func (r *RabbitMQ) getChannel() *amqp.Channel {
	ch := r.channelPool.Get()
	if ch == nil {
		newCh, err := r.conn.Channel()
		if err != nil {
			logger.Error().Err(err).Msg("creating rabbitmq channel failed")
			return nil
		}
		return newCh
	}
	return ch.(*amqp.Channel)
}

func (r *RabbitMQ) putChannel(ch *amqp.Channel) {
	if ch != nil {
		r.channelPool.Put(ch)
	}
}

// Close closes the connection; channels in the pool close with it.
func (r *RabbitMQ) Close() error {
	return r.conn.Close()
}

// PublishCVUploaded publishes a persistent cv.uploaded event.
func (r *RabbitMQ) PublishCVUploaded(ctx context.Context, event CVUploadedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling cv uploaded event: %w", err)
	}

	r.publishMutex.Lock()
	defer r.publishMutex.Unlock()

	ch := r.getChannel()
	if ch == nil {
		return fmt.Errorf("cannot open rabbitmq channel")
	}
	defer r.putChannel(ch)

	err = ch.PublishWithContext(ctx, r.cfg.CVEventsExchange, r.cfg.UploadedKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publishing cv uploaded event: %w", err)
	}
	return nil
}

// ConsumeCVUploaded delivers events to handle until ctx is cancelled.
// Handler errors nack the message without requeue; malformed payloads
// are dropped.
func (r *RabbitMQ) ConsumeCVUploaded(ctx context.Context, handle func(ctx context.Context, event CVUploadedEvent) error) error {
	ch, err := r.conn.Channel()
	if err != nil {
		return fmt.Errorf("opening consumer channel: %w", err)
	}
	defer ch.Close()

	prefetch := r.cfg.PrefetchCount
	if prefetch <= 0 {
		prefetch = 10
	}
	if err := ch.Qos(prefetch, 0, false); err != nil {
		return fmt.Errorf("setting prefetch: %w", err)
	}

	deliveries, err := ch.Consume(r.cfg.ExtractionQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("starting consumer on %s: %w", r.cfg.ExtractionQueue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("rabbitmq delivery channel closed")
			}
			var event CVUploadedEvent
			if err := json.Unmarshal(delivery.Body, &event); err != nil {
				logger.Warn().Err(err).Msg("dropping malformed cv uploaded event")
				delivery.Nack(false, false)
				continue
			}
			if err := handle(ctx, event); err != nil {
				logger.Error().Err(err).Str("submission", event.SubmissionUUID).
					Msg("cv extraction handler failed")
				delivery.Nack(false, false)
				continue
			}
			delivery.Ack(false)
		}
	}
}
