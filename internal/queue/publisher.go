package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"cinema-reservation/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const bookingEventQueue = "booking.events"

// BookingEvent diterbitkan setelah transaksi booking commit. Consumer
// (notifikasi, analytics) hidup di luar service ini.
type BookingEvent struct {
	Event       string    `json:"event"`
	OrderID     string    `json:"order_id"`
	BookingID   string    `json:"booking_id"`
	UserID      string    `json:"user_id"`
	ScreeningID string    `json:"screening_id"`
	Seats       []string  `json:"seats,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
)

// Publisher kirim event booking ke rabbitmq. Instance nil atau koneksi
// gagal berarti publisher dimatikan; Publish jadi no-op yang cuma log.
type Publisher struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel
	url     string
	log     *zap.Logger
}

// NewPublisher dial rabbitmq dan deklarasi queue durable. Return nil kalau
// URL kosong; error koneksi dilaporkan ke caller supaya bisa degrade.
func NewPublisher(cfg utils.AMQPConfig, log *zap.Logger) (*Publisher, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	p := &Publisher{
		url: cfg.URL,
		log: log.With(zap.String("queue", bookingEventQueue)),
	}
	if err := p.connect(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open amqp channel: %w", err)
	}

	_, err = ch.QueueDeclare(bookingEventQueue, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("declare queue %s: %w", bookingEventQueue, err)
	}

	p.conn = conn
	p.channel = ch
	return nil
}

// Publish kirim satu event. Gagal publish tidak pernah menggagalkan booking;
// error cuma dicatat lalu koneksi dicoba ulang sekali.
func (p *Publisher) Publish(ctx context.Context, event BookingEvent) {
	if p == nil {
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("Failed to marshal booking event", zap.Error(err), zap.String("event", event.Event))
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.publishLocked(ctx, body); err != nil {
		// Channel bisa mati diam-diam; reconnect sekali lalu coba lagi.
		if rerr := p.reconnectLocked(); rerr != nil {
			p.log.Error("Failed to publish booking event",
				zap.Error(err),
				zap.String("event", event.Event),
				zap.String("order_id", event.OrderID),
			)
			return
		}
		if err := p.publishLocked(ctx, body); err != nil {
			p.log.Error("Failed to publish booking event after reconnect",
				zap.Error(err),
				zap.String("event", event.Event),
				zap.String("order_id", event.OrderID),
			)
		}
	}
}

func (p *Publisher) publishLocked(ctx context.Context, body []byte) error {
	if p.channel == nil {
		return fmt.Errorf("amqp channel closed")
	}

	return p.channel.PublishWithContext(ctx, "", bookingEventQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
}

func (p *Publisher) reconnectLocked() error {
	p.closeLocked()
	return p.connect()
}

// Close tutup channel dan koneksi saat shutdown.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}

func (p *Publisher) closeLocked() {
	if p.channel != nil {
		p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		p.conn.Close()
		p.conn = nil
	}
}
