// Package events publishes storefront domain events over NATS JetStream.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/sirupsen/logrus"

	"storefront-service/internal/models"
)

const (
	streamName     = "STOREFRONT_EVENTS"
	streamSubjects = "storefront.>"

	SubjectCartUpdated      = "storefront.cart.updated"
	SubjectCartCleared      = "storefront.cart.cleared"
	SubjectCheckoutStaged    = "storefront.checkout.staged"
	SubjectCheckoutAdjusted  = "storefront.checkout.adjusted"
	SubjectCheckoutSubmitted = "storefront.checkout.submitted"
)

// StorefrontEvent is the wire envelope for every storefront event.
type StorefrontEvent struct {
	EventID   string      `json:"eventId"`
	EventType string      `json:"eventType"`
	SessionID string      `json:"sessionId"`
	Timestamp time.Time   `json:"timestamp"`
	ItemCount int         `json:"itemCount"`
	Payload   interface{} `json:"payload,omitempty"`
}

// Publisher emits storefront events to JetStream. All publish methods
// are fire-and-forget and safe to call on a nil receiver, so the
// service runs unchanged when NATS is not configured.
type Publisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	logger *logrus.Entry
}

// NewPublisher connects to NATS_URL and ensures the storefront stream
// exists.
func NewPublisher(logger *logrus.Logger) (*Publisher, error) {
	if logger == nil {
		logger = logrus.New()
	}

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	log := logger.WithField("component", "storefront-events")

	nc, err := nats.Connect(natsURL,
		nats.Name("storefront-service"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.WithField("url", nc.ConnectedUrl()).Info("Reconnected to NATS")
		}),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.WithError(err).Warn("Disconnected from NATS")
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Info("NATS connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      streamName,
		Subjects:  []string{streamSubjects},
		Retention: jetstream.LimitsPolicy,
		MaxAge:    24 * time.Hour * 7,
		Storage:   jetstream.FileStorage,
		Replicas:  1,
	})
	if err != nil {
		log.WithError(err).Warn("Failed to ensure storefront stream (may already exist)")
	}

	return &Publisher{nc: nc, js: js, logger: log}, nil
}

// Close drains the NATS connection.
func (p *Publisher) Close() {
	if p == nil || p.nc == nil {
		return
	}
	p.nc.Close()
}

// PublishCartUpdated emits the cart after any mutation.
func (p *Publisher) PublishCartUpdated(ctx context.Context, sessionID string, lines []models.CartLine) {
	p.publish(SubjectCartUpdated, sessionID, models.TotalItems(lines), lines)
}

// PublishCartCleared emits a cart-emptied event.
func (p *Publisher) PublishCartCleared(ctx context.Context, sessionID string) {
	p.publish(SubjectCartCleared, sessionID, 0, nil)
}

// PublishCheckoutStaged emits the reconciled staging list.
func (p *Publisher) PublishCheckoutStaged(ctx context.Context, sessionID string, items []models.CheckoutItem) {
	p.publish(SubjectCheckoutStaged, sessionID, models.CheckoutTotalItems(items), items)
}

// PublishCheckoutAdjusted emits the staging list after a quantity edit.
func (p *Publisher) PublishCheckoutAdjusted(ctx context.Context, sessionID string, items []models.CheckoutItem) {
	p.publish(SubjectCheckoutAdjusted, sessionID, models.CheckoutTotalItems(items), items)
}

// PublishCheckoutSubmitted emits the staged list accepted by a submit.
func (p *Publisher) PublishCheckoutSubmitted(ctx context.Context, sessionID string, items []models.CheckoutItem) {
	p.publish(SubjectCheckoutSubmitted, sessionID, models.CheckoutTotalItems(items), items)
}

func (p *Publisher) publish(subject, sessionID string, itemCount int, payload interface{}) {
	if p == nil || p.js == nil {
		return
	}

	event := StorefrontEvent{
		EventID:   uuid.New().String(),
		EventType: subject,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		ItemCount: itemCount,
		Payload:   payload,
	}

	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		data, err := json.Marshal(event)
		if err != nil {
			p.logger.WithError(err).Error("Failed to marshal storefront event")
			return
		}

		if _, err := p.js.Publish(pubCtx, subject, data); err != nil {
			p.logger.WithFields(logrus.Fields{
				"eventType": subject,
				"sessionId": sessionID,
			}).WithError(err).Error("Failed to publish storefront event")
			return
		}

		p.logger.WithFields(logrus.Fields{
			"eventType": subject,
			"sessionId": sessionID,
			"itemCount": itemCount,
		}).Debug("Storefront event published")
	}()
}
