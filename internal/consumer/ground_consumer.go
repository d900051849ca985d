// Package consumer applies ground-handling updates (baggage scans and flight
// status changes) delivered over RabbitMQ.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Eursukkul/airline-ops/internal/apperr"
	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/internal/service"
	"github.com/Eursukkul/airline-ops/pkg/logger"
	"github.com/Eursukkul/airline-ops/pkg/metrics"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	prefixBaggage = "ground.baggage."
	prefixFlight  = "ground.flight."

	handleTimeout = 10 * time.Second
)

// BaggageScan is the body of a ground.baggage.* message.
type BaggageScan struct {
	TagNumber string `json:"tag_number"`
	Status    string `json:"status"`
}

// FlightUpdate is the body of a ground.flight.* message.
type FlightUpdate struct {
	FlightNumber string `json:"flight_number"`
	Status       string `json:"status"`
}

var errMalformed = errors.New("malformed message")

type GroundConsumer struct {
	baggage service.BaggageService
	catalog service.CatalogService
	metrics *metrics.Metrics
	log     logger.Logger
}

func NewGroundConsumer(baggage service.BaggageService, catalog service.CatalogService, m *metrics.Metrics, log logger.Logger) *GroundConsumer {
	return &GroundConsumer{baggage: baggage, catalog: catalog, metrics: m, log: log}
}

// Start handles deliveries until msgs is closed or ctx is done. The returned
// channel is closed when the loop exits.
func (gc *GroundConsumer) Start(ctx context.Context, msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					gc.log.Info("ground-ops channel closed, stopping consumer")
					return
				}
				gc.handleMessage(ctx, msg)
			}
		}
	}()
	return done
}

// handleMessage acks on success. Messages that can never succeed (bad JSON,
// unknown tag or flight, rejected status) are dropped; anything else is
// requeued.
func (gc *GroundConsumer) handleMessage(ctx context.Context, msg amqp.Delivery) {
	ctx, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()

	kind, err := gc.dispatch(ctx, msg.RoutingKey, msg.Body)
	log := gc.log.With("routing_key", msg.RoutingKey, "message_id", msg.MessageId)

	switch {
	case err == nil:
		gc.count(kind, "applied")
		_ = msg.Ack(false)
	case permanent(err):
		log.Warn("dropping ground-ops message", "error", err)
		gc.count(kind, "dropped")
		_ = msg.Nack(false, false)
	default:
		log.Error("ground-ops message failed, requeueing", "error", err)
		gc.count(kind, "requeued")
		_ = msg.Nack(false, true)
	}
}

func (gc *GroundConsumer) dispatch(ctx context.Context, routingKey string, body []byte) (string, error) {
	switch {
	case strings.HasPrefix(routingKey, prefixBaggage):
		var scan BaggageScan
		if err := decode(body, &scan); err != nil {
			return "baggage", err
		}
		if scan.TagNumber == "" || scan.Status == "" {
			return "baggage", fmt.Errorf("%w: tag_number and status are required", errMalformed)
		}
		b, err := gc.baggage.UpdateStatus(ctx, scan.TagNumber, models.BaggageStatus(scan.Status))
		if err == nil {
			gc.log.Info("baggage status applied", "tag", b.TagNumber, "status", b.Status)
		}
		return "baggage", err

	case strings.HasPrefix(routingKey, prefixFlight):
		var upd FlightUpdate
		if err := decode(body, &upd); err != nil {
			return "flight", err
		}
		if upd.FlightNumber == "" || upd.Status == "" {
			return "flight", fmt.Errorf("%w: flight_number and status are required", errMalformed)
		}
		f, err := gc.catalog.UpdateFlightStatusByNumber(ctx, upd.FlightNumber, models.FlightStatus(upd.Status))
		if err == nil {
			gc.log.Info("flight status applied", "flight_number", f.FlightNumber, "status", f.Status)
		}
		return "flight", err

	default:
		return "unknown", fmt.Errorf("%w: unexpected routing key %q", errMalformed, routingKey)
	}
}

func decode(body []byte, v any) error {
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", errMalformed, err)
	}
	return nil
}

func permanent(err error) bool {
	if errors.Is(err, errMalformed) {
		return true
	}
	switch apperr.KindOf(err) {
	case apperr.KindNotFound, apperr.KindValidation:
		return true
	}
	return false
}

func (gc *GroundConsumer) count(kind, outcome string) {
	if gc.metrics != nil {
		gc.metrics.GroundEvents.WithLabelValues(kind, outcome).Inc()
	}
}
