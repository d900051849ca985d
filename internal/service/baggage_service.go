package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/internal/repository"
	"github.com/Eursukkul/airline-ops/pkg/logger"
	"github.com/Eursukkul/airline-ops/pkg/metrics"
	"github.com/Eursukkul/airline-ops/pkg/rabbitmq"
	"github.com/thanhpk/randstr"
	"gorm.io/gorm"
)

const (
	MaxBaggageWeightKg = 100.0
	maxTagAttempts     = 8
	tagDigits          = 6
)

// BaggageTracking is a bag together with its tracking-view progress percentage.
type BaggageTracking struct {
	Baggage  *models.Baggage
	Progress int
}

type BaggageService interface {
	CheckIn(ctx context.Context, pnr string, weight float64) (*models.Baggage, error)
	Track(ctx context.Context, tag string) (*BaggageTracking, error)
	UpdateStatus(ctx context.Context, tag string, status models.BaggageStatus) (*models.Baggage, error)
	Policy() models.BaggagePolicy
}

type BaggageServiceOptions struct {
	Policy    models.BaggagePolicy
	TagPrefix string
	// NewTag draws tag numbers; nil uses "<TagPrefix>-" plus six random digits.
	NewTag func() string
}

type baggageService struct {
	baggageRepo repository.BaggageRepository
	ticketRepo  repository.TicketRepository
	publisher   EventPublisher
	metrics     *metrics.Metrics
	log         logger.Logger
	opts        BaggageServiceOptions
}

func NewBaggageService(
	baggageRepo repository.BaggageRepository,
	ticketRepo repository.TicketRepository,
	publisher EventPublisher,
	m *metrics.Metrics,
	log logger.Logger,
	opts BaggageServiceOptions,
) BaggageService {
	if opts.Policy == (models.BaggagePolicy{}) {
		opts.Policy = models.DefaultBaggagePolicy
	}
	if opts.TagPrefix == "" {
		opts.TagPrefix = "BG"
	}
	if opts.NewTag == nil {
		prefix := opts.TagPrefix
		opts.NewTag = func() string { return prefix + "-" + randstr.Dec(tagDigits) }
	}
	return &baggageService{
		baggageRepo: baggageRepo,
		ticketRepo:  ticketRepo,
		publisher:   publisher,
		metrics:     m,
		log:         log,
		opts:        opts,
	}
}

// ParseWeight reads a form weight in kilograms, rounded to the stored
// precision: finite, above zero, at most 100.
func ParseWeight(raw string) (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, invalid(ErrInvalidWeight, "weight must be a number")
	}
	w = roundWeight(w)
	return w, validateWeight(w)
}

// roundWeight rounds to the precision of the decimal(5,2) weight column.
func roundWeight(w float64) float64 {
	return math.Round(w*100) / 100
}

func validateWeight(w float64) error {
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 || w > MaxBaggageWeightKg {
		return invalid(ErrInvalidWeight, fmt.Sprintf("weight must be above 0 and at most %g kg", MaxBaggageWeightKg))
	}
	return nil
}

func normalizePNR(pnr string) string {
	return strings.ToUpper(strings.TrimSpace(pnr))
}

func (s *baggageService) Policy() models.BaggagePolicy {
	return s.opts.Policy
}

func (s *baggageService) CheckIn(ctx context.Context, pnr string, weight float64) (*models.Baggage, error) {
	weight = roundWeight(weight)
	if err := validateWeight(weight); err != nil {
		return nil, err
	}

	ticket, err := s.ticketRepo.FindByPNR(ctx, normalizePNR(pnr))
	if err != nil {
		return nil, notFoundOr(err, ErrTicketNotFound)
	}

	var stored *models.Baggage
	err = s.baggageRepo.GetDB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tag, err := s.drawTag(ctx, tx)
		if err != nil {
			return err
		}

		stored, err = s.baggageRepo.UpsertByTicket(ctx, tx, &models.Baggage{
			TicketID:  ticket.ID,
			Weight:    weight,
			Status:    models.BaggageChecked,
			ExtraFee:  s.opts.Policy.Surcharge(weight),
			TagNumber: tag,
		})
		return writeErr(err)
	})
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("baggage_check_in").Inc()
		return nil, err
	}

	s.metrics.BaggageChecked.Inc()
	s.metrics.BaggageSurcharge.Add(stored.ExtraFee)
	publish(s.publisher, s.log, rabbitmq.KeyBaggageChecked, BaggageEvent{
		BaggageID:  stored.ID,
		TicketID:   stored.TicketID,
		TagNumber:  stored.TagNumber,
		Weight:     stored.Weight,
		ExtraFee:   stored.ExtraFee,
		Status:     stored.Status,
		OccurredAt: time.Now().UTC(),
	})
	s.log.Info("baggage checked in", "pnr", ticket.PNR, "tag", stored.TagNumber, "weight", weight, "extra_fee", stored.ExtraFee)

	return stored, nil
}

func (s *baggageService) drawTag(ctx context.Context, tx *gorm.DB) (string, error) {
	for range maxTagAttempts {
		tag := s.opts.NewTag()
		exists, err := s.baggageRepo.TagExists(ctx, tx, tag)
		if err != nil {
			return "", err
		}
		if !exists {
			return tag, nil
		}
	}
	return "", ErrTagExhausted
}

func (s *baggageService) Track(ctx context.Context, tag string) (*BaggageTracking, error) {
	baggage, err := s.baggageRepo.FindByTag(ctx, strings.ToUpper(strings.TrimSpace(tag)))
	if err != nil {
		return nil, notFoundOr(err, ErrBaggageNotFound)
	}
	return &BaggageTracking{Baggage: baggage, Progress: baggage.Status.Progress()}, nil
}

func (s *baggageService) UpdateStatus(ctx context.Context, tag string, status models.BaggageStatus) (*models.Baggage, error) {
	status = models.BaggageStatus(strings.ToUpper(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return nil, invalid(ErrInvalidStatus, fmt.Sprintf("unknown baggage status %q", status))
	}

	baggage, err := s.baggageRepo.FindByTag(ctx, strings.ToUpper(strings.TrimSpace(tag)))
	if err != nil {
		return nil, notFoundOr(err, ErrBaggageNotFound)
	}
	if baggage.Status == status {
		return baggage, nil
	}
	if !baggage.Status.CanTransitionTo(status) {
		return nil, invalid(ErrInvalidTransition, fmt.Sprintf("%s -> %s", baggage.Status, status))
	}

	if err := s.baggageRepo.UpdateStatus(ctx, baggage.ID, status); err != nil {
		return nil, err
	}
	baggage.Status = status
	s.log.Info("baggage status changed", "tag", baggage.TagNumber, "status", status)
	return baggage, nil
}
