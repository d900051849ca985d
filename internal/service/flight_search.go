package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/internal/repository"
	"github.com/Eursukkul/airline-ops/pkg/logger"
	"github.com/Eursukkul/airline-ops/pkg/metrics"
)

type SortKey string

const (
	SortByPrice     SortKey = "price"
	SortByDeparture SortKey = "departure"
	SortByDuration  SortKey = "duration"
)

// ParseSortKey falls back to price for unknown or empty keys.
func ParseSortKey(raw string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(raw))) {
	case SortByDeparture:
		return SortByDeparture
	case SortByDuration:
		return SortByDuration
	default:
		return SortByPrice
	}
}

// SearchParams are the raw, untrusted query-string values of a search.
type SearchParams struct {
	Origin        string
	Destination   string
	DepartureDate string
	MaxPrice      string
	Sort          string
	Passengers    string
}

type SearchQuery struct {
	OriginID      *uint
	DestinationID *uint
	DepartureDate *time.Time
	MaxPrice      *float64
	Sort          SortKey
	Passengers    int
}

type FlightResult struct {
	Flight     models.Flight
	TotalPrice float64
}

const departureDateLayout = "2006-01-02"

// ParseSearchParams validates the query string. Blank values are no-op filters;
// passengers defaults to 1 and must lie in [1, maxPassengers].
func ParseSearchParams(p SearchParams, maxPassengers int) (SearchQuery, error) {
	q := SearchQuery{Sort: ParseSortKey(p.Sort), Passengers: 1}

	var err error
	if q.OriginID, err = parseOptionalID(p.Origin, "origin"); err != nil {
		return q, err
	}
	if q.DestinationID, err = parseOptionalID(p.Destination, "destination"); err != nil {
		return q, err
	}

	if s := strings.TrimSpace(p.DepartureDate); s != "" {
		d, err := time.ParseInLocation(departureDateLayout, s, time.UTC)
		if err != nil {
			return q, invalid(ErrInvalidSearch, "departure_date must be YYYY-MM-DD")
		}
		q.DepartureDate = &d
	}

	if s := strings.TrimSpace(p.MaxPrice); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 || v != v {
			return q, invalid(ErrInvalidSearch, "price must be a non-negative number")
		}
		q.MaxPrice = &v
	}

	if s := strings.TrimSpace(p.Passengers); s != "" {
		n, err := ParsePassengerCount(s, maxPassengers)
		if err != nil {
			return q, err
		}
		q.Passengers = n
	}
	return q, nil
}

// ParsePassengerCount accepts an integer in [1, max].
func ParsePassengerCount(raw string, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > max {
		return 0, invalid(ErrInvalidPassengerCount, fmt.Sprintf("passengers must be between 1 and %d", max))
	}
	return n, nil
}

func parseOptionalID(raw, field string) (*uint, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return nil, invalid(ErrInvalidSearch, field+" must be an airport id")
	}
	id := uint(v)
	return &id, nil
}

func (q SearchQuery) filter() repository.FlightFilter {
	f := repository.FlightFilter{
		OriginID:      q.OriginID,
		DestinationID: q.DestinationID,
		MaxPrice:      q.MaxPrice,
	}
	if q.DepartureDate != nil {
		from := *q.DepartureDate
		before := from.Add(24 * time.Hour)
		f.DepartsFrom = &from
		f.DepartsBefore = &before
	}
	return f
}

func (q SearchQuery) cacheKey() string {
	var b strings.Builder
	b.WriteString(searchCachePrefix)
	if q.OriginID != nil {
		fmt.Fprintf(&b, "o=%d;", *q.OriginID)
	}
	if q.DestinationID != nil {
		fmt.Fprintf(&b, "d=%d;", *q.DestinationID)
	}
	if q.DepartureDate != nil {
		fmt.Fprintf(&b, "t=%s;", q.DepartureDate.Format(departureDateLayout))
	}
	if q.MaxPrice != nil {
		fmt.Fprintf(&b, "p=%g;", *q.MaxPrice)
	}
	fmt.Fprintf(&b, "s=%s", q.Sort)
	return b.String()
}

// SortFlights orders flights ascending by key, ties broken by id. Flights
// without a departure (departure sort) or without a computable duration
// (duration sort) go last.
func SortFlights(flights []models.Flight, key SortKey) {
	slices.SortStableFunc(flights, func(a, b models.Flight) int {
		var c int
		switch key {
		case SortByDeparture:
			c = compareMissingLast(a.DepartureTime != nil, b.DepartureTime != nil, func() int {
				return a.DepartureTime.Compare(*b.DepartureTime)
			})
		case SortByDuration:
			da, okA := a.Duration()
			db, okB := b.Duration()
			c = compareMissingLast(okA, okB, func() int { return cmp.Compare(da, db) })
		default:
			c = cmp.Compare(a.Price, b.Price)
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
}

func compareMissingLast(hasA, hasB bool, both func() int) int {
	switch {
	case hasA && hasB:
		return both()
	case hasA:
		return -1
	case hasB:
		return 1
	default:
		return 0
	}
}

type SearchService interface {
	Search(ctx context.Context, q SearchQuery) ([]FlightResult, error)
}

type searchService struct {
	flightRepo repository.FlightRepository
	cache      SearchCache
	cacheTTL   time.Duration
	metrics    *metrics.Metrics
	log        logger.Logger
}

func NewSearchService(flightRepo repository.FlightRepository, cache SearchCache, cacheTTL time.Duration, m *metrics.Metrics, log logger.Logger) SearchService {
	return &searchService{flightRepo: flightRepo, cache: cache, cacheTTL: cacheTTL, metrics: m, log: log}
}

func (s *searchService) Search(ctx context.Context, q SearchQuery) ([]FlightResult, error) {
	start := time.Now()
	defer func() { s.metrics.SearchDuration.Observe(time.Since(start).Seconds()) }()

	if q.Passengers < 1 {
		q.Passengers = 1
	}

	flights, err := s.loadFlights(ctx, q)
	if err != nil {
		s.metrics.ErrorsCount.WithLabelValues("search_flights").Inc()
		return nil, err
	}

	results := make([]FlightResult, len(flights))
	for i, f := range flights {
		results[i] = FlightResult{Flight: f, TotalPrice: f.Price * float64(q.Passengers)}
	}
	return results, nil
}

func (s *searchService) loadFlights(ctx context.Context, q SearchQuery) ([]models.Flight, error) {
	key := q.cacheKey()
	if s.cache != nil {
		var cached []models.Flight
		if s.cache.Get(ctx, key, &cached) {
			return cached, nil
		}
	}

	flights, err := s.flightRepo.Search(ctx, q.filter())
	if err != nil {
		return nil, fmt.Errorf("search flights: %w", err)
	}
	SortFlights(flights, q.Sort)

	if s.cache != nil {
		s.cache.Set(ctx, key, flights, s.cacheTTL)
		s.log.Debug("cached flight search", "key", key, "count", len(flights))
	}
	return flights, nil
}
