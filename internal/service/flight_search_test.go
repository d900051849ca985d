package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Eursukkul/airline-ops/internal/apperr"
	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flightNumbers(results []FlightResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Flight.FlightNumber
	}
	return out
}

func TestParseSearchParams_Defaults(t *testing.T) {
	q, err := ParseSearchParams(SearchParams{}, 9)

	require.NoError(t, err)
	assert.Nil(t, q.OriginID)
	assert.Nil(t, q.DepartureDate)
	assert.Equal(t, SortByPrice, q.Sort)
	assert.Equal(t, 1, q.Passengers)
}

func TestParseSearchParams_Valid(t *testing.T) {
	q, err := ParseSearchParams(SearchParams{
		Origin:        "3",
		DepartureDate: "2026-03-01",
		MaxPrice:      "250.5",
		Sort:          "Duration",
		Passengers:    "4",
	}, 9)

	require.NoError(t, err)
	assert.Equal(t, uint(3), *q.OriginID)
	assert.Equal(t, at(2026, 3, 1, 0, 0), *q.DepartureDate)
	assert.Equal(t, 250.5, *q.MaxPrice)
	assert.Equal(t, SortByDuration, q.Sort)
	assert.Equal(t, 4, q.Passengers)
}

func TestParseSearchParams_Invalid(t *testing.T) {
	tests := []struct {
		name string
		p    SearchParams
		want error
	}{
		{"bad price", SearchParams{MaxPrice: "cheap"}, ErrInvalidSearch},
		{"negative price", SearchParams{MaxPrice: "-1"}, ErrInvalidSearch},
		{"bad date", SearchParams{DepartureDate: "01/03/2026"}, ErrInvalidSearch},
		{"bad origin", SearchParams{Origin: "IST"}, ErrInvalidSearch},
		{"zero passengers", SearchParams{Passengers: "0"}, ErrInvalidPassengerCount},
		{"too many passengers", SearchParams{Passengers: "10"}, ErrInvalidPassengerCount},
		{"non-numeric passengers", SearchParams{Passengers: "two"}, ErrInvalidPassengerCount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSearchParams(tt.p, 9)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, apperr.ErrValidation)
		})
	}
}

func TestParseSortKey_UnknownFallsBackToPrice(t *testing.T) {
	assert.Equal(t, SortByPrice, ParseSortKey("airline"))
	assert.Equal(t, SortByDeparture, ParseSortKey("departure"))
}

func TestSortFlights_MissingValuesLast(t *testing.T) {
	dep1 := at(2026, 3, 1, 6, 0)
	dep2 := at(2026, 3, 1, 9, 0)
	arr1 := dep1.Add(3 * time.Hour)
	arr2 := dep2.Add(time.Hour)

	flights := []models.Flight{
		{ID: 1, Price: 90},
		{ID: 2, Price: 50, DepartureTime: &dep2, ArrivalTime: &arr2},
		{ID: 3, Price: 50, DepartureTime: &dep1, ArrivalTime: &arr1},
		{ID: 4, Price: 70, DepartureTime: &dep1},
	}
	ids := func() []uint {
		out := make([]uint, len(flights))
		for i, f := range flights {
			out[i] = f.ID
		}
		return out
	}

	SortFlights(flights, SortByPrice)
	assert.Equal(t, []uint{2, 3, 4, 1}, ids())

	SortFlights(flights, SortByDeparture)
	assert.Equal(t, []uint{3, 4, 2, 1}, ids())

	SortFlights(flights, SortByDuration)
	assert.Equal(t, []uint{2, 3, 1, 4}, ids())
}

func TestSearch_FiltersAndTotals(t *testing.T) {
	f := newFixture(t)
	f.addFlight(t, "PY202", f.ist.ID, f.ayt.ID, 80, at(2026, 3, 1, 12, 0), 90*time.Minute)
	f.addFlight(t, "PY303", f.esb.ID, f.ist.ID, 300, at(2026, 3, 2, 7, 0), time.Hour)
	f.addFlight(t, "PY404", f.ist.ID, f.esb.ID, 60, time.Time{}, 0)

	svc := NewSearchService(f.flights, nil, time.Minute, f.metrics, f.log)
	ctx := context.Background()

	all, err := svc.Search(ctx, SearchQuery{Sort: SortByPrice, Passengers: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"PY404", "PY202", "PY101", "PY303"}, flightNumbers(all))

	origin := f.ist.ID
	byOrigin, err := svc.Search(ctx, SearchQuery{OriginID: &origin, Sort: SortByDeparture, Passengers: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"PY101", "PY202", "PY404"}, flightNumbers(byOrigin))
	assert.Equal(t, 300.0, byOrigin[0].TotalPrice)

	day := at(2026, 3, 2, 0, 0)
	byDate, err := svc.Search(ctx, SearchQuery{DepartureDate: &day, Passengers: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"PY303"}, flightNumbers(byDate))

	ceiling := 100.0
	dest := f.esb.ID
	narrowed, err := svc.Search(ctx, SearchQuery{OriginID: &origin, DestinationID: &dest, MaxPrice: &ceiling, Passengers: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"PY404", "PY101"}, flightNumbers(narrowed))
	for _, r := range narrowed {
		assert.LessOrEqual(t, r.Flight.Price, ceiling)
	}
}

func TestSearch_UsesCache(t *testing.T) {
	f := newFixture(t)
	c := &mockCache{}
	svc := NewSearchService(f.flights, c, time.Minute, f.metrics, f.log)

	_, err := svc.Search(context.Background(), SearchQuery{Sort: SortByPrice, Passengers: 1})
	require.NoError(t, err)
	require.Len(t, c.setKeys, 1)
	assert.Equal(t, "flights:search:s=price", c.setKeys[0])

	c.getFn = func(key string, dest any) bool {
		*(dest.(*[]models.Flight)) = []models.Flight{{ID: 42, FlightNumber: "CACHED", Price: 10}}
		return true
	}
	results, err := svc.Search(context.Background(), SearchQuery{Sort: SortByPrice, Passengers: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"CACHED"}, flightNumbers(results))
	assert.Equal(t, 20.0, results[0].TotalPrice)
	assert.Len(t, c.setKeys, 1)
}

func TestSearch_RepoErrorCounted(t *testing.T) {
	f := newFixture(t)
	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	svc := NewSearchService(f.flights, nil, time.Minute, f.metrics, f.log)
	_, err = svc.Search(context.Background(), SearchQuery{Passengers: 1})

	assert.Error(t, err)
	assert.False(t, errors.Is(err, apperr.ErrValidation))
}
