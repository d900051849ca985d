package service

import (
	"context"
	"testing"
	"time"

	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/pkg/rabbitmq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAirport(t *testing.T) {
	f := newFixture(t)
	svc := f.catalogService(nil, nil)
	ctx := context.Background()

	a := &models.Airport{Code: " adb ", Name: "Adnan Menderes", City: "Izmir"}
	require.NoError(t, svc.CreateAirport(ctx, a))
	assert.Equal(t, "ADB", a.Code)

	err := svc.CreateAirport(ctx, &models.Airport{Code: "ADB", Name: "Dup", City: "Izmir"})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = svc.CreateAirport(ctx, &models.Airport{Code: "IZMR", Name: "x", City: "y"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	airports, err := svc.ListAirports(ctx)
	require.NoError(t, err)
	cities := make([]string, len(airports))
	for i, a := range airports {
		cities[i] = a.City
	}
	assert.Equal(t, []string{"Ankara", "Antalya", "Istanbul", "Izmir"}, cities)
}

func TestCreatePersonnel_Role(t *testing.T) {
	f := newFixture(t)
	svc := f.catalogService(nil, nil)
	ctx := context.Background()

	require.NoError(t, svc.CreatePersonnel(ctx, &models.Personnel{FirstName: "Ali", LastName: "Can", Role: "pilot"}))
	err := svc.CreatePersonnel(ctx, &models.Personnel{FirstName: "Ali", LastName: "Can", Role: "CAPTAIN"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	role := models.RolePilot
	pilots, err := svc.ListPersonnel(ctx, &role)
	require.NoError(t, err)
	assert.Len(t, pilots, 1)
}

func TestCreateFlight(t *testing.T) {
	f := newFixture(t)
	c := &mockCache{}
	svc := f.catalogService(nil, c)
	ctx := context.Background()
	dep := at(2026, 4, 1, 10, 0)
	arr := dep.Add(2 * time.Hour)

	flight, err := svc.CreateFlight(ctx, CreateFlightInput{
		FlightNumber:  "py500",
		OriginID:      f.ist.ID,
		DestinationID: f.ayt.ID,
		Price:         120,
		DepartureTime: &dep,
		ArrivalTime:   &arr,
	})

	require.NoError(t, err)
	assert.Equal(t, "PY500", flight.FlightNumber)
	assert.Equal(t, models.DefaultGate, flight.Gate)
	assert.Equal(t, models.FlightScheduled, flight.Status)
	assert.Equal(t, "AYT", flight.DestinationCode())
	assert.Equal(t, []string{"flights:search:*"}, c.delPatterns)
}

func TestCreateFlight_Validation(t *testing.T) {
	f := newFixture(t)
	svc := f.catalogService(nil, nil)
	ctx := context.Background()
	dep := at(2026, 4, 1, 10, 0)
	before := dep.Add(-time.Hour)

	_, err := svc.CreateFlight(ctx, CreateFlightInput{FlightNumber: "X1", OriginID: f.ist.ID, DestinationID: f.ist.ID})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateFlight(ctx, CreateFlightInput{FlightNumber: "X1", OriginID: f.ist.ID, DestinationID: f.esb.ID, DepartureTime: &dep, ArrivalTime: &before})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateFlight(ctx, CreateFlightInput{FlightNumber: "X1", OriginID: f.ist.ID, DestinationID: 999})
	assert.ErrorIs(t, err, ErrAirportNotFound)

	_, err = svc.CreateFlight(ctx, CreateFlightInput{FlightNumber: "PY101", OriginID: f.ist.ID, DestinationID: f.esb.ID})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestUpdateFlightStatus(t *testing.T) {
	f := newFixture(t)
	pub := &mockPublisher{}
	c := &mockCache{}
	svc := f.catalogService(pub, c)
	ctx := context.Background()

	flight, err := svc.UpdateFlightStatus(ctx, f.flight.ID, " dly ")
	require.NoError(t, err)
	assert.Equal(t, models.FlightDelayed, flight.Status)
	require.Len(t, pub.events, 1)
	assert.Equal(t, rabbitmq.KeyFlightStatusChanged, pub.events[0].key)
	ev := pub.events[0].payload.(FlightStatusEvent)
	assert.Equal(t, models.FlightScheduled, ev.From)
	assert.Equal(t, models.FlightDelayed, ev.To)
	assert.Len(t, c.delPatterns, 1)

	_, err = svc.UpdateFlightStatusByNumber(ctx, "py101", models.FlightCancelled)
	require.NoError(t, err)

	_, err = svc.UpdateFlightStatus(ctx, f.flight.ID, models.FlightScheduled)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.UpdateFlightStatus(ctx, f.flight.ID, "BOARDING")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateFlightStatusByNumber(ctx, "ZZ000", models.FlightDelayed)
	assert.ErrorIs(t, err, ErrFlightNotFound)
}

func TestAssignCrew(t *testing.T) {
	f := newFixture(t)
	svc := f.catalogService(nil, nil)
	ctx := context.Background()

	pilot := &models.Personnel{FirstName: "Ece", LastName: "Ak", Role: models.RolePilot}
	crew := &models.Personnel{FirstName: "Mert", LastName: "Oz", Role: models.RoleCabinCrew}
	require.NoError(t, svc.CreatePersonnel(ctx, pilot))
	require.NoError(t, svc.CreatePersonnel(ctx, crew))

	flight, err := svc.AssignCrew(ctx, f.flight.ID, []uint{pilot.ID, crew.ID})
	require.NoError(t, err)
	assert.Len(t, flight.Crew, 2)

	flight, err = svc.AssignCrew(ctx, f.flight.ID, []uint{pilot.ID})
	require.NoError(t, err)
	assert.Len(t, flight.Crew, 1)

	_, err = svc.AssignCrew(ctx, f.flight.ID, []uint{pilot.ID, 999})
	assert.ErrorIs(t, err, ErrPersonnelNotFound)
}
