package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Eursukkul/airline-ops/config"
	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/Eursukkul/airline-ops/internal/server"
	"github.com/Eursukkul/airline-ops/internal/service"
	"github.com/Eursukkul/airline-ops/pkg/database"
	"github.com/Eursukkul/airline-ops/pkg/logger"
	"github.com/Eursukkul/airline-ops/pkg/metrics"
	"github.com/spf13/cobra"
)

const (
	demoEmail    = "demo@pyfly.test"
	demoPassport = "P0000001"
)

type demoFlight struct {
	number   string
	from, to string
	depart   time.Duration // offset from midnight of the seed day
	block    time.Duration // zero leaves the arrival unset
	price    float64
	tail     string
}

var (
	demoAirports = []models.Airport{
		{Code: "IST", Name: "Istanbul Airport", City: "Istanbul"},
		{Code: "ESB", Name: "Esenboga Airport", City: "Ankara"},
		{Code: "AYT", Name: "Antalya Airport", City: "Antalya"},
		{Code: "ADB", Name: "Adnan Menderes Airport", City: "Izmir"},
	}
	demoAircraft = []models.Aircraft{
		{TailNumber: "TC-PYA", Model: "Airbus A320neo", CapacityEconomy: 168, CapacityBusiness: 12},
		{TailNumber: "TC-PYB", Model: "Boeing 737-800", CapacityEconomy: 174, CapacityBusiness: 15},
	}
	demoCrew = []models.Personnel{
		{FirstName: "Selin", LastName: "Aydin", Role: models.RolePilot},
		{FirstName: "Mert", LastName: "Demir", Role: models.RolePilot},
		{FirstName: "Ece", LastName: "Yilmaz", Role: models.RoleCabinCrew},
		{FirstName: "Can", LastName: "Sahin", Role: models.RoleOperations},
	}
	demoFlights = []demoFlight{
		{"PY101", "IST", "ESB", 8 * time.Hour, 75 * time.Minute, 1200, "TC-PYA"},
		{"PY102", "ESB", "IST", 11 * time.Hour, 80 * time.Minute, 1150, "TC-PYA"},
		{"PY201", "IST", "AYT", 9*time.Hour + 30*time.Minute, 90 * time.Minute, 1450, "TC-PYB"},
		{"PY301", "IST", "ADB", 14 * time.Hour, 70 * time.Minute, 980, "TC-PYB"},
		{"PY302", "ADB", "IST", 18 * time.Hour, 0, 990, ""},
	}
)

type seedResult struct {
	Airports  int
	Aircraft  int
	Crew      int
	Flights   int
	Passenger *models.Passenger
}

// SeedCmd loads a small demo network. Running it again only adds what is missing.
func SeedCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo airports, aircraft, crew, flights and a passenger",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			log := logger.New(cfg.LogLevel)
			defer log.Sync()

			db, err := openDB(cfg, log)
			if err != nil {
				return err
			}
			defer database.Close(db)

			svc := server.NewServices(db, cfg, nil, nil, metrics.New(), log)
			day := time.Now().UTC().Truncate(24*time.Hour).AddDate(0, 0, days)

			res, err := seedDemo(cmd.Context(), svc, day)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d airports, %d aircraft, %d crew, %d flights on %s\n",
				res.Airports, res.Aircraft, res.Crew, res.Flights, day.Format(time.DateOnly))
			fmt.Fprintf(cmd.OutOrStdout(), "Demo passenger: %s / %s\n", demoEmail, demoPassport)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days-ahead", 1, "schedule the demo flights this many days from today")
	return cmd
}

func seedDemo(ctx context.Context, svc server.Services, day time.Time) (seedResult, error) {
	var res seedResult

	for _, a := range demoAirports {
		airport := a
		if err := svc.Catalog.CreateAirport(ctx, &airport); err != nil {
			if !errors.Is(err, service.ErrDuplicate) {
				return res, fmt.Errorf("seed airport %s: %w", a.Code, err)
			}
			continue
		}
		res.Airports++
	}
	airports, err := svc.Catalog.ListAirports(ctx)
	if err != nil {
		return res, err
	}
	airportIDs := make(map[string]uint, len(airports))
	for _, a := range airports {
		airportIDs[a.Code] = a.ID
	}

	for _, a := range demoAircraft {
		aircraft := a
		if err := svc.Catalog.CreateAircraft(ctx, &aircraft); err != nil {
			if !errors.Is(err, service.ErrDuplicate) {
				return res, fmt.Errorf("seed aircraft %s: %w", a.TailNumber, err)
			}
			continue
		}
		res.Aircraft++
	}
	fleet, err := svc.Catalog.ListAircraft(ctx)
	if err != nil {
		return res, err
	}
	aircraftIDs := make(map[string]uint, len(fleet))
	for _, a := range fleet {
		aircraftIDs[a.TailNumber] = a.ID
	}

	// Personnel has no natural key, so crew is only added to an empty roster.
	crew, err := svc.Catalog.ListPersonnel(ctx, nil)
	if err != nil {
		return res, err
	}
	if len(crew) == 0 {
		for _, p := range demoCrew {
			member := p
			if err := svc.Catalog.CreatePersonnel(ctx, &member); err != nil {
				return res, fmt.Errorf("seed crew %s: %w", p.LastName, err)
			}
			crew = append(crew, member)
			res.Crew++
		}
	}
	crewIDs := make([]uint, 0, len(crew))
	for _, p := range crew {
		crewIDs = append(crewIDs, p.ID)
	}

	for _, df := range demoFlights {
		in := service.CreateFlightInput{
			FlightNumber:  df.number,
			OriginID:      airportIDs[df.from],
			DestinationID: airportIDs[df.to],
			Price:         df.price,
		}
		departure := day.Add(df.depart)
		in.DepartureTime = &departure
		if df.block > 0 {
			arrival := departure.Add(df.block)
			in.ArrivalTime = &arrival
		}
		if id, ok := aircraftIDs[df.tail]; ok {
			in.AircraftID = &id
		}

		flight, err := svc.Catalog.CreateFlight(ctx, in)
		if err != nil {
			if errors.Is(err, service.ErrDuplicate) {
				continue
			}
			return res, fmt.Errorf("seed flight %s: %w", df.number, err)
		}
		if _, err := svc.Catalog.AssignCrew(ctx, flight.ID, crewIDs); err != nil {
			return res, fmt.Errorf("assign crew to %s: %w", df.number, err)
		}
		res.Flights++
	}

	session, err := svc.Sessions.Register(ctx, &models.Passenger{
		FirstName:      "Demo",
		LastName:       "Passenger",
		Email:          demoEmail,
		PassportNumber: demoPassport,
	})
	switch {
	case err == nil:
		res.Passenger = session.Passenger
	case errors.Is(err, service.ErrDuplicate):
	default:
		return res, fmt.Errorf("seed passenger: %w", err)
	}

	return res, nil
}
