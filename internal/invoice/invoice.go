// Package invoice renders ticket invoices as PDF documents.
package invoice

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Eursukkul/airline-ops/internal/models"
	"github.com/go-pdf/fpdf"
)

type Invoice struct {
	Brand          string
	PNR            string
	PassengerName  string
	PassportNumber string
	Email          string
	FlightNumber   string
	Route          string
	Departure      string
	Gate           string
	SeatNumber     string
	Fare           float64
	BaggageFee     float64
	IssuedAt       time.Time
}

func (i Invoice) Total() float64 {
	return i.Fare + i.BaggageFee
}

// FromTicket flattens a ticket with its passenger, flight and baggage loaded.
func FromTicket(brand string, t *models.Ticket) (Invoice, error) {
	if t.Passenger == nil || t.Flight == nil {
		return Invoice{}, errors.New("ticket is missing passenger or flight details")
	}

	inv := Invoice{
		Brand:          brand,
		PNR:            t.PNR,
		PassengerName:  t.Passenger.FullName(),
		PassportNumber: t.Passenger.PassportNumber,
		Email:          t.Passenger.Email,
		FlightNumber:   t.Flight.FlightNumber,
		Route:          t.Flight.OriginCode() + " - " + t.Flight.DestinationCode(),
		Departure:      "N/A",
		Gate:           t.Flight.Gate,
		SeatNumber:     t.SeatNumber,
		Fare:           t.Price,
		IssuedAt:       t.CreatedAt,
	}
	if t.Flight.DepartureTime != nil {
		inv.Departure = t.Flight.DepartureTime.UTC().Format("02 Jan 2006 15:04 UTC")
	}
	if t.Baggage != nil {
		inv.BaggageFee = t.Baggage.ExtraFee
	}
	return inv, nil
}

// Filename is the attachment name offered to the browser, e.g. PyFly_Invoice_AB12CD.pdf.
func Filename(brand, pnr string) string {
	brand = strings.Join(strings.Fields(brand), "")
	if brand == "" {
		brand = "Airline"
	}
	return fmt.Sprintf("%s_Invoice_%s.pdf", brand, pnr)
}

// Render writes inv as a one-page A4 PDF.
func Render(w io.Writer, inv Invoice) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(inv.Brand+" invoice "+inv.PNR, true)
	pdf.SetAuthor(inv.Brand, true)
	if !inv.IssuedAt.IsZero() {
		pdf.SetCreationDate(inv.IssuedAt)
	}
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, tr(inv.Brand), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 7, "Ticket invoice", "", 1, "L", false, 0, "")
	pdf.Ln(6)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetFillColor(230, 236, 245)
		pdf.CellFormat(0, 8, title, "", 1, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 11)
	}
	row := func(label, value string) {
		pdf.CellFormat(55, 7, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, tr(value), "", 1, "L", false, 0, "")
	}

	section("Reservation")
	row("PNR", inv.PNR)
	if !inv.IssuedAt.IsZero() {
		row("Issued", inv.IssuedAt.UTC().Format("02 Jan 2006"))
	}
	pdf.Ln(3)

	section("Passenger")
	row("Name", inv.PassengerName)
	row("Passport", inv.PassportNumber)
	row("Email", inv.Email)
	pdf.Ln(3)

	section("Flight")
	row("Flight", inv.FlightNumber)
	row("Route", inv.Route)
	row("Departure", inv.Departure)
	row("Gate", inv.Gate)
	row("Seat", inv.SeatNumber)
	pdf.Ln(3)

	section("Charges")
	row("Fare", money(inv.Fare))
	row("Baggage surcharge", money(inv.BaggageFee))
	pdf.SetFont("Helvetica", "B", 11)
	row("Total", money(inv.Total()))

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render invoice: %w", err)
	}
	return pdf.Output(w)
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
