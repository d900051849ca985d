package service

import (
	"errors"

	"github.com/Eursukkul/airline-ops/internal/apperr"
	"gorm.io/gorm"
)

var (
	ErrAirportNotFound   = apperr.New(apperr.KindNotFound, "airport not found")
	ErrAircraftNotFound  = apperr.New(apperr.KindNotFound, "aircraft not found")
	ErrPersonnelNotFound = apperr.New(apperr.KindNotFound, "personnel not found")
	ErrFlightNotFound    = apperr.New(apperr.KindNotFound, "flight not found")
	ErrPassengerNotFound = apperr.New(apperr.KindNotFound, "passenger not found")
	ErrTicketNotFound    = apperr.New(apperr.KindNotFound, "ticket not found")
	ErrBaggageNotFound   = apperr.New(apperr.KindNotFound, "baggage not found")

	ErrInvalidInput          = apperr.New(apperr.KindValidation, "invalid input")
	ErrInvalidSearch         = apperr.New(apperr.KindValidation, "invalid search parameters")
	ErrInvalidPassengerCount = apperr.New(apperr.KindValidation, "invalid passenger count")
	ErrInvalidWeight         = apperr.New(apperr.KindValidation, "invalid baggage weight")
	ErrInvalidStatus         = apperr.New(apperr.KindValidation, "invalid status")
	ErrInvalidTransition     = apperr.New(apperr.KindValidation, "status transition not allowed")
	ErrFlightNotBookable     = apperr.New(apperr.KindValidation, "flight is not open for booking")

	ErrDuplicate    = apperr.New(apperr.KindConflict, "record already exists")
	ErrFlightFull   = apperr.New(apperr.KindConflict, "not enough free seats on this flight")
	ErrSeatConflict = apperr.New(apperr.KindConflict, "seat assignment conflicted with another booking, please retry")
	ErrPNRExhausted = apperr.New(apperr.KindConflict, "could not allocate a unique reservation code")
	ErrTagExhausted = apperr.New(apperr.KindConflict, "could not allocate a unique baggage tag")

	ErrInvalidLogin        = apperr.New(apperr.KindUnauthorized, "email or passport number does not match")
	ErrUnauthorizedSession = apperr.New(apperr.KindUnauthorized, "sign in to continue")
	ErrInvoiceRender       = apperr.New(apperr.KindRendering, "could not generate the invoice")
)

// notFoundOr maps gorm's missing-row error to the given sentinel.
func notFoundOr(err error, sentinel *apperr.Error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

// writeErr maps unique-constraint violations to ErrDuplicate.
func writeErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Wrap(ErrDuplicate, err)
	}
	return err
}

func invalid(sentinel *apperr.Error, reason string) error {
	return apperr.Wrap(sentinel, errors.New(reason))
}
