package domain

import "errors"

// Sentinel errors returned by repo and service functions. Callers test for
// them with errors.Is; the handler layer maps each one to an HTTP status.
var (
	// ErrNotFound is returned when the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation is returned when input fails business rule validation
	// (e.g. missing required field, negative amount).
	ErrValidation = errors.New("validation error")

	// ErrDuplicate is returned when an insert or update violates a unique
	// constraint (card number, passenger email, fare rule route+type).
	ErrDuplicate = errors.New("already exists")

	// ErrCardNotEligible is returned when a tap-in or top-up is attempted
	// against a card whose status forbids it (Blocked or Inactive).
	ErrCardNotEligible = errors.New("card not eligible")

	// ErrTripAlreadyOpen is returned when a tap-in finds an unfinished trip
	// on the same card. One open trip per card is enforced.
	ErrTripAlreadyOpen = errors.New("trip already open for card")

	// ErrTripAlreadyClosed is returned when settlement is attempted on a
	// trip that has already been settled. The first settlement wins; a
	// repeat never debits the card a second time.
	ErrTripAlreadyClosed = errors.New("trip already closed")

	// ErrFareNotFound is returned when no fare rule matches the
	// (entry station, exit station, fare type) triple. No looser lookup is
	// attempted.
	ErrFareNotFound = errors.New("no fare rule for route")

	// ErrInsufficientBalance is returned when a debit would take the card
	// balance below zero. Overdraft is not allowed.
	ErrInsufficientBalance = errors.New("insufficient balance")
)
