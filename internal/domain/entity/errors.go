package entity

import "errors"

// Failure taxonomy surfaced by the account and booking managers. Callers
// match with errors.Is; wrapped variants carry per-call detail.
var (
	// ErrAuthenticationFailed deliberately does not distinguish a missing
	// user from a wrong password.
	ErrAuthenticationFailed = errors.New("Bad Username or Password")

	// ErrAccountCreationFailed covers duplicate usernames and transport
	// failures alike; the cause is not exposed to the caller.
	ErrAccountCreationFailed = errors.New("There was an error creating account")

	// ErrInvalidPayload is returned when a booking request carries no
	// flights sequence at all.
	ErrInvalidPayload = errors.New("No flights in payload")

	// ErrInvalidFlightPayload is returned for a malformed flight inside an
	// otherwise well-formed flights sequence.
	ErrInvalidFlightPayload = errors.New("malformed flight inside flights payload")

	// ErrUserNotFound is returned when booking against a user that was
	// never created.
	ErrUserNotFound = errors.New("user does not exist")

	// ErrDataConsistency reports a flight id in a user's list that no
	// longer resolves to a flight document.
	ErrDataConsistency = errors.New("data consistency error")
)
