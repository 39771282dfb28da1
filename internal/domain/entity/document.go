package entity

import "fmt"

// Document is a schemaless record as stored in the document store.
type Document map[string]interface{}

const (
	// TypeUser marks a document in the users namespace.
	TypeUser = "user"

	// ProvenanceMarker is stamped on every flight document booked by this service.
	ProvenanceMarker = "travelbook-service"

	FieldType     = "type"
	FieldName     = "name"
	FieldPassword = "password"
	FieldFlights  = "flights"
	FieldBookedOn = "bookedon"
)

// requiredFlightFields must all be present before a flight can be booked.
var requiredFlightFields = []string{"name", "date", "sourceairport", "destinationairport"}

// UserDocKey returns the document key for a username.
func UserDocKey(username string) string {
	return "user::" + username
}

// FlightDocKey returns the document key for a flight id.
func FlightDocKey(id string) string {
	return "flight::" + id
}

// NewUserDocument builds the document written at account creation.
// The name field is immutable after creation.
func NewUserDocument(username, passwordHash string) Document {
	return Document{
		FieldType:     TypeUser,
		FieldName:     username,
		FieldPassword: passwordHash,
	}
}

// ValidateFlight checks that a flight payload is a structured object
// carrying all mandatory fields.
func ValidateFlight(flight Document) error {
	if flight == nil {
		return fmt.Errorf("%w: each flight must be a non-null object", ErrInvalidFlightPayload)
	}
	for _, field := range requiredFlightFields {
		if _, ok := flight[field]; !ok {
			return fmt.Errorf("%w: missing field %q", ErrInvalidFlightPayload, field)
		}
	}
	return nil
}
