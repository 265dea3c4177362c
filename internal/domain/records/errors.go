package domain

import (
	"errors"
	"fmt"
)

// Request-shape errors raised before any write is attempted.
var (
	ErrNoUpdates     = errors.New("no updates provided")
	ErrNoCriteria    = errors.New("no search criteria provided")
	ErrSectionFull   = errors.New("section is full")
	ErrSectionClosed = errors.New("section is not active")
)

// InvalidEmailError reports an email that does not match local@domain.tld.
type InvalidEmailError struct {
	Email string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("email '%s' is not a valid address", e.Email)
}

// DateFormatError reports a date outside YYYY-MM-DD or its calendar bounds.
type DateFormatError struct {
	Date string
}

func (e *DateFormatError) Error() string {
	return fmt.Sprintf("date '%s' is not in YYYY-MM-DD format or is invalid", e.Date)
}

// TimeslotError reports a malformed timeslot string.
type TimeslotError struct {
	Slot string
}

func (e *TimeslotError) Error() string {
	return fmt.Sprintf("timeslot '%s' is not of correct format, example of an acceptable timeslot: TTh 14:00-15:15", e.Slot)
}

// FieldValueError reports a value outside the valid domain of a field.
type FieldValueError struct {
	Field string
	Value any
}

func (e *FieldValueError) Error() string {
	return fmt.Sprintf("the value '%v' for field '%s' is not valid", e.Value, e.Field)
}

// UnknownFieldError rejects an update set containing field names outside the
// entity's whitelist. The whole update is refused; nothing is written.
type UnknownFieldError struct {
	Entity string
	Fields []string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("invalid field names for %s update: %v", e.Entity, e.Fields)
}

// NotFoundError reports a referenced or targeted record that does not exist.
type NotFoundError struct {
	Entity string
	ID     any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with identifier '%v' not found", e.Entity, e.ID)
}

// DatabaseError wraps a failure reported by the storage collaborator.
type DatabaseError struct {
	Err error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error: %v", e.Err)
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

// WrapDB wraps a datastore failure, passing nil through unchanged.
func WrapDB(err error) error {
	if err == nil {
		return nil
	}
	return &DatabaseError{Err: err}
}
