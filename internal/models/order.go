package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of an order.
type Status string

// Order statuses
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{
	StatusPending,
	StatusProcessing,
	StatusShipped,
	StatusDelivered,
	StatusCancelled,
}

var transitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  nil,
	StatusCancelled:  nil,
}

// ErrInvalidTransition is matched by every TransitionError.
var ErrInvalidTransition = errors.New("invalid status transition")

// TransitionError describes a status change the lifecycle does not allow.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// ParseStatus maps a user supplied string onto a known Status.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(s)))
	if !status.Valid() {
		return "", Invalid("status", "unknown status %q", s)
	}
	return status, nil
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// CanTransition reports whether the lifecycle allows moving from s to to.
func (s Status) CanTransition(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Next returns the following status on the fulfilment path
// (pending, processing, shipped, delivered).
func (s Status) Next() (Status, bool) {
	switch s {
	case StatusPending:
		return StatusProcessing, true
	case StatusProcessing:
		return StatusShipped, true
	case StatusShipped:
		return StatusDelivered, true
	default:
		return "", false
	}
}

// Order is a committed checkout. Items and Total are fixed when the order is
// created; only Status and UpdatedAt change afterwards.
type Order struct {
	ID            string      `json:"id"`
	Date          time.Time   `json:"date"`
	Items         []OrderItem `json:"items"`
	Total         Cents       `json:"total"`
	Status        Status      `json:"status"`
	PaymentMethod string      `json:"paymentMethod"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

// Transition moves the order to status to, stamping UpdatedAt with at.
func (o *Order) Transition(to Status, at time.Time) error {
	if !o.Status.CanTransition(to) {
		return &TransitionError{From: o.Status, To: to}
	}
	o.Status = to
	o.UpdatedAt = at
	return nil
}

// ItemCount is the number of units across all lines.
func (o Order) ItemCount() int {
	return CountUnits(o.Items)
}
