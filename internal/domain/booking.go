package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusOnHold    BookingStatus = "ON_HOLD"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusPaid      BookingStatus = "PAID"
	BookingStatusCancelled BookingStatus = "CANCELLED"
	BookingStatusRejected  BookingStatus = "REJECTED"
	BookingStatusRefunded  BookingStatus = "REFUNDED"
	BookingStatusNoShow    BookingStatus = "NO_SHOW"
)

// BookingStatuses lists every status the backend accepts.
var BookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusOnHold,
	BookingStatusConfirmed,
	BookingStatusPaid,
	BookingStatusCancelled,
	BookingStatusRejected,
	BookingStatusRefunded,
	BookingStatusNoShow,
}

func (s BookingStatus) Valid() bool {
	for _, known := range BookingStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether the booking lifecycle ends at this status.
func (s BookingStatus) Terminal() bool {
	switch s {
	case BookingStatusPaid, BookingStatusCancelled, BookingStatusRejected, BookingStatusRefunded, BookingStatusNoShow:
		return true
	}
	return false
}

// Payable reports whether payments may still be applied to the booking.
func (s BookingStatus) Payable() bool {
	switch s {
	case BookingStatusPending, BookingStatusOnHold, BookingStatusConfirmed:
		return true
	}
	return false
}

// Cancelable reports whether the user may still withdraw the booking.
func (s BookingStatus) Cancelable() bool {
	return s == BookingStatusPending
}

type Booking struct {
	ID          int64
	Reference   string
	BookingDate time.Time
	Status      BookingStatus
	User        *User
	Travel      *Travel
	Payments    []Payment
}

// BookingFilter carries the optional admin-side filter criteria.
// Zero values mean "not filtered on".
type BookingFilter struct {
	Status      BookingStatus
	UserEmail   string
	Destination string
	DateFrom    time.Time
	DateTo      time.Time
}
