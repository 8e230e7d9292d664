package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type TravelStatus string

const (
	TravelStatusUpcoming   TravelStatus = "UPCOMING"
	TravelStatusInProgress TravelStatus = "IN_PROGRESS"
	TravelStatusFinished   TravelStatus = "FINISHED"
)

type Travel struct {
	ID            int64
	Destination   string
	DepartureDate time.Time
	ReturnDate    time.Time
	Price         decimal.Decimal
	Itinerary     string
}

// ScheduleStatus derives the travel state from its dates; travels carry no
// persisted status column.
func (t Travel) ScheduleStatus(now time.Time) TravelStatus {
	switch {
	case now.Before(t.DepartureDate):
		return TravelStatusUpcoming
	case now.After(t.ReturnDate):
		return TravelStatusFinished
	default:
		return TravelStatusInProgress
	}
}

type TravelFilter struct {
	Destination   string
	DepartureFrom time.Time
	ReturnTo      time.Time
	Status        TravelStatus
}
