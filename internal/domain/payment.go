package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodBankTransfer:
		return true
	}
	return false
}

type Payment struct {
	ID            int64
	Amount        decimal.Decimal
	PaymentDate   time.Time
	PaymentMethod PaymentMethod
	BookingID     int64
	// Denormalized for admin listings and filters.
	UserID      int64
	UserEmail   string
	Destination string
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusPartial   PaymentStatus = "PARTIAL"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
)

// PaymentSummary aggregates the payments of a booking. Remaining amount is
// computed when the summary is built and never persisted.
type PaymentSummary struct {
	BookingID       int64
	TotalAmount     decimal.Decimal
	PaidAmount      decimal.Decimal
	RemainingAmount decimal.Decimal
	PaymentStatus   PaymentStatus
	Payments        []Payment
}

// NewPaymentSummary derives remaining amount and payment status from the
// total price and what has been paid so far.
func NewPaymentSummary(bookingID int64, total, paid decimal.Decimal, payments []Payment) PaymentSummary {
	status := PaymentStatusPending
	switch {
	case paid.IsZero():
		status = PaymentStatusPending
	case paid.LessThan(total):
		status = PaymentStatusPartial
	default:
		status = PaymentStatusCompleted
	}

	return PaymentSummary{
		BookingID:       bookingID,
		TotalAmount:     total,
		PaidAmount:      paid,
		RemainingAmount: total.Sub(paid),
		PaymentStatus:   status,
		Payments:        payments,
	}
}

type PaymentFilter struct {
	UserEmail     string
	PaymentMethod PaymentMethod
	MinAmount     *decimal.Decimal
	MaxAmount     *decimal.Decimal
	DateFrom      time.Time
	DateTo        time.Time
}
