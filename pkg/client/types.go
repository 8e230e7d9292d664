package client

// Wire types mirror the API's JSON bodies. Dates travel as strings, ISO
// "2006-01-02" for travel dates and RFC 3339 for booking and payment
// timestamps.

type Travel struct {
	ID            int64   `json:"id"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departureDate"`
	ReturnDate    string  `json:"returnDate"`
	Price         float64 `json:"price"`
	Itinerary     string  `json:"itinerary"`
	Status        string  `json:"status,omitempty"`
}

type Booking struct {
	ID          int64            `json:"id"`
	Reference   string           `json:"reference"`
	BookingDate string           `json:"bookingDate"`
	Status      string           `json:"status"`
	User        *SessionUser     `json:"user,omitempty"`
	Travel      *Travel          `json:"travel,omitempty"`
	Payments    []BookingPayment `json:"payments"`
}

type BookingPayment struct {
	ID            int64   `json:"id"`
	Amount        float64 `json:"amount"`
	PaymentDate   string  `json:"paymentDate"`
	PaymentMethod string  `json:"paymentMethod"`
}

type Payment struct {
	ID            int64   `json:"id"`
	Amount        float64 `json:"amount"`
	PaymentDate   string  `json:"paymentDate"`
	PaymentMethod string  `json:"paymentMethod"`
	BookingID     int64   `json:"bookingId"`
	UserID        int64   `json:"userId,omitempty"`
	UserEmail     string  `json:"userEmail,omitempty"`
	Destination   string  `json:"destination,omitempty"`
}

// PaymentSummary aggregates a booking's payments. Taxes and fees are not
// always populated by the backend, so they stay nullable.
type PaymentSummary struct {
	BookingID       int64     `json:"bookingId"`
	TotalAmount     float64   `json:"totalAmount"`
	PaidAmount      float64   `json:"paidAmount"`
	RemainingAmount float64   `json:"remainingAmount"`
	PaymentStatus   string    `json:"paymentStatus"`
	Payments        []Payment `json:"payments"`
	Taxes           *float64  `json:"taxes,omitempty"`
	Fees            *float64  `json:"fees,omitempty"`
}
