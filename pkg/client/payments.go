package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

type PaymentInput struct {
	BookingID     int64   `json:"bookingId"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod"`
}

type PaymentFilter struct {
	UserEmail     string
	PaymentMethod string
	MinAmount     *float64
	MaxAmount     *float64
	DateFrom      string
	DateTo        string
}

func (f PaymentFilter) query() string {
	values := url.Values{}
	if f.UserEmail != "" {
		values.Set("userEmail", f.UserEmail)
	}
	if f.PaymentMethod != "" {
		values.Set("paymentMethod", f.PaymentMethod)
	}
	if f.MinAmount != nil {
		values.Set("minAmount", strconv.FormatFloat(*f.MinAmount, 'f', -1, 64))
	}
	if f.MaxAmount != nil {
		values.Set("maxAmount", strconv.FormatFloat(*f.MaxAmount, 'f', -1, 64))
	}
	if f.DateFrom != "" {
		values.Set("dateFrom", f.DateFrom)
	}
	if f.DateTo != "" {
		values.Set("dateTo", f.DateTo)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

func (c *Client) ProcessPayment(ctx context.Context, input PaymentInput) (*Payment, error) {
	if input.BookingID <= 0 {
		return nil, fmt.Errorf("invalid booking id: %d", input.BookingID)
	}
	var payment Payment
	if err := c.request(ctx, http.MethodPost, "/payments", input, "processPayment", &payment); err != nil {
		return nil, err
	}
	c.notifier.Success("Pago procesado correctamente")
	return &payment, nil
}

func (c *Client) GetAllPayments(ctx context.Context) ([]Payment, error) {
	var payments []Payment
	err := c.request(ctx, http.MethodGet, "/payments", nil, "getAllPayments", &payments)
	return payments, err
}

func (c *Client) GetPaymentByID(ctx context.Context, id int64) (*Payment, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid payment id: %d", id)
	}
	var payment Payment
	err := c.request(ctx, http.MethodGet, fmt.Sprintf("/payments/%d", id), nil, fmt.Sprintf("getPaymentById_%d", id), &payment)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *Client) GetPaymentSummary(ctx context.Context, bookingID int64) (*PaymentSummary, error) {
	if bookingID <= 0 {
		return nil, fmt.Errorf("invalid booking id: %d", bookingID)
	}
	var summary PaymentSummary
	opKey := fmt.Sprintf("getPaymentSummary_%d", bookingID)
	err := c.request(ctx, http.MethodGet, fmt.Sprintf("/payments/booking/%d/summary", bookingID), nil, opKey, &summary)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

func (c *Client) GetBookingPayments(ctx context.Context, bookingID int64) ([]Payment, error) {
	if bookingID <= 0 {
		return nil, fmt.Errorf("invalid booking id: %d", bookingID)
	}
	var payments []Payment
	opKey := fmt.Sprintf("getBookingPayments_%d", bookingID)
	err := c.request(ctx, http.MethodGet, fmt.Sprintf("/payments/booking/%d", bookingID), nil, opKey, &payments)
	return payments, err
}

func (c *Client) GetUserPayments(ctx context.Context, userID int64) ([]Payment, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id: %d", userID)
	}
	var payments []Payment
	opKey := fmt.Sprintf("getUserPayments_%d", userID)
	err := c.request(ctx, http.MethodGet, fmt.Sprintf("/payments/user/%d", userID), nil, opKey, &payments)
	return payments, err
}

func (c *Client) FilterPayments(ctx context.Context, filter PaymentFilter) ([]Payment, error) {
	var payments []Payment
	err := c.request(ctx, http.MethodGet, "/payments/filter"+filter.query(), nil, "filterPayments", &payments)
	return payments, err
}

// CancelPayment removes a same-day payment. The backend rejects older ones.
func (c *Client) CancelPayment(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid payment id: %d", id)
	}
	opKey := fmt.Sprintf("cancelPayment_%d", id)
	if err := c.request(ctx, http.MethodDelete, fmt.Sprintf("/payments/%d", id), nil, opKey, nil); err != nil {
		return err
	}
	c.notifier.Success("Pago cancelado correctamente")
	return nil
}
