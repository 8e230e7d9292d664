package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

type BookingInput struct {
	UserID   int64  `json:"userId"`
	TravelID int64  `json:"travelId"`
	Status   string `json:"status,omitempty"`
}

type BookingFilter struct {
	Status      string
	UserEmail   string
	Destination string
	DateFrom    string
	DateTo      string
}

func (f BookingFilter) query() string {
	values := url.Values{}
	if f.Status != "" {
		values.Set("status", f.Status)
	}
	if f.UserEmail != "" {
		values.Set("userEmail", f.UserEmail)
	}
	if f.Destination != "" {
		values.Set("destination", f.Destination)
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

func (c *Client) CreateBooking(ctx context.Context, input BookingInput) (*Booking, error) {
	if input.UserID <= 0 {
		return nil, fmt.Errorf("invalid user id: %d", input.UserID)
	}
	if input.TravelID <= 0 {
		return nil, fmt.Errorf("invalid travel id: %d", input.TravelID)
	}
	var booking Booking
	if err := c.request(ctx, http.MethodPost, "/bookings/create", input, "createBooking", &booking); err != nil {
		return nil, err
	}
	c.notifier.Success("Reserva creada correctamente")
	return &booking, nil
}

func (c *Client) GetAllBookings(ctx context.Context) ([]Booking, error) {
	var bookings []Booking
	if err := c.request(ctx, http.MethodGet, "/bookings", nil, "getAllBookings", &bookings); err != nil {
		return nil, err
	}
	c.store.setBookings(bookings)
	return bookings, nil
}

func (c *Client) GetBookingByID(ctx context.Context, id int64) (*Booking, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid booking id: %d", id)
	}
	var booking Booking
	err := c.request(ctx, http.MethodGet, fmt.Sprintf("/bookings/%d", id), nil, fmt.Sprintf("getBookingById_%d", id), &booking)
	if err != nil {
		return nil, err
	}
	return &booking, nil
}

func (c *Client) GetUserBookings(ctx context.Context, userID int64) ([]Booking, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id: %d", userID)
	}
	var bookings []Booking
	err := c.request(ctx, http.MethodGet, fmt.Sprintf("/bookings/user/%d", userID), nil, fmt.Sprintf("getUserBookings_%d", userID), &bookings)
	return bookings, err
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id int64, status string) (*Booking, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid booking id: %d", id)
	}
	var booking Booking
	opKey := fmt.Sprintf("updateBookingStatus_%d", id)
	body := map[string]string{"status": status}
	if err := c.request(ctx, http.MethodPatch, fmt.Sprintf("/bookings/%d/status", id), body, opKey, &booking); err != nil {
		return nil, err
	}
	c.notifier.Success("Estado de la reserva actualizado")
	return &booking, nil
}

// CancelBooking moves a booking to CANCELLED.
func (c *Client) CancelBooking(ctx context.Context, id int64) (*Booking, error) {
	return c.UpdateBookingStatus(ctx, id, "CANCELLED")
}

func (c *Client) FilterBookings(ctx context.Context, filter BookingFilter) ([]Booking, error) {
	var bookings []Booking
	err := c.request(ctx, http.MethodGet, "/bookings/filter"+filter.query(), nil, "filterBookings", &bookings)
	return bookings, err
}

func (c *Client) DeleteBooking(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid booking id: %d", id)
	}
	opKey := fmt.Sprintf("deleteBooking_%d", id)
	if err := c.request(ctx, http.MethodDelete, fmt.Sprintf("/bookings/delete/%d", id), nil, opKey, nil); err != nil {
		return err
	}
	c.notifier.Success("Reserva eliminada correctamente")
	return nil
}
