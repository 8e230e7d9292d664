package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// TravelFilter narrows the travel listing. Empty fields are left out of the
// outgoing query entirely.
type TravelFilter struct {
	Destination   string
	DepartureDate string
	ArrivalDate   string
	Status        string
}

func (f TravelFilter) query() string {
	values := url.Values{}
	if f.Destination != "" {
		values.Set("destination", f.Destination)
	}
	if f.DepartureDate != "" {
		values.Set("departureDate", f.DepartureDate)
	}
	if f.ArrivalDate != "" {
		values.Set("arrivalDate", f.ArrivalDate)
	}
	if f.Status != "" {
		values.Set("status", f.Status)
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

type TravelInput struct {
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departureDate"`
	ReturnDate    string  `json:"returnDate"`
	Price         float64 `json:"price"`
	Itinerary     string  `json:"itinerary"`
}

func (c *Client) GetAllTravels(ctx context.Context) ([]Travel, error) {
	var travels []Travel
	if err := c.request(ctx, http.MethodGet, "/travels", nil, "getAllTravels", &travels); err != nil {
		return nil, err
	}
	c.store.setTravels(travels)
	return travels, nil
}

func (c *Client) GetTravelByID(ctx context.Context, id int64) (*Travel, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid travel id: %d", id)
	}
	var travel Travel
	err := c.request(ctx, http.MethodGet, fmt.Sprintf("/travels/%d", id), nil, fmt.Sprintf("getTravelById_%d", id), &travel)
	if err != nil {
		return nil, err
	}
	return &travel, nil
}

func (c *Client) FilterTravels(ctx context.Context, filter TravelFilter) ([]Travel, error) {
	var travels []Travel
	err := c.request(ctx, http.MethodGet, "/travels/filter"+filter.query(), nil, "filterTravels", &travels)
	return travels, err
}

func (c *Client) CreateTravel(ctx context.Context, input TravelInput) (*Travel, error) {
	var travel Travel
	if err := c.request(ctx, http.MethodPost, "/travels/create", input, "createTravel", &travel); err != nil {
		return nil, err
	}
	c.notifier.Success("Viaje creado correctamente")
	return &travel, nil
}

func (c *Client) UpdateTravel(ctx context.Context, id int64, input TravelInput) (*Travel, error) {
	if id <= 0 {
		return nil, fmt.Errorf("invalid travel id: %d", id)
	}
	var travel Travel
	opKey := fmt.Sprintf("updateTravel_%d", id)
	if err := c.request(ctx, http.MethodPut, fmt.Sprintf("/travels/update/%d", id), input, opKey, &travel); err != nil {
		return nil, err
	}
	c.notifier.Success("Viaje actualizado correctamente")
	return &travel, nil
}

func (c *Client) DeleteTravel(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("invalid travel id: %d", id)
	}
	opKey := fmt.Sprintf("deleteTravel_%d", id)
	if err := c.request(ctx, http.MethodDelete, fmt.Sprintf("/travels/delete/%d", id), nil, opKey, nil); err != nil {
		return err
	}
	c.notifier.Success("Viaje eliminado correctamente")
	return nil
}
