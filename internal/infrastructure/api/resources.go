package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// Admin resource calls. Hotels, tours ("cards" on the wire) and bookings
// are opaque payloads owned by the server; callers get raw JSON back.

func (c *Client) ListHotels(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/hotels", nil)
}

func (c *Client) Hotel(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/hotels/"+id, nil)
}

func (c *Client) CreateHotel(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/api/hotels", payload)
}

func (c *Client) UpdateHotel(ctx context.Context, id string, payload json.RawMessage) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, "/api/hotels/"+id, payload)
}

func (c *Client) DeleteHotel(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/hotels/"+id, nil)
	return err
}

func (c *Client) ListTours(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/cards", nil)
}

func (c *Client) Tour(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/cards/"+id, nil)
}

func (c *Client) CreateTour(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/api/cards", payload)
}

func (c *Client) DeleteTour(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/cards/"+id, nil)
	return err
}

func (c *Client) ListBookings(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/bookings", nil)
}

func (c *Client) CreateBooking(ctx context.Context, payload json.RawMessage) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/api/bookings", payload)
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id string, payload json.RawMessage) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, "/api/bookings/"+id, payload)
}

func (c *Client) DeleteBooking(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/bookings/"+id, nil)
	return err
}

func (c *Client) Stats(ctx context.Context) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/api/admin/stats", nil)
}
