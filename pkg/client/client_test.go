package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, New(server.URL)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestClient_Login_invalidCredentials(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Credenciales incorrectas"})
	})

	_, err := c.Login(context.Background(), "carla", "x")

	// The backend's message is surfaced verbatim as the sole error channel.
	require.Error(t, err)
	assert.EqualError(t, err, "Credenciales incorrectas")
	assert.Equal(t, "Credenciales incorrectas", c.Ops().LastError())

	assert.False(t, c.Session().IsLoggedIn())
	assert.False(t, c.Ops().InFlight("login"))
}

func TestClient_Login_stripsPassword(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":       3,
			"username": "carla",
			"rol":      "CLIENT",
			"name":     "Carla",
			"surname":  "Gomez",
			"email":    "carla@example.com",
			"password": "$2a$10$leaked",
		})
	})

	storage := NewMemoryStorage()
	c := New(server.URL, WithSessionStorage(storage))

	user, err := c.Login(context.Background(), "carla", "secretpass")

	require.NoError(t, err)
	assert.Equal(t, "carla", user.Username)
	assert.True(t, c.Session().IsLoggedIn())

	stored, ok := storage.Get("currentUser")
	require.True(t, ok)
	assert.NotContains(t, stored, "password")
	assert.NotContains(t, stored, "$2a$10$leaked")
}

func TestClient_LoginThenLogout(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id":       3,
			"username": "carla",
			"rol":      "CLIENT",
		})
	})

	storage := NewMemoryStorage()
	c := New(server.URL, WithSessionStorage(storage))

	_, err := c.Login(context.Background(), "carla", "secretpass")
	require.NoError(t, err)
	require.True(t, c.Session().IsLoggedIn())

	require.NoError(t, c.Logout())

	assert.False(t, c.Session().IsLoggedIn())
	_, ok := storage.Get("currentUser")
	assert.False(t, ok)
}

func TestClient_SessionSurvivesRestart(t *testing.T) {
	storage := NewMemoryStorage()

	first := New("http://unused", WithSessionStorage(storage))
	require.NoError(t, first.Session().SetUser(&SessionUser{ID: 3, Username: "carla", Role: "ADMIN"}))

	// A fresh client over the same storage re-enters Authenticated.
	second := New("http://unused", WithSessionStorage(storage))
	assert.True(t, second.Session().IsLoggedIn())
	assert.True(t, second.Session().IsAdmin())
}

func TestClient_Register_forcesClientRole(t *testing.T) {
	var payload map[string]interface{}
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&payload)
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": 4, "username": "mallory", "rol": "CLIENT"})
	})

	_, err := c.Register(context.Background(), RegisterInput{
		Username: "mallory",
		Password: "secretpass",
		Name:     "Mallory",
		Surname:  "Diaz",
		Email:    "mallory@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "CLIENT", payload["rol"])
}

func TestClient_LoadingFlagLifecycle(t *testing.T) {
	var duringRequest bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []Travel{})
	}))
	defer server.Close()

	c := New(server.URL)

	// Observe the flag from inside the round trip.
	c.httpClient.Transport = roundTripFunc(func(r *http.Request) (*http.Response, error) {
		duringRequest = c.Ops().InFlight("getAllTravels")
		return http.DefaultTransport.RoundTrip(r)
	})

	assert.False(t, c.Ops().InFlight("getAllTravels"))

	_, err := c.GetAllTravels(context.Background())

	require.NoError(t, err)
	assert.True(t, duringRequest)
	assert.False(t, c.Ops().InFlight("getAllTravels"))
}

func TestClient_LoadingFlagResetOnError(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "boom"})
	})

	_, err := c.GetAllTravels(context.Background())

	require.Error(t, err)
	assert.False(t, c.Ops().InFlight("getAllTravels"))
	assert.Equal(t, "boom", c.Ops().LastError())
}

func TestClient_ErrorFallbackWithoutMessage(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.GetAllTravels(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error 502")
}

func TestClient_LastErrorClearedOnNextDispatch(t *testing.T) {
	var calls int
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": "no such travel"})
			return
		}
		writeJSON(w, http.StatusOK, []Travel{})
	})

	_, err := c.GetAllTravels(context.Background())
	require.Error(t, err)
	assert.Equal(t, "no such travel", c.Ops().LastError())

	_, err = c.GetAllTravels(context.Background())
	require.NoError(t, err)
	assert.Empty(t, c.Ops().LastError())
}

func TestClient_CreateBookingAppearsInUserList(t *testing.T) {
	bookings := []Booking{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /bookings/create", func(w http.ResponseWriter, r *http.Request) {
		var input BookingInput
		_ = json.NewDecoder(r.Body).Decode(&input)
		booking := Booking{
			ID:     1,
			Status: input.Status,
			Travel: &Travel{ID: input.TravelID, Destination: "Cartagena"},
			User:   &SessionUser{ID: input.UserID},
		}
		bookings = append(bookings, booking)
		writeJSON(w, http.StatusOK, booking)
	})
	mux.HandleFunc("GET /bookings/user/3", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, bookings)
	})

	server := httptest.NewServer(mux)
	defer server.Close()
	c := New(server.URL)

	created, err := c.CreateBooking(context.Background(), BookingInput{
		UserID:   3,
		TravelID: 7,
		Status:   "PENDING",
	})
	require.NoError(t, err)
	assert.Equal(t, "PENDING", created.Status)

	list, err := c.GetUserBookings(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "PENDING", list[0].Status)
	assert.Equal(t, int64(7), list[0].Travel.ID)
}

func TestClient_PaymentSummaryRemaining(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, PaymentSummary{
			BookingID:       1,
			TotalAmount:     500000,
			PaidAmount:      200000,
			RemainingAmount: 300000,
			PaymentStatus:   "PARTIAL",
		})
	})

	summary, err := c.GetPaymentSummary(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, float64(300000), summary.RemainingAmount)
	assert.Nil(t, summary.Taxes)
	assert.Nil(t, summary.Fees)
}

func TestClient_InvalidIDsNeverReachTheNetwork(t *testing.T) {
	c := New("http://127.0.0.1:1")

	_, err := c.GetTravelByID(context.Background(), 0)
	assert.Error(t, err)

	_, err = c.GetBookingByID(context.Background(), -5)
	assert.Error(t, err)

	_, err = c.GetPaymentSummary(context.Background(), 0)
	assert.Error(t, err)
}

func TestClient_FilterOmitsEmptyKeys(t *testing.T) {
	var query string
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		writeJSON(w, http.StatusOK, []Travel{})
	})

	_, err := c.FilterTravels(context.Background(), TravelFilter{Destination: "Cartagena"})

	require.NoError(t, err)
	assert.Equal(t, "destination=Cartagena", query)

	_, err = c.FilterTravels(context.Background(), TravelFilter{})
	require.NoError(t, err)
	assert.Empty(t, query)
}

func TestClient_ListFetchCachesLists(t *testing.T) {
	_, c := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/travels":
			writeJSON(w, http.StatusOK, []Travel{{ID: 1, Destination: "Cartagena"}})
		case "/bookings":
			writeJSON(w, http.StatusOK, []Booking{{ID: 7, Reference: "BK-7", Status: "PENDING"}})
		}
	})

	assert.Empty(t, c.Session().CachedTravels())

	travels, err := c.GetAllTravels(context.Background())
	require.NoError(t, err)
	assert.Equal(t, travels, c.Session().CachedTravels())

	bookings, err := c.GetAllBookings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bookings, c.Session().CachedBookings())
	assert.Equal(t, "BK-7", c.Session().CachedBookings()[0].Reference)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}
