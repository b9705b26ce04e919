package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsuite/grooming-booking/internal/booking"
	"github.com/pawsuite/grooming-booking/internal/storage"
)

func newTestServer(t *testing.T) (http.Handler, storage.Store) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := storage.NewRedisStore(client)

	catalog := booking.NewCatalog(store)
	require.NoError(t, catalog.EnsureSeeded(context.Background()))

	router := NewRouter(RouterConfig{
		Workflow: booking.NewWorkflow(catalog, booking.NewRecorder(store), booking.DefaultHours()),
		Catalog:  catalog,
		Sessions: booking.NewSessions(store),
		Store:    store,
		Env:      "test",
		Version:  "test",
	})
	return router, store
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func login(t *testing.T, h http.Handler) {
	t.Helper()
	rr := doJSON(t, h, http.MethodPost, "/session", LoginRequest{Name: "Jane", Email: "jane@x.com"})
	require.Equal(t, http.StatusOK, rr.Code)
}

// nextOpenDate returns a weekday date more than a week out, so "10:00" on it
// is always bookable.
func nextOpenDate() string {
	day := time.Now().AddDate(0, 0, 8)
	for day.Weekday() == time.Sunday {
		day = day.AddDate(0, 0, 1)
	}
	return day.Format("2006-01-02")
}

func validRequest() PrepareBookingRequest {
	return PrepareBookingRequest{
		OwnerName:     "Jane",
		OwnerEmail:    "jane@x.com",
		PetName:       "Rex",
		PetType:       "Dog",
		ServiceID:     "s2",
		Date:          nextOpenDate(),
		Time:          "10:00",
		PaymentMethod: "Cash",
	}
}

func TestListServicesEndpoint(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodGet, "/services", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var services []booking.Service
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &services))
	require.Len(t, services, 4)
	assert.Equal(t, "Basic Bath", services[0].Name)
}

func TestBookingRoutesRequireLogin(t *testing.T) {
	h, store := newTestServer(t)

	rr := doJSON(t, h, http.MethodGet, "/bookings", nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
	assert.Equal(t, "login_required", errResp.Error)

	// The guard remembers where the customer was headed.
	raw, err := store.Get(context.Background(), "after_login")
	require.NoError(t, err)
	var target string
	require.NoError(t, json.Unmarshal(raw, &target))
	assert.Equal(t, "/bookings", target)
}

func TestSessionEndpoints(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodGet, "/session", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	login(t, h)

	rr = doJSON(t, h, http.MethodGet, "/session", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var sess SessionResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &sess))
	assert.Equal(t, "Jane", sess.User.Name)

	rr = doJSON(t, h, http.MethodDelete, "/session", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = doJSON(t, h, http.MethodGet, "/session", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLoginReturnsRememberedRedirect(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodGet, "/bookings/last", nil)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doJSON(t, h, http.MethodPost, "/session", LoginRequest{Email: "jane@x.com"})
	require.Equal(t, http.StatusOK, rr.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "/bookings/last", resp.Redirect)
}

func TestLoginRequiresIdentity(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodPost, "/session", LoginRequest{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBookingFlowEndToEnd(t *testing.T) {
	h, _ := newTestServer(t)
	login(t, h)

	rr := doJSON(t, h, http.MethodPost, "/bookings", validRequest())
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var intent booking.BookingIntent
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &intent))
	assert.Equal(t, "Full Groom", intent.ServiceName)

	rr = doJSON(t, h, http.MethodPost, "/bookings/confirm", intent)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var rec booking.BookingRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	assert.Equal(t, booking.StatusPending, rec.Status)
	assert.NotEmpty(t, rec.ID)

	rr = doJSON(t, h, http.MethodGet, "/bookings", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var records []booking.BookingRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, rec.ID, records[0].ID)

	rr = doJSON(t, h, http.MethodGet, "/bookings/last", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var last booking.BookingRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &last))
	assert.Equal(t, rec.ID, last.ID)
}

func TestPrepareBookingErrorCodes(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*PrepareBookingRequest)
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing payment",
			mutate:     func(r *PrepareBookingRequest) { r.PaymentMethod = "" },
			wantStatus: http.StatusBadRequest,
			wantCode:   "missing_payment",
		},
		{
			name:       "missing fields",
			mutate:     func(r *PrepareBookingRequest) { r.PetName = "   " },
			wantStatus: http.StatusBadRequest,
			wantCode:   "missing_fields",
		},
		{
			name:       "unparsable slot",
			mutate:     func(r *PrepareBookingRequest) { r.Date = "03/17/2025" },
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_datetime",
		},
		{
			name:       "past slot",
			mutate:     func(r *PrepareBookingRequest) { r.Date = "2020-01-06" },
			wantStatus: http.StatusBadRequest,
			wantCode:   "past_datetime",
		},
		{
			name:       "outside hours",
			mutate:     func(r *PrepareBookingRequest) { r.Time = "22:00" },
			wantStatus: http.StatusBadRequest,
			wantCode:   "outside_hours",
		},
		{
			name:       "unknown service",
			mutate:     func(r *PrepareBookingRequest) { r.ServiceID = "s999" },
			wantStatus: http.StatusNotFound,
			wantCode:   "unknown_service",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newTestServer(t)
			login(t, h)

			req := validRequest()
			tt.mutate(&req)

			rr := doJSON(t, h, http.MethodPost, "/bookings", req)
			assert.Equal(t, tt.wantStatus, rr.Code)

			var errResp ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
			assert.Equal(t, tt.wantCode, errResp.Error)
		})
	}
}

func TestPrepareBookingClosedDay(t *testing.T) {
	h, _ := newTestServer(t)
	login(t, h)

	// The first Sunday more than a week out.
	day := time.Now().AddDate(0, 0, 8)
	for day.Weekday() != time.Sunday {
		day = day.AddDate(0, 0, 1)
	}

	req := validRequest()
	req.Date = day.Format("2006-01-02")

	rr := doJSON(t, h, http.MethodPost, "/bookings", req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &errResp))
	assert.Equal(t, "closed_day", errResp.Error)
}

func TestLastBookingWhenNoneExists(t *testing.T) {
	h, _ := newTestServer(t)
	login(t, h)

	rr := doJSON(t, h, http.MethodGet, "/bookings/last", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHealthEndpoints(t *testing.T) {
	h, _ := newTestServer(t)

	rr := doJSON(t, h, http.MethodGet, "/health/live", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, h, http.MethodGet, "/health/ready", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var ready ReadinessResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ready))
	assert.Equal(t, "ok", ready.Dependencies["store"])
}
