package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/groomer-scheduler/internal/config"
	domain "github.com/BruksfildServices01/groomer-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/groomer-scheduler/internal/live"
	"github.com/BruksfildServices01/groomer-scheduler/internal/middleware"
	"github.com/BruksfildServices01/groomer-scheduler/internal/testutil"
	"github.com/BruksfildServices01/groomer-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/groomer-scheduler/internal/usecase/appointment"
)

const testSecret = "test-secret"

type server struct {
	t      *testing.T
	engine *gin.Engine
}

func newServer(t *testing.T) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logrus.New()
	log.SetOutput(io.Discard)

	hub := live.NewHub()
	t.Cleanup(func() { _ = hub.Close() })

	loc := timezone.Location(timezone.DefaultTimezone)
	clock := timezone.FixedClock{T: time.Date(2025, 3, 9, 10, 0, 0, 0, loc)}

	r := gin.New()
	RegisterRoutes(r, Deps{
		DB:       testutil.NewDB(t),
		Config:   &config.Config{JWTSecret: testSecret},
		Log:      log,
		Clock:    clock,
		Schedule: domain.DefaultSchedule(),
		Broker:   hub,
		Effects:  &ucAppointment.Effects{Live: hub, Log: log},
		Limiter:  middleware.NewRateLimiter(100, 100),
	})

	return &server{t: t, engine: r}
}

func (s *server) token(accountID, role string) string {
	tok, err := middleware.IssueToken(testSecret, accountID, role, time.Hour)
	require.NoError(s.t, err)
	return tok
}

func (s *server) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		buf = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (s *server) createPet(token, name string) string {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/me/pets", token, map[string]any{
		"name": name, "breed": "Labrador", "age": 3, "weight": 25,
	})
	require.Equal(s.t, http.StatusCreated, w.Code, w.Body.String())
	return decode(s.t, w)["id"].(string)
}

func TestHealthAndCatalogArePublic(t *testing.T) {
	s := newServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", nil).Code)

	w := s.do(http.MethodGet, "/api/catalog", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 10, decode(t, w)["total"])

	w = s.do(http.MethodGet, "/api/catalog/totals?services=Ba%C3%B1o%20Completo,Corte%20de%20Pelo", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	totals := decode(t, w)
	assert.EqualValues(t, 60, totals["price"])
	assert.Equal(t, "1h 45min", totals["duration"])

	w = s.do(http.MethodGet, "/api/schedule", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2025-03-09", decode(t, w)["today"])
}

func TestAuthAndRoles(t *testing.T) {
	s := newServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/me", "garbage", nil).Code)

	client := s.token("owner-1", middleware.RoleClient)
	w := s.do(http.MethodGet, "/api/me", client, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "owner-1", decode(t, w)["account_id"])

	assert.Equal(t, http.StatusForbidden,
		s.do(http.MethodGet, "/api/staff/appointments/pending", client, nil).Code)

	staff := s.token("staff-1", middleware.RoleStaff)
	assert.Equal(t, http.StatusForbidden,
		s.do(http.MethodGet, "/api/me/pets", staff, nil).Code)
	assert.Equal(t, http.StatusOK,
		s.do(http.MethodGet, "/api/staff/appointments/pending", staff, nil).Code)
}

func TestBookingLifecycleOverHTTP(t *testing.T) {
	s := newServer(t)
	client := s.token("owner-1", middleware.RoleClient)
	staff := s.token("staff-1", middleware.RoleStaff)

	petID := s.createPet(client, "Max")

	w := s.do(http.MethodPost, "/api/me/appointments", client, map[string]any{
		"pet_id":   petID,
		"services": []string{"Baño Completo", "Corte de Pelo"},
		"date":     "2025-03-10",
		"time":     "10:00",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	booked := decode(t, w)
	id := booked["id"].(string)
	assert.Equal(t, "pending", booked["confirmation_status"])
	assert.EqualValues(t, 60, booked["price"])

	w = s.do(http.MethodGet, "/api/availability?date=2025-03-10", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, decode(t, w)["slots"], "10:00")

	// a second owner cannot take the same slot
	other := s.token("owner-2", middleware.RoleClient)
	otherPet := s.createPet(other, "Luna")
	w = s.do(http.MethodPost, "/api/me/appointments", other, map[string]any{
		"pet_id":   otherPet,
		"services": []string{"Corte de Uñas"},
		"date":     "2025-03-10",
		"time":     "10:00",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	conflict := decode(t, w)
	assert.Equal(t, "slot_taken", conflict["error_code"])
	assert.Contains(t, conflict["message"], "Max")

	w = s.do(http.MethodPatch, "/api/staff/appointments/"+id+"/confirm", staff, map[string]any{
		"confirmed_time": "10:30",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	confirmed := decode(t, w)
	assert.Equal(t, "10:30", confirmed["effective_time"])
	assert.Equal(t, true, confirmed["time_was_modified"])

	w = s.do(http.MethodPatch, "/api/staff/appointments/"+id+"/start", staff, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPatch, "/api/staff/appointments/"+id+"/services/1", staff, map[string]any{
		"state": "completed",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.EqualValues(t, 50, decode(t, w)["progress"])

	w = s.do(http.MethodPatch, "/api/staff/appointments/"+id+"/services/2", staff, map[string]any{
		"state": "completed",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	done := decode(t, w)
	assert.EqualValues(t, 100, done["progress"])
	assert.Equal(t, "completed", done["execution_status"])

	// the owner sees the final state, another owner does not see it at all
	w = s.do(http.MethodGet, "/api/me/appointments/"+id, client, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "completed", decode(t, w)["execution_status"])
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/me/appointments/"+id, other, nil).Code)

	// terminal appointments cannot be rejected
	w = s.do(http.MethodPatch, "/api/staff/appointments/"+id+"/reject", staff, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookingValidationErrors(t *testing.T) {
	s := newServer(t)
	client := s.token("owner-1", middleware.RoleClient)
	petID := s.createPet(client, "Max")

	cases := []struct {
		name string
		body map[string]any
		code string
	}{
		{"no services", map[string]any{"pet_id": petID, "date": "2025-03-10", "time": "10:00"}, "services_required"},
		{"unknown service", map[string]any{"pet_id": petID, "services": []string{"Masaje"}, "date": "2025-03-10", "time": "10:00"}, "unknown_service"},
		{"past date", map[string]any{"pet_id": petID, "services": []string{"Perfume Pet"}, "date": "2025-03-01", "time": "10:00"}, "date_in_past"},
		{"off schedule", map[string]any{"pet_id": petID, "services": []string{"Perfume Pet"}, "date": "2025-03-10", "time": "13:00"}, "time_not_offered"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(http.MethodPost, "/api/me/appointments", client, tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, tc.code, decode(t, w)["error_code"])
		})
	}
}

func TestNextUpcomingIsEmptyWithoutBookings(t *testing.T) {
	s := newServer(t)
	client := s.token("owner-1", middleware.RoleClient)

	w := s.do(http.MethodGet, "/api/me/appointments/next", client, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestStaffMonthRequiresNumbers(t *testing.T) {
	s := newServer(t)
	staff := s.token("staff-1", middleware.RoleStaff)

	w := s.do(http.MethodGet, "/api/staff/appointments/month?year=x&month=3", staff, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_year", decode(t, w)["error_code"])

	w = s.do(http.MethodGet, "/api/staff/appointments/month?year=2025&month=3", staff, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	s := newServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/me/appointments", nil)
	req.Header.Set("Origin", "https://app.example.com")
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
