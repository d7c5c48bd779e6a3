package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func respond(t *testing.T, err error) (int, HTTPError) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Respond(c, err)

	var body HTTPError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestRespond_MapsKinds(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", Validation("invalid_date", "date"), http.StatusBadRequest, "invalid_date"},
		{"slot taken", SlotTaken("Max"), http.StatusConflict, "slot_taken"},
		{"invalid state", InvalidState("not_pending"), http.StatusConflict, "not_pending"},
		{"not found", NotFoundErr("appointment_not_found"), http.StatusNotFound, "appointment_not_found"},
		{"unavailable", Unavailable(errors.New("dial tcp: refused")), http.StatusServiceUnavailable, "store_unavailable"},
		{"wrapped", fmt.Errorf("confirm: %w", InvalidState("not_pending")), http.StatusConflict, "not_pending"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := respond(t, tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestRespond_SlotTakenNamesHolder(t *testing.T) {
	_, body := respond(t, SlotTaken("Luna"))
	assert.Contains(t, body.Message, "Luna")
}

func TestRespond_HidesStoreErrors(t *testing.T) {
	_, body := respond(t, Unavailable(errors.New("password authentication failed")))
	assert.NotContains(t, body.Message, "password")
}

func TestRespond_ValidationCarriesField(t *testing.T) {
	_, body := respond(t, Validation("invalid_time", "time"))
	assert.Equal(t, "time", body.Field)
}

func TestKindHelpers(t *testing.T) {
	err := fmt.Errorf("wrap: %w", NotFoundErr("pet_not_found"))

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsBusiness(err, "pet_not_found"))
	assert.False(t, IsBusiness(errors.New("pet_not_found"), "pet_not_found"))
	assert.Equal(t, Kind(""), KindOf(errors.New("x")))
}

func TestIsExclusionConflict(t *testing.T) {
	assert.True(t, IsExclusionConflict(gorm.ErrDuplicatedKey))
	assert.True(t, IsExclusionConflict(&pgconn.PgError{Code: "23505"}))
	assert.True(t, IsExclusionConflict(&pgconn.PgError{Code: "23P01"}))
	assert.True(t, IsExclusionConflict(errors.New("UNIQUE constraint failed: appointments.date")))

	assert.False(t, IsExclusionConflict(nil))
	assert.False(t, IsExclusionConflict(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsExclusionConflict(errors.New("connection reset")))
}
