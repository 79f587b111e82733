package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicbook/internal/domain"
)

type envelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func render(t *testing.T, err error) (int, envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromError(c, err)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestFromError_Taxonomy(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrUnauthenticated, http.StatusUnauthorized, "UNAUTHENTICATED"},
		{domain.ErrInvalidServiceSelection, http.StatusBadRequest, "INVALID_SERVICE_SELECTION"},
		{fmt.Errorf("create booking: %w", domain.ErrSlotUnavailable), http.StatusConflict, "SLOT_UNAVAILABLE"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{fmt.Errorf("%w: insert: %w", domain.ErrStorage, errors.New("disk full")), http.StatusInternalServerError, "STORAGE_FAILURE"},
		{domain.ErrServiceHasFutureBookings, http.StatusConflict, "SERVICE_HAS_FUTURE_BOOKINGS"},
		{domain.ErrAlreadyVenueAdmin, http.StatusConflict, "ALREADY_VENUE_ADMIN"},
		{domain.ErrValidation, http.StatusBadRequest, "VALIDATION_ERROR"},
		{errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	seen := map[string]string{}
	for _, tc := range cases {
		status, body := render(t, tc.err)
		assert.Equal(t, tc.status, status, tc.code)
		assert.False(t, body.Success)
		assert.Equal(t, tc.code, body.Error.Code)
		assert.NotEmpty(t, body.Error.Message)
		seen[body.Error.Code] = body.Error.Message
	}

	messages := map[string]bool{}
	for _, m := range seen {
		assert.False(t, messages[m], "duplicate message %q", m)
		messages[m] = true
	}
}

func TestFromError_ValidationDetails(t *testing.T) {
	status, body := render(t, &domain.ValidationError{Fields: map[string]string{"Name": "required"}})

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "required", body.Error.Details["Name"])
}
