package common

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"custom", ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
		{"wrapped custom", ErrUnauthorized.Wrap(errors.New("missing header")), http.StatusUnauthorized, ErrCodeUnauthorized},
		{"validation", NewValidationError("plan_date is required"), http.StatusBadRequest, ErrCodeInvalidRequest},
		{"plain", errors.New("boom"), http.StatusInternalServerError, ErrCodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			RespondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body ErrorResponse
			require.NoError(t, ParseJSONBytes(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.True(t, c.IsAborted())
		})
	}
}

func TestIsValidationError(t *testing.T) {
	err := NewValidationError("bad")
	assert.True(t, IsValidationError(err))
	assert.True(t, IsValidationError(ErrInvalidRequest.Wrap(err)))
	assert.False(t, IsValidationError(errors.New("bad")))
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	require.NoError(t, ParseJSONBytes([]byte(`{"name":"eggs"}`), &v))
	assert.Equal(t, "eggs", v.Name)

	assert.Error(t, ParseJSONBytes([]byte(`{"name":"eggs"} {"name":"milk"}`), &v))
	assert.NoError(t, ParseJSONBytes([]byte(`{"name":"eggs","qty":2}`), &v))
	assert.Error(t, DecodeJSONStrict(strings.NewReader(`{"name":"eggs","qty":2}`), &v))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "debug", ParseLevel("DEBUG").String())
	assert.Equal(t, "info", ParseLevel("nonsense").String())
}

func TestUUID(t *testing.T) {
	id := GenerateUUID()
	assert.True(t, IsUUID(id))
	assert.False(t, IsUUID("not-a-uuid"))
}
