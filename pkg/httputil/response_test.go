package httputil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	t.Run("writes JSON with correct content type", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteJSON(rec, http.StatusOK, map[string]string{"orderId": "1000000"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"orderId":"1000000"}`, rec.Body.String())
	})

	t.Run("handles nil data", func(t *testing.T) {
		t.Parallel()
		rec := httptest.NewRecorder()

		WriteJSON(rec, http.StatusNoContent, nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		write  func(http.ResponseWriter)
		status int
		msg    string
	}{
		{"custom", func(w http.ResponseWriter) { WriteError(w, http.StatusUnauthorized, "API key required") }, http.StatusUnauthorized, "API key required"},
		{"bad request", func(w http.ResponseWriter) { WriteBadRequest(w, "Invalid JSON in request body") }, http.StatusBadRequest, "Invalid JSON in request body"},
		{"not found", func(w http.ResponseWriter) { WriteNotFound(w, "Order not found") }, http.StatusNotFound, "Order not found"},
		{"internal", func(w http.ResponseWriter) { WriteInternalError(w, "Internal server error") }, http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			tt.write(rec)

			assert.Equal(t, tt.status, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.msg, body.Error)
		})
	}
}

func TestWriteText(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteText(rec, http.StatusOK, "hello")
	assert.Equal(t, "hello", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")
}

func TestReadBody_Rewinds(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`))

	data, err := ReadBody(req)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	again, err := io.ReadAll(req.Body)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(again))
}

func TestDecodeJSON(t *testing.T) {
	v, err := DecodeJSON([]byte(`[{"order_quantity": 4}]`))
	require.NoError(t, err)
	items := v.([]any)
	assert.Equal(t, json.Number("4"), items[0].(map[string]any)["order_quantity"])

	for _, bad := range []string{"", "{", `{"a":1} x`, "nope"} {
		_, err := DecodeJSON([]byte(bad))
		assert.ErrorIs(t, err, ErrInvalidJSON, bad)
	}
}

func TestDecodeJSONObject(t *testing.T) {
	m, err := DecodeJSONObject([]byte(`{"endPoint":"https://x"}`))
	require.NoError(t, err)
	assert.Equal(t, "https://x", m["endPoint"])

	m, err = DecodeJSONObject([]byte(`[1,2]`))
	require.NoError(t, err)
	assert.Empty(t, m)

	_, err = DecodeJSONObject([]byte(`{`))
	assert.ErrorIs(t, err, ErrInvalidJSON)
}
