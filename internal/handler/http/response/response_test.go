package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, "Order created", map[string]int{"page": 1, "total_pages": 3})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decodeEnvelope(t, rec)
	assert.JSONEq(t, `true`, string(body["success"]))
	assert.JSONEq(t, `"Order created"`, string(body["message"]))
	assert.JSONEq(t, `{"page":1,"total_pages":3}`, string(body["data"]))
	assert.NotContains(t, body, "error")
	assert.Len(t, body, 3)
}

func TestErrorWriters_Envelope(t *testing.T) {
	cases := []struct {
		name   string
		write  func(w http.ResponseWriter)
		status int
		code   string
	}{
		{"bad request", func(w http.ResponseWriter) { BadRequest(w, "bad", nil) }, http.StatusBadRequest, "BAD_REQUEST"},
		{"validation", func(w http.ResponseWriter) { ValidationError(w, map[string]string{"id": "x"}) }, http.StatusUnprocessableEntity, "VALIDATION_ERROR"},
		{"unauthorized", func(w http.ResponseWriter) { Unauthorized(w, "no") }, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", func(w http.ResponseWriter) { Forbidden(w, "no") }, http.StatusForbidden, "FORBIDDEN"},
		{"not found", func(w http.ResponseWriter) { NotFound(w, "gone") }, http.StatusNotFound, "NOT_FOUND"},
		{"conflict", func(w http.ResponseWriter) { Conflict(w, "taken") }, http.StatusConflict, "CONFLICT"},
		{"internal", func(w http.ResponseWriter) { InternalServerError(w, "boom") }, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c.write(rec)

			assert.Equal(t, c.status, rec.Code)
			body := decodeEnvelope(t, rec)
			assert.JSONEq(t, `false`, string(body["success"]))
			assert.NotContains(t, body, "data")

			var detail ErrorDetail
			require.NoError(t, json.Unmarshal(body["error"], &detail))
			assert.Equal(t, c.code, detail.Code)
		})
	}
}
