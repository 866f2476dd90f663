package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()

	_, err := WriteJSON(rec, map[string]string{"status": "ok"}, http.StatusCreated)
	require.NoError(t, err)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestWriteJSON_MarshalError(t *testing.T) {
	rec := httptest.NewRecorder()

	// channels cannot be marshalled to JSON
	_, err := WriteJSON(rec, make(chan int), http.StatusOK)
	assert.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
