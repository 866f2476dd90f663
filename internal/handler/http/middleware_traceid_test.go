package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestWithTraceID_GeneratesID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newTestHandler(t, ctrl)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	h.withTraceID(next).ServeHTTP(rec, req)

	traceID := rec.Header().Get("X-Trace-ID")
	require.NotEmpty(t, traceID)
	_, err := uuid.Parse(traceID)
	assert.NoError(t, err, "generated trace id must be a uuid")
}

func TestWithTraceID_PropagatesIncomingID(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h, _, _ := newTestHandler(t, ctrl)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Trace-ID", "incoming-trace-id")
	rec := httptest.NewRecorder()

	h.withTraceID(next).ServeHTTP(rec, req)

	assert.Equal(t, "incoming-trace-id", rec.Header().Get("X-Trace-ID"))
}

func TestResponseWriter_RecordsStatusAndSize(t *testing.T) {
	rec := httptest.NewRecorder()
	lw := &responseWriter{ResponseWriter: rec}

	lw.WriteHeader(http.StatusTeapot)
	n, err := lw.Write([]byte("short and stout"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusTeapot, lw.status)
	assert.Equal(t, n, lw.size)
}

func TestResponseWriter_SecondWriteHeaderIgnored(t *testing.T) {
	rec := httptest.NewRecorder()
	lw := &responseWriter{ResponseWriter: rec}

	lw.WriteHeader(http.StatusNotFound)
	lw.WriteHeader(http.StatusOK)

	assert.Equal(t, http.StatusNotFound, lw.status)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResponseWriter_ImplicitOKOnWrite(t *testing.T) {
	rec := httptest.NewRecorder()
	lw := &responseWriter{ResponseWriter: rec}

	_, err := lw.Write([]byte("body"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, lw.status)
}
