package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeZeebe struct {
	err error
}

func (f fakeZeebe) HealthCheck(context.Context) error { return f.err }

func TestServeMux(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		ready    bool
		zeebeErr error
		want     int
	}{
		{"health", "/health", false, nil, http.StatusOK},
		{"ready", "/ready", true, nil, http.StatusOK},
		{"ready while stopping", "/ready", false, nil, http.StatusServiceUnavailable},
		{"ready without broker", "/ready", true, errors.New("unavailable"), http.StatusServiceUnavailable},
		{"metrics", "/metrics", true, nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ready atomic.Bool
			ready.Store(tt.ready)
			mux := newServeMux(fakeZeebe{err: tt.zeebeErr}, &ready)

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
