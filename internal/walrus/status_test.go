package walrus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    Status
	}{
		{
			name: "healthy publisher",
			handler: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodOptions, r.Method)
				w.WriteHeader(http.StatusOK)
			},
			want: StatusAvailable,
		},
		{
			name: "options not implemented still counts as up",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusMethodNotAllowed)
			},
			want: StatusAvailable,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			want: StatusUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := testClient(t, []string{srv.URL}, nil)
			assert.Equal(t, tt.want, c.CheckStatus(context.Background()))
		})
	}
}

func TestCheckStatusUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := srv.URL
	srv.Close()

	c := testClient(t, []string{deadURL}, nil)
	assert.Equal(t, StatusUnavailable, c.CheckStatus(context.Background()))
}

func TestCheckStatusTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// hold the request open until the probe gives up
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := NewClient(&Config{
		Endpoints:    NewEndpoints([]string{srv.URL}, nil),
		ProbeTimeout: 50 * time.Millisecond,
	})
	assert.Equal(t, StatusTimeout, c.CheckStatus(context.Background()))
}
