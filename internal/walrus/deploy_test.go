package walrus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordSleeps(c *Client) *[]time.Duration {
	var delays []time.Duration
	c.SetSleep(func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	})
	return &delays
}

func TestDeploySuccess(t *testing.T) {
	var gotEpochs, gotWallet string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEpochs = r.URL.Query().Get("epochs")
		gotWallet = r.URL.Query().Get("send_object_to")
		w.Write([]byte(newlyCreatedBody))
	}))
	defer srv.Close()

	c := testClient(t, []string{srv.URL}, nil)
	payload := make([]byte, 1<<20)
	meta, err := c.Deploy(context.Background(), payload, 10, "0xwallet")
	require.NoError(t, err)

	assert.Equal(t, "10", gotEpochs)
	assert.Equal(t, "0xwallet", gotWallet)
	assert.Equal(t, "blob-777", meta.BlobID)
	assert.Equal(t, 10, meta.StorageEpochs)
	require.NotNil(t, meta.DeploymentCost)
	assert.Equal(t, "0.101", meta.DeploymentCost.String())
}

func TestDeployRetriesOn503WithBackoffSchedule(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) <= 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(newlyCreatedBody))
	}))
	defer srv.Close()

	c := testClient(t, []string{srv.URL}, nil)
	delays := recordSleeps(c)

	meta, err := c.Deploy(context.Background(), []byte("payload"), 5, "0xwallet")
	require.NoError(t, err)
	assert.Equal(t, "blob-777", meta.BlobID)
	assert.EqualValues(t, 3, atomic.LoadInt32(&hits))
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, *delays,
		"backoff doubles from the base on each retry")
}

func TestDeployExhaustsRetryBudget(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := testClient(t, []string{srv.URL}, nil)
	delays := recordSleeps(c)

	_, err := c.Deploy(context.Background(), []byte("payload"), 5, "0xwallet")
	require.Error(t, err)

	var ue *UploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, KindMaxRetriesExceeded, ue.Kind)
	assert.Equal(t, 4, ue.Attempts, "first attempt plus three retries")
	assert.EqualValues(t, 4, atomic.LoadInt32(&hits))
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second, 8 * time.Second}, *delays)
}

func TestDeployNonTransientStatusFailsImmediately(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := testClient(t, []string{srv.URL}, nil)
	delays := recordSleeps(c)

	_, err := c.Deploy(context.Background(), []byte("payload"), 5, "0xwallet")
	require.Error(t, err)

	var ue *UploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, KindDeploymentFailed, ue.Kind)
	assert.Equal(t, http.StatusBadRequest, ue.HTTPStatus)
	assert.Equal(t, 1, ue.Attempts)
	assert.EqualValues(t, 1, atomic.LoadInt32(&hits))
	assert.Empty(t, *delays, "a hard rejection is never retried")
}

func TestDeployTransportErrorRetriedThenSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadURL := srv.URL
	srv.Close()

	c := testClient(t, []string{deadURL}, nil)
	delays := recordSleeps(c)

	_, err := c.Deploy(context.Background(), []byte("payload"), 5, "0xwallet")
	require.Error(t, err)

	var ue *UploadError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, KindNetworkUnavailable, ue.Kind)
	assert.Equal(t, 4, ue.Attempts)
	assert.Len(t, *delays, 3)
}

func TestDeployPinsCanonicalEndpoint(t *testing.T) {
	var primaryHits, backupHits int32
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&primaryHits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer primary.Close()
	backup := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&backupHits, 1)
		w.Write([]byte(newlyCreatedBody))
	}))
	defer backup.Close()

	c := testClient(t, []string{primary.URL, backup.URL}, nil)
	recordSleeps(c)

	_, err := c.Deploy(context.Background(), []byte("payload"), 5, "0xwallet")
	require.Error(t, err)

	assert.EqualValues(t, 4, atomic.LoadInt32(&primaryHits))
	assert.EqualValues(t, 0, atomic.LoadInt32(&backupHits),
		"a paid upload never fails over, that could charge twice")
}

func TestDeployCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := testClient(t, []string{srv.URL}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	c.SetSleep(func(ctx context.Context, d time.Duration) error {
		cancel()
		return ctx.Err()
	})

	_, err := c.Deploy(ctx, []byte("payload"), 5, "0xwallet")
	require.Error(t, err)
	assert.Equal(t, KindNetworkTimeout, KindOf(err))
}
