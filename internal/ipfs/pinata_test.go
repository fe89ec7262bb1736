package ipfs

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{name: "nothing set", cfg: Config{}, want: false},
		{name: "jwt only", cfg: Config{JWT: "jwt"}, want: true},
		{name: "key and secret", cfg: Config{APIKey: "k", APISecret: "s"}, want: true},
		{name: "key without secret", cfg: Config{APIKey: "k"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.Configured())
		})
	}
}

func TestPinWithoutCredentials(t *testing.T) {
	c := NewClient(&Config{})
	_, err := c.Pin(context.Background(), []byte("data"), "report.pdf")
	assert.ErrorIs(t, err, ErrNoCredentials)
}

func TestPinWithJWT(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-jwt", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("pinata_api_key"), "jwt wins over key auth")

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		data, _ := io.ReadAll(file)
		assert.Equal(t, []byte("pdf bytes"), data)
		assert.Equal(t, "report.pdf", header.Filename)
		assert.Contains(t, r.FormValue("pinataMetadata"), `"report.pdf"`)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"IpfsHash":"QmTest123","PinSize":9,"Timestamp":"2026-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	c := NewClient(&Config{JWT: "test-jwt"})
	c.pinURL = srv.URL

	cid, err := c.Pin(context.Background(), []byte("pdf bytes"), "report.pdf")
	require.NoError(t, err)
	assert.Equal(t, "QmTest123", cid)
}

func TestPinWithKeyPair(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "api-key", r.Header.Get("pinata_api_key"))
		assert.Equal(t, "api-secret", r.Header.Get("pinata_secret_api_key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"IpfsHash":"QmKeyPair"}`))
	}))
	defer srv.Close()

	c := NewClient(&Config{APIKey: "api-key", APISecret: "api-secret"})
	c.pinURL = srv.URL

	cid, err := c.Pin(context.Background(), []byte("x"), "f.pdf")
	require.NoError(t, err)
	assert.Equal(t, "QmKeyPair", cid)
}

func TestPinRejectedByService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(&Config{JWT: "bad"})
	c.pinURL = srv.URL

	_, err := c.Pin(context.Background(), []byte("x"), "f.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestPinMissingHash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(&Config{JWT: "jwt"})
	c.pinURL = srv.URL

	_, err := c.Pin(context.Background(), []byte("x"), "f.pdf")
	assert.Error(t, err)
}

func TestGatewayURL(t *testing.T) {
	c := NewClient(&Config{})
	assert.Equal(t, "https://ipfs.io/ipfs/QmX", c.GatewayURL("QmX"))

	c = NewClient(&Config{Gateway: "https://gateway.pinata.cloud/ipfs/"})
	assert.Equal(t, "https://gateway.pinata.cloud/ipfs/QmX", c.GatewayURL("QmX"))
}
