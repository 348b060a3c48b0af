package container_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wwiii/pipeline/internal/container"
	pipelineerrors "github.com/wwiii/pipeline/internal/errors"
)

func TestHTTPProber_Probe(t *testing.T) {
	t.Parallel()

	t.Run("succeeds on 200", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"status":"healthy"}`))
		}))
		defer server.Close()

		prober := container.NewHTTPProber(time.Second)
		assert.NoError(t, prober.Probe(context.Background(), server.URL+"/health"))
	})

	t.Run("fails on 503", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		prober := container.NewHTTPProber(time.Second)
		err := prober.Probe(context.Background(), server.URL+"/health")

		require.Error(t, err)
		assert.ErrorIs(t, err, pipelineerrors.ErrHealthcheckFailed)
		assert.Contains(t, err.Error(), "status 503")
	})

	t.Run("fails when the endpoint is unreachable", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		server.Close() // closed before the probe

		prober := container.NewHTTPProber(time.Second)
		err := prober.Probe(context.Background(), server.URL+"/health")

		require.Error(t, err)
		assert.ErrorIs(t, err, pipelineerrors.ErrHealthcheckFailed)
	})
}
