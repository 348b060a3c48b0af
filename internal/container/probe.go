package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	pipelineerrors "github.com/wwiii/pipeline/internal/errors"
)

// Prober issues a single liveness probe against a URL.
// Injectable so the healthcheck gate can be tested without a container.
type Prober interface {
	// Probe returns nil when the endpoint answered with a success status.
	Probe(ctx context.Context, url string) error
}

// HTTPProber probes a liveness endpoint with one HTTP GET.
type HTTPProber struct {
	client *http.Client
}

// NewHTTPProber creates a prober with the given request timeout.
func NewHTTPProber(timeout time.Duration) *HTTPProber {
	return &HTTPProber{
		client: &http.Client{Timeout: timeout},
	}
}

// Probe issues one GET and succeeds on any 2xx status. No retries: the
// pipeline attempts every external interaction exactly once.
func (p *HTTPProber) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return pipelineerrors.Wrap(err, "failed to build probe request")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return pipelineerrors.Wrapf(pipelineerrors.ErrHealthcheckFailed, "probe %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return pipelineerrors.Wrap(pipelineerrors.ErrHealthcheckFailed,
			fmt.Sprintf("probe %s: status %d", url, resp.StatusCode))
	}
	return nil
}

// Ensure HTTPProber implements Prober.
var _ Prober = (*HTTPProber)(nil)
