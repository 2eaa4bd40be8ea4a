// Package executor performs live HTTP calls and classifies their outcomes
// into the shared error taxonomy.
package executor

import (
	"context"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/harborlab/netkit/internal/common"
	"github.com/harborlab/netkit/internal/endpoint"
	"github.com/harborlab/netkit/internal/fixture"
	"github.com/harborlab/netkit/internal/httpc"
	"github.com/harborlab/netkit/internal/neterr"
)

// Config carries everything an Executor needs. All fields are read-only
// after construction.
type Config struct {
	Host        endpoint.Host
	Client      httpc.Httpc
	FixtureRoot string
	Logger      *common.Logger
}

// Executor issues real HTTP calls. Every call builds a fresh, non-caching
// session: no response cache, no credential reuse across calls. The only
// cross-call state is the logger and the static host configuration, both
// read-only, so one Executor is safe to share across concurrent callers
// without locking.
type Executor struct {
	host   endpoint.Host
	client httpc.Httpc
	root   string
	logger *common.Logger
}

// New builds an Executor from cfg, falling back to the default logger.
func New(cfg Config) *Executor {
	logger := cfg.Logger
	if logger == nil {
		logger = common.GetLogger()
	}
	return &Executor{
		host:   cfg.Host,
		client: cfg.Client,
		root:   cfg.FixtureRoot,
		logger: logger.WithComponent("executor"),
	}
}

// Host returns the static host configuration the executor was built with.
func (x *Executor) Host() endpoint.Host { return x.host }

// Get issues a GET and returns the body bytes on any 2xx status.
func (x *Executor) Get(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	return x.do(ctx, http.MethodGet, url, headers, nil)
}

// Post issues a POST with the given body bytes attached.
func (x *Executor) Post(ctx context.Context, url string, headers map[string]string, body []byte) ([]byte, error) {
	return x.do(ctx, http.MethodPost, url, headers, body)
}

// Ping issues a HEAD request as a reachability gate. Success is strictly
// "request completed with a 2xx status"; every other outcome, transport
// failure or non-2xx alike, narrows to no-network.
func (x *Executor) Ping(ctx context.Context, url string) error {
	logger := x.logger.WithRequest(http.MethodHead, url)
	resp, err := x.request(ctx, nil, nil).Head(url)
	if err != nil {
		logger.Debug("ping transport failure", "error", err)
		return neterr.NoNetwork()
	}
	if !is2xx(resp.StatusCode()) {
		logger.Debug("ping rejected", "status_code", resp.StatusCode())
		return neterr.NoNetwork()
	}
	return nil
}

// LoadLocalFixture reads a named fixture, from the executor's configured
// root when none is given.
func (x *Executor) LoadLocalFixture(name, root string) ([]byte, error) {
	if root == "" {
		root = x.root
	}
	return fixture.Load(name, root)
}

func (x *Executor) do(ctx context.Context, method, url string, headers map[string]string, body []byte) ([]byte, error) {
	logger := x.logger.WithRequest(method, url)
	logger.Debug("sending request", "headers", common.MaskHeaders(headers), "body_size", len(body))

	req := x.request(ctx, headers, body)

	var resp *resty.Response
	var err error
	switch method {
	case http.MethodPost:
		resp, err = req.Post(url)
	default:
		resp, err = req.Get(url)
	}
	if err != nil {
		// Cancellation and timeouts land here as well.
		logger.Debug("transport failure", "error", err)
		return nil, neterr.Transport(err)
	}

	status := resp.StatusCode()
	bodyBytes := resp.Body()
	logger.Debug("received response", "status_code", status, "response_size", len(bodyBytes))

	if !is2xx(status) {
		return nil, neterr.Server(bodyBytes)
	}
	return bodyBytes, nil
}

// request builds a single-use resty request on a fresh client.
func (x *Executor) request(ctx context.Context, headers map[string]string, body []byte) *resty.Request {
	req := x.client.New().R().SetContext(ctx)
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}
	if body != nil {
		req.SetBody(body)
	}
	return req
}

func is2xx(status int) bool {
	return status >= 200 && status <= 299
}
