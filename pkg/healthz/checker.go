// vitals
// (C) 2024, Deutsche Telekom IT GmbH
//
// Deutsche Telekom IT GmbH and all other contributors /
// copyright owners license this file to you under the Apache
// License, Version 2.0 (the "License"); you may not use this
// file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.


package healthz

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/caas-team/vitals/internal/helper"
	"github.com/caas-team/vitals/internal/httpclient"
	"github.com/caas-team/vitals/internal/logger"
	"github.com/caas-team/vitals/pkg/checks"
)

// CheckID is the id of the api self check
const CheckID = "vitals-api"

// DefaultRetry retries unreachable endpoints twice with a short backoff
var DefaultRetry = helper.RetryConfig{
	Count: 2,
	Delay: 100 * time.Millisecond,
}

var _ checks.Check = (*Check)(nil)

// Check probes the endpoints of a running vitals api
type Check struct {
	checks.Base
	addr  string
	retry helper.RetryConfig
}

// Definition returns the default definition of the api self check
func Definition() checks.Definition {
	return checks.Definition{
		ID:          CheckID,
		Name:        "Vitals API",
		Description: "Verifies that the vitals api serves its metrics and check endpoints",
		Domain:      checks.DomainServices,
		Severity:    checks.SeverityHigh,
		Tags:        []string{"self"},
	}
}

// New creates a new healthz check
// address is the listening address of the API, unreachable endpoints are retried with rc
func New(def checks.Definition, address string, rc helper.RetryConfig) (*Check, error) {
	b, err := checks.NewBase(def)
	if err != nil {
		return nil, err
	}
	return &Check{Base: b, addr: formatAddress(address), retry: rc}, nil
}

// endpoints are the paths probed on every execution
var endpoints = []string{"/metrics", "/v1/checks"}

// Execute probes all endpoints concurrently. The http.Client is taken from the context.
func (c *Check) Execute(ctx context.Context, _ any) (checks.Result, error) {
	log := logger.FromContext(ctx)
	client := httpclient.FromContext(ctx)

	var (
		mu    sync.Mutex
		g     errgroup.Group
		codes = make(map[string]int, len(endpoints))
	)
	for _, path := range endpoints {
		g.Go(func() error {
			var code int
			probeRetry := helper.Retry(func(ctx context.Context) (err error) {
				code, err = c.probe(ctx, client, path)
				return err
			}, c.retry)

			err := probeRetry(ctx)
			if err != nil {
				log.WarnContext(ctx, fmt.Sprintf("Endpoint is unreachable after %d retries", c.retry.Count), "path", path, "error", err)
			}
			mu.Lock()
			codes[path] = code
			mu.Unlock()
			return err
		})
	}
	err := g.Wait()

	healthy := true
	for _, code := range codes {
		healthy = healthy && code == http.StatusOK
	}

	switch {
	case err != nil && ctx.Err() != nil:
		return c.Error("api probe was interrupted", err), nil
	case err != nil:
		return c.Fail(fmt.Sprintf("api at %s is unreachable", c.addr),
			checks.WithDetails(map[string]any{"endpoints": codes, "error": err.Error()}),
			checks.WithRecommendation("start the api with `vitals serve`"),
		), nil
	case !healthy:
		return c.Warning(fmt.Sprintf("api at %s answers with unexpected status codes", c.addr),
			checks.WithDetails(map[string]any{"endpoints": codes}),
			checks.WithRecommendation("inspect the api logs"),
		), nil
	}
	return c.Pass(fmt.Sprintf("api at %s is healthy", c.addr), map[string]any{"endpoints": codes}), nil
}

// probe requests the given path and returns the status code
func (c *Check) probe(ctx context.Context, client *http.Client, path string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("http://%s%s", c.addr, path), http.NoBody)
	if err != nil {
		return 0, err
	}

	resp, err := client.Do(req) //nolint:bodyclose // closed in defer
	if err != nil {
		return 0, err
	}
	defer func(b io.ReadCloser) {
		err = b.Close()
		if err != nil {
			logger.FromContext(ctx).ErrorContext(ctx, "Failed to close response body", "error", err)
		}
	}(resp.Body)

	return resp.StatusCode, nil
}

// defaultPort is the port of the api when the address does not name one
const defaultPort = "8080"

// formatAddress formats the address to be used in the healthz check
func formatAddress(addr string) string {
	// Loopback addresses without a port are probed on the default api port
	if addr == "localhost" || addr == "127.0.0.1" || addr == net.IPv6loopback.String() {
		return net.JoinHostPort(addr, defaultPort)
	}

	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return net.JoinHostPort("localhost", defaultPort)
	}

	return net.JoinHostPort("localhost", port)
}
