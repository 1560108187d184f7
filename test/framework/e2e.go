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


package framework

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/google/go-cmp/cmp"

	"github.com/caas-team/vitals/pkg/checks"
	"github.com/caas-team/vitals/pkg/config"
	"github.com/caas-team/vitals/pkg/vitals"
)

// E2E is an end-to-end test.
type E2E struct {
	t           *testing.T
	config      config.Config
	vitals      *vitals.Vitals
	definitions []*DefinitionBuilder
	mu          sync.Mutex
	running     bool
}

// WithDefinitions sets the check definitions written to the definitions file.
func (t *E2E) WithDefinitions(builders ...*DefinitionBuilder) *E2E {
	t.definitions = append(t.definitions, builders...)
	return t
}

// Run writes the definitions file and runs vitals.
// Runs until the context is canceled.
func (t *E2E) Run(ctx context.Context) error {
	if t.isRunning() {
		t.t.Fatal("E2E.Run must be called once")
	}

	if err := t.writeDefinitions(); err != nil {
		t.t.Fatalf("Failed to write definitions: %v", err)
	}

	defs, err := config.NewFileLoader(&t.config).Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load definitions: %w", err)
	}

	v, err := vitals.New(&t.config, defs, "e2e")
	if err != nil {
		return fmt.Errorf("failed to create vitals: %w", err)
	}

	t.mu.Lock()
	t.vitals = v
	t.running = true
	t.mu.Unlock()
	return v.Run(ctx)
}

// AwaitStartup waits for the provided URL to be ready.
//
// Must be called after the e2e test started with [E2E.Run].
func (t *E2E) AwaitStartup(u string, failureTimeout time.Duration) *E2E {
	t.t.Helper()
	// To ensure the goroutine is started before we are checking if the test is running.
	const initialDelay = 100 * time.Millisecond
	<-time.After(initialDelay)
	if !t.isRunning() {
		t.t.Fatal("E2E.AwaitStartup must be called after E2E.Run")
	}

	const retryInterval = 100 * time.Millisecond
	start := time.Now()
	deadline := start.Add(failureTimeout)

	for {
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, u, http.NoBody)
		if err != nil {
			t.t.Fatalf("Failed to create request: %v", err)
			return t
		}

		resp, err := http.DefaultClient.Do(req)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				t.t.Logf("%s is ready after %v", u, time.Since(start))
				return t
			}
			err = fmt.Errorf("status %d", resp.StatusCode)
		}
		if time.Now().After(deadline) {
			t.t.Errorf("%s is not ready after %v: %v", u, failureTimeout, err)
			return t
		}
		<-time.After(retryInterval)
	}
}

// writeDefinitions writes the definitions file to the configured path.
func (t *E2E) writeDefinitions() error {
	const fileMode = 0o755
	path := t.config.Definitions.Path
	err := os.MkdirAll(filepath.Dir(path), fileMode)
	if err != nil {
		return fmt.Errorf("failed to create %q: %w", filepath.Dir(path), err)
	}

	err = os.WriteFile(path, definitionsYAML(t.t, t.definitions), fileMode)
	if err != nil {
		return fmt.Errorf("failed to write %q: %w", path, err)
	}
	return nil
}

// isRunning returns true if the test is running.
func (t *E2E) isRunning() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// e2eHttpAsserter is an HTTP asserter for end-to-end tests.
type e2eHttpAsserter struct {
	e2e    *E2E
	url    string
	want   any
	schema *openapi3.T
	router routers.Router
}

// HttpAssertion creates a new HTTP assertion for the given URL.
func (t *E2E) HttpAssertion(u string) *e2eHttpAsserter {
	return &e2eHttpAsserter{e2e: t, url: u}
}

// Assert asserts the status code and optional validations against the response.
// Optional validations must be set before calling this method.
//
// Must be called after the e2e test started with [E2E.Run].
func (a *e2eHttpAsserter) Assert(status int) {
	a.e2e.t.Helper()
	if !a.e2e.isRunning() {
		a.e2e.t.Fatal("e2eHttpAsserter.Assert must be called after E2E.Run")
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, a.url, http.NoBody)
	if err != nil {
		a.e2e.t.Fatalf("Failed to create request: %v", err)
		return
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		a.e2e.t.Errorf("Failed to get %s: %v", a.url, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != status {
		a.e2e.t.Errorf("Want status code %d for %s, got %d", status, a.url, resp.StatusCode)
		return
	}
	a.e2e.t.Logf("Got status code %d for %s", resp.StatusCode, a.url)

	if status != http.StatusOK {
		return
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		a.e2e.t.Errorf("Failed to read response body: %v", err)
		return
	}

	if a.schema != nil && a.router != nil {
		if err = a.assertSchema(req, resp, data); err != nil {
			a.e2e.t.Errorf("Response from %q does not match schema: %v", a.url, err)
			return
		}
	}

	if a.want != nil {
		if err = a.assertBody(data); err != nil {
			a.e2e.t.Errorf("Unexpected response from %q: %v", a.url, err)
		}
	}
}

// WithSchema fetches the OpenAPI schema and validates the response against it.
func (a *e2eHttpAsserter) WithSchema() *e2eHttpAsserter {
	a.e2e.t.Helper()
	schema, err := a.fetchSchema()
	if err != nil {
		a.e2e.t.Fatalf("Failed to fetch OpenAPI schema: %v", err)
	}

	router, err := gorillamux.NewRouter(schema)
	if err != nil {
		a.e2e.t.Fatalf("Failed to create router from OpenAPI schema: %v", err)
	}

	a.schema = schema
	a.router = router
	return a
}

// WithMetadata sets the metadata of a single check expected in the response body.
func (a *e2eHttpAsserter) WithMetadata(md checks.Metadata) *e2eHttpAsserter {
	a.want = md
	return a
}

// WithMetadataList sets the list of metadata expected in the response body.
func (a *e2eHttpAsserter) WithMetadataList(mds []checks.Metadata) *e2eHttpAsserter {
	if mds == nil {
		mds = []checks.Metadata{}
	}
	a.want = mds
	return a
}

// fetchSchema fetches the OpenAPI schema from the server.
func (a *e2eHttpAsserter) fetchSchema() (*openapi3.T, error) {
	ctx := context.Background()
	u, err := url.Parse(a.url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	u.Path = "/openapi"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to GET OpenAPI schema: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAPI schema: %w", err)
	}

	loader := openapi3.NewLoader()
	schema, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI schema: %w", err)
	}

	if err = schema.Validate(ctx); err != nil {
		return nil, fmt.Errorf("OpenAPI schema validation error: %w", err)
	}

	return schema, nil
}

// assertSchema asserts the response body against the OpenAPI schema.
func (a *e2eHttpAsserter) assertSchema(req *http.Request, resp *http.Response, data []byte) error {
	route, _, err := a.router.FindRoute(req)
	if err != nil {
		return fmt.Errorf("failed to find route: %w", err)
	}

	responseRef := route.Operation.Responses.Get(resp.StatusCode)
	if responseRef == nil || responseRef.Value == nil {
		return fmt.Errorf("no response defined in OpenAPI schema for status code %d", resp.StatusCode)
	}

	mediaType := responseRef.Value.Content.Get("application/json")
	if mediaType == nil {
		return errors.New("no media type defined in OpenAPI schema for Content-Type 'application/json'")
	}

	var body any
	if err = json.Unmarshal(data, &body); err != nil {
		return fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	if err = mediaType.Schema.Value.VisitJSON(body); err != nil {
		return fmt.Errorf("response body does not match schema: %w", err)
	}

	return nil
}

// assertBody compares the response body with the expected value in their json form.
func (a *e2eHttpAsserter) assertBody(data []byte) error {
	want, err := json.Marshal(a.want)
	if err != nil {
		return fmt.Errorf("failed to marshal expected body: %w", err)
	}

	var w, g any
	if err = json.Unmarshal(want, &w); err != nil {
		return err
	}
	if err = json.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}

	if diff := cmp.Diff(w, g); diff != "" {
		return fmt.Errorf("body mismatch (-want +got):\n%s", diff)
	}
	return nil
}
