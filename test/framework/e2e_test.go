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
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/vitals/pkg/api"
	"github.com/caas-team/vitals/pkg/checks"
)

// newSchemaAsserter builds an asserter from the served document the same way WithSchema does
func newSchemaAsserter(t *testing.T) *e2eHttpAsserter {
	t.Helper()
	doc, err := api.OpenAPI(context.Background(), "v0.0.0")
	require.NoError(t, err)

	data, err := json.Marshal(&doc)
	require.NoError(t, err)
	schema, err := openapi3.NewLoader().LoadFromData(data)
	require.NoError(t, err)

	router, err := gorillamux.NewRouter(schema)
	require.NoError(t, err)
	return &e2eHttpAsserter{schema: schema, router: router}
}

func TestE2eHttpAsserter_assertSchema(t *testing.T) {
	md := checks.Metadata{
		ID:       "node-version",
		Name:     "Node version",
		Domain:   checks.DomainLocal,
		Severity: checks.SeverityHigh,
		Timeout:  3 * time.Second,
		Tags:     []string{"fast"},
	}
	valid, err := json.Marshal([]checks.Metadata{md})
	require.NoError(t, err)
	single, err := json.Marshal(md)
	require.NoError(t, err)

	tests := []struct {
		name    string
		path    string
		status  int
		body    []byte
		wantErr bool
	}{
		{name: "valid list", path: "/v1/checks", status: http.StatusOK, body: valid},
		{name: "empty list", path: "/v1/checks", status: http.StatusOK, body: []byte("[]")},
		{name: "valid check", path: "/v1/checks/node-version", status: http.StatusOK, body: single},
		{name: "wrong item type", path: "/v1/checks", status: http.StatusOK, body: []byte(`[{"id": 1}]`), wantErr: true},
		{name: "object instead of list", path: "/v1/checks", status: http.StatusOK, body: single, wantErr: true},
		{name: "undocumented status", path: "/v1/checks", status: http.StatusTeapot, body: []byte("[]"), wantErr: true},
		{name: "unknown route", path: "/v2/checks", status: http.StatusOK, body: []byte("[]"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newSchemaAsserter(t)
			req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://localhost:8080"+tt.path, http.NoBody)
			require.NoError(t, err)

			err = a.assertSchema(req, &http.Response{StatusCode: tt.status}, tt.body)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
