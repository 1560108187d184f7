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


package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(viper.Reset)

	out := &bytes.Buffer{}
	root := newCmdTree("v0.0.0")
	root.SetOut(out)
	root.SetErr(io.Discard)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantIDs []string
		wantErr string
	}{
		{
			name:    "valid definitions as json",
			args:    []string{"validate", "-f", "../pkg/config/testdata/checks.yaml", "-o", "json"},
			wantIDs: []string{"node-version", "api-health"},
		},
		{
			name:    "valid definitions as yaml",
			args:    []string{"validate", "--definitions", "../pkg/config/testdata/checks.yaml"},
			wantIDs: []string{"node-version", "api-health"},
		},
		{
			name:    "invalid definitions",
			args:    []string{"validate", "-f", "../pkg/config/testdata/invalid.yaml"},
			wantErr: "check #1",
		},
		{
			name:    "missing file",
			args:    []string{"validate", "-f", "testdata/missing.yaml"},
			wantErr: "failed to open definitions file",
		},
		{
			name:    "unknown output",
			args:    []string{"validate", "-f", "../pkg/config/testdata/checks.yaml", "-o", "xml"},
			wantErr: ErrInvalidOutput.Error(),
		},
		{
			name:    "invalid log level",
			args:    []string{"validate", "--logLevel", "verbose"},
			wantErr: "invalid config",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.args...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			var got []map[string]any
			require.NoError(t, yaml.Unmarshal([]byte(out), &got))
			var ids []string
			for _, md := range got {
				ids = append(ids, md["id"].(string))
			}
			assert.Equal(t, tt.wantIDs, ids)
			assert.Equal(t, 3000, got[0]["timeout"])
			assert.Equal(t, 10000, got[1]["timeout"])
			assert.Equal(t, false, got[1]["cacheable"])
		})
	}
}

func TestSchema(t *testing.T) {
	out, err := execute(t, "schema", "-o", "json")
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "3.0.0", doc["openapi"])
	assert.Contains(t, doc["paths"], "/v1/checks")
	assert.Contains(t, doc["paths"], "/v1/checks/{id}")
}

func TestProbe(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.HandleFunc("/v1/checks", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := httptest.NewServer(mux)
	defer srv.Close()

	t.Run("healthy api", func(t *testing.T) {
		out, err := execute(t, "probe", "--apiAddress", srv.Listener.Addr().String(), "-o", "json")
		require.NoError(t, err)

		var res map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &res))
		assert.Equal(t, "pass", res["status"])
	})

	t.Run("pushes execution metrics", func(t *testing.T) {
		var (
			method string
			path   string
			body   []byte
		)
		gateway := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			method, path = r.Method, r.URL.Path
			body, _ = io.ReadAll(r.Body)
			w.WriteHeader(http.StatusOK)
		}))
		defer gateway.Close()

		_, err := execute(t, "probe", "--apiAddress", srv.Listener.Addr().String(), "--pushgateway", gateway.URL)
		require.NoError(t, err)

		assert.Equal(t, http.MethodPut, method)
		assert.Equal(t, "/metrics/job/vitals_probe", path)
		assert.Contains(t, string(body), "vitals_check_executions_total")
		assert.Contains(t, string(body), "vitals_check_duration_seconds")
		assert.Contains(t, string(body), "vitals-api")
	})

	t.Run("pushgateway unreachable", func(t *testing.T) {
		_, err := execute(t, "probe", "--apiAddress", srv.Listener.Addr().String(), "--pushgateway", "http://127.0.0.1:1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to push probe metrics")
	})

	t.Run("unreachable api without retries", func(t *testing.T) {
		_, err := execute(t, "probe", "--apiAddress", "127.0.0.1:1", "--retries", "0", "--timeout", "2s")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "probe finished with status fail")
	})

	t.Run("unreachable api", func(t *testing.T) {
		_, err := execute(t, "probe", "--apiAddress", "127.0.0.1:1", "--timeout", "2s")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "probe finished with status fail")
	})
}

func TestGenDocs(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "gen-docs", "--path", dir)
	require.NoError(t, err)

	for _, name := range []string{"vitals.md", "vitals_validate.md", "vitals_serve.md", "vitals_schema.md", "vitals_probe.md"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}
