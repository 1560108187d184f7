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
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/vitals/internal/helper"
	"github.com/caas-team/vitals/internal/httpclient"
	"github.com/caas-team/vitals/pkg/checks"
)

func TestNew(t *testing.T) {
	c, err := New(Definition(), ":9090", DefaultRetry)
	require.NoError(t, err)
	assert.Equal(t, CheckID, c.ID())
	assert.Equal(t, "localhost:9090", c.addr)
	assert.Equal(t, []string{"self"}, c.Tags())
	assert.False(t, c.IsHealable())
	assert.Nil(t, c.Healer())

	def := Definition()
	def.Severity = ""
	_, err = New(def, ":9090", DefaultRetry)
	assert.ErrorIs(t, err, checks.ErrValidation)
}

func TestCheck_Execute(t *testing.T) {
	tests := []struct {
		name       string
		responders map[string]httpmock.Responder
		wantStatus checks.Status
		wantRec    string
		// wantCalls is the expected number of requests to /metrics and /v1/checks
		wantCalls  [2]int
	}{
		{
			name: "healthy",
			responders: map[string]httpmock.Responder{
				"http://localhost:8080/metrics":   httpmock.NewStringResponder(http.StatusOK, http.StatusText(http.StatusOK)),
				"http://localhost:8080/v1/checks": httpmock.NewStringResponder(http.StatusOK, "[]"),
			},
			wantStatus: checks.StatusPass,
			wantCalls:  [2]int{1, 1},
		},
		{
			name: "recovers after retry",
			responders: map[string]httpmock.Responder{
				"http://localhost:8080/metrics": httpmock.NewErrorResponder(errors.New("connection refused")).
					Then(httpmock.NewStringResponder(http.StatusOK, http.StatusText(http.StatusOK))),
				"http://localhost:8080/v1/checks": httpmock.NewErrorResponder(errors.New("connection refused")).
					Then(httpmock.NewErrorResponder(errors.New("connection refused"))).
					Then(httpmock.NewStringResponder(http.StatusOK, "[]")),
			},
			wantStatus: checks.StatusPass,
			wantCalls:  [2]int{2, 3},
		},
		{
			name: "unhealthy",
			responders: map[string]httpmock.Responder{
				"http://localhost:8080/metrics":   httpmock.NewStringResponder(http.StatusServiceUnavailable, http.StatusText(http.StatusServiceUnavailable)),
				"http://localhost:8080/v1/checks": httpmock.NewStringResponder(http.StatusOK, "[]"),
			},
			wantStatus: checks.StatusWarning,
			wantRec:    "inspect the api logs",
			wantCalls:  [2]int{1, 1},
		},
		{
			name: "unreachable",
			responders: map[string]httpmock.Responder{
				"http://localhost:8080/metrics":   httpmock.NewErrorResponder(errors.New("connection refused")),
				"http://localhost:8080/v1/checks": httpmock.NewErrorResponder(errors.New("connection refused")),
			},
			wantStatus: checks.StatusFail,
			wantRec:    "start the api with `vitals serve`",
			wantCalls:  [2]int{3, 3},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := httpmock.NewMockTransport()
			for u, r := range tt.responders {
				transport.RegisterResponder(http.MethodGet, u, r)
			}
			ctx := httpclient.IntoContext(context.Background(), &http.Client{Transport: transport})

			c, err := New(Definition(), ":8080", helper.RetryConfig{Count: 2, Delay: time.Millisecond})
			require.NoError(t, err)

			res, err := checks.Run(ctx, c, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, res.Status)
			assert.Equal(t, tt.wantRec, res.Recommendation)
			assert.Equal(t, tt.wantCalls[0], transport.GetCallCountInfo()["GET http://localhost:8080/metrics"])
			assert.Equal(t, tt.wantCalls[1], transport.GetCallCountInfo()["GET http://localhost:8080/v1/checks"])
		})
	}
}

func Test_formatAddress(t *testing.T) {
	tests := []struct {
		name string
		addr string
		want string
	}{
		{
			name: "empty",
			addr: "",
			want: "localhost:8080",
		},
		{
			name: "localhost",
			addr: "localhost",
			want: "localhost:8080",
		},
		{
			name: "ipv4",
			addr: "10.0.1.2:8080",
			want: "localhost:8080",
		},
		{
			name: "loopback ip",
			addr: "127.0.0.1",
			want: "127.0.0.1:8080",
		},
		{
			name: "ipv6",
			addr: "::1",
			want: "[::1]:8080",
		},
		{
			name: "ipv6 with port",
			addr: "[::1]:8080",
			want: "localhost:8080",
		},
		{
			name: "port",
			addr: ":9090",
			want: "localhost:9090",
		},
		{
			name: "host and port",
			addr: "example.com:8080",
			want: "localhost:8080",
		},
		{
			name: "kubernetes service",
			addr: "example-service",
			want: "localhost:8080",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatAddress(tt.addr); got != tt.want {
				t.Errorf("formatAddress() = %v, want %v", got, tt.want)
			}
		})
	}
}
