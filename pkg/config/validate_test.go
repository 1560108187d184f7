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

package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/caas-team/vitals/internal/logger"
	"github.com/caas-team/vitals/pkg/metrics"
)

func TestConfig_Setters(t *testing.T) {
	cfg := NewConfig()
	cfg.SetDefinitionsPath("checks.yaml")
	cfg.SetApiAddress(":8080")
	cfg.SetLogLevel("debug")
	cfg.SetLogFormat("text")
	cfg.SetTelemetry(metrics.Config{Exporter: metrics.STDOUT})

	want := &Config{
		Definitions: DefinitionsConfig{Path: "checks.yaml"},
		Api:         ApiConfig{ListeningAddress: ":8080"},
		Log:         LogConfig{Level: "debug", Format: "text"},
		Telemetry:   metrics.Config{Exporter: metrics.STDOUT},
	}
	assert.Equal(t, want, cfg)
}

func TestConfig_Validate(t *testing.T) {
	ctx, cancel := logger.NewContextWithLogger(context.Background())
	defer cancel()

	valid := Config{
		Definitions: DefinitionsConfig{Path: "checks.yaml"},
		Api:         ApiConfig{ListeningAddress: ":8080"},
		Log:         LogConfig{Level: "info", Format: "json"},
	}

	tests := []struct {
		name     string
		mutate   func(c *Config)
		wantErrs []error
	}{
		{
			name:   "config ok",
			mutate: func(*Config) {},
		},
		{
			name: "defaults are ok",
			mutate: func(c *Config) {
				c.Api.ListeningAddress = ""
				c.Log = LogConfig{}
			},
		},
		{
			name:     "definitions path missing",
			mutate:   func(c *Config) { c.Definitions.Path = " " },
			wantErrs: []error{ErrInvalidDefinitionsPath},
		},
		{
			name:     "api address without port",
			mutate:   func(c *Config) { c.Api.ListeningAddress = "localhost" },
			wantErrs: []error{ErrInvalidApiAddress},
		},
		{
			name:     "otlp exporter without url",
			mutate:   func(c *Config) { c.Telemetry = metrics.Config{Exporter: metrics.GRPC} },
			wantErrs: []error{ErrInvalidTelemetry},
		},
		{
			name: "all errors are reported",
			mutate: func(c *Config) {
				c.Definitions.Path = ""
				c.Log.Level = "verbose"
				c.Log.Format = "xml"
			},
			wantErrs: []error{ErrInvalidDefinitionsPath, ErrInvalidLogLevel, ErrInvalidLogFormat},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)

			err := c.Validate(ctx)
			if len(tt.wantErrs) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErrs {
				assert.ErrorIs(t, err, want)
			}
		})
	}
}
