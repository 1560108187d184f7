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

import "github.com/caas-team/vitals/pkg/metrics"

// Config holds the configuration of the vitals cli
type Config struct {
	Definitions DefinitionsConfig
	Api         ApiConfig
	Log         LogConfig
	Telemetry   metrics.Config
}

// DefinitionsConfig is the configuration of the check definitions file
type DefinitionsConfig struct {
	Path string
}

// ApiConfig is the configuration for the data API
type ApiConfig struct {
	ListeningAddress string
}

// LogConfig is the configuration of the logger
type LogConfig struct {
	Level  string
	Format string
}

// NewConfig creates a new Config
func NewConfig() *Config {
	return &Config{}
}

// SetDefinitionsPath sets the path of the check definitions file
func (c *Config) SetDefinitionsPath(path string) {
	c.Definitions.Path = path
}

// SetApiAddress sets the listening address of the api
func (c *Config) SetApiAddress(address string) {
	c.Api.ListeningAddress = address
}

// SetLogLevel sets the log level
func (c *Config) SetLogLevel(level string) {
	c.Log.Level = level
}

// SetLogFormat sets the log format
func (c *Config) SetLogFormat(format string) {
	c.Log.Format = format
}

// SetTelemetry sets the tracing configuration
func (c *Config) SetTelemetry(telemetry metrics.Config) {
	c.Telemetry = telemetry
}
