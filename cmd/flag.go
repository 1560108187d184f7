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
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Flag maps a config key to its cli flag
type Flag struct {
	Config string
	Cli    string
}

type StringFlag struct {
	f *Flag
}

type StringPFlag struct {
	f  *Flag
	sh string
}

// Bind registers the flag as persistent flag of cmd and binds it to the config key
func (f *StringFlag) Bind(cmd *cobra.Command, value, usage string) {
	cmd.PersistentFlags().String(f.f.Cli, value, usage)
	if err := viper.BindPFlag(f.f.Config, cmd.PersistentFlags().Lookup(f.f.Cli)); err != nil {
		panic(err)
	}
}

func (f *Flag) String() *StringFlag {
	return &StringFlag{
		f: f,
	}
}

func (f *StringPFlag) Bind(cmd *cobra.Command, value, usage string) {
	cmd.PersistentFlags().StringP(f.f.Cli, f.sh, value, usage)
	if err := viper.BindPFlag(f.f.Config, cmd.PersistentFlags().Lookup(f.f.Cli)); err != nil {
		panic(err)
	}
}

func (f *Flag) StringP(shorthand string) *StringPFlag {
	return &StringPFlag{
		f:  f,
		sh: shorthand,
	}
}

func NewFlag(config, cli string) *Flag {
	return &Flag{
		Config: config,
		Cli:    cli,
	}
}

var (
	flagDefinitionsPath = NewFlag("definitions.path", "definitions")
	flagApiAddress      = NewFlag("api.address", "apiAddress")
	flagLogLevel        = NewFlag("log.level", "logLevel")
	flagLogFormat       = NewFlag("log.format", "logFormat")

	flagTelemetryExporter = NewFlag("telemetry.exporter", "telemetryExporter")
	flagTelemetryUrl      = NewFlag("telemetry.url", "telemetryUrl")
	flagTelemetryToken    = NewFlag("telemetry.token", "telemetryToken")
	flagTelemetryCertPath = NewFlag("telemetry.certPath", "telemetryCertPath")
)
