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
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/caas-team/vitals/internal/logger"
	"github.com/caas-team/vitals/pkg/config"
	"github.com/caas-team/vitals/pkg/vitals"
)

// NewCmdServe creates a new serve command
func NewCmdServe(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the check definitions",
		Long: "Serves the metadata of all check definitions, the OpenAPI specification\n" +
			"and prometheus metrics until SIGINT or SIGTERM is received",
		Args: cobra.NoArgs,
		RunE: runServe(version),
	}

	flagTelemetryExporter.String().Bind(cmd, "", "telemetry: The exporter for traces, one of http, grpc, stdout, noop")
	flagTelemetryUrl.String().Bind(cmd, "", "telemetry: The address of the otlp collector")
	flagTelemetryToken.String().Bind(cmd, "", "telemetry: The bearer token to authenticate at the collector")
	flagTelemetryCertPath.String().Bind(cmd, "", "telemetry: The path to the tls certificate of the collector")

	return cmd
}

// runServe is the entry point to start vitals
func runServe(version string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx, cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		log := logger.FromContext(ctx)

		defs, err := config.NewFileLoader(cfg).Load(ctx)
		if err != nil {
			return err
		}

		v, err := vitals.New(cfg, defs, version)
		if err != nil {
			log.ErrorContext(ctx, "Failed to create vitals", "error", err)
			return err
		}

		ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
		defer cancel()

		log.InfoContext(ctx, "Running vitals", "address", cfg.Api.ListeningAddress)
		return v.Run(ctx)
	}
}

