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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/caas-team/vitals/internal/logger"
	"github.com/caas-team/vitals/pkg/config"
	"github.com/caas-team/vitals/pkg/metrics"
)

var cfgFile string

// ErrInvalidOutput is returned for an unknown output format
var ErrInvalidOutput = errors.New("invalid output format, must be one of yaml, json")

func NewCmdRoot(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vitals",
		Short: "Vitals, the health check contract",
		Long: "Vitals validates health check definitions and describes their results.\n" +
			"The registered check definitions can be served via a read-only API.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.vitals.yaml)")
	flagDefinitionsPath.StringP("f").Bind(rootCmd, "checks.yaml", "The path to the check definitions file")
	flagApiAddress.String().Bind(rootCmd, ":8080", "api: The address the server is listening on")
	flagLogLevel.String().Bind(rootCmd, "info", "The log level, one of debug, info, warn, error")
	flagLogFormat.String().Bind(rootCmd, "json", "The log format, one of json, text")

	return rootCmd
}

// Execute adds all child commands to the root command
// and executes the cmd tree
func Execute(version string) {
	cobra.OnInitialize(initConfig)
	cmd := newCmdTree(version)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCmdTree(version string) *cobra.Command {
	cmd := NewCmdRoot(version)
	cmd.AddCommand(NewCmdValidate())
	cmd.AddCommand(NewCmdSchema(version))
	cmd.AddCommand(NewCmdServe(version))
	cmd.AddCommand(NewCmdProbe())
	cmd.AddCommand(NewCmdGenDocs(cmd))
	return cmd
}

// initConfig reads in the config file and the VITALS_ prefixed env variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vitals")
	}

	viper.SetEnvPrefix("VITALS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			cobra.CheckErr(err)
		}
		return
	}
	fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
}

// newConfig builds the config from flags, env and config file
func newConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.SetDefinitionsPath(viper.GetString(flagDefinitionsPath.Config))
	cfg.SetApiAddress(viper.GetString(flagApiAddress.Config))
	cfg.SetLogLevel(viper.GetString(flagLogLevel.Config))
	cfg.SetLogFormat(viper.GetString(flagLogFormat.Config))
	cfg.SetTelemetry(metrics.Config{
		Exporter: metrics.Exporter(viper.GetString(flagTelemetryExporter.Config)),
		Url:      viper.GetString(flagTelemetryUrl.Config),
		Token:    viper.GetString(flagTelemetryToken.Config),
		CertPath: viper.GetString(flagTelemetryCertPath.Config),
	})
	return cfg
}

// setup validates the config and returns a context carrying the configured logger
func setup(cmd *cobra.Command) (context.Context, *config.Config, error) {
	cfg := newConfig()
	log := logger.NewLogger(logger.NewHandler(cmd.ErrOrStderr(), cfg.Log.Format, cfg.Log.Level))
	ctx := logger.IntoContext(cmd.Context(), log)

	if err := cfg.Validate(ctx); err != nil {
		log.ErrorContext(ctx, "Error while validating the config", "error", err)
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	return ctx, cfg, nil
}

// encode writes v as yaml or json
func encode(w io.Writer, output string, v any) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutput, output)
	}
}
