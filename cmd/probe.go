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
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
	"github.com/spf13/cobra"

	"github.com/caas-team/vitals/internal/httpclient"
	"github.com/caas-team/vitals/internal/logger"
	"github.com/caas-team/vitals/pkg/checks"
	"github.com/caas-team/vitals/pkg/healthz"
	"github.com/caas-team/vitals/pkg/metrics"
)

// probeJob is the pushgateway job the probe metrics are grouped under
const probeJob = "vitals_probe"

// NewCmdProbe creates a new probe command
func NewCmdProbe() *cobra.Command {
	var (
		output      string
		timeout     time.Duration
		pushgateway string
		retry       = healthz.DefaultRetry
	)

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Probe a running vitals api",
		Long: "Runs the api self check once against the configured api address and prints its result.\n" +
			"Exits with an error unless the check passes.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cfg, err := setup(cmd)
			if err != nil {
				return err
			}
			log := logger.FromContext(ctx)

			def := healthz.Definition()
			def.Timeout = timeout
			c, err := healthz.New(def, cfg.Api.ListeningAddress, retry)
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			cm := metrics.NewCheckMetrics()
			reg.MustRegister(cm)

			client := &http.Client{}
			ctx = httpclient.IntoContext(ctx, client)
			res, err := checks.Run(ctx, metrics.Instrument(c, cm), nil)
			if err != nil {
				return err
			}
			log.DebugContext(ctx, "Probe finished", "status", res.Status)

			if pushgateway != "" {
				err = push.New(pushgateway, probeJob).Gatherer(reg).Client(client).PushContext(ctx)
				if err != nil {
					log.ErrorContext(ctx, "Failed to push probe metrics", "url", pushgateway, "error", err)
					return fmt.Errorf("failed to push probe metrics: %w", err)
				}
			}

			if err := encode(cmd.OutOrStdout(), output, res); err != nil {
				return err
			}
			if res.Status != checks.StatusPass {
				return fmt.Errorf("probe finished with status %s: %s", res.Status, res.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format, one of yaml, json")
	cmd.Flags().DurationVar(&timeout, "timeout", checks.DefaultTimeout, "The timeout of the probe")
	cmd.Flags().IntVar(&retry.Count, "retries", healthz.DefaultRetry.Count, "How often an unreachable endpoint is retried")
	cmd.Flags().DurationVar(&retry.Delay, "retryDelay", healthz.DefaultRetry.Delay, "The initial delay between retries, doubled on every retry")
	cmd.Flags().StringVar(&pushgateway, "pushgateway", "", "Url of a prometheus pushgateway receiving the execution metrics of the probe")

	return cmd
}
