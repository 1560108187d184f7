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

package metrics

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/caas-team/vitals/pkg/checks"
)

var _ prometheus.Collector = (*CheckMetrics)(nil)

// ErrMetricNotFound is returned when no metric exists for a check
type ErrMetricNotFound struct {
	Label string
}

func (e ErrMetricNotFound) Error() string {
	return fmt.Sprintf("metric with label %q not found", e.Label)
}

// CheckMetrics holds the prometheus metrics of check executions
type CheckMetrics struct {
	executions *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	info       *prometheus.GaugeVec
}

// NewCheckMetrics creates the collectors of check executions
func NewCheckMetrics() *CheckMetrics {
	return &CheckMetrics{
		executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vitals_check_executions_total",
				Help: "Number of check executions by resulting status",
			},
			[]string{"check", "domain", "severity", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "vitals_check_duration_seconds",
				Help:    "Duration of check executions",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"check"},
		),
		info: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "vitals_check_info",
				Help: "Definition of a known check, always 1",
			},
			[]string{"check", "domain", "severity", "healing_tier"},
		),
	}
}

// Describe implements prometheus.Collector
func (m *CheckMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.executions.Describe(ch)
	m.duration.Describe(ch)
	m.info.Describe(ch)
}

// Collect implements prometheus.Collector
func (m *CheckMetrics) Collect(ch chan<- prometheus.Metric) {
	m.executions.Collect(ch)
	m.duration.Collect(ch)
	m.info.Collect(ch)
}

// Register exposes the definition of a check
func (m *CheckMetrics) Register(md checks.Metadata) {
	m.info.WithLabelValues(md.ID, md.Domain.String(), md.Severity.String(), strconv.Itoa(md.HealingTier)).Set(1)
}

// Remove removes all metrics of the check with the given id
func (m *CheckMetrics) Remove(id string) error {
	labels := prometheus.Labels{"check": id}
	deleted := m.executions.DeletePartialMatch(labels) +
		m.duration.DeletePartialMatch(labels) +
		m.info.DeletePartialMatch(labels)
	if deleted == 0 {
		return ErrMetricNotFound{Label: id}
	}
	return nil
}

// Observe records a single execution
func (m *CheckMetrics) Observe(md checks.Metadata, status checks.Status, d time.Duration) {
	m.executions.WithLabelValues(md.ID, md.Domain.String(), md.Severity.String(), status.String()).Inc()
	m.duration.WithLabelValues(md.ID).Observe(d.Seconds())
}

// Instrument returns a check recording every execution of c in m.
// An execution returning an error is recorded with the error status.
func Instrument(c checks.Check, m *CheckMetrics) checks.Check {
	m.Register(c.Metadata())
	return &instrumented{Check: c, metrics: m}
}

type instrumented struct {
	checks.Check
	metrics *CheckMetrics
}

func (i *instrumented) Execute(ctx context.Context, env any) (checks.Result, error) {
	start := time.Now()
	res, err := i.Check.Execute(ctx, env)
	status := res.Status
	if err != nil || !status.IsValid() {
		status = checks.StatusError
	}
	i.metrics.Observe(i.Metadata(), status, time.Since(start))
	return res, err
}
