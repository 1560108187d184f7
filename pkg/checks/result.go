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

package checks

import (
	"runtime/debug"
)

// Result is the outcome of a single check execution.
// A new result is created on every execution and never stored by the check.
type Result struct {
	// Status is the outcome of the execution
	Status Status `json:"status" yaml:"status"`
	// Message is a human readable summary
	Message string `json:"message" yaml:"message"`
	// Details holds arbitrary structured data, nil if absent
	Details any `json:"details" yaml:"details"`
	// Recommendation is only set for failures and warnings
	Recommendation string `json:"recommendation,omitempty" yaml:"recommendation,omitempty"`
	// Healable marks the result as eligible for a healer
	Healable bool `json:"healable" yaml:"healable"`
	// HealingTier is the tier of the healer able to fix the result
	HealingTier int `json:"healingTier" yaml:"healingTier"`
}

// ErrorDetails are the details of an error result
type ErrorDetails struct {
	Error string `json:"error" yaml:"error"`
	Stack string `json:"stack" yaml:"stack"`
}

// ResultOption configures a failure or warning result
type ResultOption func(*resultOptions)

type resultOptions struct {
	details        any
	recommendation string
	healable       bool
	healingTier    *int
}

// WithDetails sets the details of the result
func WithDetails(details any) ResultOption {
	return func(o *resultOptions) {
		o.details = details
	}
}

// WithRecommendation sets the recommendation of the result
func WithRecommendation(recommendation string) ResultOption {
	return func(o *resultOptions) {
		o.recommendation = recommendation
	}
}

// WithHealable marks the result as healable
func WithHealable(healable bool) ResultOption {
	return func(o *resultOptions) {
		o.healable = healable
	}
}

// WithHealingTier overrides the healing tier configured for the check
func WithHealingTier(tier int) ResultOption {
	return func(o *resultOptions) {
		o.healingTier = &tier
	}
}

// Skipped returns a result for a check that was not executed.
// It is never produced by the check itself but by the caller deciding not to run it.
func Skipped(message string) Result {
	return Result{
		Status:  StatusSkipped,
		Message: message,
	}
}

// newErrorResult creates an error result. Errors are never healable.
func newErrorResult(message string, err error) Result {
	res := Result{
		Status:  StatusError,
		Message: message,
	}
	if err != nil {
		res.Details = ErrorDetails{
			Error: err.Error(),
			Stack: string(debug.Stack()),
		}
	}
	return res
}
