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
	"context"
	"slices"
	"time"
)

// Check is a single, independently invocable health test.
//
// [Base] provides everything but Execute and is meant to be embedded:
//
//	type diskSpace struct {
//		checks.Base
//	}
//
//	func (c *diskSpace) Execute(ctx context.Context, env any) (checks.Result, error) {
//		return c.Pass("enough space left", nil), nil
//	}
type Check interface {
	// Execute runs the check once. It may block on I/O and should honor
	// the cancellation of ctx. env is supplied by the caller and opaque to the check.
	// Runtime failures should be converted into an error result by the check;
	// a returned error is propagated to the caller as is.
	Execute(ctx context.Context, env any) (Result, error)
	// ID returns the unique id of the check
	ID() string
	// Metadata returns a snapshot of the check's definition
	Metadata() Metadata
	// IsHealable returns true if the check declares a healing tier
	IsHealable() bool
	// Healer returns the healer bound to the check or nil
	Healer() Healer
}

// Healer is a remediation strategy bound to a healable check
type Healer interface {
	// Heal tries to remediate the problem described by the result
	Heal(ctx context.Context, result Result) error
}

// Base provides the definition and the result builders of a check.
// It does not implement [Check] on its own, concrete checks embed it and add Execute.
// All state is immutable after [NewBase] returned, so Base is safe for concurrent use.
type Base struct {
	def Definition
}

// NewBase validates the definition and creates a new instance of the [Base] struct
func NewBase(def Definition) (Base, error) {
	if err := def.Validate(); err != nil {
		return Base{}, err
	}
	return Base{def: def.WithDefaults()}, nil
}

// ID returns the unique id of the check
func (b Base) ID() string { return b.def.ID }

// Name returns the name of the check
func (b Base) Name() string { return b.def.Name }

// Description returns the description of the check
func (b Base) Description() string { return b.def.Description }

// Domain returns the domain of the check
func (b Base) Domain() Domain { return b.def.Domain }

// Severity returns the severity of the check
func (b Base) Severity() Severity { return b.def.Severity }

// Timeout returns the declared timeout of the check
func (b Base) Timeout() time.Duration { return b.def.Timeout }

// Cacheable returns true if results of the check may be cached
func (b Base) Cacheable() bool { return b.def.Cacheable != nil && *b.def.Cacheable }

// HealingTier returns the configured healing tier
func (b Base) HealingTier() int { return b.def.HealingTier }

// Tags returns a copy of the tags of the check
func (b Base) Tags() []string { return slices.Clone(b.def.Tags) }

// Metadata returns a snapshot of all definition fields
func (b Base) Metadata() Metadata {
	return Metadata{
		ID:          b.def.ID,
		Name:        b.def.Name,
		Description: b.def.Description,
		Domain:      b.def.Domain,
		Severity:    b.def.Severity,
		Timeout:     b.def.Timeout,
		Cacheable:   b.Cacheable(),
		HealingTier: b.def.HealingTier,
		Tags:        b.Tags(),
	}
}

// IsHealable returns true if the healing tier is greater than 0
func (b Base) IsHealable() bool {
	return b.def.HealingTier > 0
}

// Healer returns nil. Checks with a healer override this method.
func (b Base) Healer() Healer {
	return nil
}

// Pass creates a passing result. details are passed through as is.
func (b Base) Pass(message string, details any) Result {
	return Result{
		Status:  StatusPass,
		Message: message,
		Details: details,
	}
}

// Fail creates a failure result.
// The healing tier defaults to the tier configured for the check.
func (b Base) Fail(message string, opts ...ResultOption) Result {
	return b.result(StatusFail, message, opts)
}

// Warning creates a warning result.
// The healing tier defaults to the tier configured for the check.
func (b Base) Warning(message string, opts ...ResultOption) Result {
	return b.result(StatusWarning, message, opts)
}

// Error creates an error result, which is never healable.
// If err is not nil its message and a stack trace are added as [ErrorDetails].
func (b Base) Error(message string, err error) Result {
	return newErrorResult(message, err)
}

// result resolves the options of a failure or warning.
// An explicit healing tier wins over the configured one.
func (b Base) result(status Status, message string, opts []ResultOption) Result {
	var o resultOptions
	for _, opt := range opts {
		opt(&o)
	}

	tier := b.def.HealingTier
	if o.healingTier != nil {
		tier = *o.healingTier
	}

	return Result{
		Status:         status,
		Message:        message,
		Details:        o.details,
		Recommendation: o.recommendation,
		Healable:       o.healable,
		HealingTier:    tier,
	}
}

// UnimplementedCheck can be embedded by checks not providing Execute yet.
// Its Execute always returns [ErrNotImplemented].
type UnimplementedCheck struct{}

// Execute returns [ErrNotImplemented]
func (UnimplementedCheck) Execute(context.Context, any) (Result, error) {
	return Result{}, ErrNotImplemented
}

// ExecuteFunc is the execute function of a check created by [New].
// b is the base of the check and can be used to build results.
type ExecuteFunc func(ctx context.Context, b Base, env any) (Result, error)

// Option configures a check created by [New]
type Option func(*funcCheck)

// WithHealer binds a healer to the check
func WithHealer(h Healer) Option {
	return func(c *funcCheck) {
		c.healer = h
	}
}

var _ Check = (*funcCheck)(nil)

type funcCheck struct {
	Base
	fn     ExecuteFunc
	healer Healer
}

// New creates a check from a definition and an execute function.
// A nil function always fails with [ErrAbstractCheck], before the definition is validated.
func New(def Definition, fn ExecuteFunc, opts ...Option) (Check, error) {
	if fn == nil {
		return nil, ErrAbstractCheck{}
	}

	b, err := NewBase(def)
	if err != nil {
		return nil, err
	}

	c := &funcCheck{Base: b, fn: fn}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Execute calls the execute function of the check
func (c *funcCheck) Execute(ctx context.Context, env any) (Result, error) {
	return c.fn(ctx, c.Base, env)
}

// Healer returns the bound healer or nil
func (c *funcCheck) Healer() Healer {
	return c.healer
}
