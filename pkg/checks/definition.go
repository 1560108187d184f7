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
	"errors"
	"fmt"
	"time"

	"github.com/caas-team/vitals/internal/helper"
)

// DefaultTimeout is the timeout of a check that does not declare one
const DefaultTimeout = 5 * time.Second

// Definition describes a check. It is passed once to [NewBase] or [New]
// and cannot be changed afterwards.
type Definition struct {
	// ID uniquely identifies the check
	ID string `json:"id" yaml:"id" mapstructure:"id"`
	// Name is the human readable name of the check
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	// Description is optional
	Description string `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	// Domain is the scope the check inspects
	Domain Domain `json:"domain" yaml:"domain" mapstructure:"domain"`
	// Severity is the declared importance of a failure
	Severity Severity `json:"severity" yaml:"severity" mapstructure:"severity"`
	// Timeout is a policy enforced by the caller of the check, see [Run].
	// Defaults to [DefaultTimeout].
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty" mapstructure:"timeout"`
	// Cacheable defaults to true
	Cacheable *bool `json:"cacheable,omitempty" yaml:"cacheable,omitempty" mapstructure:"cacheable"`
	// HealingTier is 0 if the check is not healable
	HealingTier int `json:"healingTier,omitempty" yaml:"healingTier,omitempty" mapstructure:"healingTier"`
	// Tags are free form labels
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty" mapstructure:"tags"`
}

// Validate checks if the definition is valid.
// Required fields are checked in order and only the first missing one is reported.
func (d Definition) Validate() error {
	switch {
	case d.ID == "":
		return ErrMissingField{Field: "id"}
	case d.Name == "":
		return ErrMissingField{Field: "name"}
	case d.Domain == "":
		return ErrMissingField{Field: "domain"}
	case d.Severity == "":
		return ErrMissingField{Field: "severity"}
	}

	var errs []error
	if !d.Domain.IsValid() {
		errs = append(errs, ErrInvalidField{CheckID: d.ID, Field: "domain", Reason: fmt.Sprintf("unknown domain %q, must be one of %v", d.Domain, Domains())})
	}
	if !d.Severity.IsValid() {
		errs = append(errs, ErrInvalidField{CheckID: d.ID, Field: "severity", Reason: fmt.Sprintf("unknown severity %q, must be one of %v", d.Severity, Severities())})
	}
	if d.Timeout < 0 {
		errs = append(errs, ErrInvalidField{CheckID: d.ID, Field: "timeout", Reason: "timeout must not be negative"})
	}
	if d.HealingTier < 0 {
		errs = append(errs, ErrInvalidField{CheckID: d.ID, Field: "healingTier", Reason: "healing tier must not be negative"})
	}
	return errors.Join(errs...)
}

// WithDefaults returns a copy of the definition with all optional fields set.
// The copy shares no memory with d.
func (d Definition) WithDefaults() Definition {
	if d.Timeout == 0 {
		d.Timeout = DefaultTimeout
	}

	cacheable := true
	if d.Cacheable != nil {
		cacheable = *d.Cacheable
	}
	d.Cacheable = &cacheable

	tags := make([]string, len(d.Tags))
	copy(tags, d.Tags)
	d.Tags = tags

	return d
}

// DecodeDefinition decodes a generic mapping, e.g. parsed from yaml, into a definition.
// Plain numbers are read as milliseconds for the timeout, strings as durations.
// The result is not validated, unknown domains and severities are kept for [Definition.Validate].
func DecodeDefinition(input any) (Definition, error) {
	def, err := helper.Decode[Definition](input, helper.NumberToDurationHookFunc(time.Millisecond))
	if err != nil {
		return Definition{}, fmt.Errorf("failed to decode check definition: %w", err)
	}
	return def, nil
}
