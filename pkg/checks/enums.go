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

import "fmt"

// Severity is the declared importance of a check's failure.
// It is independent of the runtime outcome.
type Severity string

const (
	SeverityCritical Severity = "CRITICAL"
	SeverityHigh     Severity = "HIGH"
	SeverityMedium   Severity = "MEDIUM"
	SeverityLow      Severity = "LOW"
	SeverityInfo     Severity = "INFO"
)

// Severities returns all known severities ordered from most to least important
func Severities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}
}

// IsValid reports whether s is a known severity
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return true
	}
	return false
}

func (s Severity) String() string {
	return string(s)
}

// UnmarshalText accepts known severities and the empty value
func (s *Severity) UnmarshalText(text []byte) error {
	v := Severity(text)
	if v != "" && !v.IsValid() {
		return fmt.Errorf("unknown severity %q", string(text))
	}
	*s = v
	return nil
}

// Status is the outcome of a single check execution
type Status string

const (
	StatusPass    Status = "pass"
	StatusFail    Status = "fail"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
	StatusSkipped Status = "skipped"
)

// Statuses returns all known statuses
func Statuses() []Status {
	return []Status{StatusPass, StatusFail, StatusWarning, StatusError, StatusSkipped}
}

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusPass, StatusFail, StatusWarning, StatusError, StatusSkipped:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// UnmarshalText accepts known statuses and the empty value
func (s *Status) UnmarshalText(text []byte) error {
	v := Status(text)
	if v != "" && !v.IsValid() {
		return fmt.Errorf("unknown status %q", string(text))
	}
	*s = v
	return nil
}

// Domain is the scope a check inspects
type Domain string

const (
	DomainProject    Domain = "project"
	DomainLocal      Domain = "local"
	DomainRepository Domain = "repository"
	DomainDeployment Domain = "deployment"
	DomainServices   Domain = "services"
)

// Domains returns all known domains
func Domains() []Domain {
	return []Domain{DomainProject, DomainLocal, DomainRepository, DomainDeployment, DomainServices}
}

// IsValid reports whether d is a known domain
func (d Domain) IsValid() bool {
	switch d {
	case DomainProject, DomainLocal, DomainRepository, DomainDeployment, DomainServices:
		return true
	}
	return false
}

func (d Domain) String() string {
	return string(d)
}

// UnmarshalText accepts known domains and the empty value
func (d *Domain) UnmarshalText(text []byte) error {
	v := Domain(text)
	if v != "" && !v.IsValid() {
		return fmt.Errorf("unknown domain %q", string(text))
	}
	*d = v
	return nil
}
