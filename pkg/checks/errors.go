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
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrValidation is the kind of all errors caused by an invalid check definition
	ErrValidation = errors.New("invalid check definition")
	// ErrConfiguration is the kind of all errors caused by misusing the check contract
	ErrConfiguration = errors.New("check misconfigured")
	// ErrNotImplemented is returned by checks that do not provide an execute function
	ErrNotImplemented = errors.New("execute() must be implemented by the concrete check")
)

// ErrMissingField is returned when a required field of a definition is empty
type ErrMissingField struct {
	Field string
}

func (e ErrMissingField) Error() string {
	article := "a"
	if e.Field != "" && strings.ContainsRune("aeiou", rune(e.Field[0])) {
		article = "an"
	}
	return fmt.Sprintf("check must have %s %s", article, e.Field)
}

func (e ErrMissingField) Is(target error) bool {
	return target == ErrValidation
}

// ErrInvalidField is returned when a field of a definition holds an invalid value
type ErrInvalidField struct {
	CheckID string
	Field   string
	Reason  string
}

func (e ErrInvalidField) Error() string {
	return fmt.Sprintf("invalid field %q in check %q: %s", e.Field, e.CheckID, e.Reason)
}

func (e ErrInvalidField) Is(target error) bool {
	return target == ErrValidation
}

// ErrAbstractCheck is returned when a check is created without an execute function
type ErrAbstractCheck struct{}

func (ErrAbstractCheck) Error() string {
	return "check is abstract: an execute function is required"
}

func (ErrAbstractCheck) Is(target error) bool {
	return target == ErrConfiguration
}

// ErrTimeout is reported when a check does not finish within its declared timeout
type ErrTimeout struct {
	CheckID string
	Timeout time.Duration
}

func (e ErrTimeout) Error() string {
	return fmt.Sprintf("check %q timed out after %v", e.CheckID, e.Timeout)
}

func (ErrTimeout) Is(target error) bool {
	return target == context.DeadlineExceeded
}
