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

package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDefinitionsPath is returned when the definitions path is invalid
	ErrInvalidDefinitionsPath = errors.New("invalid definitions path")
	// ErrInvalidApiAddress is returned when the api address is invalid
	ErrInvalidApiAddress = errors.New("invalid api address")
	// ErrInvalidLogLevel is returned when the log level is unknown
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat is returned when the log format is unknown
	ErrInvalidLogFormat = errors.New("invalid log format")
	// ErrInvalidTelemetry is returned when the tracing configuration is invalid
	ErrInvalidTelemetry = errors.New("invalid telemetry configuration")
	// ErrInvalidDefinitionsFile is returned when a definitions file does not match the definitions schema
	ErrInvalidDefinitionsFile = errors.New("invalid definitions file")
	// ErrNoDefinitions is returned when a definitions file contains no checks
	ErrNoDefinitions = errors.New("no check definitions found")
)

// ErrDuplicateID is returned when two check definitions share the same id
type ErrDuplicateID struct {
	ID string
}

func (e ErrDuplicateID) Error() string {
	return fmt.Sprintf("duplicate check id %q", e.ID)
}
