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
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/caas-team/vitals/internal/logger"
)

// Validate validates the config
func (c *Config) Validate(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx, "component", "configValidation")
	defer cancel()
	log := logger.FromContext(ctx)

	var err error
	if strings.TrimSpace(c.Definitions.Path) == "" {
		log.ErrorContext(ctx, "The definitions path must not be empty")
		err = errors.Join(err, ErrInvalidDefinitionsPath)
	}

	if c.Api.ListeningAddress != "" {
		if _, _, aErr := net.SplitHostPort(c.Api.ListeningAddress); aErr != nil {
			log.ErrorContext(ctx, "The api address is not a valid host:port", "address", c.Api.ListeningAddress)
			err = errors.Join(err, ErrInvalidApiAddress)
		}
	}

	if !logger.ValidLevel(c.Log.Level) {
		log.ErrorContext(ctx, "The log level is unknown", "level", c.Log.Level)
		err = errors.Join(err, ErrInvalidLogLevel)
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "json", "text":
	default:
		log.ErrorContext(ctx, "The log format is unknown", "format", c.Log.Format)
		err = errors.Join(err, ErrInvalidLogFormat)
	}

	if tErr := c.Telemetry.Validate(ctx); tErr != nil {
		err = errors.Join(err, fmt.Errorf("%w: %w", ErrInvalidTelemetry, tErr))
	}

	return err
}
