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
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/caas-team/vitals/internal/logger"
)

const tracerName = "github.com/caas-team/vitals/pkg/checks"

type outcome struct {
	res Result
	err error
}

// Run executes the check once and enforces its declared timeout.
//
// If ctx is already done the check is not executed and a skipped result is returned.
// A check exceeding its timeout or panicking yields an error result.
// Errors returned by the check itself are returned wrapped with the check id.
func Run(ctx context.Context, c Check, env any) (res Result, err error) {
	md := c.Metadata()
	ctx, cancel := logger.NewContextWithLogger(ctx, "check", md.ID)
	defer cancel()
	log := logger.FromContext(ctx)

	ctx, span := otel.Tracer(tracerName).Start(ctx, "check.run", trace.WithAttributes(
		attribute.String("check.id", md.ID),
		attribute.String("check.domain", md.Domain.String()),
		attribute.String("check.severity", md.Severity.String()),
	))
	defer func() {
		span.SetAttributes(attribute.String("check.status", res.Status.String()))
		switch {
		case err != nil:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		case res.Status == StatusError:
			span.SetStatus(codes.Error, res.Message)
		default:
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	if cErr := ctx.Err(); cErr != nil {
		log.DebugContext(ctx, "Context done before check started", "error", cErr)
		return Skipped(fmt.Sprintf("check skipped: %v", cErr)), nil
	}

	timeout := md.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancelTimeout := context.WithTimeout(ctx, timeout)
	defer cancelTimeout()

	cOut := make(chan outcome, 1)
	start := time.Now()
	log.DebugContext(ctx, "Executing check", "timeout", timeout.String())
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.ErrorContext(ctx, "Check panicked", "panic", r)
				cOut <- outcome{res: newErrorResult(fmt.Sprintf("check %q panicked", md.ID), fmt.Errorf("panic: %v", r))}
			}
		}()
		res, err := c.Execute(ctx, env)
		cOut <- outcome{res: res, err: err}
	}()

	select {
	case out := <-cOut:
		if out.err != nil {
			log.ErrorContext(ctx, "Check execution failed", "error", out.err)
			return Result{}, fmt.Errorf("failed executing check %q: %w", md.ID, out.err)
		}
		if !out.res.Status.IsValid() {
			log.ErrorContext(ctx, "Check returned an invalid status", "status", out.res.Status)
			return Result{}, fmt.Errorf("check %q returned invalid status %q: %w", md.ID, out.res.Status, ErrConfiguration)
		}
		log.DebugContext(ctx, "Successfully finished check", "status", out.res.Status, "duration", time.Since(start).String())
		return out.res, nil
	case <-ctx.Done():
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			tErr := ErrTimeout{CheckID: md.ID, Timeout: timeout}
			log.WarnContext(ctx, "Check timed out", "timeout", timeout.String())
			return newErrorResult(tErr.Error(), tErr), nil
		}
		log.DebugContext(ctx, "Context canceled while check was running", "error", ctx.Err())
		return Result{}, fmt.Errorf("failed executing check %q: %w", md.ID, ctx.Err())
	}
}
