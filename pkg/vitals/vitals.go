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


package vitals

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/caas-team/vitals/internal/logger"
	"github.com/caas-team/vitals/pkg/api"
	"github.com/caas-team/vitals/pkg/checks"
	"github.com/caas-team/vitals/pkg/config"
	"github.com/caas-team/vitals/pkg/db"
	"github.com/caas-team/vitals/pkg/metrics"
)

const shutdownTimeout = time.Second * 90

// Vitals serves the definitions of the registered checks.
// It never executes checks itself.
type Vitals struct {
	config       *config.Config
	version      string
	db           db.DB
	api          api.API
	metrics      metrics.Provider
	checkMetrics *metrics.CheckMetrics

	shutOnce sync.Once
}

// New creates a new Vitals serving the given definitions
func New(cfg *config.Config, defs []checks.Definition, version string) (*Vitals, error) {
	v := &Vitals{
		config:       cfg,
		version:      version,
		db:           db.NewInMemory(),
		api:          api.New(cfg.Api),
		metrics:      metrics.New(cfg.Telemetry, version),
		checkMetrics: metrics.NewCheckMetrics(),
	}

	if err := v.metrics.GetRegistry().Register(v.checkMetrics); err != nil {
		return nil, fmt.Errorf("failed to register check metrics: %w", err)
	}

	var errs error
	for i, def := range defs {
		if err := v.add(def); err != nil {
			errs = errors.Join(errs, fmt.Errorf("check #%d: %w", i, err))
		}
	}
	if errs != nil {
		return nil, errs
	}
	return v, nil
}

// add validates the definition and stores its metadata
func (v *Vitals) add(def checks.Definition) error {
	b, err := checks.NewBase(def)
	if err != nil {
		return err
	}
	if _, ok := v.db.Get(b.ID()); ok {
		return config.ErrDuplicateID{ID: b.ID()}
	}

	md := b.Metadata()
	v.db.Save(md)
	v.checkMetrics.Register(md)
	return nil
}

// Run starts the api and initializes tracing.
// Blocks until the context is done or the api fails.
func (v *Vitals) Run(ctx context.Context) error {
	ctx, cancel := logger.NewContextWithLogger(ctx)
	defer cancel()
	log := logger.FromContext(ctx)

	if err := v.metrics.Initialize(ctx); err != nil {
		log.ErrorContext(ctx, "Failed to initialize tracing", "error", err)
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := v.api.RegisterRoutes(ctx, v.routes()...); err != nil {
		log.ErrorContext(ctx, "Failed to register routes", "error", err)
		return errors.Join(fmt.Errorf("failed to register routes: %w", err), v.shutdown(ctx))
	}

	cApi := make(chan error, 1)
	go func() {
		cApi <- v.api.Run(ctx)
	}()

	log.InfoContext(ctx, "Vitals started", "checks", len(v.db.List()), "version", v.version)
	select {
	case <-ctx.Done():
		log.InfoContext(ctx, "Context done, shutting down", "reason", ctx.Err())
		return v.shutdown(ctx)
	case err := <-cApi:
		if err != nil && ctx.Err() == nil {
			log.ErrorContext(ctx, "Api stopped unexpectedly", "error", err)
			return errors.Join(err, v.shutdown(ctx))
		}
		return v.shutdown(ctx)
	}
}

// shutdown stops the api and flushes pending traces.
// It is safe to call multiple times.
func (v *Vitals) shutdown(ctx context.Context) (err error) {
	v.shutOnce.Do(func() {
		log := logger.FromContext(ctx)
		ctxShutdown, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()

		errA := v.api.Shutdown(ctxShutdown)
		errM := v.metrics.Shutdown(ctxShutdown)
		err = errors.Join(errA, errM)
		if err != nil {
			log.ErrorContext(ctx, "Failed to shutdown gracefully", "error", err)
			return
		}
		log.InfoContext(ctx, "Vitals shut down")
	})
	return err
}
