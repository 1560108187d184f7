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


package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/caas-team/vitals/internal/logger"
	"github.com/caas-team/vitals/pkg/config"
)

// API serves the read-only check endpoints
type API interface {
	// Run serves the registered routes until the context is done or the server fails
	Run(ctx context.Context) error
	// Shutdown stops the server, waiting for open requests to finish
	Shutdown(ctx context.Context) error
	// RegisterRoutes adds the routes to the router, it must be called before Run
	RegisterRoutes(ctx context.Context, routes ...Route) error
}

// MethodAny registers a route for every http method, e.g. for foreign handlers like promhttp
const MethodAny = "*"

type api struct {
	server *http.Server
	router chi.Router
}

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

// New creates a new api listening on the configured address
func New(cfg config.ApiConfig) API {
	r := chi.NewRouter()
	return &api{
		server: &http.Server{Addr: cfg.ListeningAddress, Handler: r, ReadHeaderTimeout: readHeaderTimeout},
		router: r,
	}
}

func (a *api) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).With("addr", a.server.Addr)

	if len(a.router.Routes()) == 0 {
		return errors.New("failed serving api: no routes registered")
	}

	cErr := make(chan error, 1)
	go func() {
		defer close(cErr)
		log.InfoContext(ctx, "Serving check api")
		if err := a.server.ListenAndServe(); err != nil {
			cErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		return fmt.Errorf("failed serving api: %w", ctx.Err())
	case err := <-cErr:
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			log.InfoContext(ctx, "Check api closed")
			return nil
		}
		log.ErrorContext(ctx, "Failed serving check api", "error", err)
		return fmt.Errorf("failed serving api: %w", err)
	}
}

// Shutdown is bounded by the deadline of ctx, or by shutdownTimeout if ctx has none.
// A done ctx still shuts the server down, its error is returned alongside.
func (a *api) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	errC := ctx.Err()

	sCtx := ctx
	if _, ok := ctx.Deadline(); !ok || errC != nil {
		var cancel context.CancelFunc
		sCtx, cancel = context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
	}

	if err := a.server.Shutdown(sCtx); err != nil {
		log.ErrorContext(ctx, "Failed to shut down check api", "error", err)
		return fmt.Errorf("failed shutting down api: %w", errors.Join(errC, err))
	}
	return errC
}

// Route is a single read-only endpoint
type Route struct {
	Path string
	// Method is one of GET, HEAD or MethodAny
	Method  string
	Handler http.HandlerFunc
}

// RegisterRoutes registers the routes and a liveness handler on "/".
// All invalid routes are reported, none is registered in that case.
func (a *api) RegisterRoutes(ctx context.Context, routes ...Route) error {
	var errs []error
	for _, r := range routes {
		switch {
		case r.Path == "" || r.Path[0] != '/':
			errs = append(errs, ErrInvalidRoute{Path: r.Path, Method: r.Method, Reason: "path must start with /"})
		case r.Handler == nil:
			errs = append(errs, ErrInvalidRoute{Path: r.Path, Method: r.Method, Reason: "handler is nil"})
		case r.Method != http.MethodGet && r.Method != http.MethodHead && r.Method != MethodAny:
			errs = append(errs, ErrInvalidRoute{Path: r.Path, Method: r.Method, Reason: "the api is read-only"})
		}
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	a.router.Use(logger.Middleware(ctx))
	for _, r := range routes {
		switch r.Method {
		case http.MethodGet:
			a.router.Get(r.Path, r.Handler)
		case http.MethodHead:
			a.router.Head(r.Path, r.Handler)
		case MethodAny:
			a.router.Handle(r.Path, r.Handler)
		}
	}
	a.router.Handle("/", okHandler(ctx))

	return nil
}

// okHandler answers every request with 200 and "ok"
func okHandler(ctx context.Context) http.Handler {
	log := logger.FromContext(ctx)

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("ok")); err != nil {
			log.ErrorContext(req.Context(), "Could not write response", "error", err)
		}
	})
}
