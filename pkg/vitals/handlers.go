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
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/yaml.v3"

	"github.com/caas-team/vitals/internal/logger"
	"github.com/caas-team/vitals/pkg/api"
)

type encoder interface {
	Encode(v any) error
}

const urlParamCheckID = "id"

func (v *Vitals) routes() []api.Route {
	return []api.Route{
		{Path: "/openapi", Method: http.MethodGet, Handler: v.handleOpenAPI},
		{Path: "/v1/checks", Method: http.MethodGet, Handler: v.handleListChecks},
		{Path: fmt.Sprintf("/v1/checks/{%s}", urlParamCheckID), Method: http.MethodGet, Handler: v.handleGetCheck},
		{
			Path:   "/metrics",
			Method: api.MethodAny,
			Handler: promhttp.HandlerFor(
				v.metrics.GetRegistry(),
				promhttp.HandlerOpts{Registry: v.metrics.GetRegistry()},
			).ServeHTTP,
		},
	}
}

func (v *Vitals) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	oapi, err := api.OpenAPI(r.Context(), v.version)
	if err != nil {
		log.ErrorContext(r.Context(), "Failed to create openapi", "error", err)
		writeStatus(w, r, http.StatusInternalServerError)
		return
	}

	var marshaler encoder
	switch r.Header.Get("Accept") {
	case "application/json":
		marshaler = json.NewEncoder(w)
		w.Header().Add("Content-Type", "application/json")
	default:
		marshaler = yaml.NewEncoder(w)
		w.Header().Add("Content-Type", "text/yaml")
	}

	err = marshaler.Encode(oapi)
	if err != nil {
		log.ErrorContext(r.Context(), "Failed to marshal openapi", "error", err)
		writeStatus(w, r, http.StatusInternalServerError)
		return
	}
}

func (v *Vitals) handleListChecks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, v.db.List())
}

func (v *Vitals) handleGetCheck(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, urlParamCheckID)
	if id == "" {
		writeStatus(w, r, http.StatusBadRequest)
		return
	}

	md, ok := v.db.Get(id)
	if !ok {
		writeStatus(w, r, http.StatusNotFound)
		return
	}
	writeJSON(w, r, md)
}

// writeJSON encodes the body before writing the header so encoding failures still yield a 500
func writeJSON(w http.ResponseWriter, r *http.Request, body any) {
	log := logger.FromContext(r.Context())
	b, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		log.ErrorContext(r.Context(), "Failed to encode response", "error", err)
		writeStatus(w, r, http.StatusInternalServerError)
		return
	}

	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err = w.Write(b); err != nil {
		log.ErrorContext(r.Context(), "Failed to write response", "error", err)
	}
}

// writeStatus answers with the status code and its text
func writeStatus(w http.ResponseWriter, r *http.Request, code int) {
	w.WriteHeader(code)
	_, err := w.Write([]byte(http.StatusText(code)))
	if err != nil {
		logger.FromContext(r.Context()).ErrorContext(r.Context(), "Failed to write response", "error", err)
	}
}
