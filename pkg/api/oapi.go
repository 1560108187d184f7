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
	"net/http"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/caas-team/vitals/internal/logger"
	"github.com/caas-team/vitals/pkg/checks"
)

const (
	metadataComponent = "Metadata"
	resultComponent   = "Result"
)

func newDoc(version string) openapi3.T {
	return openapi3.T{
		OpenAPI: "3.0.0",
		Info: &openapi3.Info{
			Title:       "Vitals Checks API",
			Description: "Serves the definitions of the registered health checks",
			Version:     version,
			Contact: &openapi3.Contact{
				URL:   "https://caas.telekom.de",
				Email: "caas-request@telekom.de",
				Name:  "CaaS Team",
			},
		},
		Paths:      make(openapi3.Paths),
		Extensions: make(map[string]any),
		Components: &openapi3.Components{
			Schemas: make(openapi3.Schemas),
		},
		Servers: openapi3.Servers{},
	}
}

// OpenAPI generates the OpenAPI specification of the check api.
// The result schema is published as a component so consumers running checks can validate their output.
func OpenAPI(ctx context.Context, version string) (openapi3.T, error) {
	log := logger.FromContext(ctx)
	doc := newDoc(version)

	metadata, err := checks.MetadataSchema()
	if err != nil {
		log.ErrorContext(ctx, "Failed to get schema", "schema", metadataComponent, "error", err)
		return openapi3.T{}, &ErrCreateOpenapiSchema{name: metadataComponent, err: err}
	}
	result, err := checks.ResultSchema()
	if err != nil {
		log.ErrorContext(ctx, "Failed to get schema", "schema", resultComponent, "error", err)
		return openapi3.T{}, &ErrCreateOpenapiSchema{name: resultComponent, err: err}
	}
	doc.Components.Schemas[metadataComponent] = metadata
	doc.Components.Schemas[resultComponent] = result

	metadataRef := openapi3.NewSchemaRef("#/components/schemas/"+metadataComponent, metadata.Value)
	list := openapi3.NewArraySchema()
	list.Items = metadataRef

	doc.Paths["/v1/checks"] = &openapi3.PathItem{
		Description: "checks",
		Get: &openapi3.Operation{
			OperationID: "listChecks",
			Description: "Returns the metadata of all registered checks",
			Tags:        []string{"Checks"},
			Responses: openapi3.Responses{
				strconv.Itoa(http.StatusOK): &openapi3.ResponseRef{
					Value: openapi3.NewResponse().
						WithDescription("Metadata of all checks ordered by id").
						WithJSONSchema(list),
				},
			},
		},
	}

	doc.Paths["/v1/checks/{id}"] = &openapi3.PathItem{
		Description: "check",
		Parameters: openapi3.Parameters{
			&openapi3.ParameterRef{
				Value: openapi3.NewPathParameter("id").
					WithDescription("Unique id of the check").
					WithSchema(openapi3.NewStringSchema()),
			},
		},
		Get: &openapi3.Operation{
			OperationID: "getCheck",
			Description: "Returns the metadata of a single check",
			Tags:        []string{"Checks"},
			Responses: openapi3.Responses{
				strconv.Itoa(http.StatusOK): &openapi3.ResponseRef{
					Value: openapi3.NewResponse().
						WithDescription("Metadata of the check").
						WithJSONSchemaRef(metadataRef),
				},
				strconv.Itoa(http.StatusNotFound): &openapi3.ResponseRef{
					Value: openapi3.NewResponse().WithDescription("No check with the given id is registered"),
				},
			},
		},
	}

	return doc, nil
}
