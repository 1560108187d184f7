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
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// ResultSchema returns the openapi3.SchemaRef of a [Result].
// Details can hold any value, so its schema is replaced by a nullable free form schema
// since openapi3gen does not work with any types.
func ResultSchema() (*openapi3.SchemaRef, error) {
	resultSchema, err := openapi3gen.NewSchemaRefForValue(Result{}, openapi3.Schemas{})
	if err != nil {
		return nil, err
	}

	details := openapi3.NewSchema().WithNullable()
	details.Description = "Arbitrary details of the result, the error and stack for error results"
	resultSchema.Value.Properties["details"] = openapi3.NewSchemaRef("", details)
	resultSchema.Value.Properties["status"].Value.WithEnum(toAny(Statuses())...)
	return resultSchema, nil
}

// MetadataSchema returns the openapi3.SchemaRef of serialized [Metadata]
func MetadataSchema() (*openapi3.SchemaRef, error) {
	metadataSchema, err := openapi3gen.NewSchemaRefForValue(metadataDoc{}, openapi3.Schemas{})
	if err != nil {
		return nil, err
	}

	metadataSchema.Value.Properties["domain"].Value.WithEnum(toAny(Domains())...)
	metadataSchema.Value.Properties["severity"].Value.WithEnum(toAny(Severities())...)
	metadataSchema.Value.Properties["timeout"].Value.Description = "Timeout in milliseconds"
	return metadataSchema, nil
}

func toAny[T ~string](values []T) []any {
	res := make([]any, 0, len(values))
	for _, v := range values {
		res = append(res, string(v))
	}
	return res
}
