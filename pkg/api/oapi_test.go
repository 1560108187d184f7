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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/vitals/pkg/checks"
)

func TestOpenAPI(t *testing.T) {
	ctx := context.Background()
	doc, err := OpenAPI(ctx, "v1.2.3")
	require.NoError(t, err)

	require.NoError(t, doc.Validate(ctx))
	assert.Equal(t, "v1.2.3", doc.Info.Version)
	assert.Contains(t, doc.Components.Schemas, metadataComponent)
	assert.Contains(t, doc.Components.Schemas, resultComponent)

	list := doc.Paths.Find("/v1/checks")
	require.NotNil(t, list)
	require.NotNil(t, list.Get)
	assert.Contains(t, list.Get.Responses, "200")

	single := doc.Paths.Find("/v1/checks/{id}")
	require.NotNil(t, single)
	require.NotNil(t, single.Get)
	assert.Contains(t, single.Get.Responses, "200")
	assert.Contains(t, single.Get.Responses, "404")
	require.Len(t, single.Parameters, 1)
	assert.Equal(t, "id", single.Parameters[0].Value.Name)

	status := doc.Components.Schemas[resultComponent].Value.Properties["status"].Value
	assert.Len(t, status.Enum, len(checks.Statuses()))
}

func TestOpenAPI_Independent(t *testing.T) {
	ctx := context.Background()
	first, err := OpenAPI(ctx, "v1")
	require.NoError(t, err)
	delete(first.Paths, "/v1/checks")

	second, err := OpenAPI(ctx, "v2")
	require.NoError(t, err)
	assert.NotNil(t, second.Paths.Find("/v1/checks"))
	assert.Equal(t, "v1", first.Info.Version)
}
