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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultSchema(t *testing.T) {
	got, err := ResultSchema()
	require.NoError(t, err)
	require.NotNil(t, got.Value)

	props := got.Value.Properties
	for _, p := range []string{"status", "message", "details", "recommendation", "healable", "healingTier"} {
		assert.Contains(t, props, p)
	}
	assert.True(t, props["details"].Value.Nullable)
	assert.ElementsMatch(t, []any{"pass", "fail", "warning", "error", "skipped"}, props["status"].Value.Enum)
	assert.Equal(t, "boolean", props["healable"].Value.Type)
}

func TestMetadataSchema(t *testing.T) {
	got, err := MetadataSchema()
	require.NoError(t, err)

	props := got.Value.Properties
	for _, p := range []string{"id", "name", "description", "domain", "severity", "timeout", "cacheable", "healingTier", "tags"} {
		assert.Contains(t, props, p)
	}
	assert.Len(t, props["domain"].Value.Enum, len(Domains()))
	assert.Len(t, props["severity"].Value.Enum, len(Severities()))
	assert.Equal(t, "integer", props["timeout"].Value.Type)
	assert.Equal(t, "array", props["tags"].Value.Type)
}
