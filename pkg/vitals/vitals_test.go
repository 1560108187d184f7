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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/caas-team/vitals/pkg/checks"
	"github.com/caas-team/vitals/pkg/config"
)

func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.SetDefinitionsPath("checks.yaml")
	cfg.SetApiAddress("localhost:0")
	return cfg
}

func testDefinitions() []checks.Definition {
	return []checks.Definition{
		{ID: "node-version", Name: "Node version", Domain: checks.DomainLocal, Severity: checks.SeverityMedium, Timeout: 3 * time.Second, HealingTier: 1, Tags: []string{"fast"}},
		{ID: "api-health", Name: "API health", Domain: checks.DomainServices, Severity: checks.SeverityCritical},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		defs    []checks.Definition
		wantIDs []string
		wantErr error
	}{
		{
			name:    "no definitions",
			defs:    nil,
			wantIDs: nil,
		},
		{
			name:    "valid definitions",
			defs:    testDefinitions(),
			wantIDs: []string{"api-health", "node-version"},
		},
		{
			name:    "invalid definition",
			defs:    []checks.Definition{{ID: "broken", Name: "Broken", Domain: checks.DomainLocal}},
			wantErr: checks.ErrValidation,
		},
		{
			name:    "duplicate ids",
			defs:    append(testDefinitions(), testDefinitions()[0]),
			wantErr: config.ErrDuplicateID{ID: "node-version"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := New(testConfig(), tt.defs, "v0.0.0")
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			var ids []string
			for _, md := range v.db.List() {
				ids = append(ids, md.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestNew_AppliesDefaults(t *testing.T) {
	v, err := New(testConfig(), testDefinitions(), "v0.0.0")
	require.NoError(t, err)

	md, ok := v.db.Get("api-health")
	require.True(t, ok)
	assert.Equal(t, checks.DefaultTimeout, md.Timeout)
	assert.True(t, md.Cacheable)
	assert.Equal(t, []string{}, md.Tags)
}

func TestVitals_Run(t *testing.T) {
	v, err := New(testConfig(), testDefinitions(), "v0.0.0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- v.Run(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Vitals.Run() did not return after the context was canceled")
	}

	// a second shutdown is a no-op
	assert.NoError(t, v.shutdown(context.Background()))
}
