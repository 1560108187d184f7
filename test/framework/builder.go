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


package framework

import (
	"context"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/caas-team/vitals/pkg/checks"
	"github.com/caas-team/vitals/pkg/config"
	"github.com/caas-team/vitals/pkg/metrics"
)

type ConfigBuilder struct{ cfg config.Config }

func NewVitalsConfig() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: config.Config{
			Definitions: config.DefinitionsConfig{Path: "testdata/checks.yaml"},
			Api:         config.ApiConfig{ListeningAddress: "localhost:8080"},
		},
	}
}

func (b *ConfigBuilder) WithDefinitionsPath(path string) *ConfigBuilder {
	b.cfg.Definitions.Path = path
	return b
}

func (b *ConfigBuilder) WithAPI(address string) *ConfigBuilder {
	b.cfg.Api.ListeningAddress = address
	return b
}

func (b *ConfigBuilder) WithTelemetry(cfg metrics.Config) *ConfigBuilder {
	b.cfg.Telemetry = cfg
	return b
}

func (b *ConfigBuilder) Config(t *testing.T) *config.Config {
	t.Helper()
	if err := b.cfg.Validate(context.Background()); err != nil {
		t.Fatalf("config is not valid: %v", err)
	}
	cfg := b.cfg
	return &cfg
}

// DefinitionBuilder builds a check definition entry of a definitions file
type DefinitionBuilder struct{ def checks.Definition }

func NewDefinition(id string) *DefinitionBuilder {
	return &DefinitionBuilder{def: checks.Definition{
		ID:       id,
		Name:     id,
		Domain:   checks.DomainLocal,
		Severity: checks.SeverityInfo,
	}}
}

func (b *DefinitionBuilder) WithName(name string) *DefinitionBuilder {
	b.def.Name = name
	return b
}

func (b *DefinitionBuilder) WithDomain(domain checks.Domain) *DefinitionBuilder {
	b.def.Domain = domain
	return b
}

func (b *DefinitionBuilder) WithSeverity(severity checks.Severity) *DefinitionBuilder {
	b.def.Severity = severity
	return b
}

func (b *DefinitionBuilder) WithTimeout(timeout time.Duration) *DefinitionBuilder {
	b.def.Timeout = timeout
	return b
}

func (b *DefinitionBuilder) WithHealingTier(tier int) *DefinitionBuilder {
	b.def.HealingTier = tier
	return b
}

func (b *DefinitionBuilder) WithTags(tags ...string) *DefinitionBuilder {
	b.def.Tags = tags
	return b
}

// ID returns the id of the definition
func (b *DefinitionBuilder) ID() string {
	return b.def.ID
}

// Metadata returns the metadata the api is expected to serve for the definition
func (b *DefinitionBuilder) Metadata(t *testing.T) checks.Metadata {
	t.Helper()
	base, err := checks.NewBase(b.def)
	if err != nil {
		t.Fatalf("[%s] is not a valid definition: %v", b.def.ID, err)
	}
	return base.Metadata()
}

// entry returns the definition as it is written in a definitions file
func (b *DefinitionBuilder) entry() map[string]any {
	e := map[string]any{
		"id":       b.def.ID,
		"name":     b.def.Name,
		"domain":   b.def.Domain.String(),
		"severity": b.def.Severity.String(),
	}
	if b.def.Timeout > 0 {
		e["timeout"] = b.def.Timeout.Milliseconds()
	}
	if b.def.HealingTier > 0 {
		e["healingTier"] = b.def.HealingTier
	}
	if len(b.def.Tags) > 0 {
		e["tags"] = b.def.Tags
	}
	return e
}

// definitionsYAML marshals the definitions into the format of a definitions file
func definitionsYAML(t *testing.T, builders []*DefinitionBuilder) []byte {
	t.Helper()
	entries := make([]map[string]any, 0, len(builders))
	for _, b := range builders {
		entries = append(entries, b.entry())
	}
	out, err := yaml.Marshal(map[string]any{"checks": entries})
	if err != nil {
		t.Fatalf("failed to marshal definitions: %v", err)
		return []byte{}
	}
	return out
}
