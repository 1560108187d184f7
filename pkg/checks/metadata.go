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
	"encoding/json"
	"time"
)

// Metadata is a snapshot of a check's definition with all defaults applied.
// It is used for reporting and filtering and is never read back by the check.
type Metadata struct {
	ID          string
	Name        string
	Description string
	Domain      Domain
	Severity    Severity
	Timeout     time.Duration
	Cacheable   bool
	HealingTier int
	Tags        []string
}

// metadataDoc is the serialized form of [Metadata]. The timeout is given in milliseconds.
type metadataDoc struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Domain      Domain   `json:"domain" yaml:"domain"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Timeout     int64    `json:"timeout" yaml:"timeout"`
	Cacheable   bool     `json:"cacheable" yaml:"cacheable"`
	HealingTier int      `json:"healingTier" yaml:"healingTier"`
	Tags        []string `json:"tags" yaml:"tags"`
}

func (m Metadata) doc() metadataDoc {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return metadataDoc{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Domain:      m.Domain,
		Severity:    m.Severity,
		Timeout:     m.Timeout.Milliseconds(),
		Cacheable:   m.Cacheable,
		HealingTier: m.HealingTier,
		Tags:        tags,
	}
}

// MarshalJSON implements json.Marshaler
func (m Metadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.doc())
}

// MarshalYAML implements yaml.Marshaler
func (m Metadata) MarshalYAML() (any, error) {
	return m.doc(), nil
}
