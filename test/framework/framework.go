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
	"testing"

	"github.com/caas-team/vitals/pkg/config"
	"github.com/caas-team/vitals/test"
)

type Framework struct {
	t *testing.T
}

func New(t *testing.T) *Framework {
	t.Helper()
	return &Framework{t: t}
}

// E2E creates a new end-to-end test serving the definitions file of cfg.
// A nil cfg uses the default test config.
func (f *Framework) E2E(t *testing.T, cfg *config.Config) *E2E {
	test.MarkAsLong(f.t)

	if cfg == nil {
		cfg = NewVitalsConfig().Config(f.t)
	}

	return &E2E{
		t:      t,
		config: *cfg,
	}
}
