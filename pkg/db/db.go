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


package db

import (
	"slices"
	"strings"
	"sync"

	"github.com/caas-team/vitals/pkg/checks"
)

// DB stores the metadata of the registered checks
type DB interface {
	// Save stores the metadata, replacing an entry with the same id
	Save(md checks.Metadata)
	// Get returns the metadata of the check with the given id
	Get(id string) (md checks.Metadata, ok bool)
	// Delete removes the check with the given id
	Delete(id string) bool
	// List returns the metadata of all checks ordered by id
	List() []checks.Metadata
}

var _ DB = (*InMemory)(nil)

type InMemory struct {
	data sync.Map
}

// NewInMemory creates a new in-memory database
func NewInMemory() *InMemory {
	return &InMemory{
		data: sync.Map{},
	}
}

func (i *InMemory) Save(md checks.Metadata) {
	md.Tags = slices.Clone(md.Tags)
	i.data.Store(md.ID, md)
}

func (i *InMemory) Get(id string) (checks.Metadata, bool) {
	tmp, ok := i.data.Load(id)
	if !ok {
		return checks.Metadata{}, false
	}
	// this should not fail, otherwise this will panic
	md := tmp.(checks.Metadata)
	md.Tags = slices.Clone(md.Tags)

	return md, true
}

func (i *InMemory) Delete(id string) bool {
	_, ok := i.data.LoadAndDelete(id)
	return ok
}

// List returns a copy of all entries
func (i *InMemory) List() []checks.Metadata {
	result := []checks.Metadata{}
	i.data.Range(func(_, value any) bool {
		// this assertion should not fail, unless we have a bug somewhere
		md := value.(checks.Metadata)
		md.Tags = slices.Clone(md.Tags)

		result = append(result, md)
		return true
	})

	slices.SortFunc(result, func(a, b checks.Metadata) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}
