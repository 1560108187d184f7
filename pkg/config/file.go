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

package config

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/caas-team/vitals/internal/logger"
	"github.com/caas-team/vitals/pkg/checks"
)

// definitionsFile is the format of a check definitions file
type definitionsFile struct {
	Checks []map[string]any `yaml:"checks"`
}

// FileLoader loads check definitions from a yaml file
type FileLoader struct {
	fsys fs.FS
	path string
}

// NewFileLoader creates a loader for the definitions file configured in cfg
func NewFileLoader(cfg *Config) *FileLoader {
	dir, file := filepath.Split(cfg.Definitions.Path)
	if dir == "" {
		dir = "."
	}
	return &FileLoader{
		fsys: os.DirFS(dir),
		path: file,
	}
}

// Load reads and validates all check definitions of the file.
// All invalid definitions are reported at once.
func (f *FileLoader) Load(ctx context.Context) ([]checks.Definition, error) {
	log := logger.FromContext(ctx).With("file", f.path)
	log.InfoContext(ctx, "Reading check definitions from file")

	file, err := f.fsys.Open(f.path)
	if err != nil {
		log.ErrorContext(ctx, "Failed to open definitions file", "error", err)
		return nil, fmt.Errorf("failed to open definitions file: %w", err)
	}
	defer func() {
		if cErr := file.Close(); cErr != nil {
			log.ErrorContext(ctx, "Failed to close definitions file", "error", cErr)
		}
	}()

	b, err := io.ReadAll(file)
	if err != nil {
		log.ErrorContext(ctx, "Failed to read definitions file", "error", err)
		return nil, fmt.Errorf("failed to read definitions file: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(b, &doc); err != nil {
		log.ErrorContext(ctx, "Failed to parse definitions file", "error", err)
		return nil, fmt.Errorf("failed to parse definitions file: %w", err)
	}
	if err := validateSchema(doc); err != nil {
		log.ErrorContext(ctx, "Definitions file does not match schema", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidDefinitionsFile, err)
	}

	var df definitionsFile
	if err := yaml.Unmarshal(b, &df); err != nil {
		log.ErrorContext(ctx, "Failed to decode definitions file", "error", err)
		return nil, fmt.Errorf("failed to decode definitions file: %w", err)
	}

	if len(df.Checks) == 0 {
		log.WarnContext(ctx, "Definitions file contains no checks")
		return nil, ErrNoDefinitions
	}

	defs := make([]checks.Definition, 0, len(df.Checks))
	seen := make(map[string]struct{}, len(df.Checks))
	var errs error
	for i, raw := range df.Checks {
		def, dErr := checks.DecodeDefinition(raw)
		if dErr != nil {
			errs = errors.Join(errs, fmt.Errorf("check #%d: %w", i, dErr))
			continue
		}
		if vErr := def.Validate(); vErr != nil {
			errs = errors.Join(errs, fmt.Errorf("check #%d: %w", i, vErr))
			continue
		}
		if _, ok := seen[def.ID]; ok {
			errs = errors.Join(errs, fmt.Errorf("check #%d: %w", i, ErrDuplicateID{ID: def.ID}))
			continue
		}
		seen[def.ID] = struct{}{}
		defs = append(defs, def)
	}

	if errs != nil {
		log.ErrorContext(ctx, "Invalid check definitions", "error", errs)
		return nil, errs
	}

	log.DebugContext(ctx, "Successfully loaded check definitions", "amount", len(defs))
	return defs, nil
}
