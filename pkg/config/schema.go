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
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed definitions.schema.json
var definitionsSchemaJSON string

const definitionsSchemaName = "definitions.schema.json"

// definitionsSchema validates the structure of a definitions file.
// Required fields and enumeration values are left to [checks.Definition.Validate].
var definitionsSchema = mustCompileSchema(definitionsSchemaJSON, definitionsSchemaName)

var printer = message.NewPrinter(language.English)

func mustCompileSchema(raw, name string) *jsonschema.Schema {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		panic(fmt.Sprintf("failed to parse embedded %s: %v", name, err))
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		panic(fmt.Sprintf("failed to add %s resource: %v", name, err))
	}

	sch, err := compiler.Compile(name)
	if err != nil {
		panic(fmt.Sprintf("failed to compile %s: %v", name, err))
	}
	return sch
}

// ErrSchemaViolation is returned when a definitions file does not match the definitions schema
type ErrSchemaViolation struct {
	// Location is the json pointer of the offending value
	Location string
	Reason   string
}

func (e ErrSchemaViolation) Error() string {
	return fmt.Sprintf("%s: %s", e.Location, e.Reason)
}

// validateSchema validates a parsed definitions document.
// Every leaf violation is reported as its own ErrSchemaViolation.
func validateSchema(doc any) error {
	err := definitionsSchema.Validate(doc)
	if err == nil {
		return nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return fmt.Errorf("schema: %w", err)
	}

	var errs []error
	collectViolations(ve, &errs)
	return errors.Join(errs...)
}

func collectViolations(ve *jsonschema.ValidationError, errs *[]error) {
	if len(ve.Causes) == 0 {
		*errs = append(*errs, ErrSchemaViolation{
			Location: "/" + strings.Join(ve.InstanceLocation, "/"),
			Reason:   ve.ErrorKind.LocalizedString(printer),
		})
		return
	}
	for _, c := range ve.Causes {
		collectViolations(c, errs)
	}
}
