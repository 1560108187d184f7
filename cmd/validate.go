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


package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/caas-team/vitals/internal/logger"
	"github.com/caas-team/vitals/pkg/checks"
	"github.com/caas-team/vitals/pkg/config"
)

// NewCmdValidate creates a new validate command
func NewCmdValidate() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate check definitions",
		Long: "Validates all check definitions of the definitions file and prints their metadata.\n" +
			"Defaults are applied to optional fields. All invalid definitions are reported at once.",
		Args: cobra.NoArgs,
		RunE: runValidate(&output),
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format, one of yaml, json")

	return cmd
}

func runValidate(output *string) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx, cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		log := logger.FromContext(ctx)

		defs, err := config.NewFileLoader(cfg).Load(ctx)
		if err != nil {
			return err
		}

		mds := make([]checks.Metadata, 0, len(defs))
		for _, def := range defs {
			b, err := checks.NewBase(def)
			if err != nil {
				return fmt.Errorf("check %q: %w", def.ID, err)
			}
			mds = append(mds, b.Metadata())
		}

		log.InfoContext(ctx, "Check definitions are valid", "checks", len(mds))
		return encode(cmd.OutOrStdout(), *output, mds)
	}
}
