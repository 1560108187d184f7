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
	"github.com/spf13/cobra"

	"github.com/caas-team/vitals/pkg/api"
)

// NewCmdSchema creates a new schema command
func NewCmdSchema(version string) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the OpenAPI specification",
		Long:  "Prints the OpenAPI specification of the check api including the check result schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, _, err := setup(cmd)
			if err != nil {
				return err
			}

			doc, err := api.OpenAPI(ctx, version)
			if err != nil {
				return err
			}
			return encode(cmd.OutOrStdout(), output, doc)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format, one of yaml, json")

	return cmd
}
