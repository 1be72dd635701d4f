/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package console

import (
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/govportal/delegation-service/pkg/policy"

	"github.com/govportal/delegation-service/internal/state"
)

const (
	policies_cmd       = "policies"
	policies_cmd_short = "List the policies recognized by a policies catalog file"
)

var policiesCmd = &cobra.Command{
	Use:                   policies_cmd,
	Short:                 policies_cmd_short,
	Run:                   policiesCmdFunc,
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.AddCommand(policiesCmd)
	policiesCmd.Flags().StringP("file", "f", "", "policies YAML file")
}

func policiesCmdFunc(cmd *cobra.Command, args []string) {
	fpath, _ := cmd.Flags().GetString("file")
	if fpath == "" {
		logERR("Please specify a policies file with --file")
		os.Exit(1)
	}

	catalog := policy.NewCatalog(nil)
	if err := state.LoadPolicies(catalog, fpath); err != nil {
		logERR(err.Error())
		os.Exit(1)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"ID", "Visible", "Hidden", "Actions"})
	for _, p := range catalog.List() {
		t.AppendRow(table.Row{
			p.ID,
			strings.Join(p.Visible, ", "),
			strings.Join(p.Hidden, ", "),
			strings.Join(p.Actions, ", "),
		})
	}
	t.Render()
	os.Exit(0)
}
