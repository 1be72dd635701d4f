/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package console

import (
	"fmt"
	"os"
	"strings"

	"github.com/howeyc/gopass"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	out "github.com/govportal/delegation-service/pkg/fout"
)

const (
	register_record_cmd       = "register-record"
	register_record_cmd_short = "Interactively append a record to a records seed file"
)

var registerRecordCmd = &cobra.Command{
	Use:                   register_record_cmd,
	Short:                 register_record_cmd_short,
	Run:                   registerRecordCmdFunc,
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.AddCommand(registerRecordCmd)
	registerRecordCmd.Flags().StringP("file", "f", "", "records YAML file to append to")
	registerRecordCmd.Flags().StringP("id", "i", "", "record id")
	registerRecordCmd.Flags().StringSliceP("fields", "", nil, "field names, in order")
}

// recordsFile mirrors the on-disk shape internal/state.LoadRecords reads.
type recordsFile map[string]struct {
	Names  []string          `yaml:"names"`
	Values map[string]string `yaml:"values"`
}

func registerRecordCmdFunc(cmd *cobra.Command, args []string) {
	fpath, _ := cmd.Flags().GetString("file")
	recordID, _ := cmd.Flags().GetString("id")
	fields, _ := cmd.Flags().GetStringSlice("fields")

	if fpath == "" || recordID == "" || len(fields) == 0 {
		out.Err("Please specify --file, --id and --fields")
		os.Exit(1)
	}

	var existing recordsFile
	raw, err := os.ReadFile(fpath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &existing); err != nil {
			out.Err(err.Error())
			os.Exit(1)
		}
	case os.IsNotExist(err):
		existing = recordsFile{}
	default:
		out.Err(err.Error())
		os.Exit(1)
	}
	if existing == nil {
		existing = recordsFile{}
	}

	values := make(map[string]string, len(fields))
	for _, name := range fields {
		out.Input(fmt.Sprintf("Enter value for field %q (input hidden):", name))
		pwd, err := gopass.GetPasswdMasked()
		if err != nil {
			if strings.Contains(err.Error(), "interrupt") || err.Error() == "killed" {
				os.Exit(0)
			}
			out.Err(err.Error())
			os.Exit(1)
		}
		values[name] = string(pwd)
	}

	entry := existing[recordID]
	entry.Names = fields
	entry.Values = values
	existing[recordID] = entry

	encoded, err := yaml.Marshal(existing)
	if err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	if err := os.WriteFile(fpath, encoded, 0600); err != nil {
		out.Err(err.Error())
		os.Exit(1)
	}
	logOK(fmt.Sprintf("record %q written to %v", recordID, fpath))
}
