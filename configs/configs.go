/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

// Package configs holds the fixed identity constants and default
// config template for the delegation-token server binary.
package configs

import "os"

const (
	// Name is the binary/service name shown by the version command and
	// used as the root command name.
	Name = "govportal-delegate"
	// Description is the one-line CLI description.
	Description = "Verifiable delegation-token issuance and dispensing service"
	// Version is the CLI-reported build version.
	Version = "v0.1.0"

	// FileMode is the permission mode used for workspace directories
	// this service creates.
	FileMode = os.FileMode(0755)
)

// DefaultProfile is the config filename `config` writes when none is given.
const DefaultProfile = "conf.yaml"

// TemplateProfile is the YAML skeleton written by `govportal-delegate config`.
const TemplateProfile = `server:
  # workspace directory: logs, leveldb state, and seed data live under here
  workspace: "/opt/govportal-delegate"
  # HTTP listen port
  port: 9527
  # default token lifetime in seconds, used when a request omits expiresIn
  defaultttl: 900
  # persist the token map and policy catalog to leveldb under workspace/state
  persist: true
  # path to the policy catalog YAML (visible/hidden/actions per policy id)
  policiesfile: "/opt/govportal-delegate/policies.yaml"
  # path to the seed record store YAML standing in for the external record system
  recordsfile: "/opt/govportal-delegate/records.yaml"
`
