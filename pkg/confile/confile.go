/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package confile

import (
	"os"
	"path"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/govportal/delegation-service/configs"
)

// Confiler is the read-only view of a parsed server configuration
// handed to the orchestration and transport layers.
type Confiler interface {
	Parse(fpath string) error
	ReadWorkspace() string
	ReadServicePort() uint16
	ReadDefaultTTL() time.Duration
	ReadPersist() bool
	ReadPoliciesFile() string
	ReadRecordsFile() string
}

// Server is the "server:" section of the YAML config.
type Server struct {
	Workspace    string `name:"workspace" yaml:"workspace"`
	Port         uint16 `name:"port" yaml:"port"`
	DefaultTTL   uint32 `name:"defaultttl" yaml:"defaultttl"`
	Persist      bool   `name:"persist" yaml:"persist"`
	PoliciesFile string `name:"policiesfile" yaml:"policiesfile"`
	RecordsFile  string `name:"recordsfile" yaml:"recordsfile"`
}

// Confile is the top-level parsed configuration document.
type Confile struct {
	Server `yaml:"server"`
}

var _ Confiler = (*Confile)(nil)

// NewConfigFile builds an unparsed Confile ready for Parse.
func NewConfigFile() *Confile {
	return &Confile{}
}

// Parse loads fpath as YAML and validates it fail-fast, the way every
// deployable config in this lineage rejects malformed input before
// the server starts serving traffic.
func (c *Confile) Parse(fpath string) error {
	fstat, err := os.Stat(fpath)
	if err != nil {
		return err
	}
	if fstat.IsDir() {
		return errors.Errorf("the '%v' is not a file", fpath)
	}

	viper.SetConfigFile(fpath)
	viper.SetConfigType(path.Ext(fpath)[1:])

	if err := viper.ReadInConfig(); err != nil {
		return errors.Errorf("[ReadInConfig] %v", err)
	}
	if err := viper.Unmarshal(c); err != nil {
		return errors.Errorf("[Unmarshal] %v", err)
	}

	if c.Port < 1024 {
		return errors.Errorf("prohibit the use of system reserved port: %v", c.Port)
	}
	if c.DefaultTTL == 0 {
		return errors.New("'defaultttl' must be greater than zero seconds")
	}
	if c.PoliciesFile == "" {
		return errors.New("'policiesfile' can not be empty")
	}
	if c.RecordsFile == "" {
		return errors.New("'recordsfile' can not be empty")
	}
	if _, err := os.Stat(c.PoliciesFile); err != nil {
		return errors.Errorf("policies file %q is not readable: %v", c.PoliciesFile, err)
	}
	if _, err := os.Stat(c.RecordsFile); err != nil {
		return errors.Errorf("records file %q is not readable: %v", c.RecordsFile, err)
	}

	fstat, err = os.Stat(c.Workspace)
	if err != nil {
		if err := os.MkdirAll(c.Workspace, configs.FileMode); err != nil {
			return err
		}
	} else if !fstat.IsDir() {
		return errors.Errorf("the '%v' is not a directory", c.Workspace)
	}

	return nil
}

func (c *Confile) ReadWorkspace() string { return c.Workspace }

func (c *Confile) ReadServicePort() uint16 { return c.Port }

func (c *Confile) ReadDefaultTTL() time.Duration {
	return time.Duration(c.DefaultTTL) * time.Second
}

func (c *Confile) ReadPersist() bool { return c.Persist }

func (c *Confile) ReadPoliciesFile() string { return c.PoliciesFile }

func (c *Confile) ReadRecordsFile() string { return c.RecordsFile }
