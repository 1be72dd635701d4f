/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package console

import (
	"fmt"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/govportal/delegation-service/configs"
	"github.com/govportal/delegation-service/pkg/confile"
	"github.com/govportal/delegation-service/pkg/db"
	out "github.com/govportal/delegation-service/pkg/fout"
	"github.com/govportal/delegation-service/pkg/logger"
	"github.com/govportal/delegation-service/pkg/policy"

	"github.com/govportal/delegation-service/internal/record"
	"github.com/govportal/delegation-service/internal/state"
	"github.com/govportal/delegation-service/node/web"
)

const (
	serve_cmd       = "serve"
	serve_cmd_short = "Start the delegation-token HTTP server"
)

var serveCmd = &cobra.Command{
	Use:                   serve_cmd,
	Short:                 serve_cmd_short,
	Run:                   serveCmdFunc,
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// logSinks names every logger.Logger sink this service writes through.
var logSinks = []string{"log", "panic", "issue", "dispense", "verify", "policy"}

func serveCmdFunc(cmd *cobra.Command, args []string) {
	cfg, err := buildConfigFile(cmd)
	if err != nil {
		out.Err(err.Error())
		return
	}

	logs, err := buildLogs(cfg)
	if err != nil {
		out.Err(err.Error())
		return
	}

	var cache db.ICache
	if cfg.ReadPersist() {
		cache, err = db.NewCache(filepath.Join(cfg.ReadWorkspace(), "state"), 0, 0, configs.Name)
		if err != nil {
			out.Err(err.Error())
			return
		}
	}

	catalog := policy.NewCatalog(cache)
	if err := state.LoadPolicies(catalog, cfg.ReadPoliciesFile()); err != nil {
		out.Err(err.Error())
		return
	}
	if err := catalog.RestoreFromStore(); err != nil {
		out.Err(err.Error())
		return
	}

	records := record.NewStore(cache)
	if err := state.LoadRecords(records, cfg.ReadRecordsFile()); err != nil {
		out.Err(err.Error())
		return
	}
	if err := records.RestoreFromStore(); err != nil {
		out.Err(err.Error())
		return
	}

	serverState, err := state.New(catalog, records, logs, cache)
	if err != nil {
		out.Err(err.Error())
		return
	}
	if err := serverState.RestoreTokens(); err != nil {
		out.Err(err.Error())
		return
	}

	defaultTTL := int64(cfg.ReadDefaultTTL().Seconds())

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	web.NewHandler(serverState, defaultTTL).RegisterRoutes(engine)

	addr := fmt.Sprintf(":%d", cfg.ReadServicePort())
	out.Ok(fmt.Sprintf("listening on %v", addr))
	if err := engine.Run(addr); err != nil {
		out.Err(err.Error())
	}
}

func buildConfigFile(cmd *cobra.Command) (confile.Confiler, error) {
	fpath, _ := cmd.Flags().GetString("config")
	if fpath == "" {
		fpath = configs.DefaultProfile
	}
	cfg := confile.NewConfigFile()
	if err := cfg.Parse(fpath); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildLogs(cfg confile.Confiler) (logger.Logger, error) {
	logDir := filepath.Join(cfg.ReadWorkspace(), "log")
	sinks := make(map[string]string, len(logSinks))
	for _, name := range logSinks {
		sinks[name] = filepath.Join(logDir, name+".log")
	}
	return logger.NewLogs(sinks)
}
