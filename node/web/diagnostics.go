/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package web

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/process"

	"github.com/govportal/delegation-service/pkg/group"
	"github.com/govportal/delegation-service/pkg/proof/apiv1"

	"github.com/govportal/delegation-service/internal/state"

	"github.com/govportal/delegation-service/node/common"
)

// DiagnosticsHandler exposes the server's public cryptographic
// parameters, its policy catalog, and process health.
type DiagnosticsHandler struct {
	state     *state.ServerState
	startedAt time.Time
}

// NewDiagnosticsHandler builds a DiagnosticsHandler bound to s.
func NewDiagnosticsHandler(s *state.ServerState) *DiagnosticsHandler {
	return &DiagnosticsHandler{state: s, startedAt: time.Now()}
}

func (d *DiagnosticsHandler) RegisterRoutes(server *gin.Engine) {
	server.GET("/generators", d.generators)
	server.GET("/policies", d.policies)
	server.GET("/status", d.status)
	server.GET("/healthz", d.healthz)
}

func (d *DiagnosticsHandler) generators(c *gin.Context) {
	c.JSON(http.StatusOK, common.RespType{
		Code: http.StatusOK,
		Msg:  common.OK,
		Data: apiv1.GeneratorsResponse{
			G:     group.Encode(group.Generator()),
			H:     group.Encode(group.H()),
			Curve: "secp256k1",
		},
	})
}

func (d *DiagnosticsHandler) policies(c *gin.Context) {
	policies := d.state.Catalog.List()
	summaries := make([]apiv1.PolicySummary, 0, len(policies))
	for _, p := range policies {
		summaries = append(summaries, apiv1.PolicySummary{
			ID:      p.ID,
			Visible: p.Visible,
			Hidden:  p.Hidden,
			Actions: p.Actions,
		})
	}
	c.JSON(http.StatusOK, common.RespType{
		Code: http.StatusOK,
		Msg:  common.OK,
		Data: apiv1.PoliciesResponse{Policies: summaries},
	})
}

// statusData is the payload returned by GET /status.
type statusData struct {
	PID        int32   `json:"pid"`
	Goroutines int     `json:"goroutines"`
	MemoryRSS  uint64  `json:"memoryRssBytes"`
	CPUPercent float64 `json:"cpuPercent"`
	UptimeSecs int64   `json:"uptimeSeconds"`
}

func (d *DiagnosticsHandler) status(c *gin.Context) {
	pid := int32(os.Getpid())
	data := statusData{
		PID:        pid,
		Goroutines: runtime.NumGoroutine(),
		UptimeSecs: int64(time.Since(d.startedAt).Seconds()),
	}

	if proc, err := process.NewProcess(pid); err == nil {
		if memInfo, err := proc.MemoryInfo(); err == nil && memInfo != nil {
			data.MemoryRSS = memInfo.RSS
		}
		if cpuPct, err := proc.CPUPercent(); err == nil {
			data.CPUPercent = cpuPct
		}
	}

	c.JSON(http.StatusOK, common.RespType{Code: http.StatusOK, Msg: common.OK, Data: data})
}

func (d *DiagnosticsHandler) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, common.RespType{Code: http.StatusOK, Msg: common.OK})
}
