/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package web

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/govportal/delegation-service/pkg/proof/apiv1"

	"github.com/govportal/delegation-service/internal/orchestration"
	"github.com/govportal/delegation-service/internal/state"

	"github.com/govportal/delegation-service/node/common"
)

// TokenHandler implements the three protocol operations: Issue,
// Dispense, Verify.
type TokenHandler struct {
	state      *state.ServerState
	defaultTTL int64 // seconds
}

// NewTokenHandler builds a TokenHandler bound to s, using defaultTTL
// (seconds) when a create request omits expiresIn.
func NewTokenHandler(s *state.ServerState, defaultTTL int64) *TokenHandler {
	return &TokenHandler{state: s, defaultTTL: defaultTTL}
}

func (h *TokenHandler) RegisterRoutes(server *gin.Engine) {
	server.POST("/token/create", h.create)
	server.GET("/delegate/:token", h.dispense)
	server.POST("/verify", h.verify)
}

func (h *TokenHandler) create(c *gin.Context) {
	var req apiv1.IssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.RespType{Code: http.StatusBadRequest, Msg: common.ERR_Malformed})
		return
	}
	if req.RecordID == "" || req.PolicyID == "" {
		c.JSON(http.StatusBadRequest, common.RespType{Code: http.StatusBadRequest, Msg: common.ERR_Malformed})
		return
	}

	ttl := time.Duration(req.ExpiresIn) * time.Second
	if req.ExpiresIn <= 0 {
		ttl = time.Duration(h.defaultTTL) * time.Second
	}

	result, err := orchestration.Issue(h.state, req.RecordID, req.PolicyID, ttl)
	if err != nil {
		if h.state.Log != nil {
			h.state.Log.Issue("err", err.Error())
		}
		writeOrchestrationError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.RespType{
		Code: http.StatusOK,
		Msg:  common.OK,
		Data: apiv1.IssueResponse{
			TokenID:   result.TokenID,
			Token:     result.Token,
			URL:       "/delegate/" + url.PathEscape(result.Token),
			ExpiresAt: result.ExpiresAt.Unix(),
			Cryptography: apiv1.CryptographyMaterial{
				RecordCommitment: result.RecordCommitment,
				PolicyHash:       result.PolicyHash,
			},
		},
	})
}

func (h *TokenHandler) dispense(c *gin.Context) {
	raw := c.Param("token")
	if raw == "" {
		c.JSON(http.StatusBadRequest, common.RespType{Code: http.StatusBadRequest, Msg: common.ERR_EmptyToken})
		return
	}

	result, err := orchestration.Dispense(h.state, raw)
	if err != nil {
		writeOrchestrationError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.RespType{
		Code: http.StatusOK,
		Msg:  common.OK,
		Data: apiv1.DispenseResponse{
			FilteredRecord: result.FilteredRecord,
			Actions:        result.Actions,
			Proof:          result.Proof,
		},
	})
}

func (h *TokenHandler) verify(c *gin.Context) {
	var req apiv1.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.RespType{Code: http.StatusBadRequest, Msg: common.ERR_Malformed})
		return
	}
	if req.TokenID == "" {
		c.JSON(http.StatusBadRequest, common.RespType{Code: http.StatusBadRequest, Msg: common.ERR_Malformed})
		return
	}

	result, err := orchestration.Verify(h.state, req.TokenID, req.Proof)
	if err != nil {
		if h.state.Log != nil {
			h.state.Log.Verify("err", err.Error())
		}
		writeOrchestrationError(c, err)
		return
	}

	c.JSON(http.StatusOK, common.RespType{
		Code: http.StatusOK,
		Msg:  common.OK,
		Data: apiv1.VerifyResponse{
			Valid:             result.Valid,
			RecomputedVisible: result.RecomputedVisible,
			Verification: apiv1.VerificationDetail{
				RecomputedVisible: result.RecomputedVisible,
			},
		},
	})
}
