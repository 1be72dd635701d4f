/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/govportal/delegation-service/node/common"

	"github.com/govportal/delegation-service/internal/orchestration"
)

// writeOrchestrationError maps a classified orchestration.Error to the
// HTTP status/message pairing in the exit-conditions table, without
// ever placing InvalidToken's detailed cause in the response body.
func writeOrchestrationError(c *gin.Context, err error) {
	orchErr, ok := err.(*orchestration.Error)
	if !ok {
		c.JSON(http.StatusInternalServerError, common.RespType{Code: http.StatusInternalServerError, Msg: common.ERR_SystemErr})
		return
	}

	switch orchErr.Kind {
	case orchestration.KindNotFound:
		c.JSON(http.StatusNotFound, common.RespType{Code: http.StatusNotFound, Msg: common.ERR_NotFound})
	case orchestration.KindInvalidPolicy:
		c.JSON(http.StatusNotFound, common.RespType{Code: http.StatusNotFound, Msg: common.ERR_InvalidPolicy})
	case orchestration.KindInvalidToken:
		c.JSON(http.StatusUnauthorized, common.RespType{Code: http.StatusUnauthorized, Msg: common.ERR_InvalidToken})
	case orchestration.KindMalformed:
		c.JSON(http.StatusBadRequest, common.RespType{Code: http.StatusBadRequest, Msg: common.ERR_Malformed})
	case orchestration.KindPolicyRecordMismatch:
		c.JSON(http.StatusInternalServerError, common.RespType{Code: http.StatusInternalServerError, Msg: common.ERR_PolicyRecordMismatch})
	default:
		c.JSON(http.StatusInternalServerError, common.RespType{Code: http.StatusInternalServerError, Msg: common.ERR_SystemErr})
	}
}
