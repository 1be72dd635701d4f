/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

// Package web wires the gin HTTP surface described by the delegation
// protocol onto internal/orchestration and internal/state.
package web

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/govportal/delegation-service/internal/state"
)

// Handler composes every route group this server exposes.
type Handler struct {
	*TokenHandler
	*DiagnosticsHandler
}

// NewHandler builds a Handler bound to s.
func NewHandler(s *state.ServerState, defaultTTL int64) *Handler {
	return &Handler{
		TokenHandler:       NewTokenHandler(s, defaultTTL),
		DiagnosticsHandler: NewDiagnosticsHandler(s),
	}
}

// RegisterRoutes mounts every handler's routes onto server, alongside
// the request-id and CORS middleware every route group shares.
func (h *Handler) RegisterRoutes(server *gin.Engine) {
	server.Use(requestID(), cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST"},
		AllowHeaders:    []string{"Origin", "Content-Type"},
	}))

	h.TokenHandler.RegisterRoutes(server)
	h.DiagnosticsHandler.RegisterRoutes(server)
}

// requestID stamps every response with an X-Request-Id header so
// operators can correlate a delegate's report with a server log line.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-Id", id)
		c.Set("request_id", id)
		c.Next()
	}
}
