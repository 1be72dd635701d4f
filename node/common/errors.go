/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package common

const (
	// ok
	OK = "ok"

	// server err
	ERR_SystemErr            = "system error"
	ERR_PolicyRecordMismatch = "policy does not cover the record"

	// client err
	ERR_NotFound      = "not found"
	ERR_InvalidPolicy = "unknown policy"
	ERR_InvalidToken  = "invalid or expired token"
	ERR_Malformed     = "malformed request"
	ERR_EmptyToken    = "empty token"
)
