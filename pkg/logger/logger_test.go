/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package logger

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogs(t *testing.T) {
	logFiles := make(map[string]string, 2)
	logFiles["log"] = "./log.log"
	logFiles["issue"] = "./issue.log"
	l, err := NewLogs(logFiles)
	assert.NoError(t, err)

	l.Log("info", "test log line")
	l.Issue("info", "test issue line")

	os.Remove(logFiles["log"])
	os.Remove(logFiles["issue"])
}
