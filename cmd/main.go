/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package main

import (
	_ "github.com/govportal/delegation-service/initlz"

	"github.com/govportal/delegation-service/cmd/console"
)

// program entry
func main() {
	console.Execute()
}
