/*
   Copyright 2022 CESS (Cumulus Encrypted Storage System) authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

        http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package initlz applies process-wide tuning before cmd/console runs.
package initlz

import "runtime"

// system init
func init() {
	// Leave a third of the cores free for the host; a delegation
	// server is short-request-bound, not compute-bound, but headroom
	// for GC and the HTTP server's own goroutines still matters under load.
	num := runtime.NumCPU() * 2 / 3
	if num <= 1 {
		runtime.GOMAXPROCS(1)
	} else {
		runtime.GOMAXPROCS(num)
	}
}
