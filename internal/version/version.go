// Copyright 2024 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package version holds the build-time version string, set via -ldflags
// at release time and left at its default for a plain "go build".
package version

// Version is overridden at build time with -ldflags
// "-X github.com/tetroship/tetroship/internal/version.Version=...".
var Version = "dev"

// GetVersionString returns the version string for display in the startup
// log line.
func GetVersionString() string {
	return Version
}
