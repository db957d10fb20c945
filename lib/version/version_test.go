// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestCurrentUsesInjectedValues(t *testing.T) {
	saved := []string{Version, GitCommit, GitDirty, BuildTime}
	t.Cleanup(func() {
		Version, GitCommit, GitDirty, BuildTime = saved[0], saved[1], saved[2], saved[3]
	})

	Version, GitCommit, GitDirty, BuildTime = "1.2.3", "abc1234", "true", "2026-05-01T00:00:00Z"

	info := Current()
	if info.Version != "1.2.3" || info.Commit != "abc1234" || !info.Dirty {
		t.Errorf("Current() = %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, want %q", info.GoVersion, runtime.Version())
	}
	if got, want := Info(), "1.2.3 (abc1234-dirty, 2026-05-01T00:00:00Z)"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
	if !strings.Contains(Full(), "Platform: "+runtime.GOOS+"/"+runtime.GOARCH) {
		t.Errorf("Full() = %q, missing platform", Full())
	}
	if Short() != "1.2.3" {
		t.Errorf("Short() = %q", Short())
	}
}

func TestStringClean(t *testing.T) {
	info := BuildInfo{Version: "0.1.0", Commit: "deadbee", BuildTime: "now"}
	if got := info.String(); got != "0.1.0 (deadbee, now)" {
		t.Errorf("String() = %q", got)
	}
}
