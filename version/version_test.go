// © 2025 The accelkit Authors. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package version

import (
	"strings"
	"testing"

	"github.com/haneulab/accelkit/testutil"
)

func TestCmdName(t *testing.T) {
	name := CmdName()
	if name == "" {
		t.Fatal("CmdName returned an empty string")
	}
	if strings.ContainsAny(name, `/\`) {
		t.Errorf("CmdName() = %q, want no path separators", name)
	}
	if strings.HasSuffix(name, ".exe") {
		t.Errorf("CmdName() = %q, want no .exe suffix", name)
	}
}

func TestVersion(t *testing.T) {
	i := Version()

	testutil.AssertEqual(t, i.Name, CmdName())
	if i.Version == "" {
		t.Error("Version field is empty")
	}
	if i.Go == "" {
		t.Error("Go field is empty")
	}

	s := i.String()
	if !strings.Contains(s, i.Name) {
		t.Errorf("String() = %q, doesn't contain the binary name", s)
	}
	if !strings.Contains(s, i.Go) {
		t.Errorf("String() = %q, doesn't contain the Go version", s)
	}

	// The result is cached.
	testutil.AssertEqual(t, Version(), i)
}
