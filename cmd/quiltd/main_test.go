package main

import (
	"io"
	"testing"
)

func TestSocketFlagOverridesClientTarget(t *testing.T) {
	cmd := NewCommand()
	if cmd.PersistentFlags().Lookup("socket") == nil {
		t.Fatalf("expected a persistent --socket flag")
	}

	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetArgs([]string{"--socket", "/tmp/quiltd-test.sock", "version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	// PersistentPreRunE must pick up the parsed value before any client
	// command dials the daemon.
	if unixSocketPath != "/tmp/quiltd-test.sock" {
		t.Fatalf("expected socket path override, got %s", unixSocketPath)
	}
}
