package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCommand(t *testing.T) {
	buf := &bytes.Buffer{}
	versionCmd.SetOut(buf)

	runVersion(versionCmd, nil)

	assert.Contains(t, buf.String(), "policyaudit")
	assert.Contains(t, buf.String(), version)
}

func TestVersionCommandRegistered(t *testing.T) {
	found := false
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == "version" {
			found = true
		}
	}
	assert.True(t, found, "version command not registered on root")
}
