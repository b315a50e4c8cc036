package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPasswordCmd(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"hash-password", "--cost", "4", "s3cret"})

	require.NoError(t, cmd.Execute())

	hashed := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashed), []byte("s3cret")))
}

func TestHashPasswordCmd_RequiresArg(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"hash-password"})
	assert.Error(t, cmd.Execute())
}

func TestMigrateCmd_RejectsMemory(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("ADMIN_PASSWORD", "x")

	cmd := newRootCmd()
	cmd.SetArgs([]string{"migrate"})
	assert.ErrorContains(t, cmd.Execute(), "STORE_DRIVER")
}
