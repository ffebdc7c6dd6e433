package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestDecodeTS(t *testing.T) {
	t.Setenv("INTSIM_TELEMETRY_MODE", "ts")

	// 0x0102030405060708 little-endian
	err := execute(t, "decode", "0807060504030201")
	require.NoError(t, err)
}

func TestDecodeWrongLength(t *testing.T) {
	t.Setenv("INTSIM_TELEMETRY_MODE", "ts")

	err := execute(t, "decode", "0011")
	assert.Error(t, err, "2 bytes cannot be a ts header")
}

func TestDecodeInvalidHex(t *testing.T) {
	t.Setenv("INTSIM_TELEMETRY_MODE", "ts")

	err := execute(t, "decode", "zz")
	assert.Error(t, err)
}
