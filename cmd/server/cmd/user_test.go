package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPassword_FromPipe(t *testing.T) {
	var out bytes.Buffer

	pw, err := readPassword(&out, strings.NewReader("pw12345\nignored\n"))
	require.NoError(t, err)
	assert.Equal(t, "pw12345", pw)
	assert.Empty(t, out.String())
}

func TestReadPassword_NoTrailingNewline(t *testing.T) {
	pw, err := readPassword(&bytes.Buffer{}, strings.NewReader("pw12345\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "pw12345", pw)
}

func TestRootCommand_Wiring(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["migrate"])
	assert.True(t, names["user"])

	add, _, err := rootCmd.Find([]string{"user", "add"})
	require.NoError(t, err)
	assert.Equal(t, "add", add.Name())
}
