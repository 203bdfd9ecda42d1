package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrompter_Text(t *testing.T) {
	var out bytes.Buffer
	p := newPrompter(strings.NewReader("  alice \nlast"), &out)

	got, err := p.Text("Username")
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
	assert.Equal(t, "Username: ", out.String())

	got, err = p.Text("Again")
	require.NoError(t, err)
	assert.Equal(t, "last", got)

	_, err = p.Text("Empty")
	assert.Error(t, err)
}

func TestPrompter_PasswordTerminal(t *testing.T) {
	origRead, origTerm := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = origRead, origTerm })
	isTerminal = func(int) bool { return true }

	readPassword = func(int) ([]byte, error) { return []byte(" spaced "), nil }
	var out bytes.Buffer
	got, err := newPrompter(strings.NewReader(""), &out).Password("Master password")
	require.NoError(t, err)
	assert.Equal(t, " spaced ", got)
	assert.Equal(t, "Master password: \n", out.String())

	readPassword = func(int) ([]byte, error) { return nil, errors.New("boom") }
	_, err = newPrompter(strings.NewReader(""), &out).Password("x")
	assert.EqualError(t, err, "boom")
}

func TestPrompter_NewPassword(t *testing.T) {
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })
	isTerminal = func(int) bool { return false }

	p := newPrompter(strings.NewReader("a b\na b\n"), &bytes.Buffer{})
	got, err := p.NewPassword("Password")
	require.NoError(t, err)
	assert.Equal(t, "a b", got)

	p = newPrompter(strings.NewReader("a\nb\n"), &bytes.Buffer{})
	_, err = p.NewPassword("Password")
	assert.ErrorIs(t, err, errPasswordMismatch)
}
