package main

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUserError(t *testing.T) {
	err := userErrorf("Could not canonicalize path `%s`", "x.basm")
	require.EqualError(t, err, "could not canonicalize path `x.basm`")
	require.Equal(t, "Could not canonicalize path `x.basm`", displayMessage(err))

	wrapped := userErrorf("Could not create output `%s`: %w", "out", fs.ErrPermission)
	require.ErrorIs(t, wrapped, fs.ErrPermission)
	require.Equal(t, "Could not create output `out`: permission denied", displayMessage(wrapped))

	plain := errors.New("ctx: invalid configuration")
	require.Equal(t, plain.Error(), displayMessage(plain))
}

func TestUndeterminedOutputError(t *testing.T) {
	require.EqualError(t, errUndeterminedOutput, "cannot determine whether to output parsed or lexed data")
	require.Equal(t, "Cannot determine whether to output parsed or lexed data", displayMessage(errUndeterminedOutput))
}
