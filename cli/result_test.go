package cli

import (
	"errors"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestCommandError(t *testing.T) {
	t.Run("implements error interface", func(t *testing.T) {
		err := NewCommandError(1)
		assert.Error(t, err)
		assert.Equal(t, "command failed", err.Error())
	})

	t.Run("returns exit code", func(t *testing.T) {
		err := NewCommandError(42)
		assert.Equal(t, 42, err.ExitCode())
	})

	t.Run("supports errors.As", func(t *testing.T) {
		var err error = NewCommandError(3)
		var cmdErr *CommandError
		assert.True(t, errors.As(err, &cmdErr))
		assert.Equal(t, 3, cmdErr.ExitCode())
	})
}

func TestCommandResult(t *testing.T) {
	t.Run("Success returns zero exit code", func(t *testing.T) {
		result := Success()
		assert.Equal(t, 0, result.ExitCode)
		assert.NoError(t, result.Err)
	})

	t.Run("Failure keeps the command exit code", func(t *testing.T) {
		result := Failure(NewCommandError(2))
		assert.Equal(t, 2, result.ExitCode)
		assert.Error(t, result.Err)
	})

	t.Run("Failure defaults to exit code one", func(t *testing.T) {
		result := Failure(errors.New("boom"))
		assert.Equal(t, 1, result.ExitCode)
		assert.EqualError(t, result.Err, "boom")
	})
}
