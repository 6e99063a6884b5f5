package controller

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestNewUI(t *testing.T) {
	newBufferedCmd := func() *cobra.Command {
		cmd := &cobra.Command{}
		cmd.SetOut(&bytes.Buffer{})

		return cmd
	}

	t.Run("non-tty output gets the simple UI", func(t *testing.T) {
		ui := NewUI(newBufferedCmd(), false, false, nil)

		_, ok := ui.(*SimpleUI)
		assert.True(t, ok)
	})

	t.Run("tty output gets the TUI", func(t *testing.T) {
		ui := NewUI(newBufferedCmd(), true, false, nil)

		_, ok := ui.(*TUI)
		assert.True(t, ok)
	})

	t.Run("quiet forces the simple UI even on a tty", func(t *testing.T) {
		ui := NewUI(newBufferedCmd(), true, true, nil)

		_, ok := ui.(*SimpleUI)
		assert.True(t, ok)
	})
}

func TestIsTTY(t *testing.T) {
	t.Run("plain buffer is not a tty", func(t *testing.T) {
		assert.False(t, IsTTY(&bytes.Buffer{}))
	})
}
