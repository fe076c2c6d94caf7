package clip

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClean(t *testing.T) {
	assert.Equal(t, "0xFF", Clean("0xFF\n"))
	assert.Equal(t, "12", Clean("1\r\n2"))
	assert.Equal(t, "−0x10", Clean("−0x10"))
}

func TestCopy(t *testing.T) {
	var copied, notified string
	c := &Clipboard{
		Notify: true,
		write:  func(s string) error { copied = s; return nil },
		notify: func(s string) error { notified = s; return errors.New("no notification daemon") },
	}

	require.NoError(t, c.Copy("80\n"))
	assert.Equal(t, "80", copied)
	assert.Equal(t, "Copied 80", notified)
}

func TestCopy_WriteError(t *testing.T) {
	notified := false
	c := &Clipboard{
		Notify: true,
		write:  func(string) error { return ErrUnsupported },
		notify: func(string) error { notified = true; return nil },
	}

	assert.ErrorIs(t, c.Copy("1"), ErrUnsupported)
	assert.False(t, notified)
}

func TestCopy_NoNotify(t *testing.T) {
	notified := false
	c := &Clipboard{
		write:  func(string) error { return nil },
		notify: func(string) error { notified = true; return nil },
	}

	require.NoError(t, c.Copy("1"))
	assert.False(t, notified)
}
