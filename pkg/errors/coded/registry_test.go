package coded

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.ytsaurus.tech/library/go/core/xerrors"
)

func TestCodeContains(t *testing.T) {
	first := Register("test", "first")
	second := Register("test", "second")

	t.Run("direct", func(t *testing.T) {
		err := Errorf(first, "boom")
		require.True(t, first.Contains(err))
		require.False(t, second.Contains(err))
	})

	t.Run("wrapped", func(t *testing.T) {
		err := xerrors.Errorf("outer: %w", Errorf(second, "inner"))
		require.True(t, second.Contains(err))
		require.False(t, first.Contains(err))
	})

	t.Run("nested codes", func(t *testing.T) {
		inner := Errorf(first, "inner")
		err := Errorf(second, "outer: %w", inner)
		require.True(t, second.Contains(err))
		require.True(t, first.Contains(err))
	})

	t.Run("plain error", func(t *testing.T) {
		require.False(t, first.Contains(xerrors.New("plain")))
	})
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test", "dup")
	require.Panics(t, func() {
		Register("test", "dup")
	})
}

func TestShortDescription(t *testing.T) {
	code := Register("test", "described")
	_, ok := GetShortDescription(code)
	require.False(t, ok)

	RegisterShortDescription(code, "something")
	description, ok := GetShortDescription(code)
	require.True(t, ok)
	require.Equal(t, "something", description)
	require.Contains(t, All(), code)

	require.Panics(t, func() {
		RegisterShortDescription(Code("test.unknown"), "x")
	})
}
