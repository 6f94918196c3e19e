package hotkey

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"style-watcher/pkg/logger"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Chord
		str  string
	}{
		{"Alt+S", Chord{Alt: true, Key: "S"}, "Alt+S"},
		{"", Chord{Alt: true, Key: "S"}, "Alt+S"},
		{" ctrl + shift + f5 ", Chord{Ctrl: true, Shift: true, Key: "F5"}, "Ctrl+Shift+F5"},
		{"Control+Alt+1", Chord{Ctrl: true, Alt: true, Key: "1"}, "Ctrl+Alt+1"},
		{"Win+Space", Chord{Super: true, Key: "SPACE"}, "Super+Space"},
		{"Alt++Q", Chord{Alt: true, Key: "Q"}, "Alt+Q"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.str, got.String())
		})
	}
}

func TestParseRejects(t *testing.T) {
	for _, in := range []string{"Alt", "Alt+Banana", "Alt+S+D", "F25"} {
		_, err := Parse(in)
		assert.Error(t, err, in)
	}
}

func TestModifiers(t *testing.T) {
	c, err := Parse("Super+Ctrl+Alt+Shift+K")
	require.NoError(t, err)
	assert.Equal(t, []string{"ctrl", "alt", "shift", "cmd"}, c.Modifiers())
	assert.Equal(t, "SUPER CTRL ALT SHIFT", c.hyprMods())
	assert.Equal(t, []string{"alt"}, MustDefault().Modifiers())
}

type call struct {
	name string
	args []string
}

func fakeBinder(out string, err error) (*HyprlandBinder, *[]call) {
	var calls []call
	b := &HyprlandBinder{
		log: logger.Nop(),
		run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			calls = append(calls, call{name: name, args: args})
			return []byte(out), err
		},
	}
	return b, &calls
}

func TestHyprlandBindAndUnbind(t *testing.T) {
	b, calls := fakeBinder("ok\n", nil)
	ctx := context.Background()

	require.NoError(t, b.Bind(ctx, MustDefault(), "/usr/bin/style-watcher -capture"))
	require.NoError(t, b.UnbindAll(ctx))
	require.NoError(t, b.UnbindAll(ctx))

	assert.Equal(t, []call{
		{name: "hyprctl", args: []string{"keyword", "bind", "ALT,S,exec,/usr/bin/style-watcher -capture"}},
		{name: "hyprctl", args: []string{"keyword", "unbind", "ALT,S"}},
	}, *calls)
}

func TestHyprlandBindFailures(t *testing.T) {
	ctx := context.Background()

	b, _ := fakeBinder("invalid mod", nil)
	assert.Error(t, b.Bind(ctx, MustDefault(), "x"))
	assert.Empty(t, b.bound)

	b, _ = fakeBinder("", errors.New("exit status 1"))
	assert.Error(t, b.Bind(ctx, MustDefault(), "x"))
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, `'/opt/my apps/style-watcher'`, ShellQuote("/opt/my apps/style-watcher"))
	assert.Equal(t, `'it'\''s'`, ShellQuote("it's"))
}

func TestWin32Codes(t *testing.T) {
	c := MustDefault()
	assert.Equal(t, uint32('S'), c.virtualKey())
	assert.Equal(t, uint32(modAlt|modNoRepeat), c.winMods())

	c, err := Parse("Ctrl+Shift+F12")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x7B), c.virtualKey())
	assert.Equal(t, uint32(modControl|modShift|modNoRepeat), c.winMods())

	c, err = Parse("Win+Space")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x20), c.virtualKey())
}
