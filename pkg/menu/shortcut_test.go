package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModifierFlags(t *testing.T) {
	assert.Equal(t, Modifier(1<<0), CmdModifier)
	assert.Equal(t, Modifier(1<<1), CtrlModifier)
	assert.Equal(t, Modifier(1<<2), CmdOrCtrlModifier)
	assert.Equal(t, Modifier(1<<3), AltOrOptionModifier)
	assert.Equal(t, Modifier(1<<4), FunctionModifier)
	assert.Equal(t, Modifier(1<<5), ShiftModifier)

	m := CmdModifier | ShiftModifier
	assert.True(t, m.Has(CmdModifier))
	assert.True(t, m.Has(ShiftModifier))
	assert.False(t, m.Has(CtrlModifier))
	assert.Equal(t, "cmd+shift", m.String())
	assert.Equal(t, "cmd+ctrl+cmdctrl+alt+fn+shift", AllModifiers.String())
}

func TestParseShortcut(t *testing.T) {
	tests := []struct {
		in   string
		key  string
		mods Modifier
		err  bool
	}{
		{in: "q", key: "q"},
		{in: "cmd+q", key: "q", mods: CmdModifier},
		{in: "Cmd+Shift+Q", key: "Q", mods: CmdModifier | ShiftModifier},
		{in: "ctrl+c", key: "c", mods: CtrlModifier},
		{in: "cmdctrl+alt+fn+n", key: "n", mods: CmdOrCtrlModifier | AltOrOptionModifier | FunctionModifier},
		{in: "option+x", key: "x", mods: AltOrOptionModifier},
		{in: "", err: true},
		{in: "cmd+", err: true},
		{in: "hyper+q", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			key, mods, err := ParseShortcut(tt.in)
			if tt.err {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.mods, mods)
		})
	}
}

func TestFormatShortcut(t *testing.T) {
	assert.Equal(t, "", FormatShortcut("", CmdModifier))
	assert.Equal(t, "q", FormatShortcut("q", 0))
	assert.Equal(t, "cmd+alt+q", FormatShortcut("q", CmdModifier|AltOrOptionModifier))

	key, mods, err := ParseShortcut(FormatShortcut("w", CmdOrCtrlModifier|ShiftModifier))
	assert.NoError(t, err)
	assert.Equal(t, "w", key)
	assert.Equal(t, CmdOrCtrlModifier|ShiftModifier, mods)
}
