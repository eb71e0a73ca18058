package menu

import "strings"

// Modifier is a bitmask of keyboard modifiers qualifying a shortcut key.
// The flags are independent and may be combined freely.
type Modifier uint32

const (
	CmdModifier Modifier = 1 << iota
	CtrlModifier
	CmdOrCtrlModifier
	AltOrOptionModifier
	FunctionModifier
	ShiftModifier
)

// AllModifiers is every defined flag.
const AllModifiers = CmdModifier | CtrlModifier | CmdOrCtrlModifier |
	AltOrOptionModifier | FunctionModifier | ShiftModifier

var modifierNames = []struct {
	flag Modifier
	name string
}{
	{CmdModifier, "cmd"},
	{CtrlModifier, "ctrl"},
	{CmdOrCtrlModifier, "cmdctrl"},
	{AltOrOptionModifier, "alt"},
	{FunctionModifier, "fn"},
	{ShiftModifier, "shift"},
}

// Has reports whether all flags in f are set.
func (m Modifier) Has(f Modifier) bool {
	return m&f == f
}

func (m Modifier) String() string {
	var parts []string
	for _, n := range modifierNames {
		if m.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}
