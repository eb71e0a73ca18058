package menu

import (
	"fmt"
	"strings"
)

// ParseShortcut splits a shortcut such as "cmd+shift+q" into its key and
// modifier mask. The key is always the last "+"-separated part.
func ParseShortcut(s string) (key string, mods Modifier, err error) {
	parts := strings.Split(s, "+")
	key = parts[len(parts)-1]
	if len(key) == 0 {
		return "", 0, fmt.Errorf("empty key in shortcut %q", s)
	}
	for _, part := range parts[:len(parts)-1] {
		switch strings.ToLower(part) {
		case "cmd":
			mods |= CmdModifier
		case "ctrl":
			mods |= CtrlModifier
		case "cmdctrl", "cmdorctrl":
			mods |= CmdOrCtrlModifier
		case "alt", "option":
			mods |= AltOrOptionModifier
		case "fn":
			mods |= FunctionModifier
		case "shift":
			mods |= ShiftModifier
		default:
			return "", 0, fmt.Errorf("unknown modifier: %s", part)
		}
	}
	return key, mods, nil
}

// FormatShortcut is the inverse of ParseShortcut.
func FormatShortcut(key string, mods Modifier) string {
	if key == "" {
		return ""
	}
	if mods == 0 {
		return key
	}
	return mods.String() + "+" + key
}
