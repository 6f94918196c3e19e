// Package hotkey parses the configured hotkey and binds it in the
// compositor.
package hotkey

import (
	"fmt"
	"regexp"
	"strings"
)

// Default is the chord used when none is configured or it cannot be parsed.
const Default = "Alt+S"

// Chord is a set of modifiers plus one key.
type Chord struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Super bool
	Key   string // upper-case key name, e.g. "S", "F5", "SPACE"
}

var functionKey = regexp.MustCompile(`^F([1-9]|1[0-9]|2[0-4])$`)

var namedKeys = map[string]string{
	"SPACE":  "SPACE",
	"TAB":    "TAB",
	"ENTER":  "RETURN",
	"RETURN": "RETURN",
	"INSERT": "INSERT",
	"DELETE": "DELETE",
	"HOME":   "HOME",
	"END":    "END",
	"PGUP":   "PRIOR",
	"PRIOR":  "PRIOR",
	"PGDN":   "NEXT",
	"NEXT":   "NEXT",
	"PAUSE":  "PAUSE",
}

// Parse reads chords like "Alt+S" or "ctrl + shift + f5". Modifier names are
// case-insensitive; "Control" and "Win"/"Windows" are accepted aliases.
// An empty string parses to Default.
func Parse(s string) (Chord, error) {
	if strings.TrimSpace(s) == "" {
		s = Default
	}

	var c Chord
	for _, part := range strings.Split(s, "+") {
		t := strings.ToUpper(strings.TrimSpace(part))
		switch t {
		case "":
			continue
		case "CTRL", "CONTROL":
			c.Ctrl = true
		case "ALT":
			c.Alt = true
		case "SHIFT":
			c.Shift = true
		case "WIN", "WINDOWS", "SUPER", "META", "CMD":
			c.Super = true
		default:
			key, ok := keyName(t)
			if !ok {
				return Chord{}, fmt.Errorf("unknown key %q in hotkey %q", part, s)
			}
			if c.Key != "" {
				return Chord{}, fmt.Errorf("hotkey %q has more than one key", s)
			}
			c.Key = key
		}
	}

	if c.Key == "" {
		return Chord{}, fmt.Errorf("hotkey %q has no key", s)
	}
	return c, nil
}

func keyName(t string) (string, bool) {
	if len(t) == 1 && ((t[0] >= 'A' && t[0] <= 'Z') || (t[0] >= '0' && t[0] <= '9')) {
		return t, true
	}
	if functionKey.MatchString(t) {
		return t, true
	}
	k, ok := namedKeys[t]
	return k, ok
}

// MustDefault returns the parsed Default chord.
func MustDefault() Chord {
	c, err := Parse(Default)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Chord) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if c.Alt {
		parts = append(parts, "Alt")
	}
	if c.Shift {
		parts = append(parts, "Shift")
	}
	if c.Super {
		parts = append(parts, "Super")
	}
	key := c.Key
	if len(key) > 1 && !functionKey.MatchString(key) {
		key = key[:1] + strings.ToLower(key[1:])
	}
	return strings.Join(append(parts, key), "+")
}

// Modifiers returns the chord's modifiers as robotgo key names.
func (c Chord) Modifiers() []string {
	var mods []string
	if c.Ctrl {
		mods = append(mods, "ctrl")
	}
	if c.Alt {
		mods = append(mods, "alt")
	}
	if c.Shift {
		mods = append(mods, "shift")
	}
	if c.Super {
		mods = append(mods, "cmd")
	}
	return mods
}

// hyprMods is the MODS field of a Hyprland bind.
func (c Chord) hyprMods() string {
	var mods []string
	if c.Super {
		mods = append(mods, "SUPER")
	}
	if c.Ctrl {
		mods = append(mods, "CTRL")
	}
	if c.Alt {
		mods = append(mods, "ALT")
	}
	if c.Shift {
		mods = append(mods, "SHIFT")
	}
	return strings.Join(mods, " ")
}

// hyprKey is the KEY field of a Hyprland bind.
func (c Chord) hyprKey() string {
	switch c.Key {
	case "SPACE":
		return "space"
	case "RETURN":
		return "Return"
	case "TAB":
		return "Tab"
	}
	if len(c.Key) > 1 && !functionKey.MatchString(c.Key) {
		return c.Key[:1] + strings.ToLower(c.Key[1:])
	}
	return c.Key
}

// Win32 RegisterHotKey modifier flags.
const (
	modAlt      = 0x0001
	modControl  = 0x0002
	modShift    = 0x0004
	modWin      = 0x0008
	modNoRepeat = 0x4000
)

var virtualKeys = map[string]uint32{
	"SPACE":  0x20,
	"TAB":    0x09,
	"RETURN": 0x0D,
	"INSERT": 0x2D,
	"DELETE": 0x2E,
	"HOME":   0x24,
	"END":    0x23,
	"PRIOR":  0x21,
	"NEXT":   0x22,
	"PAUSE":  0x13,
}

// winMods is the fsModifiers argument of RegisterHotKey. Key repeat is
// suppressed at the source.
func (c Chord) winMods() uint32 {
	mods := uint32(modNoRepeat)
	if c.Alt {
		mods |= modAlt
	}
	if c.Ctrl {
		mods |= modControl
	}
	if c.Shift {
		mods |= modShift
	}
	if c.Super {
		mods |= modWin
	}
	return mods
}

// virtualKey is the Win32 virtual-key code of the chord's key.
func (c Chord) virtualKey() uint32 {
	if len(c.Key) == 1 {
		return uint32(c.Key[0]) // 'A'-'Z' and '0'-'9' map to themselves
	}
	if m := functionKey.FindStringSubmatch(c.Key); m != nil {
		var n uint32
		for _, d := range m[1] {
			n = n*10 + uint32(d-'0')
		}
		return 0x70 + n - 1 // VK_F1
	}
	return virtualKeys[c.Key]
}
