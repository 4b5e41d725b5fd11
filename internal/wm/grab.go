package wm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"
)

// Grab binds one key or button chord to an action name.
type Grab struct {
	Spec    string
	Action  string
	Mods    uint16
	Keycode xproto.Keycode // 0 for button grabs
	Button  xproto.Button  // 0 for key grabs
}

// IsButton reports whether the grab targets a pointer button.
func (g Grab) IsButton() bool { return g.Button != 0 }

var modifierMasks = map[string]uint16{
	"S": xproto.ModMaskShift,
	"C": xproto.ModMaskControl,
	"A": xproto.ModMask1,
	"M": xproto.ModMask3,
	"W": xproto.ModMask4,
	"G": xproto.ModMask5,
}

// ParseGrab parses a chord spec like "W-S-q" or "A-B3". Leading
// dash-separated fields are single-letter modifiers; the final field is
// either a keysym name resolved through resolve, or "B1".."B9" for a
// pointer button. Errors are recoverable: the caller logs and skips the
// binding.
func ParseGrab(spec, action string, resolve func(name string) (xproto.Keycode, bool)) (Grab, error) {
	fields := strings.Split(spec, "-")
	if len(fields) == 0 || fields[len(fields)-1] == "" {
		return Grab{}, fmt.Errorf("grab %q: empty chord", spec)
	}

	grab := Grab{Spec: spec, Action: action}
	for _, field := range fields[:len(fields)-1] {
		mask, ok := modifierMasks[field]
		if !ok {
			return Grab{}, fmt.Errorf("grab %q: unknown modifier %q", spec, field)
		}
		grab.Mods |= mask
	}

	last := fields[len(fields)-1]
	if len(last) == 2 && last[0] == 'B' {
		n, err := strconv.Atoi(last[1:])
		if err != nil || n < 1 || n > 9 {
			return Grab{}, fmt.Errorf("grab %q: bad button %q", spec, last)
		}
		grab.Button = xproto.Button(n)
		return grab, nil
	}

	keycode, ok := resolve(last)
	if !ok {
		return Grab{}, fmt.Errorf("grab %q: unknown key %q", spec, last)
	}
	grab.Keycode = keycode
	return grab, nil
}
