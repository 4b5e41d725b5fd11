package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
)

// KeycodeForName resolves a keysym name ("a", "Return", "F1") to a
// keycode on the current mapping.
func (c *Connection) KeycodeForName(name string) (xproto.Keycode, bool) {
	codes := keybind.StrToKeycodes(c.XUtil, name)
	if len(codes) == 0 {
		return 0, false
	}
	return codes[0], true
}

// LockMasks returns the modifier permutations a grab must cover so that
// CapsLock, NumLock and ScrollLock do not mask bindings.
func (c *Connection) LockMasks() []uint16 {
	caps := uint16(xproto.ModMaskLock)
	numLock := modMaskForKeysym(c.XUtil, "Num_Lock")
	scrollLock := modMaskForKeysym(c.XUtil, "Scroll_Lock")

	unique := map[uint16]struct{}{0: {}}
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		unique[mask] = struct{}{}
	}

	masks := make([]uint16, 0, len(unique))
	for mask := range unique {
		masks = append(masks, mask)
	}
	return masks
}

// IgnoredMods ors together every lock modifier, for normalizing the
// state field of key and button events before dispatch.
func (c *Connection) IgnoredMods() uint16 {
	var mask uint16
	for _, m := range c.LockMasks() {
		mask |= m
	}
	return mask
}

// GrabKey grabs a key chord on the root window under every lock
// permutation.
func (c *Connection) GrabKey(mods uint16, keycode xproto.Keycode) error {
	for _, lock := range c.LockMasks() {
		err := xproto.GrabKeyChecked(
			c.XUtil.Conn(),
			true,
			c.Root,
			mods|lock,
			keycode,
			xproto.GrabModeAsync,
			xproto.GrabModeAsync,
		).Check()
		if err != nil {
			return err
		}
	}
	return nil
}

// GrabButton grabs a pointer button chord on the root window under
// every lock permutation.
func (c *Connection) GrabButton(mods uint16, button xproto.Button) error {
	for _, lock := range c.LockMasks() {
		err := xproto.GrabButtonChecked(
			c.XUtil.Conn(),
			true,
			c.Root,
			uint16(xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion),
			xproto.GrabModeAsync,
			xproto.GrabModeAsync,
			xproto.WindowNone,
			xproto.CursorNone,
			byte(button),
			mods|lock,
		).Check()
		if err != nil {
			return err
		}
	}
	return nil
}

// UngrabAll releases every key and button grab on the root window.
func (c *Connection) UngrabAll() {
	xproto.UngrabKey(c.XUtil.Conn(), xproto.GrabAny, c.Root, xproto.ModMaskAny)
	xproto.UngrabButton(c.XUtil.Conn(), xproto.ButtonIndexAny, c.Root, xproto.ModMaskAny)
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
