// Package wm implements the client state machine and layout engine:
// managing windows, tag and view bookkeeping, gravity arrangement,
// focus, and key grab dispatch.
package wm

import "strings"

// Flag records lifecycle facts about a client.
type Flag uint32

const (
	// FlagDead marks a client past Unmanage; late events ignore it.
	FlagDead Flag = 1 << iota
	// FlagFocus means the client participates in WM_TAKE_FOCUS.
	FlagFocus
	// FlagInput means the client accepts keyboard input per WM_HINTS.
	FlagInput
	// FlagClose means the client participates in WM_DELETE_WINDOW.
	FlagClose
	// FlagUnmap marks an unmap we initiated, to be swallowed rather
	// than treated as a withdrawal.
	FlagUnmap
	// FlagArrange marks a client whose geometry must be recomputed on
	// the next arrange pass.
	FlagArrange
)

func (f Flag) Has(other Flag) bool { return f&other == other }
func (f *Flag) Set(other Flag)     { *f |= other }
func (f *Flag) Clear(other Flag)   { *f &^= other }

// Mode is the set of toggleable client behaviors.
type Mode uint32

const (
	// ModeFull covers the whole screen, ignoring panels and borders.
	ModeFull Mode = 1 << iota
	// ModeFloat detaches the client from gravity arrangement.
	ModeFloat
	// ModeStick shows the client on every view of its screen.
	ModeStick
	// ModeUrgent marks a demand for attention.
	ModeUrgent
	// ModeResize honors client size hints when arranging.
	ModeResize
	// ModeZaphod spans the client across all screens.
	ModeZaphod
	// ModeFixed pins the client's size to its min hints.
	ModeFixed
	// ModeCenter centers the client on its screen; implies float.
	ModeCenter
	// ModeBorderless removes the window border.
	ModeBorderless
)

func (m Mode) Has(other Mode) bool { return m&other != 0 }
func (m *Mode) Set(other Mode)     { *m |= other }
func (m *Mode) Clear(other Mode)   { *m &^= other }

var modeNames = []struct {
	mode Mode
	name string
}{
	{ModeFull, "full"},
	{ModeFloat, "float"},
	{ModeStick, "stick"},
	{ModeUrgent, "urgent"},
	{ModeResize, "resize"},
	{ModeZaphod, "zaphod"},
	{ModeFixed, "fixed"},
	{ModeCenter, "center"},
	{ModeBorderless, "borderless"},
}

func (m Mode) String() string {
	var parts []string
	for _, mn := range modeNames {
		if m.Has(mn.mode) {
			parts = append(parts, mn.name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// Kind classifies a client by _NET_WM_WINDOW_TYPE.
type Kind uint8

const (
	KindNormal Kind = iota
	KindDesktop
	KindDock
	KindToolbar
	KindDialog
	KindSplash
)

func (k Kind) String() string {
	switch k {
	case KindDesktop:
		return "desktop"
	case KindDock:
		return "dock"
	case KindToolbar:
		return "toolbar"
	case KindDialog:
		return "dialog"
	case KindSplash:
		return "splash"
	}
	return "normal"
}
