package wm

import (
	"regexp"

	"github.com/charmbracelet/log"

	"github.com/gravwm/gravwm/internal/config"
	"github.com/gravwm/gravwm/internal/tagging"
	"github.com/gravwm/gravwm/internal/x11"
)

// Tag is one compiled tag: a bit position, an optional matcher applied
// to window identity strings, and the modes it stamps onto matching
// clients.
type Tag struct {
	Index   int
	Name    string
	Matcher *regexp.Regexp
	Gravity string
	Modes   Mode
}

// Matches tests the tag pattern against a window's identity strings.
// A patternless tag never matches; it is only assigned explicitly.
func (t Tag) Matches(meta x11.WindowMeta) bool {
	if t.Matcher == nil {
		return false
	}
	for _, s := range []string{meta.Instance, meta.Class, meta.Name, meta.Role} {
		if s != "" && t.Matcher.MatchString(s) {
			return true
		}
	}
	return false
}

// buildTags compiles tag configs in order. A pattern that fails to
// compile drops that tag; tags beyond the bitset capacity are dropped
// too. Both are logged, neither is fatal.
func buildTags(cfgs []config.TagConfig, logger *log.Logger) []Tag {
	tags := make([]Tag, 0, len(cfgs))
	for _, tc := range cfgs {
		if len(tags) >= tagging.MaxTags {
			logger.Warn("too many tags, dropping", "tag", tc.Name, "max", tagging.MaxTags)
			continue
		}

		tag := Tag{
			Index:   len(tags),
			Name:    tc.Name,
			Gravity: tc.Gravity,
		}
		if tc.Match != "" {
			matcher, err := regexp.Compile("(?i)" + tc.Match)
			if err != nil {
				logger.Warn("invalid tag pattern, dropping", "tag", tc.Name, "pattern", tc.Match, "err", err)
				continue
			}
			tag.Matcher = matcher
		}
		if tc.Float {
			tag.Modes.Set(ModeFloat)
		}
		if tc.Full {
			tag.Modes.Set(ModeFull)
		}
		if tc.Center {
			tag.Modes.Set(ModeCenter)
		}
		if tc.Stick {
			tag.Modes.Set(ModeStick)
		}
		if tc.Zaphod {
			tag.Modes.Set(ModeZaphod)
		}
		tags = append(tags, tag)
	}
	return tags
}

// matchTags returns the tag set a window earns from its identity
// strings. Windows matching nothing get the first tag, so every client
// is reachable from at least one view.
func matchTags(tags []Tag, meta x11.WindowMeta) tagging.Set {
	var set tagging.Set
	for _, tag := range tags {
		if tag.Matches(meta) {
			set = set.WithBit(tag.Index)
		}
	}
	if set.None() && len(tags) > 0 {
		set = set.WithBit(0)
	}
	return set
}
