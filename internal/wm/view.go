package wm

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/charmbracelet/log"

	"github.com/gravwm/gravwm/internal/config"
	"github.com/gravwm/gravwm/internal/tagging"
)

// View is a virtual desktop: a name, the tags it shows, and the window
// that held focus the last time the view was current.
type View struct {
	Index int
	Name  string
	Tags  tagging.Set
	Focus xproto.Window
}

// buildViews resolves view tag names against the compiled tag list.
// Unknown tag names are logged and skipped; a view left with no tags
// falls back to the first tag so it is never permanently empty.
func buildViews(cfgs []config.ViewConfig, tags []Tag, logger *log.Logger) []View {
	byName := make(map[string]int, len(tags))
	for _, tag := range tags {
		byName[tag.Name] = tag.Index
	}

	views := make([]View, 0, len(cfgs))
	for _, vc := range cfgs {
		view := View{Index: len(views), Name: vc.Name}
		for _, name := range vc.Tags {
			idx, ok := byName[name]
			if !ok {
				logger.Warn("view references unknown tag", "view", vc.Name, "tag", name)
				continue
			}
			view.Tags = view.Tags.WithBit(idx)
		}
		if view.Tags.None() && len(tags) > 0 {
			view.Tags = view.Tags.WithBit(0)
		}
		views = append(views, view)
	}
	return views
}
