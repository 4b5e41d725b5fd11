// Package config loads and validates the window manager configuration
// from YAML: appearance, gravities, tags, views, key grabs, and screen
// panel reservations.
package config

import (
	"fmt"
	"regexp"
	"strings"
)

// GravityConfig defines a named layout slot as screen percentages.
type GravityConfig struct {
	Name   string `yaml:"name"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Tile   string `yaml:"tile,omitempty"` // "", "horizontal" or "vertical"
}

// TagConfig defines a tag and the regular expression matched against
// window class/instance/name/role to assign it.
type TagConfig struct {
	Name    string `yaml:"name"`
	Match   string `yaml:"match,omitempty"`
	Gravity string `yaml:"gravity,omitempty"`
	Float   bool   `yaml:"float,omitempty"`
	Full    bool   `yaml:"full,omitempty"`
	Center  bool   `yaml:"center,omitempty"`
	Stick   bool   `yaml:"stick,omitempty"`
	Zaphod  bool   `yaml:"zaphod,omitempty"`
}

// ViewConfig defines a virtual desktop and the tags it shows.
type ViewConfig struct {
	Name string   `yaml:"name"`
	Tags []string `yaml:"tags"`
}

// ScreenConfig reserves panel strips on one output, in physical order.
type ScreenConfig struct {
	TopPanel    int `yaml:"top_panel,omitempty"`
	BottomPanel int `yaml:"bottom_panel,omitempty"`
}

// Config holds the full application configuration.
type Config struct {
	BorderWidth      int            `yaml:"border_width"`
	Margin           Spacing        `yaml:"margin"`
	Padding          Spacing        `yaml:"padding"`
	Snap             int            `yaml:"snap"`
	Step             int            `yaml:"step"`
	DefaultGravity   string         `yaml:"default_gravity"`
	GravityTiling    bool           `yaml:"gravity_tiling"`
	ClickToFocus     bool           `yaml:"click_to_focus"`
	SkipPointerWarp  bool           `yaml:"skip_pointer_warp"`
	SkipUrgentWarp   bool           `yaml:"skip_urgent_warp"`
	UrgentTransients bool           `yaml:"urgent_transients"`
	HonorSizeHints   bool           `yaml:"honor_size_hints"`
	LogLevel         string         `yaml:"log_level"`
	Display          string         `yaml:"display,omitempty"`
	Gravities        []GravityConfig `yaml:"gravities"`
	Tags             []TagConfig    `yaml:"tags"`
	Views            []ViewConfig   `yaml:"views"`
	Grabs            map[string]string `yaml:"grabs"`
	Screens          []ScreenConfig `yaml:"screens,omitempty"`
}

// DefaultConfig returns the built-in configuration used when no file
// exists: a nine-slot gravity grid, four views showing the default tag,
// and a small set of grabs.
func DefaultConfig() *Config {
	return &Config{
		BorderWidth:    2,
		Snap:           10,
		Step:           5,
		DefaultGravity: "center",
		LogLevel:       "info",
		Gravities: []GravityConfig{
			{Name: "bottom-left", X: 0, Y: 50, Width: 50, Height: 50},
			{Name: "bottom", X: 0, Y: 50, Width: 100, Height: 50, Tile: "horizontal"},
			{Name: "bottom-right", X: 50, Y: 50, Width: 50, Height: 50},
			{Name: "left", X: 0, Y: 0, Width: 50, Height: 100, Tile: "vertical"},
			{Name: "center", X: 0, Y: 0, Width: 100, Height: 100},
			{Name: "right", X: 50, Y: 0, Width: 50, Height: 100, Tile: "vertical"},
			{Name: "top-left", X: 0, Y: 0, Width: 50, Height: 50},
			{Name: "top", X: 0, Y: 0, Width: 100, Height: 50, Tile: "horizontal"},
			{Name: "top-right", X: 50, Y: 0, Width: 50, Height: 50},
		},
		Tags: []TagConfig{
			{Name: "default"},
			{Name: "terms", Match: "xterm|urxvt|st-256color"},
			{Name: "browser", Match: "firefox|chromium|navigator"},
		},
		Views: []ViewConfig{
			{Name: "work", Tags: []string{"default", "terms"}},
			{Name: "web", Tags: []string{"browser"}},
			{Name: "dev", Tags: []string{"default"}},
			{Name: "misc", Tags: []string{"default"}},
		},
		Grabs: map[string]string{
			"W-1":     "view-1",
			"W-2":     "view-2",
			"W-3":     "view-3",
			"W-4":     "view-4",
			"W-f":     "toggle-float",
			"W-space": "toggle-full",
			"W-s":     "toggle-stick",
			"W-h":     "gravity-left",
			"W-j":     "gravity-bottom",
			"W-k":     "gravity-top",
			"W-l":     "gravity-right",
			"W-m":     "gravity-center",
			"W-Tab":   "focus-next",
			"W-S-q":   "client-close",
			"W-B1":    "drag-move",
			"W-B3":    "drag-resize",
		},
	}
}

// Gravity looks up a gravity definition by name.
func (c *Config) Gravity(name string) (GravityConfig, bool) {
	for _, g := range c.Gravities {
		if g.Name == name {
			return g, true
		}
	}
	return GravityConfig{}, false
}

// Validate performs strict validation of the effective configuration.
// Tag regexes are not checked here: a bad pattern drops that tag at
// build time instead of rejecting the whole config.
func (c *Config) Validate() error {
	if c.BorderWidth < 0 {
		return &ValidationError{Path: "border_width", Err: fmt.Errorf("border_width must be >= 0")}
	}
	if c.Snap < 0 {
		return &ValidationError{Path: "snap", Err: fmt.Errorf("snap must be >= 0")}
	}
	if c.Step < 0 {
		return &ValidationError{Path: "step", Err: fmt.Errorf("step must be >= 0")}
	}
	if err := c.Margin.validate(); err != nil {
		return &ValidationError{Path: "margin", Err: err}
	}
	if err := c.Padding.validate(); err != nil {
		return &ValidationError{Path: "padding", Err: err}
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}

	if len(c.Gravities) == 0 {
		return &ValidationError{Path: "gravities", Err: fmt.Errorf("gravities must not be empty")}
	}
	seen := make(map[string]struct{}, len(c.Gravities))
	for i, g := range c.Gravities {
		path := fmt.Sprintf("gravities[%d]", i)
		if strings.TrimSpace(g.Name) == "" {
			return &ValidationError{Path: path + ".name", Err: fmt.Errorf("gravity name must not be empty")}
		}
		if _, dup := seen[g.Name]; dup {
			return &ValidationError{Path: path + ".name", Err: fmt.Errorf("duplicate gravity %q", g.Name)}
		}
		seen[g.Name] = struct{}{}
		switch g.Tile {
		case "", "horizontal", "vertical":
		default:
			return &ValidationError{Path: path + ".tile", Err: fmt.Errorf("tile must be \"horizontal\" or \"vertical\"")}
		}
	}
	if c.DefaultGravity != "" {
		if _, ok := c.Gravity(c.DefaultGravity); !ok {
			return &ValidationError{Path: "default_gravity", Err: fmt.Errorf("default_gravity %q not found in gravities", c.DefaultGravity)}
		}
	}

	tagNames := make(map[string]struct{}, len(c.Tags))
	for i, t := range c.Tags {
		path := fmt.Sprintf("tags[%d]", i)
		if strings.TrimSpace(t.Name) == "" {
			return &ValidationError{Path: path + ".name", Err: fmt.Errorf("tag name must not be empty")}
		}
		if _, dup := tagNames[t.Name]; dup {
			return &ValidationError{Path: path + ".name", Err: fmt.Errorf("duplicate tag %q", t.Name)}
		}
		tagNames[t.Name] = struct{}{}
		if t.Gravity != "" {
			if _, ok := c.Gravity(t.Gravity); !ok {
				return &ValidationError{Path: path + ".gravity", Err: fmt.Errorf("gravity %q not found in gravities", t.Gravity)}
			}
		}
	}

	if len(c.Views) == 0 {
		return &ValidationError{Path: "views", Err: fmt.Errorf("views must not be empty")}
	}
	for i, v := range c.Views {
		path := fmt.Sprintf("views[%d]", i)
		if strings.TrimSpace(v.Name) == "" {
			return &ValidationError{Path: path + ".name", Err: fmt.Errorf("view name must not be empty")}
		}
	}

	for i, s := range c.Screens {
		path := fmt.Sprintf("screens[%d]", i)
		if s.TopPanel < 0 || s.BottomPanel < 0 {
			return &ValidationError{Path: path, Err: fmt.Errorf("panel heights must be >= 0")}
		}
	}

	return nil
}

// BadPatternTags returns the names of tags whose match pattern does not
// compile. The caller logs and skips them.
func (c *Config) BadPatternTags() []string {
	var bad []string
	for _, t := range c.Tags {
		if t.Match == "" {
			continue
		}
		if _, err := regexp.Compile("(?i)" + t.Match); err != nil {
			bad = append(bad, t.Name)
		}
	}
	return bad
}
