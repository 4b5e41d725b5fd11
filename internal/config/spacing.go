package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Spacing is a per-side pixel inset. In YAML it accepts either a single
// integer applied to all sides or a CSS-style shorthand list:
//
//	margin: 8            # all sides
//	margin: [8, 12]      # top/bottom, left/right
//	margin: [8, 12, 4]   # top, left/right, bottom
//	margin: [8, 12, 4, 0] # top, right, bottom, left
type Spacing struct {
	Top    int
	Right  int
	Bottom int
	Left   int
}

// Uniform returns a spacing with every side set to v.
func Uniform(v int) Spacing {
	return Spacing{Top: v, Right: v, Bottom: v, Left: v}
}

// Horizontal returns the total left+right inset.
func (s Spacing) Horizontal() int { return s.Left + s.Right }

// Vertical returns the total top+bottom inset.
func (s Spacing) Vertical() int { return s.Top + s.Bottom }

func (s Spacing) String() string {
	return fmt.Sprintf("(top=%d, right=%d, bottom=%d, left=%d)", s.Top, s.Right, s.Bottom, s.Left)
}

func (s *Spacing) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var v int
		if err := node.Decode(&v); err != nil {
			return fmt.Errorf("spacing must be an integer or a list of integers: %w", err)
		}
		*s = Uniform(v)
		return nil
	case yaml.SequenceNode:
		var vals []int
		if err := node.Decode(&vals); err != nil {
			return fmt.Errorf("spacing list must contain integers: %w", err)
		}
		switch len(vals) {
		case 1:
			*s = Uniform(vals[0])
		case 2:
			*s = Spacing{Top: vals[0], Right: vals[1], Bottom: vals[0], Left: vals[1]}
		case 3:
			*s = Spacing{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[1]}
		case 4:
			*s = Spacing{Top: vals[0], Right: vals[1], Bottom: vals[2], Left: vals[3]}
		default:
			return fmt.Errorf("spacing list must have 1 to 4 elements, got %d", len(vals))
		}
		return nil
	}
	return fmt.Errorf("spacing must be an integer or a list of integers")
}

func (s Spacing) MarshalYAML() (any, error) {
	if s.Top == s.Bottom && s.Left == s.Right {
		if s.Top == s.Left {
			return s.Top, nil
		}
		return []int{s.Top, s.Left}, nil
	}
	return []int{s.Top, s.Right, s.Bottom, s.Left}, nil
}

func (s Spacing) validate() error {
	if s.Top < 0 || s.Right < 0 || s.Bottom < 0 || s.Left < 0 {
		return fmt.Errorf("spacing values must be >= 0")
	}
	return nil
}
