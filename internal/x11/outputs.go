package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"

	"github.com/gravwm/gravwm/internal/geometry"
)

// Output represents one active display as reported by RandR.
type Output struct {
	ID   int
	Name string
	Geom geometry.Rect
}

// Outputs retrieves all active outputs using XRandR. When the extension
// is unavailable or reports nothing, the whole root geometry is returned
// as a single output.
func (c *Connection) Outputs() ([]Output, error) {
	outputs, err := c.randrOutputs()
	if err != nil || len(outputs) == 0 {
		root := geometry.Rect{
			Width:  int(c.XUtil.Screen().WidthInPixels),
			Height: int(c.XUtil.Screen().HeightInPixels),
		}
		return []Output{{ID: 0, Name: "default", Geom: root}}, nil
	}
	return outputs, nil
}

func (c *Connection) randrOutputs() ([]Output, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var outputs []Output
	for i, crtc := range resources.Crtcs {
		crtcInfo, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Skip disabled CRTCs.
		if crtcInfo.Width == 0 || crtcInfo.Height == 0 || len(crtcInfo.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("output%d", i)
		if outputInfo, err := randr.GetOutputInfo(c.XUtil.Conn(), crtcInfo.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(outputInfo.Name)
		}

		outputs = append(outputs, Output{
			ID:   i,
			Name: name,
			Geom: geometry.Rect{
				X:      int(crtcInfo.X),
				Y:      int(crtcInfo.Y),
				Width:  int(crtcInfo.Width),
				Height: int(crtcInfo.Height),
			},
		})
	}

	return outputs, nil
}

// SelectOutputChanges subscribes to RandR screen change notifications on
// the root window.
func (c *Connection) SelectOutputChanges() error {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return fmt.Errorf("randr init failed: %w", err)
	}
	return randr.SelectInputChecked(
		c.XUtil.Conn(),
		c.Root,
		randr.NotifyMaskScreenChange,
	).Check()
}
