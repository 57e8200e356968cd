package workflow

import (
	"fmt"
	"sort"
	"strings"
)

// Viewport is a named browser-window pixel preset.
type Viewport struct {
	Name   string
	Width  int64
	Height int64
}

// viewports is the closed preset set. Adding a viewport means extending
// this table; presets are not user-extensible at runtime.
var viewports = map[string]Viewport{
	"desktop": {Name: "desktop", Width: 1920, Height: 1080},
	"tablet":  {Name: "tablet", Width: 768, Height: 1024},
	"mobile":  {Name: "mobile", Width: 375, Height: 667},
}

// DefaultViewports is the capture order used when the caller names none.
var DefaultViewports = []string{"desktop", "tablet", "mobile"}

// DefaultStates is the default set of UI states to capture. States are
// open-ended labels; unlike viewports they carry no fixed geometry.
var DefaultStates = []string{"overview", "task_detail", "log_expanded", "log_collapsed"}

// LookupViewports resolves names to presets, preserving caller order.
// An unknown name is an error listing the valid presets.
func LookupViewports(names []string) ([]Viewport, error) {
	out := make([]Viewport, 0, len(names))
	for _, name := range names {
		vp, ok := viewports[name]
		if !ok {
			return nil, fmt.Errorf("unknown viewport %q (valid: %s)", name, viewportNames())
		}
		out = append(out, vp)
	}
	return out, nil
}

func viewportNames() string {
	names := make([]string, 0, len(viewports))
	for name := range viewports {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
