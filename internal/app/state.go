package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/meshview/pkg/analysis"
	"github.com/philipparndt/meshview/pkg/watcher"
)

// InteractionState holds mouse state between frames
type InteractionState struct {
	dragging     bool
	isPanning    bool
	lastMousePos rl.Vector2
}

// FileWatchState holds the auto-reload state
type FileWatchState struct {
	watcher *watcher.FileWatcher
	paths   []string
}

// UIState holds what the HUD shows
type UIState struct {
	modelName string
	summary   analysis.Summary
	alert     string // shown in a message box until dismissed
	picking   bool   // native file dialog open
}
