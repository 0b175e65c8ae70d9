package app

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/philipparndt/meshview/internal/source"
)

// openFileDialog shows the platform file picker without blocking the frame loop
func (app *App) openFileDialog(ctx context.Context) {
	if app.UI.picking {
		return
	}
	app.UI.picking = true

	go func() {
		paths, err := pickFiles(ctx)
		app.queue.Post(func() {
			app.UI.picking = false
			switch {
			case err != nil:
				app.log.Warn("file dialog failed", "err", err)
				app.alert(fmt.Errorf("file dialog: %w", err))
			case len(paths) > 0:
				_ = app.ctrl.SelectSource(ctx, source.FromPaths(paths...))
			}
		})
	}()
}

// pickFiles runs the native picker and returns the chosen paths, none when cancelled
func pickFiles(ctx context.Context) ([]string, error) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.CommandContext(ctx, "powershell", "-Command", "Add-Type -AssemblyName System.Windows.Forms; "+
			"$dlg = New-Object System.Windows.Forms.OpenFileDialog; "+
			"$dlg.Filter = '3D Models (*.stl;*.obj;*.mtl)|*.stl;*.obj;*.mtl|All files (*.*)|*.*'; "+
			"$dlg.Multiselect = $true; "+
			"$dlg.ShowDialog() | Out-Null; "+
			"$dlg.FileNames -join \"`n\"")
	case "darwin":
		cmd = exec.CommandContext(ctx, "osascript",
			"-e", `set picked to choose file with prompt "Select a 3D model" with multiple selections allowed`,
			"-e", `set out to ""`,
			"-e", `repeat with f in picked`,
			"-e", `set out to out & POSIX path of f & linefeed`,
			"-e", `end repeat`,
			"-e", `return out`)
	case "linux":
		cmd = exec.CommandContext(ctx, "zenity", "--file-selection", "--multiple", "--separator=\n",
			"--title=Select a 3D model", "--file-filter=3D models | *.stl *.STL *.obj *.OBJ *.mtl *.MTL *.png *.jpg *.jpeg",
			"--file-filter=All files | *")
	default:
		return nil, fmt.Errorf("unsupported platform %s", runtime.GOOS)
	}

	output, err := cmd.Output()
	if err != nil {
		// zenity and osascript exit non-zero on cancel
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, nil
		}
		return nil, err
	}

	var paths []string
	for _, p := range strings.Split(string(output), "\n") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths, nil
}
