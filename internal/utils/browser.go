package utils

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
)

// browserCommand returns the command that opens url on goos, or nil when the
// platform has no known opener.
func browserCommand(goos, url string) *exec.Cmd {
	switch goos {
	case "linux", "freebsd", "openbsd":
		return exec.Command("xdg-open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	case "darwin":
		return exec.Command("open", url)
	default:
		return nil
	}
}

// OpenBrowser opens the specified URL in the user's default browser
func OpenBrowser(url string) {
	cmd := browserCommand(runtime.GOOS, url)
	if cmd == nil {
		fmt.Println("Please open the following URL in your browser:", url)
		return
	}

	if err := cmd.Start(); err != nil {
		slog.Debug("open browser", "error", err)
		fmt.Println("Failed to open browser. Please open the following URL manually:", url)
	}
}
