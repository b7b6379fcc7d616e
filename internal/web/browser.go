package web

import (
	"os/exec"
	"runtime"
)

// openCommand is swapped in tests.
var openCommand = func(url string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return exec.Command("xdg-open", url)
	}
}

// openURL launches the platform browser without waiting for it.
func openURL(url string) error {
	cmd := openCommand(url)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
