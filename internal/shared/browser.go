package shared

import (
	"fmt"
	"os/exec"
	"runtime"
)

var getRuntime = func() string { return runtime.GOOS }

// OpenerCommand returns the platform's default "open this" command and arguments for target,
// which may be a URL or a file path.
//
// Supports macOS, Linux, and Windows platforms.
func OpenerCommand(target string) (string, []string, error) {
	rt := getRuntime()
	switch rt {
	case "darwin":
		return "open", []string{target}, nil
	case "linux":
		return "xdg-open", []string{target}, nil
	case "windows":
		return "cmd", []string{"/c", "start", target}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", rt)
	}
}

// OpenBrowser opens the default system browser to the specified URL.
func OpenBrowser(url string) error {
	name, args, err := OpenerCommand(url)
	if err != nil {
		return err
	}

	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	return nil
}
