// If you are AI: This file provides helper functions for starting and managing flvedit serve processes in tests.

package itest

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// BuildBinary compiles cmd/flvedit into dir and returns the binary path.
func BuildBinary(dir string) (string, error) {
	binPath := filepath.Join(dir, "flvedit")
	buildCmd := exec.Command("go", "build", "-o", binPath, "../../cmd/flvedit")
	buildCmd.Stderr = os.Stderr
	if err := buildCmd.Run(); err != nil {
		return "", fmt.Errorf("build flvedit: %w", err)
	}
	return binPath, nil
}

// FreePort returns a TCP port that was free a moment ago.
func FreePort() (int, error) {
	listener, err := net.Listen("tcp", ":0")
	if err != nil {
		return 0, fmt.Errorf("find free port: %w", err)
	}
	defer listener.Close()
	return listener.Addr().(*net.TCPAddr).Port, nil
}

// WriteConfig writes a config file for port into dir and returns its path.
func WriteConfig(dir string, port int, strategy string) (string, error) {
	configPath := filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf("server:\n  http_port: %d\neditor:\n  strategy: %s\n", port, strategy)
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return configPath, nil
}

// StartServer runs "flvedit -config configPath serve files..." as a subprocess.
func StartServer(ctx context.Context, binPath, configPath string, files ...string) (*exec.Cmd, error) {
	args := append([]string{"-config", configPath, "serve"}, files...)
	cmd := exec.CommandContext(ctx, binPath, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start server: %w", err)
	}
	return cmd, nil
}

// WaitForHealth waits for the health endpoint to become available.
// Returns an error if the endpoint is not available within the timeout.
func WaitForHealth(port int, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	url := fmt.Sprintf("http://localhost:%d/healthz", port)

	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("health endpoint not available after %v", timeout)
}
