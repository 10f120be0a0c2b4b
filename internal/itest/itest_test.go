// If you are AI: This file contains integration tests that verify serve startup, health checks, and shutdown.

package itest

import (
	"context"
	"os/exec"
	"syscall"
	"testing"
	"time"

	"flvedit/internal/core/protocol/flv/flvtest"
)

// serveFixture builds flvedit, serves one scenario file as "a.flv" and returns
// the port, the file path and the process. The process is interrupted when the test ends.
func serveFixture(t *testing.T, strategy string) (int, string, *exec.Cmd) {
	t.Helper()
	dir := t.TempDir()
	binPath, err := BuildBinary(dir)
	if err != nil {
		t.Fatalf("%v", err)
	}
	port, err := FreePort()
	if err != nil {
		t.Fatalf("%v", err)
	}
	configPath, err := WriteConfig(dir, port, strategy)
	if err != nil {
		t.Fatalf("%v", err)
	}
	file := flvtest.Scenario().WriteFile(t, dir, "a.flv")

	ctx, cancel := context.WithCancel(context.Background())
	cmd, err := StartServer(ctx, binPath, configPath, file)
	if err != nil {
		cancel()
		t.Fatalf("%v", err)
	}
	t.Cleanup(func() {
		cmd.Process.Signal(syscall.SIGINT)
		cmd.Wait()
		cancel()
	})

	if err := WaitForHealth(port, 10*time.Second); err != nil {
		t.Fatalf("Health endpoint not available: %v", err)
	}
	return port, file, cmd
}

func TestServeStartupAndShutdown(t *testing.T) {
	_, _, cmd := serveFixture(t, "auto")

	// Send SIGINT
	if err := cmd.Process.Signal(syscall.SIGINT); err != nil {
		t.Fatalf("Failed to send SIGINT: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Process exited with error: %v", err)
		}
	case <-time.After(5 * time.Second):
		cmd.Process.Kill()
		t.Fatal("Server did not exit within 5 seconds after SIGINT")
	}
}
