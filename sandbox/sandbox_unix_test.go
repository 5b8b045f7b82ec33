//go:build unix

package sandbox_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tailored-agentic-units/chatroom/sandbox"
)

func TestRunner_TimeoutKillsProcess(t *testing.T) {
	r := newShellRunner(t, 300*time.Millisecond)
	pidFile := filepath.Join(t.TempDir(), "pid")

	start := time.Now()
	res := r.Run(context.Background(), "echo $$ > '"+pidFile+"'; exec sleep 30")
	elapsed := time.Since(start)

	assert.Equal(t, sandbox.StatusError, res.Status)
	assert.True(t, res.TimedOut)
	assert.Equal(t, sandbox.TimeoutMessage, res.Output)
	assert.Less(t, elapsed, 10*time.Second)

	data, err := os.ReadFile(pidFile)
	require.NoError(t, err)
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	require.NoError(t, err)

	err = syscall.Kill(pid, 0)
	assert.True(t, errors.Is(err, syscall.ESRCH), "sandbox process %d still exists: %v", pid, err)
}

func TestRunner_CleanExitKillsBackgroundChildren(t *testing.T) {
	r := newShellRunner(t, 10*time.Second)
	pidFile := filepath.Join(t.TempDir(), "pid")

	res := r.Run(context.Background(), "sleep 30 & echo $! > '"+pidFile+"'; echo done; exit 0")

	assert.Equal(t, sandbox.StatusSuccess, res.Status)
	assert.False(t, res.TimedOut)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "done\n", res.Output)

	data, err := os.ReadFile(pidFile)
	require.NoError(t, err)
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	require.NoError(t, err)

	// The killed child is reparented and reaped asynchronously.
	assert.Eventually(t, func() bool {
		return errors.Is(syscall.Kill(pid, 0), syscall.ESRCH)
	}, 3*time.Second, 20*time.Millisecond, "background process %d survived the run", pid)
}
