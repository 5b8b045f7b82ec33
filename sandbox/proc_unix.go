//go:build unix

package sandbox

import (
	"os/exec"
	"syscall"
)

// configureProcess places the child in its own process group so a timeout
// kills anything it spawned as well.
func configureProcess(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}

// killProcessGroup removes whatever the snippet left running in its group.
// ESRCH just means the group is already gone.
func killProcessGroup(pid int) {
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
