package action

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/RomanHargrave/lyrebird/pkg/errclass"
	"github.com/RomanHargrave/lyrebird/pkg/logging"
	"github.com/RomanHargrave/lyrebird/pkg/model"
)

// StartProcess spawns exe with args and records the child's pid. With wait
// set it also waits for the child after recording and fails if the child
// exits non-zero; otherwise the child is left running.
func StartProcess(ctx context.Context, rec Recorder, exe string, args []string, wait bool) (int, error) {
	cmd := exec.Command(exe, args...)
	if err := cmd.Start(); err != nil {
		return 0, errclass.ErrActionFailed.Wrap(fmt.Sprintf("start %s", exe), err)
	}
	pid := cmd.Process.Pid

	logging.Debug("process started", map[string]any{"cmd": exe, "pid": pid})

	payload := model.ProcessStart{
		Cmd:  exe,
		Args: append(make([]string, 0, len(args)), args...),
		PID:  pid,
	}
	recErr := rec.Record(payload)

	if !wait {
		_ = cmd.Process.Release()
		return pid, recErr
	}

	if err := cmd.Wait(); err != nil && recErr == nil {
		return pid, errclass.ErrActionFailed.Wrap(fmt.Sprintf("%s (pid %d)", exe, pid), err)
	}
	return pid, recErr
}
