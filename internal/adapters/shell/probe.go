package shell

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"

	"go.trai.ch/otto/internal/core/domain"
	"go.trai.ch/otto/internal/core/ports"
	"go.trai.ch/zerr"
)

// Probe implements ports.Probe by spawning a trivial `sh` command.
//
// On Windows the probe additionally executes a generated shebang script:
// `sh` there is expected to live in a Cygwin/MSYS layer that reads the
// shebang in lieu of the kernel, and a `sh` that cannot do that will also
// fail on the real configure script later. Elsewhere execute permission
// handling makes the script check pointless, so `true` stands in.
type Probe struct {
	logger ports.Logger
}

// NewProbe creates a new Probe.
func NewProbe(logger ports.Logger) *Probe {
	return &Probe{logger: logger}
}

// Check verifies the shell indirection layer.
func (p *Probe) Check(ctx context.Context) error {
	arg := "true"
	if runtime.GOOS == "windows" {
		script := filepath.Join(os.TempDir(), "capability-check.sh")
		if err := os.WriteFile(script, []byte("#!/bin/sh\ntrue\n"), 0o700); err != nil { //nolint:gosec // the script must be executable
			return zerr.Wrap(err, "failed to write capability-check script")
		}
		defer os.Remove(script) //nolint:errcheck // best effort cleanup
		arg = strconv.Quote(script)
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", "echo test; "+arg)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}
	if _, ok := err.(*exec.ExitError); !ok {
		return zerr.Wrap(domain.ErrShellUnavailable, err.Error())
	}

	// Surface the probe's output for debugging before classifying.
	if s := stdout.String(); s != "" {
		p.logger.Info(s)
	}
	if s := stderr.String(); s != "" {
		p.logger.Warn(s)
	}

	if runtime.GOOS == "windows" && stdout.String() == "test\n" {
		// echo worked, the shebang script did not.
		return domain.ErrShebangUnsupported
	}
	return domain.ErrShellBroken
}
