// Package shell runs planned commands through a POSIX shell indirection
// layer. configure and autoreconf are shell/Perl scripts with shebang
// lines, and some hosting environments cannot execute a shebang-bearing
// file as a native process; `sh -c 'exec "$0" "$@"'` papers over that.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"

	"go.trai.ch/otto/internal/core/domain"
	"go.trai.ch/otto/internal/core/ports"
	"go.trai.ch/zerr"
)

// sh reports "command not found" for the exec'd program with this status.
const exitNotFound = 127

// Runner implements ports.Executor using os/exec behind `sh`.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Run executes cmd through the shell indirection layer and blocks until
// it exits. Output is line-streamed into the logger and, when out is
// non-nil, mirrored to out.
func (r *Runner) Run(ctx context.Context, cmd domain.Command, out io.Writer) error {
	r.logger.Info("running: " + cmd.Display())

	argv := append([]string{"-c", `exec "$0" "$@"`, cmd.Program}, cmd.Args...)
	proc := exec.CommandContext(ctx, "sh", argv...) //nolint:gosec // the command is the build being driven
	proc.Dir = cmd.Dir
	proc.Env = mergeEnv(os.Environ(), cmd.Env)

	stdout := &logWriter{logger: r.logger, level: "info"}
	stderr := &logWriter{logger: r.logger, level: "error"}
	defer stdout.Close() //nolint:errcheck // flush of buffered tail
	defer stderr.Close() //nolint:errcheck // flush of buffered tail
	if out != nil {
		proc.Stdout = io.MultiWriter(stdout, out)
		proc.Stderr = io.MultiWriter(stderr, out)
	} else {
		proc.Stdout = stdout
		proc.Stderr = stderr
	}

	err := proc.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	switch {
	case errors.Is(err, exec.ErrNotFound):
		// `sh` itself is missing; the probe normally catches this first.
		return zerr.With(zerr.Wrap(domain.ErrExecutableNotFound, "failed to execute command"), "program", "sh")
	case errors.As(err, &exitErr) && exitErr.ExitCode() == exitNotFound:
		return zerr.With(zerr.Wrap(domain.ErrExecutableNotFound, "failed to execute command"), "program", cmd.Program)
	case errors.As(err, &exitErr):
		return zerr.With(zerr.Wrap(domain.ErrNonZeroExit, "command failed"), "exit_code", exitErr.ExitCode())
	default:
		return zerr.Wrap(err, "failed to execute command")
	}
}

// mergeEnv layers ordered overrides over the parent environment,
// later entries winning on key collision.
func mergeEnv(parent []string, overrides []domain.EnvVar) []string {
	envMap := make(map[string]string, len(parent)+len(overrides))
	keys := make([]string, 0, len(parent)+len(overrides))
	for _, entry := range parent {
		if k, v, ok := strings.Cut(entry, "="); ok {
			if _, seen := envMap[k]; !seen {
				keys = append(keys, k)
			}
			envMap[k] = v
		}
	}
	for _, e := range overrides {
		if _, seen := envMap[e.Key]; !seen {
			keys = append(keys, e.Key)
		}
		envMap[e.Key] = e.Value
	}

	result := make([]string, 0, len(keys))
	for _, k := range keys {
		result = append(result, k+"="+envMap[k])
	}
	return result
}

// logWriter buffers process output and forwards whole lines to the logger.
type logWriter struct {
	logger ports.Logger
	level  string
	buf    []byte
}

func (w *logWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)
	for {
		i := strings.IndexByte(string(w.buf), '\n')
		if i < 0 {
			break
		}
		w.logLine(string(w.buf[:i]))
		w.buf = w.buf[i+1:]
	}
	return len(p), nil
}

func (w *logWriter) Close() error {
	if len(w.buf) > 0 {
		w.logLine(string(w.buf))
		w.buf = nil
	}
	return nil
}

func (w *logWriter) logLine(line string) {
	line = strings.TrimSuffix(line, "\r")
	if w.level == "info" {
		w.logger.Info(line)
	} else {
		w.logger.Error(zerr.New(line))
	}
}
