package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/otto/internal/adapters/shell"
	"go.trai.ch/otto/internal/core/domain"
	"go.trai.ch/otto/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func requirePosixShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX sh on PATH")
	}
}

func newTestRunner(t *testing.T) *shell.Runner {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()
	return shell.NewRunner(log)
}

func TestRunner_Run(t *testing.T) {
	requirePosixShell(t)
	runner := newTestRunner(t)

	t.Run("success", func(t *testing.T) {
		err := runner.Run(context.Background(), domain.Command{
			Program: "true",
		}, nil)
		require.NoError(t, err)
	})

	t.Run("output is mirrored to out", func(t *testing.T) {
		var out bytes.Buffer
		err := runner.Run(context.Background(), domain.Command{
			Program: "echo",
			Args:    []string{"hello"},
		}, &out)
		require.NoError(t, err)
		assert.Equal(t, "hello\n", out.String())
	})

	t.Run("arguments survive the shell indirection verbatim", func(t *testing.T) {
		var out bytes.Buffer
		err := runner.Run(context.Background(), domain.Command{
			Program: "printf",
			Args:    []string{"%s\n", "--prefix=/tmp/o ut", "$HOME"},
		}, &out)
		require.NoError(t, err)
		assert.Equal(t, "--prefix=/tmp/o ut\n$HOME\n", out.String())
	})

	t.Run("working directory is honored", func(t *testing.T) {
		dir := t.TempDir()
		resolved, err := filepath.EvalSymlinks(dir)
		require.NoError(t, err)

		var out bytes.Buffer
		err = runner.Run(context.Background(), domain.Command{
			Program: "pwd",
			Dir:     dir,
		}, &out)
		require.NoError(t, err)
		assert.Equal(t, resolved+"\n", out.String())
	})

	t.Run("environment overrides reach the process", func(t *testing.T) {
		var out bytes.Buffer
		err := runner.Run(context.Background(), domain.Command{
			Program: "sh",
			Args:    []string{"-c", "echo $CFLAGS"},
			Env: []domain.EnvVar{
				{Key: "CFLAGS", Value: "-O2 -g"},
			},
		}, &out)
		require.NoError(t, err)
		assert.Equal(t, "-O2 -g\n", out.String())
	})

	t.Run("later env entries win", func(t *testing.T) {
		var out bytes.Buffer
		err := runner.Run(context.Background(), domain.Command{
			Program: "sh",
			Args:    []string{"-c", "echo $CC"},
			Env: []domain.EnvVar{
				{Key: "CC", Value: "gcc"},
				{Key: "CC", Value: "clang"},
			},
		}, &out)
		require.NoError(t, err)
		assert.Equal(t, "clang\n", out.String())
	})

	t.Run("nonzero exit maps to ErrNonZeroExit", func(t *testing.T) {
		err := runner.Run(context.Background(), domain.Command{
			Program: "sh",
			Args:    []string{"-c", "exit 3"},
		}, nil)
		require.ErrorIs(t, err, domain.ErrNonZeroExit)
	})

	t.Run("missing program maps to ErrExecutableNotFound", func(t *testing.T) {
		err := runner.Run(context.Background(), domain.Command{
			Program: "definitely-not-a-real-program-9f3a",
		}, nil)
		require.ErrorIs(t, err, domain.ErrExecutableNotFound)
	})

	t.Run("canceled context aborts the run", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := runner.Run(ctx, domain.Command{
			Program: "sleep",
			Args:    []string{"10"},
		}, nil)
		require.Error(t, err)
	})
}

func TestRunner_ExecutesShebangScript(t *testing.T) {
	requirePosixShell(t)
	runner := newTestRunner(t)

	dir := t.TempDir()
	script := filepath.Join(dir, "configure")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho configured: $1\n"), 0o755))

	var out bytes.Buffer
	err := runner.Run(context.Background(), domain.Command{
		Program: script,
		Args:    []string{"--prefix=/tmp/out"},
		Dir:     dir,
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, "configured: --prefix=/tmp/out\n", out.String())
}

func TestProbe_Check(t *testing.T) {
	requirePosixShell(t)
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	probe := shell.NewProbe(log)
	require.NoError(t, probe.Check(context.Background()))
}
