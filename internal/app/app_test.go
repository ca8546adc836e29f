package app_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/otto/internal/adapters/telemetry"
	"go.trai.ch/otto/internal/app"
	"go.trai.ch/otto/internal/core/domain"
	"go.trai.ch/otto/internal/core/ports"
	"go.trai.ch/otto/internal/core/ports/mocks"
	"go.trai.ch/otto/internal/engine/planner"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

const nativeTriple = "x86_64-unknown-linux-gnu"

// recordingLogger keeps log lines for assertions.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) Info(msg string) { l.append("info: " + msg) }
func (l *recordingLogger) Warn(msg string) { l.append("warn: " + msg) }
func (l *recordingLogger) Error(err error) { l.append("error: " + err.Error()) }

func (l *recordingLogger) append(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
}

func (l *recordingLogger) contains(substr string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

type appTestMocks struct {
	executor     *mocks.MockExecutor
	fingerprints *mocks.MockFingerprintStore
	probe        *mocks.MockProbe
	logger       *recordingLogger
	declarations *bytes.Buffer
	outDir       string
}

// setupAppTest wires an App against mocked ports and a planner backed by
// a fixed native environment.
func setupAppTest(t *testing.T) (*app.App, appTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	outDir := t.TempDir()
	vars := map[string]string{
		"TARGET":  nativeTriple,
		"HOST":    nativeTriple,
		"OUT_DIR": outDir,
	}

	env := mocks.NewMockEnvironment(ctrl)
	env.EXPECT().Lookup(gomock.Any()).DoAndReturn(func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}).AnyTimes()

	tc := mocks.NewMockToolchain(ctrl)
	tc.EXPECT().Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(ports.Compiler{Path: "cc"}, ports.Compiler{Path: "c++"}, nil).AnyTimes()

	m := appTestMocks{
		executor:     mocks.NewMockExecutor(ctrl),
		fingerprints: mocks.NewMockFingerprintStore(ctrl),
		probe:        mocks.NewMockProbe(ctrl),
		logger:       &recordingLogger{},
		declarations: &bytes.Buffer{},
		outDir:       outDir,
	}
	m.probe.EXPECT().Check(gomock.Any()).Return(nil).AnyTimes()

	a := app.New(
		planner.New(tc, env),
		m.executor,
		m.fingerprints,
		m.probe,
		m.logger,
		telemetry.NewNoOp(),
		m.declarations,
	)
	return a, m
}

// program matches an executor call by its command program.
func program(name string) gomock.Matcher {
	return gomock.Cond(func(cmd domain.Command) bool {
		return filepath.Base(cmd.Program) == name
	})
}

func TestApp_Build(t *testing.T) {
	a, m := setupAppTest(t)

	gomock.InOrder(
		m.executor.EXPECT().Run(gomock.Any(), program("configure"), gomock.Any()).Return(nil),
		m.executor.EXPECT().Run(gomock.Any(), program("make"), gomock.Any()).Return(nil),
	)

	installDir, err := a.Build(context.Background(), domain.NewBuildSpec("/src/libfoo"))
	require.NoError(t, err)
	assert.Equal(t, m.outDir, installDir)
	assert.Equal(t, "root="+m.outDir+"\n", m.declarations.String())

	// Out-of-source build directory was created.
	info, err := os.Stat(filepath.Join(m.outDir, "build"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestApp_ConfigureStopsBeforeMake(t *testing.T) {
	a, m := setupAppTest(t)

	m.executor.EXPECT().Run(gomock.Any(), program("configure"), gomock.Any()).Return(nil)

	installDir, err := a.Configure(context.Background(), domain.NewBuildSpec("/src/libfoo"))
	require.NoError(t, err)
	assert.Equal(t, m.outDir, installDir)
	assert.Empty(t, m.declarations.String())
}

func TestApp_ReconfigureRunsFirst(t *testing.T) {
	a, m := setupAppTest(t)

	gomock.InOrder(
		m.executor.EXPECT().Run(gomock.Any(), program("autoreconf"), gomock.Any()).Return(nil),
		m.executor.EXPECT().Run(gomock.Any(), program("configure"), gomock.Any()).Return(nil),
		m.executor.EXPECT().Run(gomock.Any(), program("make"), gomock.Any()).Return(nil),
	)

	spec := domain.NewBuildSpec("/src/libfoo")
	flags := "-ivf"
	spec.ReconfFlags = &flags

	_, err := a.Build(context.Background(), spec)
	require.NoError(t, err)
}

func TestApp_ReconfigureFailure(t *testing.T) {
	a, m := setupAppTest(t)

	m.executor.EXPECT().Run(gomock.Any(), program("autoreconf"), gomock.Any()).
		Return(zerr.New("boom"))

	spec := domain.NewBuildSpec("/src/libfoo")
	flags := "-ivf"
	spec.ReconfFlags = &flags

	_, err := a.Build(context.Background(), spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrReconfigureFailed.Error())
	assert.Empty(t, m.declarations.String())
}

func TestApp_FastBuild(t *testing.T) {
	t.Run("skips configure on fingerprint match", func(t *testing.T) {
		a, m := setupAppTest(t)

		m.fingerprints.EXPECT().Match(gomock.Any(), gomock.Any()).Return(true, nil)
		m.executor.EXPECT().Run(gomock.Any(), program("make"), gomock.Any()).Return(nil)

		spec := domain.NewBuildSpec("/src/libfoo")
		spec.FastBuild = true

		_, err := a.Build(context.Background(), spec)
		require.NoError(t, err)
		assert.True(t, m.logger.contains("configure unchanged"))
	})

	t.Run("records fingerprint before running configure", func(t *testing.T) {
		a, m := setupAppTest(t)

		gomock.InOrder(
			m.fingerprints.EXPECT().Match(gomock.Any(), gomock.Any()).Return(false, nil),
			m.fingerprints.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil),
			m.executor.EXPECT().Run(gomock.Any(), program("configure"), gomock.Any()).Return(nil),
			m.executor.EXPECT().Run(gomock.Any(), program("make"), gomock.Any()).Return(nil),
		)

		spec := domain.NewBuildSpec("/src/libfoo")
		spec.FastBuild = true

		_, err := a.Build(context.Background(), spec)
		require.NoError(t, err)
	})

	t.Run("match errors degrade to a full configure", func(t *testing.T) {
		a, m := setupAppTest(t)

		m.fingerprints.EXPECT().Match(gomock.Any(), gomock.Any()).Return(false, zerr.New("io error"))
		m.fingerprints.EXPECT().Write(gomock.Any(), gomock.Any()).Return(nil)
		m.executor.EXPECT().Run(gomock.Any(), program("configure"), gomock.Any()).Return(nil)
		m.executor.EXPECT().Run(gomock.Any(), program("make"), gomock.Any()).Return(nil)

		spec := domain.NewBuildSpec("/src/libfoo")
		spec.FastBuild = true

		_, err := a.Build(context.Background(), spec)
		require.NoError(t, err)
		assert.True(t, m.logger.contains("fingerprint check failed"))
	})

	t.Run("off by default", func(t *testing.T) {
		a, m := setupAppTest(t)

		// No fingerprint calls expected at all.
		m.executor.EXPECT().Run(gomock.Any(), program("configure"), gomock.Any()).Return(nil)
		m.executor.EXPECT().Run(gomock.Any(), program("make"), gomock.Any()).Return(nil)

		_, err := a.Build(context.Background(), domain.NewBuildSpec("/src/libfoo"))
		require.NoError(t, err)
	})
}

func TestApp_ConfigureFailureDumpsConfigLog(t *testing.T) {
	a, m := setupAppTest(t)

	buildDir := filepath.Join(m.outDir, "build")
	require.NoError(t, os.MkdirAll(buildDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(buildDir, "config.log"),
		[]byte("checking for gcc... no\nerror: no acceptable C compiler\n"),
		0o644,
	))

	m.executor.EXPECT().Run(gomock.Any(), program("configure"), gomock.Any()).
		Return(zerr.New("exit status 1"))

	_, err := a.Build(context.Background(), domain.NewBuildSpec("/src/libfoo"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigureFailed.Error())
	assert.True(t, m.logger.contains("no acceptable C compiler"))
}

func TestApp_ConfigureFailureWithoutConfigLog(t *testing.T) {
	a, m := setupAppTest(t)

	m.executor.EXPECT().Run(gomock.Any(), program("configure"), gomock.Any()).
		Return(zerr.New("exit status 1"))

	_, err := a.Build(context.Background(), domain.NewBuildSpec("/src/libfoo"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrConfigureFailed.Error())
	assert.True(t, m.logger.contains("could not read"))
}

func TestApp_BuildFailure(t *testing.T) {
	a, m := setupAppTest(t)

	m.executor.EXPECT().Run(gomock.Any(), program("configure"), gomock.Any()).Return(nil)
	m.executor.EXPECT().Run(gomock.Any(), program("make"), gomock.Any()).
		Return(zerr.New("exit status 2"))

	_, err := a.Build(context.Background(), domain.NewBuildSpec("/src/libfoo"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrBuildFailed.Error())
	assert.Empty(t, m.declarations.String())
}

func TestApp_ProbeFailureStopsEverything(t *testing.T) {
	ctrl := gomock.NewController(t)
	probe := mocks.NewMockProbe(ctrl)
	probe.EXPECT().Check(gomock.Any()).Return(domain.ErrShellUnavailable)

	env := mocks.NewMockEnvironment(ctrl)
	tc := mocks.NewMockToolchain(ctrl)

	a := app.New(
		planner.New(tc, env),
		mocks.NewMockExecutor(ctrl),
		mocks.NewMockFingerprintStore(ctrl),
		probe,
		&recordingLogger{},
		telemetry.NewNoOp(),
		nil,
	)

	_, err := a.Build(context.Background(), domain.NewBuildSpec("/src/libfoo"))
	require.ErrorIs(t, err, domain.ErrShellUnavailable)
}

func TestApp_InvalidSpecRejectedBeforeProbe(t *testing.T) {
	ctrl := gomock.NewController(t)

	a := app.New(
		planner.New(mocks.NewMockToolchain(ctrl), mocks.NewMockEnvironment(ctrl)),
		mocks.NewMockExecutor(ctrl),
		mocks.NewMockFingerprintStore(ctrl),
		mocks.NewMockProbe(ctrl),
		&recordingLogger{},
		telemetry.NewNoOp(),
		nil,
	)

	spec := domain.NewBuildSpec("/src/libfoo")
	spec.Options = append(spec.Options, domain.NewOption(domain.OptionEnable, "bad name", nil))

	_, err := a.Build(context.Background(), spec)
	require.ErrorIs(t, err, domain.ErrInvalidOptionName)
}

func TestApp_CleanHookRunsBeforeCreate(t *testing.T) {
	a, m := setupAppTest(t)

	m.executor.EXPECT().Run(gomock.Any(), program("configure"), gomock.Any()).Return(nil)
	m.executor.EXPECT().Run(gomock.Any(), program("make"), gomock.Any()).Return(nil)

	var cleaned string
	spec := domain.NewBuildSpec("/src/libfoo")
	spec.CleanBuildDir = func(dir string) error {
		cleaned = dir
		return os.RemoveAll(dir)
	}

	_, err := a.Build(context.Background(), spec)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(m.outDir, "build"), cleaned)
}

func TestApp_CleanHookFailureAborts(t *testing.T) {
	a, _ := setupAppTest(t)

	spec := domain.NewBuildSpec("/src/libfoo")
	spec.CleanBuildDir = func(string) error { return zerr.New("device busy") }

	_, err := a.Build(context.Background(), spec)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to clean build directory")
}
