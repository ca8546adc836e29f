package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/otto/internal/core/domain"
)

func TestNewBuildSpec_Defaults(t *testing.T) {
	spec := domain.NewBuildSpec("/src/libfoo")

	assert.Equal(t, "/src/libfoo", spec.SourceDir)
	assert.False(t, spec.SharedLib)
	assert.True(t, spec.StaticLib)
	assert.False(t, spec.InSource)
	assert.False(t, spec.FastBuild)
	assert.Nil(t, spec.ReconfFlags)
}

func TestBuildSpec_EffectiveMakeTargets(t *testing.T) {
	spec := domain.NewBuildSpec("/src")
	assert.Equal(t, []string{"install"}, spec.EffectiveMakeTargets())

	spec.MakeTargets = []string{"all", "check"}
	assert.Equal(t, []string{"all", "check"}, spec.EffectiveMakeTargets())
}

func TestBuildSpec_ExplicitHost(t *testing.T) {
	spec := domain.NewBuildSpec("/src")
	_, ok := spec.ExplicitHost()
	assert.False(t, ok)

	// Kind-prefixed options named host do not count.
	spec.Options = append(spec.Options, domain.NewOption(domain.OptionEnable, "host", nil))
	_, ok = spec.ExplicitHost()
	assert.False(t, ok)

	spec.Options = append(spec.Options, domain.NewOption(domain.OptionArbitrary, "host", strptr("arm-linux-gnueabihf")))
	host, ok := spec.ExplicitHost()
	require.True(t, ok)
	assert.Equal(t, "arm-linux-gnueabihf", host)
}

func TestBuildSpec_Validate(t *testing.T) {
	spec := domain.NewBuildSpec("/src")
	spec.Options = append(spec.Options, domain.NewOption(domain.OptionEnable, "shared", nil))
	require.NoError(t, spec.Validate())

	spec.Options = append(spec.Options, domain.NewOption(domain.OptionWith, "bad name", nil))
	assert.ErrorIs(t, spec.Validate(), domain.ErrInvalidOptionName)
}

func TestBuildSpec_Forbid(t *testing.T) {
	spec := domain.NewBuildSpec("/src")
	spec.Forbid("--with-sysroot")
	_, ok := spec.Forbidden["--with-sysroot"]
	assert.True(t, ok)
}

func TestCommand_EffectiveEnv(t *testing.T) {
	cmd := domain.Command{
		Env: []domain.EnvVar{
			{Key: "CC", Value: "gcc"},
			{Key: "CFLAGS", Value: "-O2"},
			{Key: "CC", Value: "clang"},
		},
	}
	assert.Equal(t, map[string]string{"CC": "clang", "CFLAGS": "-O2"}, cmd.EffectiveEnv())
}
