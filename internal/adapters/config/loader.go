// Package config provides the build description loader for otto.
package config

import (
	"os"
	"strings"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"go.trai.ch/otto/internal/core/domain"
)

// FileLoader implements ports.ConfigLoader using a YAML file.
type FileLoader struct{}

// NewLoader creates a FileLoader.
func NewLoader() *FileLoader {
	return &FileLoader{}
}

// Load reads a build description file and returns the spec it describes.
func (l *FileLoader) Load(path string) (*domain.BuildSpec, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read build description")
	}

	var file Ottofile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "failed to parse build description")
	}

	return specFromFile(&file)
}

func specFromFile(file *Ottofile) (*domain.BuildSpec, error) {
	if file.Source == "" {
		return nil, zerr.New("build description is missing the source directory")
	}

	spec := domain.NewBuildSpec(file.Source)
	spec.InSource = file.InSource
	spec.FastBuild = file.Fast
	if file.Shared != nil {
		spec.SharedLib = *file.Shared
	}
	if file.Static != nil {
		spec.StaticLib = *file.Static
	}
	spec.ReconfFlags = file.Reconf
	spec.Target = file.Target
	spec.Host = file.Host
	spec.OutDir = file.OutDir
	spec.CFlags = file.CFlags
	spec.CXXFlags = file.CXXFlags
	spec.LDFlags = file.LDFlags
	spec.MakeTargets = file.Make.Targets
	spec.MakeArgs = file.Make.Args

	for i, dto := range file.Options {
		opt, err := optionFromDTO(dto)
		if err != nil {
			return nil, zerr.With(err, "option_index", i)
		}
		spec.Options = append(spec.Options, opt)
	}

	for _, entry := range file.Env {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			return nil, zerr.With(zerr.New("env entries must be KEY=VALUE"), "entry", entry)
		}
		spec.Env = append(spec.Env, domain.EnvVar{Key: key, Value: value})
	}

	for _, name := range file.Forbid {
		spec.Forbid(name)
	}

	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

func optionFromDTO(dto OptionDTO) (domain.Option, error) {
	type candidate struct {
		kind domain.OptionKind
		name *string
	}
	candidates := []candidate{
		{domain.OptionEnable, dto.Enable},
		{domain.OptionDisable, dto.Disable},
		{domain.OptionWith, dto.With},
		{domain.OptionWithout, dto.Without},
		{domain.OptionArbitrary, dto.Flag},
	}

	var chosen *candidate
	for i := range candidates {
		if candidates[i].name == nil {
			continue
		}
		if chosen != nil {
			return domain.Option{}, zerr.New("option entries must set exactly one of enable, disable, with, without, flag")
		}
		chosen = &candidates[i]
	}
	if chosen == nil {
		return domain.Option{}, zerr.New("option entries must set exactly one of enable, disable, with, without, flag")
	}

	if err := domain.ValidateOptionName(*chosen.name); err != nil {
		return domain.Option{}, err
	}
	return domain.NewOption(chosen.kind, *chosen.name, dto.Value), nil
}
