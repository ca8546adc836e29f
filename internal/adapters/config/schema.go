package config

// Ottofile represents the structure of the otto.yaml build description.
type Ottofile struct {
	Source   string   `yaml:"source"`
	InSource bool     `yaml:"insource"`
	Fast     bool     `yaml:"fast"`
	Shared   *bool    `yaml:"shared"`
	Static   *bool    `yaml:"static"`
	Reconf   *string  `yaml:"reconf"`
	Target   string   `yaml:"target"`
	Host     string   `yaml:"host"`
	OutDir   string   `yaml:"outDir"`
	CFlags   []string `yaml:"cflags"`
	CXXFlags []string `yaml:"cxxflags"`
	LDFlags  []string `yaml:"ldflags"`

	Options []OptionDTO `yaml:"options"`
	Env     []string    `yaml:"env"`
	Make    MakeDTO     `yaml:"make"`
	Forbid  []string    `yaml:"forbid"`
}

// OptionDTO represents one configure switch. Exactly one of the kind
// fields may be set per entry.
type OptionDTO struct {
	Enable  *string `yaml:"enable"`
	Disable *string `yaml:"disable"`
	With    *string `yaml:"with"`
	Without *string `yaml:"without"`
	Flag    *string `yaml:"flag"`
	Value   *string `yaml:"value"`
}

// MakeDTO represents the make phase settings.
type MakeDTO struct {
	Targets []string `yaml:"targets"`
	Args    []string `yaml:"args"`
}
