package domain

import "strings"

// Command is one planned external invocation: program, ordered arguments,
// working directory, and ordered environment overrides layered on top of
// the parent environment.
type Command struct {
	Program string
	Args    []string
	Dir     string
	Env     []EnvVar
}

// EffectiveEnv collapses the ordered overrides into a map, last wins.
func (c Command) EffectiveEnv() map[string]string {
	env := make(map[string]string, len(c.Env))
	for _, e := range c.Env {
		env[e.Key] = e.Value
	}
	return env
}

// Display renders the command for log lines.
func (c Command) Display() string {
	return c.Program + " " + strings.Join(c.Args, " ")
}
