// Package osenv adapts the process environment to ports.Environment.
package osenv

import "os"

// Env reads the real process environment.
type Env struct{}

// New creates a new Env.
func New() *Env {
	return &Env{}
}

// Lookup returns the value of key and whether it is set.
func (e *Env) Lookup(key string) (string, bool) {
	return os.LookupEnv(key)
}
