package otto

import "go.trai.ch/otto/internal/core/domain"

// Spec exposes the accumulated build description for tests.
func (c *Config) Spec() *domain.BuildSpec {
	return c.spec
}
