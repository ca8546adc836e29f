package domain

import "strings"

// AssembleFlags merges the three flag sources of one flag class into a
// single environment value. Token order is default, then ambient, then
// user, so that user flags win under configure's last-wins substitution.
// Empty segments are omitted; segments are separated by single spaces.
func AssembleFlags(defaults []string, ambient string, user []string) string {
	segments := make([]string, 0, 3)
	if s := strings.Join(defaults, " "); s != "" {
		segments = append(segments, s)
	}
	if ambient != "" {
		segments = append(segments, ambient)
	}
	if s := strings.Join(user, " "); s != "" {
		segments = append(segments, s)
	}
	return strings.Join(segments, " ")
}

// AssembleLinkerFlags is AssembleFlags for the linker class, which has no
// compiler-default segment and distinguishes "unset" from "set to empty":
// when the ambient LDFLAGS is absent and the accumulator is empty, no
// environment variable is emitted at all.
func AssembleLinkerFlags(ambient string, ambientSet bool, user []string) (string, bool) {
	if !ambientSet && len(user) == 0 {
		return "", false
	}
	return AssembleFlags(nil, ambient, user), true
}
