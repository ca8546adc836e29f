package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// OptionKind selects the prefix an option is rendered with.
type OptionKind int

const (
	// OptionEnable renders as --enable-<name>.
	OptionEnable OptionKind = iota
	// OptionDisable renders as --disable-<name>.
	OptionDisable
	// OptionWith renders as --with-<name>.
	OptionWith
	// OptionWithout renders as --without-<name>.
	OptionWithout
	// OptionArbitrary renders as --<name> with no kind prefix.
	OptionArbitrary
)

// Option is one typed configure switch: a kind, a name, and an optional
// value. Names must be shell-token safe; see ValidateOptionName.
type Option struct {
	Kind     OptionKind
	Name     string
	Value    string
	HasValue bool
}

// NewOption builds an Option. A nil value means the switch carries no
// "=value" suffix; an empty non-nil value renders as "name=".
func NewOption(kind OptionKind, name string, value *string) Option {
	o := Option{Kind: kind, Name: name}
	if value != nil {
		o.Value = *value
		o.HasValue = true
	}
	return o
}

func (k OptionKind) prefix() string {
	switch k {
	case OptionEnable:
		return "enable-"
	case OptionDisable:
		return "disable-"
	case OptionWith:
		return "with-"
	case OptionWithout:
		return "without-"
	default:
		return ""
	}
}

// Token renders the option as a configure argument: --<prefix><name> with
// an optional =<value> suffix.
func (o Option) Token() string {
	var b strings.Builder
	b.WriteString("--")
	b.WriteString(o.Kind.prefix())
	b.WriteString(o.Name)
	if o.HasValue {
		b.WriteString("=")
		b.WriteString(o.Value)
	}
	return b.String()
}

// ParseOptionToken inverts Token. Tokens whose name begins with a kind
// prefix parse back as that kind.
func ParseOptionToken(tok string) (Option, error) {
	rest, ok := strings.CutPrefix(tok, "--")
	if !ok {
		return Option{}, zerr.With(ErrInvalidOptionToken, "token", tok)
	}

	var o Option
	if i := strings.IndexByte(rest, '='); i >= 0 {
		o.HasValue = true
		o.Value = rest[i+1:]
		rest = rest[:i]
	}

	switch {
	case strings.HasPrefix(rest, "enable-"):
		o.Kind, o.Name = OptionEnable, strings.TrimPrefix(rest, "enable-")
	case strings.HasPrefix(rest, "disable-"):
		o.Kind, o.Name = OptionDisable, strings.TrimPrefix(rest, "disable-")
	case strings.HasPrefix(rest, "with-"):
		o.Kind, o.Name = OptionWith, strings.TrimPrefix(rest, "with-")
	case strings.HasPrefix(rest, "without-"):
		o.Kind, o.Name = OptionWithout, strings.TrimPrefix(rest, "without-")
	default:
		o.Kind, o.Name = OptionArbitrary, rest
	}

	if o.Name == "" {
		return Option{}, zerr.With(ErrInvalidOptionToken, "token", tok)
	}
	return o, nil
}

// ValidateOptionName rejects names that cannot be safely placed in a
// shell command token. Enforcement happens at the API boundary; names are
// never coerced.
func ValidateOptionName(name string) error {
	if name == "" {
		return zerr.With(ErrInvalidOptionName, "name", name)
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.' || r == '+' || r == ':' || r == '/':
		default:
			return zerr.With(ErrInvalidOptionName, "name", name)
		}
	}
	return nil
}

// FilterForbidden drops every token whose part before the first "=" (the
// whole token when there is none) appears in forbidden, with or without
// the leading dashes. Dropping is silent: it is an escape hatch for
// non-conforming configure scripts, not an error.
func FilterForbidden(tokens []string, forbidden map[string]struct{}) []string {
	if len(forbidden) == 0 {
		return tokens
	}
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		name := tok
		if i := strings.IndexByte(tok, '='); i >= 0 {
			name = tok[:i]
		}
		if _, drop := forbidden[name]; drop {
			continue
		}
		if _, drop := forbidden[strings.TrimPrefix(name, "--")]; drop {
			continue
		}
		kept = append(kept, tok)
	}
	return kept
}
