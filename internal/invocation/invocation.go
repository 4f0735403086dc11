// Package invocation splits the raw process arguments into a command name,
// its positional arguments and the ad-hoc --key=value options.
package invocation

import "strings"

// Invocation is the parsed form of the tokens given at process start.
type Invocation struct {
	Command    string
	HasCommand bool
	Args       []string
	Options    map[string]string
}

// Parse reads tokens (without the program name). The first token that is not
// an option is the command name. valueFlags lists flag names (long or
// shorthand, without dashes) that take their value from the following token
// when written without "=".
//
// A later occurrence of an option key replaces an earlier one, and "--" ends
// option parsing.
func Parse(tokens []string, valueFlags ...string) Invocation {
	takesValue := make(map[string]bool, len(valueFlags))
	for _, f := range valueFlags {
		takesValue[f] = true
	}

	inv := Invocation{Options: map[string]string{}}
	var positional []string
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		switch {
		case tok == "--":
			positional = append(positional, tokens[i+1:]...)
			i = len(tokens)
		case strings.HasPrefix(tok, "--"):
			key, val, hasVal := strings.Cut(tok[2:], "=")
			if key == "" {
				continue
			}
			if !hasVal && takesValue[key] && i+1 < len(tokens) {
				i++
				val = tokens[i]
			}
			inv.Options[key] = val
		case len(tok) > 1 && tok[0] == '-':
			// Shorthand flags belong to the command line parser, not to the
			// named options; only their detached value has to be skipped.
			name := tok[1:]
			if !strings.Contains(name, "=") && takesValue[name] && i+1 < len(tokens) {
				i++
			}
		default:
			positional = append(positional, tok)
		}
	}
	if len(positional) > 0 {
		inv.Command = positional[0]
		inv.HasCommand = true
		inv.Args = positional[1:]
	}
	return inv
}

// Option returns the value of the named option and whether it was given.
func (inv Invocation) Option(key string) (string, bool) {
	v, ok := inv.Options[key]
	return v, ok
}
