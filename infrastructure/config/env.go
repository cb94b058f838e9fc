package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	domainconfig "github.com/felixgeelhaar/goap-go/domain/config"
)

// envPattern matches $$, ${VAR}, ${VAR:-default} and ${VAR:?message}.
var envPattern = regexp.MustCompile(`\$\$|\$\{([A-Za-z_][A-Za-z0-9_]*)(?:(:-|:\?)([^}]*))?\}`)

// LookupFunc resolves an environment variable.
type LookupFunc func(name string) (string, bool)

// envExpander expands environment references in scenario documents.
type envExpander struct {
	lookup LookupFunc
	// strict fails on a plain ${VAR} that is not set.
	strict bool
}

// Expand replaces environment references in input. Supported forms:
//   - ${VAR} expands to VAR, or "" when unset (an error when strict)
//   - ${VAR:-default} expands to VAR, or default when unset or empty
//   - ${VAR:?message} fails with message when VAR is unset or empty
//   - $$ is a literal $
func (e *envExpander) Expand(input string) (string, error) {
	lookup := e.lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	var missing []string
	result := envPattern.ReplaceAllStringFunc(input, func(match string) string {
		if match == "$$" {
			return "$"
		}

		groups := envPattern.FindStringSubmatch(match)
		name, op, arg := groups[1], groups[2], groups[3]
		value, ok := lookup(name)

		switch op {
		case ":-":
			if !ok || value == "" {
				return arg
			}
		case ":?":
			if !ok || value == "" {
				if arg == "" {
					arg = "required"
				}
				missing = append(missing, fmt.Sprintf("%s: %s", name, arg))
				return match
			}
		default:
			if !ok && e.strict {
				missing = append(missing, name)
			}
		}
		return value
	})

	if len(missing) > 0 {
		return "", fmt.Errorf("%w: %s", domainconfig.ErrMissingEnvVar, strings.Join(missing, ", "))
	}
	return result, nil
}

// ExpandEnv expands environment references, leaving unset plain references
// empty.
func ExpandEnv(input string) string {
	e := &envExpander{}
	result, err := e.Expand(input)
	if err != nil {
		return input
	}
	return result
}

// ExpandEnvStrict expands environment references and reports every unset one.
func ExpandEnvStrict(input string) (string, error) {
	e := &envExpander{strict: true}
	return e.Expand(input)
}
