package config

import (
	"errors"
	"testing"

	domainconfig "github.com/felixgeelhaar/goap-go/domain/config"
)

func mapLookup(env map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		v, ok := env[name]
		return v, ok
	}
}

func TestEnvExpander_Expand(t *testing.T) {
	t.Parallel()

	env := mapLookup(map[string]string{
		"GOLD":  "12",
		"EMPTY": "",
	})

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "gold: ${GOLD}", "gold: 12"},
		{"embedded", "a-${GOLD}-b", "a-12-b"},
		{"repeated", "${GOLD} ${GOLD}", "12 12"},
		{"unset plain", "x: ${NOPE}", "x: "},
		{"default when unset", "${NOPE:-5}", "5"},
		{"default when empty", "${EMPTY:-5}", "5"},
		{"set ignores default", "${GOLD:-5}", "12"},
		{"default with colon", "${NOPE:-redis://localhost:6379}", "redis://localhost:6379"},
		{"escaped dollar", "price: $$5", "price: $5"},
		{"bare dollar untouched", "cost $GOLD", "cost $GOLD"},
		{"required set", "${GOLD:?need gold}", "12"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := &envExpander{lookup: env}
			got, err := e.Expand(tt.input)
			if err != nil {
				t.Fatalf("Expand() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEnvExpander_Missing(t *testing.T) {
	t.Parallel()

	env := mapLookup(map[string]string{"EMPTY": ""})

	tests := []struct {
		name   string
		input  string
		strict bool
	}{
		{"required unset", "${NOPE:?set NOPE}", false},
		{"required empty", "${EMPTY:?}", false},
		{"strict plain", "${NOPE}", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := &envExpander{lookup: env, strict: tt.strict}
			if _, err := e.Expand(tt.input); !errors.Is(err, domainconfig.ErrMissingEnvVar) {
				t.Errorf("Expand() error = %v, want ErrMissingEnvVar", err)
			}
		})
	}
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("GOAP_TEST_VALUE", "7")

	if got := ExpandEnv("v=${GOAP_TEST_VALUE}"); got != "v=7" {
		t.Errorf("ExpandEnv() = %q, want v=7", got)
	}
	if got := ExpandEnv("${GOAP_TEST_UNSET:?x}"); got != "${GOAP_TEST_UNSET:?x}" {
		t.Errorf("ExpandEnv() = %q, want input unchanged on error", got)
	}
	if _, err := ExpandEnvStrict("${GOAP_TEST_UNSET}"); !errors.Is(err, domainconfig.ErrMissingEnvVar) {
		t.Errorf("ExpandEnvStrict() error = %v, want ErrMissingEnvVar", err)
	}
}
