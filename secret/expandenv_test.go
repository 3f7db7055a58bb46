package secret

import (
	"strings"
	"testing"
)

func TestExpandEnvStrict(t *testing.T) {
	t.Setenv("KANADOJO_TEST_KEY", "sekrit")

	tests := []struct {
		name  string
		in    string
		want  string
		fails bool
	}{
		{"no variables", "plain-value", "plain-value", false},
		{"braced", "${KANADOJO_TEST_KEY}", "sekrit", false},
		{"embedded", "prefix-${KANADOJO_TEST_KEY}-suffix", "prefix-sekrit-suffix", false},
		{"escaped dollar", "pa$$word", "pa$word", false},
		{"missing variable", "${KANADOJO_TEST_UNSET}", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandEnvStrict(tt.in)
			if tt.fails {
				if err == nil {
					t.Fatalf("ExpandEnvStrict(%q) = %q, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExpandEnvStrict(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ExpandEnvStrict(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandEnvStrictListsAllMissing(t *testing.T) {
	_, err := ExpandEnvStrict("${KANADOJO_TEST_B} ${KANADOJO_TEST_A}")
	if err == nil {
		t.Fatal("want error for unset variables")
	}
	msg := err.Error()
	if !strings.Contains(msg, "KANADOJO_TEST_A, KANADOJO_TEST_B") {
		t.Errorf("error %q does not list missing variables in order", msg)
	}
}
