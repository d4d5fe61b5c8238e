package login

import "testing"

func TestValidatePasswordPolicy(t *testing.T) {
	cases := []struct {
		name string
		pwd  string
		ok   bool
	}{
		{name: "valid mixed", pwd: "Abcdefgh1234!", ok: true},
		{name: "too short", pwd: "Ab1!", ok: false},
		{name: "missing digit", pwd: "Abcdefghijkl!", ok: false},
		{name: "missing symbol", pwd: "Abcdefgh12345", ok: false},
		{name: "missing upper", pwd: "abcdefgh1234!", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePasswordPolicy(tc.pwd)
			if tc.ok && err != nil {
				t.Fatalf("expected valid password, got error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected policy error")
			}
		})
	}
}
