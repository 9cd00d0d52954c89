package randompkg

import (
	"strings"
	"testing"
)

func TestLoginCode(t *testing.T) {
	t.Parallel()

	code := LoginCode()

	if len(code) != CodeLength {
		t.Errorf("len(LoginCode()) = %v, want %v", len(code), CodeLength)
	}

	for _, c := range code {
		if !strings.ContainsRune(codeAlphabet, c) {
			t.Errorf("LoginCode() = %v contains %q outside alphabet", code, c)
		}
	}

	if LoginCode() == code {
		t.Error("two consecutive LoginCode() calls returned the same code")
	}
}

func TestString(t *testing.T) {
	t.Parallel()

	if got := String(10); len(got) != 10 {
		t.Errorf("len(String(10)) = %v, want 10", len(got))
	}
}

func TestEmail(t *testing.T) {
	t.Parallel()

	if email := Email(); !strings.Contains(email, "@") {
		t.Errorf("Email() = %v, want an address", email)
	}
}
