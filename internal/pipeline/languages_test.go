// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"errors"
	"testing"
)

func TestLanguages(t *testing.T) {
	t.Parallel()

	langs := Languages()
	if len(langs) != 9 {
		t.Fatalf("len(Languages()) = %d, want 9", len(langs))
	}

	seen := map[string]bool{}
	for _, l := range langs {
		if seen[l.Code] {
			t.Errorf("duplicate code %q", l.Code)
		}
		seen[l.Code] = true
		if l.Name == "" || l.Native == "" {
			t.Errorf("%q has empty names", l.Code)
		}
	}

	langs[0].Code = "xx"
	if Languages()[0].Code != "hi" {
		t.Error("Languages() exposes the catalogue")
	}
}

func TestLookupLanguage(t *testing.T) {
	t.Parallel()

	l, ok := LookupLanguage("ta")
	if !ok || l.Name != "Tamil" || l.String() != "Tamil (தமிழ்)" {
		t.Errorf("LookupLanguage(ta) = %+v, %v", l, ok)
	}

	if _, ok := LookupLanguage("en"); ok {
		t.Error("LookupLanguage(en) found an entry")
	}

	for _, code := range []string{DefaultSourceLanguage, DefaultTargetLanguage} {
		if _, ok := LookupLanguage(code); !ok {
			t.Errorf("default %q missing from catalogue", code)
		}
	}
}

func TestLocaleTag(t *testing.T) {
	t.Parallel()

	if got := LocaleTag("kn"); got != "kn-IN" {
		t.Errorf("LocaleTag(kn) = %q, want kn-IN", got)
	}
}

func TestValidatePair(t *testing.T) {
	t.Parallel()

	tests := []struct {
		source, target string
		want           error
	}{
		{"hi", "ta", nil},
		{"pa", "gu", nil},
		{"en", "ta", ErrUnknownLanguage},
		{"hi", "fr", ErrUnknownLanguage},
		{"bn", "bn", ErrSameLanguage},
	}

	for _, tt := range tests {
		err := validatePair(tt.source, tt.target)
		if !errors.Is(err, tt.want) && !(err == nil && tt.want == nil) {
			t.Errorf("validatePair(%q, %q) = %v, want %v", tt.source, tt.target, err, tt.want)
		}
	}
}
