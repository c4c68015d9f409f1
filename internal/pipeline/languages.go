// SPDX-License-Identifier: EPL-2.0

package pipeline

import "fmt"

// Language is one entry of the translator's catalogue.
type Language struct {
	Code   string
	Name   string
	Native string
}

const (
	DefaultSourceLanguage = "hi"
	DefaultTargetLanguage = "ta"
)

var catalogue = []Language{
	{Code: "hi", Name: "Hindi", Native: "हिंदी"},
	{Code: "ta", Name: "Tamil", Native: "தமிழ்"},
	{Code: "kn", Name: "Kannada", Native: "ಕನ್ನಡ"},
	{Code: "bn", Name: "Bengali", Native: "বাংলা"},
	{Code: "te", Name: "Telugu", Native: "తెలుగు"},
	{Code: "ml", Name: "Malayalam", Native: "മലയാളം"},
	{Code: "mr", Name: "Marathi", Native: "मराठी"},
	{Code: "gu", Name: "Gujarati", Native: "ગુજરાતી"},
	{Code: "pa", Name: "Punjabi", Native: "ਪੰਜਾਬੀ"},
}

// Languages returns the catalogue in display order.
func Languages() []Language {
	out := make([]Language, len(catalogue))
	copy(out, catalogue)
	return out
}

// LookupLanguage finds a catalogue entry by its two-letter code.
func LookupLanguage(code string) (Language, bool) {
	for _, l := range catalogue {
		if l.Code == code {
			return l, true
		}
	}
	return Language{}, false
}

// LocaleTag returns the regional tag the speech services expect, e.g.
// "hi" -> "hi-IN".
func LocaleTag(code string) string {
	return code + "-IN"
}

func (l Language) String() string {
	return fmt.Sprintf("%s (%s)", l.Name, l.Native)
}

func validatePair(source, target string) error {
	if _, ok := LookupLanguage(source); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, source)
	}
	if _, ok := LookupLanguage(target); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownLanguage, target)
	}
	if source == target {
		return fmt.Errorf("%w: %q", ErrSameLanguage, source)
	}
	return nil
}
