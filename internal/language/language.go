package language

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// ToISO1 normalizes a language identifier ("fr", "fra", "french", "fr-CA") to
// its ISO 639-1 two-letter code. Returns "" when the input cannot be resolved,
// which callers treat as "let the service auto-detect".
func ToISO1(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := language.Parse(code)
	if err != nil {
		// Full language names ("french") are not BCP 47 tags; try matching
		// against display names before giving up.
		if fromName := parseDisplayName(code); fromName != "" {
			return fromName
		}
		return ""
	}
	base, conf := tag.Base()
	if conf == language.No {
		return ""
	}
	iso := base.String()
	if len(iso) != 2 {
		return ""
	}
	return iso
}

// DisplayName returns the English display name for a language identifier, or
// the input unchanged when it cannot be resolved.
func DisplayName(code string) string {
	normalized := ToISO1(code)
	if normalized == "" {
		return code
	}
	tag, err := language.Parse(normalized)
	if err != nil {
		return code
	}
	return display.English.Tags().Name(tag)
}

func parseDisplayName(name string) string {
	name = strings.ToLower(name)
	en := display.English.Tags()
	for _, tag := range []language.Tag{
		language.English, language.Spanish, language.French, language.German,
		language.Italian, language.Portuguese, language.Japanese, language.Korean,
		language.Chinese, language.Russian, language.Arabic, language.Hindi,
		language.Dutch, language.Polish, language.Swedish, language.Danish,
		language.Norwegian, language.Finnish,
	} {
		if strings.ToLower(en.Name(tag)) == name {
			base, _ := tag.Base()
			return base.String()
		}
	}
	return ""
}
