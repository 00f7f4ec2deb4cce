package config

import "strings"

// Language selects how the engine handles the spoken language.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSpanish Language = "es"
	LanguageMulti   Language = "multi"
)

// ParseLanguage maps a user value to a Language. Anything unrecognized
// falls back to multilingual auto-detection.
func ParseLanguage(s string) Language {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case LanguageEnglish:
		return LanguageEnglish
	case LanguageSpanish:
		return LanguageSpanish
	default:
		return LanguageMulti
	}
}

// ModelSizes lists the accepted model sizes.
var ModelSizes = []string{"tiny", "base", "small", "medium", "large", "large-v2", "large-v3"}

// ResolvedModel is what the engine is asked to load for a run.
type ResolvedModel struct {
	Name         string
	LanguageFlag string // empty means let the engine auto-detect
	Description  string
}

// ResolveModel derives the engine model and language flag.
// English runs use the ".en" variant except for the large models, which
// only ship multilingual weights.
func ResolveModel(size string, lang Language) ResolvedModel {
	switch lang {
	case LanguageEnglish:
		if isMultilingualOnly(size) {
			return ResolvedModel{Name: size, LanguageFlag: "en", Description: "English (multilingual model)"}
		}
		return ResolvedModel{Name: size + ".en", LanguageFlag: "en", Description: "English-only model"}
	case LanguageSpanish:
		return ResolvedModel{Name: size, LanguageFlag: "es", Description: "Spanish"}
	default:
		return ResolvedModel{Name: size, Description: "Multilingual (auto-detect)"}
	}
}

func isMultilingualOnly(size string) bool {
	return strings.HasPrefix(size, "large")
}

func validModelSize(size string) bool {
	for _, s := range ModelSizes {
		if s == size {
			return true
		}
	}
	return false
}
