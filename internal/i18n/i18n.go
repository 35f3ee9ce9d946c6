// Package i18n provides the translation tables for user-facing labels.
// Hungarian, English and German are supported; English is the fallback.
package i18n

import (
	"strings"

	"familycore/pkg/domain"
)

// Language is a supported UI language code.
type Language string

const (
	Hungarian Language = "hu"
	English   Language = "en"
	German    Language = "de"
)

// FallbackLanguage is used for unknown codes and missing keys.
const FallbackLanguage = English

var translations = map[Language]map[string]string{
	English: {
		"nav.home":            "Home",
		"nav.calendar":        "Calendar",
		"nav.todos":           "Todos",
		"nav.shopping":        "Shopping",
		"nav.family":          "Family",
		"home.today":          "Today",
		"home.nextEvents":     "Upcoming events",
		"home.importantTodos": "Important todos",
		"settings.language":   "Language",
		"priority.low":        "Low",
		"priority.medium":     "Medium",
		"priority.high":       "High",
		"priority.urgent":     "Urgent",
		"role.owner":          "Owner",
		"role.admin":          "Admin",
		"role.member":         "Member",
	},
	Hungarian: {
		"nav.home":            "Kezdőlap",
		"nav.calendar":        "Naptár",
		"nav.todos":           "Teendők",
		"nav.shopping":        "Bevásárlás",
		"nav.family":          "Család",
		"home.today":          "Ma",
		"home.nextEvents":     "Közelgő események",
		"home.importantTodos": "Fontos teendők",
		"settings.language":   "Nyelv",
		"priority.low":        "Alacsony",
		"priority.medium":     "Közepes",
		"priority.high":       "Magas",
		"priority.urgent":     "Sürgős",
		"role.owner":          "Tulajdonos",
		"role.admin":          "Admin",
		"role.member":         "Tag",
	},
	German: {
		"nav.home":            "Start",
		"nav.calendar":        "Kalender",
		"nav.todos":           "Aufgaben",
		"nav.shopping":        "Einkauf",
		"nav.family":          "Familie",
		"home.today":          "Heute",
		"home.nextEvents":     "Anstehende Termine",
		"home.importantTodos": "Wichtige Aufgaben",
		"settings.language":   "Sprache",
		"priority.low":        "Niedrig",
		"priority.medium":     "Mittel",
		"priority.high":       "Hoch",
		"priority.urgent":     "Dringend",
		"role.owner":          "Besitzer",
		"role.admin":          "Admin",
		"role.member":         "Mitglied",
	},
}

// Translator resolves label keys for one language.
type Translator struct {
	lang Language
}

// New returns a Translator for code. Region suffixes are stripped
// ("hu-HU" resolves to "hu"); unknown codes fall back to English.
func New(code string) *Translator {
	lang := Language(strings.ToLower(strings.SplitN(code, "-", 2)[0]))
	if _, ok := translations[lang]; !ok {
		lang = FallbackLanguage
	}
	return &Translator{lang: lang}
}

// Language returns the resolved language code.
func (t *Translator) Language() Language { return t.lang }

// T returns the translation for key, falling back to English and finally to
// the key itself.
func (t *Translator) T(key string) string {
	if v, ok := translations[t.lang][key]; ok {
		return v
	}
	if v, ok := translations[FallbackLanguage][key]; ok {
		return v
	}
	return key
}

// PriorityLabel returns the localized label for a priority.
func (t *Translator) PriorityLabel(p domain.Priority) string {
	return t.T("priority." + string(p))
}

// RoleLabel returns the localized label for a family role.
func (t *Translator) RoleLabel(r domain.Role) string {
	return t.T("role." + string(r))
}
