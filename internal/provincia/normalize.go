package provincia

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// aliases maps title-cased spelling variants to canonical names.
// Lookup is an exact match on the normalized form; at most one substitution
// is applied. Names not listed here ("Rio Negro", for one) do not resolve.
var aliases = map[string]string{
	"Cordoba":                         "Córdoba",
	"Tucuman":                         "Tucumán",
	"Entre Rios":                      "Entre Ríos",
	"Neuquen":                         "Neuquén",
	"Ciudad Autónoma De Buenos Aires": "CABA",
	"Ciudad Autonoma De Buenos Aires": "CABA",
	"Capital Federal":                 "CABA",
	"Caba":                            "CABA", // "CABA" after title-casing

	// Title-casing capitalizes the connective.
	"Santiago Del Estero": "Santiago del Estero",
	"Tierra Del Fuego":    "Tierra del Fuego",
}

// Normalize trims and title-cases a raw province name, then applies the alias
// table. The result is the key that is looked up in the code table; it is not
// guaranteed to be a canonical name.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// Survey exports sometimes carry decomposed accents ("o" + U+0301).
	s = norm.NFC.String(s)

	// Casers keep state between calls, so each call gets its own.
	s = cases.Title(language.Spanish).String(s)

	if canonical, ok := aliases[s]; ok {
		return canonical
	}
	return s
}
