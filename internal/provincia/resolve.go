package provincia

import (
	"strconv"
	"unicode/utf8"
)

// CodeOf returns the official code for a province name.
// Empty or whitespace-only input and unknown names report ok == false.
func CodeOf(name string) (code string, ok bool) {
	key := Normalize(name)
	if key == "" {
		return "", false
	}
	code, ok = codeByName[key]
	return code, ok
}

// Lookup resolves a dynamically typed cell value, as found in tabular data.
// Only string and non-nil *string values are considered; nil and every other
// type report ok == false.
func Lookup(v any) (code string, ok bool) {
	switch s := v.(type) {
	case string:
		return CodeOf(s)
	case *string:
		if s == nil {
			return "", false
		}
		return CodeOf(*s)
	default:
		return "", false
	}
}

// NameOf returns the canonical name for a code. A single-character code is
// left-padded with "0" ("4" -> "04"); other inputs are used as given.
func NameOf(code string) (name string, ok bool) {
	if utf8.RuneCountInString(code) == 1 {
		code = "0" + code
	}
	name, ok = nameByCode[code]
	return name, ok
}

// NameOfNumber is NameOf for integer codes. Negative numbers and numbers of
// three or more digits never match.
func NameOfNumber(n int) (name string, ok bool) {
	return NameOf(strconv.Itoa(n))
}
