// Package provincia maps Argentina's 24 province names to their official
// two-digit codes and back.
//
// The tables are built once during package initialization and never mutated,
// so every function here is safe for concurrent use without locking.
//
// Name resolution tolerates casing and a fixed set of spelling variants:
//
//	code, ok := provincia.CodeOf("cordoba")   // "04", true
//	name, ok := provincia.NameOfNumber(4)     // "Córdoba", true
//	_, ok = provincia.CodeOf("Atlantis")      // ok == false
package provincia

import (
	"fmt"
	"sort"
)

// Province is a canonical (code, name) pair.
type Province struct {
	Code string `json:"code" yaml:"code"`
	Name string `json:"name" yaml:"name"`
}

// codeByName maps canonical province names to their official codes.
var codeByName = map[string]string{
	"Buenos Aires":        "01",
	"CABA":                "02", // Ciudad Autónoma de Buenos Aires
	"Catamarca":           "03",
	"Córdoba":             "04",
	"Corrientes":          "05",
	"Entre Ríos":          "06",
	"Jujuy":               "07",
	"Mendoza":             "08",
	"La Rioja":            "09",
	"Salta":               "10",
	"San Juan":            "11",
	"San Luis":            "12",
	"Santa Fe":            "13",
	"Santiago del Estero": "14",
	"Tucumán":             "15",
	"Chaco":               "16",
	"Chubut":              "17",
	"Formosa":             "18",
	"Misiones":            "19",
	"Neuquén":             "20",
	"La Pampa":            "21",
	"Río Negro":           "22",
	"Santa Cruz":          "23",
	"Tierra del Fuego":    "24",
}

// tableSize is the number of entries the official code list defines.
const tableSize = 24

var (
	nameByCode map[string]string
	ordered    []Province
)

func init() {
	var err error
	nameByCode, err = invert(codeByName)
	if err != nil {
		panic(fmt.Sprintf("provincia: %v", err))
	}
	if err := checkTable(codeByName, nameByCode); err != nil {
		panic(fmt.Sprintf("provincia: %v", err))
	}

	ordered = make([]Province, 0, len(codeByName))
	for name, code := range codeByName {
		ordered = append(ordered, Province{Code: code, Name: name})
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Code < ordered[j].Code
	})
}

// invert builds the code -> name table. Two names sharing a code is an error.
func invert(forward map[string]string) (map[string]string, error) {
	reverse := make(map[string]string, len(forward))
	for name, code := range forward {
		if other, dup := reverse[code]; dup {
			return nil, fmt.Errorf("code %s assigned to both %q and %q", code, other, name)
		}
		reverse[code] = name
	}
	return reverse, nil
}

// checkTable verifies the forward and reverse tables cover exactly "01".."24"
// and are inverses of each other.
func checkTable(forward, reverse map[string]string) error {
	if len(forward) != tableSize {
		return fmt.Errorf("table has %d entries, want %d", len(forward), tableSize)
	}
	if len(reverse) != len(forward) {
		return fmt.Errorf("reverse table has %d entries, forward has %d", len(reverse), len(forward))
	}
	for i := 1; i <= tableSize; i++ {
		code := fmt.Sprintf("%02d", i)
		name, ok := reverse[code]
		if !ok {
			return fmt.Errorf("code %s missing", code)
		}
		if forward[name] != code {
			return fmt.Errorf("code %s maps to %q, which maps back to %q", code, name, forward[name])
		}
	}
	return nil
}

// Len returns the number of provinces in the table.
func Len() int {
	return len(codeByName)
}

// All returns every province ordered by ascending code.
// The returned slice is a copy and may be modified by the caller.
func All() []Province {
	out := make([]Province, len(ordered))
	copy(out, ordered)
	return out
}

// Codes returns a copy of the name -> code table.
func Codes() map[string]string {
	out := make(map[string]string, len(codeByName))
	for name, code := range codeByName {
		out[name] = code
	}
	return out
}
