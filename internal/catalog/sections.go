package catalog

import "strings"

// liveAnimalSubfamilies get their own section inside the pet tree.
var liveAnimalSubfamilies = map[string]struct{}{
	"2104": {}, "2204": {}, "2305": {}, "2405": {}, "2504": {},
	"2606": {}, "2705": {}, "2707": {}, "2708": {}, "2805": {},
	"2806": {}, "2906": {},
}

// Sections maps section identifiers to their human descriptions, in the
// order the weekly run processes them.
var Sections = map[string]string{
	"interior":                "Plantas de interior",
	"mascotas_manufacturado":  "Mascotas (productos manufacturados)",
	"mascotas_vivo":           "Mascotas (animales vivos)",
	"tierra_aridos":           "Tierras y áridos",
	"fitos":                   "Fitosanitarios y abonos",
	"utiles_jardin":           "Útiles de jardín",
	"semillas":                "Semillas y bulbos",
	"deco_interior":           "Decoración interior",
	"maf":                     "Planta de temporada y floristería",
	"vivero":                  "Vivero y plantas exterior",
	"deco_exterior":           "Decoración exterior",
}

// SectionNames returns the known section identifiers.
func SectionNames() []string {
	names := make([]string, 0, len(Sections))
	for name := range Sections {
		names = append(names, name)
	}
	return names
}

// SectionOf resolves the warehouse section for an article code, or "" when
// the code cannot be classified. Codes shorter than 10 digits are invalid
// and always resolve to ""; this rule has priority over everything else.
func SectionOf(code string) string {
	code = strings.TrimSpace(code)
	code = strings.TrimSuffix(code, ".0")
	if len(code) < 10 {
		return ""
	}

	if strings.HasPrefix(code, "2") {
		if _, ok := liveAnimalSubfamilies[code[:4]]; ok {
			return "mascotas_vivo"
		}
		return "mascotas_manufacturado"
	}

	if strings.HasPrefix(code, "31") || strings.HasPrefix(code, "32") {
		return "tierra_aridos"
	}
	if strings.HasPrefix(code, "3") {
		second := code[1]
		if second >= '3' && second <= '9' {
			return "fitos"
		}
		return ""
	}

	switch code[0] {
	case '1':
		return "interior"
	case '4':
		return "utiles_jardin"
	case '5':
		return "semillas"
	case '6':
		return "deco_interior"
	case '7':
		return "maf"
	case '8':
		return "vivero"
	case '9':
		return "deco_exterior"
	}
	return ""
}
