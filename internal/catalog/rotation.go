// Package catalog holds the static per-family lookup tables: target rotation
// periods, VAT rates and the warehouse section ranges. Pure data, no state.
package catalog

import "strings"

// Family is one entry of the rotation catalog.
type Family struct {
	Name         string
	RotationDays int
}

// Unknown families fall back to this entry.
var familyDefault = Family{Name: "OTROS", RotationDays: 90}

var rotationByFamily = map[string]Family{
	// Plants (2-digit keys)
	"11": {"PLANTAS VERDES", 30},
	"12": {"ORQUIDEAS", 15},
	"13": {"PLANTAS DE FLOR", 15},
	"14": {"FLOR CORTADA", 7},
	"15": {"CACTUS", 30},
	"16": {"COMPOSICIONES", 30},
	"17": {"BONSAIS", 30},

	// Pet subfamilies (4-digit keys, codes starting with 2)
	"2101": {"ALIMENTACION PAJARO", 60},
	"2102": {"JAULAS PAJARO", 60},
	"2103": {"HIGIENE/CUIDADO PAJARO", 60},
	"2104": {"ANIMAL VIVO PAJARO", 30},
	"2201": {"ALIMENTACION PEQUEÑOS MAMIFEROS", 60},
	"2202": {"JAULAS PEQUEÑOS MAMIFEROS", 60},
	"2203": {"HIGIENE/CUIDADO PEQUEÑOS MAMIFEROS", 60},
	"2204": {"ANIMAL VIVO PEQUEÑOS MAMIFEROS", 30},
	"2301": {"ALIMENTACION PERRO", 60},
	"2302": {"CONFORT PERRO", 60},
	"2303": {"CORREAS Y COLLARES PERRO", 60},
	"2304": {"HIGIENE/CUIDADO PERRO", 60},
	"2305": {"ANIMAL VIVO PERRO", 30},
	"2401": {"ALIMENTACION GATO", 60},
	"2402": {"CONFORT GATO", 60},
	"2403": {"CORREAS Y COLLARES GATO", 60},
	"2404": {"HIGIENE/CUIDADO GATO", 60},
	"2405": {"ANIMAL VIVO GATO", 30},
	"2501": {"ALIMENTACION ANIMALES DE GRANJA", 60},
	"2502": {"HABITAT / ACCES ANIMALES DE GRANJA", 60},
	"2503": {"HIGIENE/CUIDADO ANIMALES DE GRANJA", 60},
	"2504": {"ANIMAL VIVO GRANJA", 30},
	"2601": {"ALIMENTACION REPTILES", 60},
	"2602": {"TERRARIO REPTILES", 60},
	"2603": {"ACCESORIOS REPTILES", 60},
	"2604": {"DECO INERTE REPTILES", 60},
	"2605": {"HIGIENE/CUIDADO REPTILES", 60},
	"2606": {"ANIMAL VIVO REPTILES", 30},
	"2701": {"ALIMENTACION ACUARIOFILIA", 60},
	"2702": {"ACUARIOS", 60},
	"2703": {"ACCESORIOS ACUARIOFILIA", 60},
	"2704": {"DECO INERTE ACUARIOFILIA", 60},
	"2705": {"PLANTA ACUATICA DECORACION ACUARIOFILIA", 15},
	"2706": {"HIGIENE/CUIDADO ACUARIOFILIA", 60},
	"2707": {"PECES AGUA CALIENTE ACUARIOFILIA", 15},
	"2708": {"PECES AGUA FRIA ACUARIOFILIA", 15},
	"2709": {"AGUA OSMOSIS ACUARIOFILIA", 60},
	"2801": {"ALIMENTACION JARDIN ACUATICO", 60},
	"2802": {"ACCESORIOS JARDIN ACUATICO", 60},
	"2803": {"HIGIENE/CUIDADO JARDIN ACUATICO", 60},
	"2804": {"DECORACION JARDIN ACUATICO", 60},
	"2805": {"PLANTAS JARDIN ACUATICO", 30},
	"2806": {"PECES JARDIN ACUATICO", 15},
	"2906": {"INSECTO VIVO", 15},

	// Soil and treatments
	"31": {"TIERRAS", 90},
	"32": {"MANTENIMIENTO", 90},
	"33": {"ABONOS", 90},
	"34": {"ABONO NATURAL", 90},
	"35": {"FITOSANITARIOS", 90},
	"36": {"FITOSANITARIO NATURAL", 90},
	"37": {"HERBICIDAS", 90},
	"39": {"ANTI-PLAGAS", 90},

	// Garden tools
	"41": {"UTILES JARDIN", 90},
	"42": {"PODA", 90},
	"43": {"PULVERIZACION", 90},
	"44": {"PROTECCION CULTIVO", 90},
	"45": {"PROTECCION PERSONAL", 90},
	"46": {"RIEGO", 90},
	"48": {"OTRAS MAQUINAS MOTOR", 90},
	"49": {"ACCESS/PIEZAS", 90},

	// Seeds
	"51": {"BULBOS DE FLOR", 60},
	"53": {"CESPED", 60},
	"54": {"SEMILLAS", 60},

	// Indoor decoration
	"61": {"DECORACION NAVIDAD", 90},
	"62": {"DECORACION FLORAL", 90},
	"63": {"RECIPIENTES", 90},
	"64": {"DECORACION AMBIENTE", 90},
	"65": {"LIB/PAP/SON/IMAG.", 90},

	// Seasonal plants
	"71": {"PLANTAS PARA MACIZOS EN BDJA.", 15},
	"72": {"PLANTAS PARA MACIZOS EN MAC.", 15},
	"74": {"VIVACES EN MACETA", 15},
	"75": {"PLANTAS TRADICIONALES", 15},
	"77": {"PELARGONIUM EN MACETA", 15},
	"78": {"AROMATICAS", 15},
	"79": {"FRESALES/HORTICOLAS", 15},

	// Nursery
	"81": {"ARBOLES/ARBUSTOS DECO", 30},
	"82": {"CONIFERAS", 30},
	"83": {"ROSALES", 30},
	"84": {"FRUTALES", 30},
	"85": {"PLANTAS TIERRA DE BREZO", 30},
	"86": {"PLANTAS PARA SETOS", 30},
	"87": {"PLANTAS TREPADORAS", 30},
	"88": {"PLANTAS CLIMA MEDITERRANEO", 30},
	"89": {"ABETOS NAVIDAD", 30},

	// Outdoor decoration
	"91": {"MOBILIARIO JARDIN", 90},
	"92": {"EQUIP. JARDIN", 90},
	"93": {"AIRE LIBRE", 90},
	"94": {"MACETERIA/SOPORTES", 90},
	"95": {"DECORACION", 90},
	"96": {"COBERTIZOS", 90},
	"97": {"CERRAMIENTOS/SOMBREO", 90},
}

// FamilyKeyOf derives the family key from an article code: 4 digits for the
// pet tree (codes starting with 2), 2 digits otherwise.
func FamilyKeyOf(code string) string {
	code = strings.TrimSpace(code)
	if strings.HasPrefix(code, "2") && len(code) >= 4 {
		return code[:4]
	}
	if len(code) >= 2 {
		return code[:2]
	}
	return code
}

// FamilyOf resolves the rotation catalog entry for an article code, falling
// back to ("OTROS", 90 days) for unknown families.
func FamilyOf(code string) (string, Family) {
	key := FamilyKeyOf(code)
	if f, ok := rotationByFamily[key]; ok {
		return key, f
	}
	return key, familyDefault
}
