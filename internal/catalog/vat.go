package catalog

import "strings"

const defaultVATPct = 21

var vatByFamily = map[string]int{
	// Plants (10%)
	"11": 10, "12": 10, "13": 10, "14": 10, "15": 10, "16": 10, "17": 10, "18": 10,

	// Soil and treatments (21%)
	"31": 21, "32": 21, "33": 21, "34": 21, "35": 21, "36": 21, "37": 21, "38": 21, "39": 21,

	// Garden tools (21%)
	"41": 21, "42": 21, "43": 21, "44": 21, "45": 21, "46": 21, "47": 21, "48": 21, "49": 21,

	// Seeds (10%)
	"51": 10, "52": 10, "53": 10, "54": 10, "55": 10,

	// Indoor decoration (21%)
	"61": 21, "62": 21, "63": 21, "64": 21, "65": 21, "66": 21, "67": 21,

	// Seasonal plants (10%)
	"71": 10, "72": 10, "73": 10, "74": 10, "75": 10, "76": 10, "77": 10, "78": 10, "79": 10,

	// Nursery (10%)
	"81": 10, "82": 10, "83": 10, "84": 10, "85": 10, "86": 10, "87": 10, "88": 10, "89": 10,

	// Outdoor decoration (21%)
	"91": 21, "92": 21, "93": 21, "94": 21, "95": 21, "96": 21, "97": 21,
}

// Pet subfamilies carry their own rates: food at 10%, everything else 21%.
var vatBySubfamily = map[string]int{
	"2101": 10, "2102": 21, "2103": 21, "2104": 21,
	"2201": 10, "2202": 21, "2203": 21, "2204": 21,
	"2301": 10, "2302": 21, "2303": 21, "2304": 21, "2305": 21, "2306": 21,
	"2401": 10, "2402": 21, "2403": 21, "2404": 21, "2405": 21,
	"2501": 10, "2502": 21, "2503": 21, "2504": 21,
	"2601": 10, "2602": 21, "2603": 21, "2604": 21, "2605": 21, "2606": 21,
	"2701": 10, "2702": 21, "2703": 21, "2704": 21, "2705": 10, "2706": 21,
	"2707": 21, "2708": 21, "2709": 21,
	"2801": 10, "2802": 21, "2803": 21, "2804": 21, "2805": 10, "2806": 21,
	"2906": 21,
}

// VATOf returns the VAT percentage for an article code (10 or 21), defaulting
// to 21 when the family is unknown.
func VATOf(code string) int {
	code = strings.TrimSpace(code)
	if code == "" {
		return defaultVATPct
	}
	if strings.HasPrefix(code, "2") {
		if len(code) >= 4 {
			if pct, ok := vatBySubfamily[code[:4]]; ok {
				return pct
			}
		}
		return defaultVATPct
	}
	if len(code) >= 2 {
		if pct, ok := vatByFamily[code[:2]]; ok {
			return pct
		}
	}
	return defaultVATPct
}

// DeriveCost backs a unit cost out of a gross sale price when the export
// lacks an explicit cost: net the VAT out, then divide by the margin divisor
// (2.3 for 10% VAT goods, 2 otherwise). A fixed heuristic, not per-family.
func DeriveCost(price float64, vatPct int) float64 {
	if price <= 0 {
		return 0
	}
	net := price / (1 + float64(vatPct)/100)
	divisor := 2.0
	if vatPct == 10 {
		divisor = 2.3
	}
	return net / divisor
}
