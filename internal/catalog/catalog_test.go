package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFamilyKeyOf(t *testing.T) {
	assert.Equal(t, "11", FamilyKeyOf("1101234567"))
	assert.Equal(t, "2301", FamilyKeyOf("2301123456")) // pet codes use 4 digits
	assert.Equal(t, "99", FamilyKeyOf("9999912345"))
}

func TestFamilyOfUnknownFallsBack(t *testing.T) {
	key, fam := FamilyOf("9999912345")
	assert.Equal(t, "99", key)
	assert.Equal(t, "OTROS", fam.Name)
	assert.Equal(t, 90, fam.RotationDays)
}

func TestFamilyOfKnown(t *testing.T) {
	_, fam := FamilyOf("1412345678")
	assert.Equal(t, "FLOR CORTADA", fam.Name)
	assert.Equal(t, 7, fam.RotationDays)

	_, fam = FamilyOf("2104567890")
	assert.Equal(t, "ANIMAL VIVO PAJARO", fam.Name)
	assert.Equal(t, 30, fam.RotationDays)
}

func TestSectionOfShortCodesExcluded(t *testing.T) {
	// Anything under ten digits is unclassifiable, even with a valid prefix.
	assert.Equal(t, "", SectionOf("110123456"))
	assert.Equal(t, "", SectionOf("21"))
	assert.Equal(t, "", SectionOf(""))
}

func TestSectionOfPrefixRules(t *testing.T) {
	cases := map[string]string{
		"1101234567": "interior",
		"2301123456": "mascotas_manufacturado",
		"2104567890": "mascotas_vivo", // live animal subfamily
		"3112345678": "tierra_aridos",
		"3212345678": "tierra_aridos",
		"3312345678": "fitos",
		"3912345678": "fitos",
		"4112345678": "utiles_jardin",
		"5112345678": "semillas",
		"6112345678": "deco_interior",
		"7112345678": "maf",
		"8112345678": "vivero",
		"9112345678": "deco_exterior",
	}
	for code, want := range cases {
		assert.Equal(t, want, SectionOf(code), "code %s", code)
	}
}

func TestSectionOfStripsFloatSuffix(t *testing.T) {
	// Codes arrive as "1101234567.0" when the export was touched by a
	// spreadsheet.
	assert.Equal(t, "interior", SectionOf("1101234567.0"))
}

func TestVATOf(t *testing.T) {
	assert.Equal(t, 10, VATOf("1101234567")) // plants
	assert.Equal(t, 21, VATOf("4112345678")) // tools
	assert.Equal(t, 10, VATOf("2301123456")) // pet food
	assert.Equal(t, 21, VATOf("2302123456")) // pet accessories
	assert.Equal(t, 21, VATOf(""))           // unknown defaults to 21
}

func TestDeriveCost(t *testing.T) {
	// 10% VAT uses divisor 2.3; anything else divisor 2.
	assert.InDelta(t, 10.0/1.10/2.3, DeriveCost(10, 10), 0.0001)
	assert.InDelta(t, 10.0/1.21/2.0, DeriveCost(10, 21), 0.0001)
	assert.Zero(t, DeriveCost(0, 21))
}

func TestSectionNamesMatchesCatalog(t *testing.T) {
	names := SectionNames()
	assert.Len(t, names, len(Sections))
	for _, name := range names {
		assert.Contains(t, Sections, name)
	}
}
