package eurlex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCELEX(t *testing.T) {
	tests := []struct {
		raw  string
		want CELEXNumber
	}{
		{"32016R0679", CELEXNumber{Sector: SectorLegislation, Year: "2016", TypeCode: TypeRegulation, Number: "0679"}},
		{"32024R1689", CELEXNumber{Sector: SectorLegislation, Year: "2024", TypeCode: TypeRegulation, Number: "1689"}},
		{"32017R0745", CELEXNumber{Sector: SectorLegislation, Year: "2017", TypeCode: TypeRegulation, Number: "0745"}},
		{" 31995L0046 ", CELEXNumber{Sector: SectorLegislation, Year: "1995", TypeCode: TypeDirective, Number: "0046"}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseCELEX(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCELEXInvalid(t *testing.T) {
	for _, raw := range []string{"", "32016", "32016r0679", "72016R0679", "32016R679", "not-a-celex"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseCELEX(raw)
			assert.Error(t, err)
		})
	}
}

func TestCELEXRoundTrip(t *testing.T) {
	c, err := ParseCELEX("32024R1689")
	require.NoError(t, err)
	assert.Equal(t, "32024R1689", c.String())
}

func TestDocumentURL(t *testing.T) {
	c, err := ParseCELEX("32024R1689")
	require.NoError(t, err)

	assert.Equal(t,
		"https://eur-lex.europa.eu/legal-content/DE/TXT/HTML/?uri=CELEX:32024R1689",
		c.DocumentURL("de"))
	assert.Equal(t,
		"https://eur-lex.europa.eu/legal-content/EN/TXT/HTML/?uri=CELEX:32024R1689",
		c.DocumentURL(""))
}
