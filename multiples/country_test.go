package multiples_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hmcts/et-multiples-api/multiples"
)

func TestParseCountry(t *testing.T) {
	c, err := multiples.ParseCountry("englandwales")
	assert.NoError(t, err)
	assert.Equal(t, multiples.CountryEnglandWales, c)

	c, err = multiples.ParseCountry("scotland")
	assert.NoError(t, err)
	assert.Equal(t, multiples.CountryScotland, c)

	_, err = multiples.ParseCountry("france")
	assert.Error(t, err)

	// country values are normalized to lower case at the request edge
	_, err = multiples.ParseCountry("Scotland")
	assert.Error(t, err)
}

func TestCountry_Other(t *testing.T) {
	assert.Equal(t, multiples.CountryScotland, multiples.CountryEnglandWales.Other())
	assert.Equal(t, multiples.CountryEnglandWales, multiples.CountryScotland.Other())
}

func TestCountry_ValidOffice(t *testing.T) {
	assert.True(t, multiples.CountryEnglandWales.ValidOffice("Leeds"))
	assert.True(t, multiples.CountryScotland.ValidOffice("Glasgow"))
	assert.False(t, multiples.CountryEnglandWales.ValidOffice("Glasgow"))
	assert.False(t, multiples.CountryScotland.ValidOffice("Leeds"))
}

func TestCountry_ReferencePrefix(t *testing.T) {
	assert.Equal(t, "24", multiples.CountryEnglandWales.ReferencePrefix())
	assert.Equal(t, "84", multiples.CountryScotland.ReferencePrefix())
}
