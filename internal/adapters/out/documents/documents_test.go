package documents_test

import (
	"testing"
	"time"

	"travelagency/internal/adapters/out/documents"
	"travelagency/internal/core/domain/model/kernel"
	"travelagency/internal/core/domain/model/order"
	"travelagency/internal/core/domain/model/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassengers_RoundTripKeepsGenderLabel(t *testing.T) {
	p, err := order.NewPassenger("Ada", "Lovelace", "P1", "GB", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), order.PreferNotToSay, nil)
	require.NoError(t, err)

	docs := documents.FromPassengers([]order.Passenger{p})
	require.Len(t, docs, 1)
	assert.Equal(t, "Prefer not to say", docs[0].Gender)

	back, err := documents.ToPassengers(docs)
	require.NoError(t, err)
	assert.Equal(t, []order.Passenger{p}, back)
}

func TestParty_InvalidNumber(t *testing.T) {
	_, err := documents.Party{Number: "not-a-uuid", Name: "Ada"}.ToDomain()

	require.Error(t, err)
}

func TestOptionalDocuments(t *testing.T) {
	assert.Nil(t, documents.FromPartyPtr(nil))
	assert.Nil(t, documents.FromFlightPtr(nil))
	assert.Nil(t, documents.FromAddress(nil))
	assert.Nil(t, documents.FromPassport(nil))

	var party *documents.Party
	got, err := party.ToDomainPtr()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPassport_CountryIsStoredUpperCase(t *testing.T) {
	country, err := kernel.NewCountryCode("us")
	require.NoError(t, err)

	doc := documents.FromPassport(&user.Passport{Number: "X1", Country: &country})
	assert.Equal(t, "US", doc.Country)

	back, err := doc.ToDomain()
	require.NoError(t, err)
	require.NotNil(t, back.Country)
	assert.Equal(t, "US", back.Country.String())
}
