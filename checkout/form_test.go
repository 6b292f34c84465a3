package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosmond/terminal-coffee-range/client"
)

func savedAddresses() []client.Address {
	return []client.Address{
		{ID: "shp_1", Name: "Home", Street1: "1 Main St", City: "Town", Country: "US", Zip: "11111"},
		{ID: "shp_2", Name: "Work", Street1: "2 Side St", City: "Town", Country: "US", Zip: "22222"},
	}
}

func savedCards() []client.Card {
	return []client.Card{
		{ID: "crd_1", Brand: "visa", Last4: "4242"},
		{ID: "crd_2", Brand: "amex", Last4: "0005"},
	}
}

func TestNewFormInitialStep(t *testing.T) {
	assert.Equal(t, StepSelection, NewForm(savedAddresses(), savedCards()).Step())
	assert.Equal(t, StepAddress, NewForm(nil, savedCards()).Step())
	assert.Equal(t, StepCard, NewForm(savedAddresses(), nil).Step())
	assert.Equal(t, StepAddress, NewForm(nil, nil).Step(), "missing address takes precedence")
}

func TestSelectionCompleteCarriesChosenIDs(t *testing.T) {
	f := NewForm(savedAddresses(), savedCards())

	f.HandleKey(KeyDown, 0) // second address
	f.HandleKey(KeyTab, 0)  // focus cards
	f.HandleKey(KeyDown, 0) // second card
	ev := f.HandleKey(KeyEnter, 0)

	require.Equal(t, ActionComplete, ev.Action)
	assert.Equal(t, "shp_2", ev.AddressID)
	assert.Equal(t, "crd_2", ev.CardID)
}

func TestSelectionClampsAtListEdges(t *testing.T) {
	f := NewForm(savedAddresses(), savedCards())

	f.HandleKey(KeyUp, 0)
	f.HandleKey(KeyUp, 0)
	ev := f.HandleKey(KeyEnter, 0)

	assert.Equal(t, "shp_1", ev.AddressID, "selection must clamp at the top")
}

func TestSelectionEscCancels(t *testing.T) {
	f := NewForm(savedAddresses(), savedCards())
	assert.Equal(t, ActionCancel, f.HandleKey(KeyEsc, 0).Action)
}

func typeString(f *Form, s string) {
	for _, r := range s {
		f.HandleKey(KeyRune, r)
	}
}

func fillValidAddress(f *Form) {
	typeString(f, "Jane Doe")
	f.HandleKey(KeyTab, 0)
	typeString(f, "1 Main St")
	f.HandleKey(KeyTab, 0) // street2 stays empty
	f.HandleKey(KeyTab, 0)
	typeString(f, "Springfield")
	f.HandleKey(KeyTab, 0) // province stays empty
	f.HandleKey(KeyTab, 0) // country already defaults to US
	f.HandleKey(KeyTab, 0)
	typeString(f, "12345")
}

func TestAddressFormValidSubmit(t *testing.T) {
	f := NewForm(nil, savedCards())
	fillValidAddress(f)

	ev := f.HandleKey(KeyEnter, 0)

	require.Equal(t, ActionSubmitAddress, ev.Action)
	assert.Equal(t, "Jane Doe", ev.Address.Name)
	assert.Equal(t, "Springfield", ev.Address.City)
	assert.Equal(t, "US", ev.Address.Country)
	assert.Empty(t, f.ValidationMessage())
}

func TestAddressFormRejectsIncomplete(t *testing.T) {
	f := NewForm(nil, savedCards())
	typeString(f, "Jane Doe") // name only

	ev := f.HandleKey(KeyEnter, 0)

	assert.Equal(t, ActionNone, ev.Action)
	assert.NotEmpty(t, f.ValidationMessage())
	assert.Equal(t, StepAddress, f.Step())
}

func TestAddressFormRejectsBadCountry(t *testing.T) {
	f := NewForm(nil, savedCards())
	fillValidAddress(f)
	// Move to the country field and replace the default.
	for f.fieldIdx != 5 {
		f.HandleKey(KeyTab, 0)
	}
	f.HandleKey(KeyBackspace, 0)
	f.HandleKey(KeyBackspace, 0)
	typeString(f, "USA")

	ev := f.HandleKey(KeyEnter, 0)

	assert.Equal(t, ActionNone, ev.Action)
	assert.Contains(t, f.ValidationMessage(), "2-letter")
}

func TestAddressCreatedWithCardsCompletes(t *testing.T) {
	f := NewForm(nil, savedCards())
	fillValidAddress(f)
	require.Equal(t, ActionSubmitAddress, f.HandleKey(KeyEnter, 0).Action)

	ev := f.AddressCreated("shp_new")

	require.Equal(t, ActionComplete, ev.Action)
	assert.Equal(t, "shp_new", ev.AddressID)
	assert.Equal(t, "crd_1", ev.CardID)
}

func TestAddressCreatedWithoutCardsAdvancesToCardStep(t *testing.T) {
	f := NewForm(nil, nil)
	fillValidAddress(f)
	require.Equal(t, ActionSubmitAddress, f.HandleKey(KeyEnter, 0).Action)

	ev := f.AddressCreated("shp_new")

	assert.Equal(t, ActionNone, ev.Action)
	assert.Equal(t, StepCard, f.Step())
}

func TestCardStepFlow(t *testing.T) {
	f := NewForm(savedAddresses(), nil)
	require.Equal(t, StepCard, f.Step())

	assert.Equal(t, ActionCollectCard, f.HandleKey(KeyEnter, 0).Action)
	assert.Equal(t, ActionRefreshCards, f.HandleKey(KeyRune, 'd').Action)

	f.CardsRefreshed(savedCards())
	assert.Equal(t, StepSelection, f.Step(), "collected cards return to selection")
}

func TestCardsRefreshedClampsSelection(t *testing.T) {
	f := NewForm(savedAddresses(), savedCards())
	f.HandleKey(KeyTab, 0)
	f.HandleKey(KeyDown, 0) // select second card

	f.CardsRefreshed(savedCards()[:1])

	_, idx := f.Cards()
	assert.Equal(t, 0, idx)
}

func TestBackFromAddressStep(t *testing.T) {
	f := NewForm(savedAddresses(), savedCards())
	f.HandleKey(KeyRune, 'a')
	require.Equal(t, StepAddress, f.Step())

	ev := f.HandleKey(KeyEsc, 0)

	assert.Equal(t, ActionNone, ev.Action)
	assert.Equal(t, StepSelection, f.Step())
}
