package checkout

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/dosmond/terminal-coffee-range/client"
)

// Step is the active screen of the checkout form.
type Step uint8

const (
	// StepSelection picks among saved addresses and cards.
	StepSelection Step = iota
	// StepAddress enters a new shipping address.
	StepAddress
	// StepCard walks the external card collection flow.
	StepCard
)

// Action tells the session what the form wants done.
type Action uint8

const (
	ActionNone Action = iota
	// ActionComplete carries the chosen AddressID/CardID; checkout may run.
	ActionComplete
	// ActionCancel closes the form without checking out.
	ActionCancel
	// ActionSubmitAddress asks the session to POST the validated AddressInput.
	ActionSubmitAddress
	// ActionCollectCard asks the session for a card collection URL.
	ActionCollectCard
	// ActionRefreshCards asks the session to re-fetch saved cards.
	ActionRefreshCards
)

// Event is the result of one key press.
type Event struct {
	Action    Action
	AddressID string
	CardID    string
	Address   client.AddressInput
}

// Key is an abstract input symbol; the render layer maps terminal keys
// onto these.
type Key uint8

const (
	KeyRune Key = iota
	KeyUp
	KeyDown
	KeyTab
	KeyEnter
	KeyEsc
	KeyBackspace
)

// addressFields orders the editable fields of the new-address form.
var addressFields = []string{"NAME", "STREET", "STREET 2", "CITY", "PROVINCE", "COUNTRY (2-LETTER)", "ZIP", "PHONE"}

// Form is the address/card collection flow preceding checkout. It owns no
// network access: it emits actions and the session performs them,
// reporting results back via AddressCreated and CardsRefreshed.
type Form struct {
	step       Step
	addresses  []client.Address
	cards      []client.Card
	addressIdx int
	cardIdx    int
	focusCards bool

	input      client.AddressInput
	fieldIdx   int
	validation string

	validate *validator.Validate
}

// NewForm opens on the selection step when both lists are populated,
// otherwise jumps straight to whichever collection step is missing data.
func NewForm(addresses []client.Address, cards []client.Card) *Form {
	f := &Form{
		addresses: addresses,
		cards:     cards,
		validate:  validator.New(),
	}
	f.input.Country = "US"
	switch {
	case len(addresses) == 0:
		f.step = StepAddress
	case len(cards) == 0:
		f.step = StepCard
	default:
		f.step = StepSelection
	}
	return f
}

// Step returns the active screen.
func (f *Form) Step() Step { return f.step }

// Addresses returns the saved address list with the selected index.
func (f *Form) Addresses() ([]client.Address, int) { return f.addresses, f.addressIdx }

// Cards returns the saved card list with the selected index.
func (f *Form) Cards() ([]client.Card, int) { return f.cards, f.cardIdx }

// FocusCards reports whether the card picker has focus on the selection
// step.
func (f *Form) FocusCards() bool { return f.focusCards }

// AddressInput returns the in-progress address form state.
func (f *Form) AddressInput() (client.AddressInput, int) { return f.input, f.fieldIdx }

// FieldLabels returns the labels of the address form in edit order.
func (f *Form) FieldLabels() []string { return addressFields }

// ValidationMessage returns the last address validation failure, if any.
func (f *Form) ValidationMessage() string { return f.validation }

// HandleKey advances the form by one key press.
func (f *Form) HandleKey(k Key, r rune) Event {
	switch f.step {
	case StepSelection:
		return f.handleSelection(k, r)
	case StepAddress:
		return f.handleAddress(k, r)
	case StepCard:
		return f.handleCard(k, r)
	}
	return Event{}
}

func (f *Form) handleSelection(k Key, r rune) Event {
	switch k {
	case KeyEsc:
		return Event{Action: ActionCancel}
	case KeyTab:
		f.focusCards = !f.focusCards
	case KeyUp:
		f.moveSelection(-1)
	case KeyDown:
		f.moveSelection(1)
	case KeyEnter:
		if len(f.addresses) == 0 || len(f.cards) == 0 {
			return Event{}
		}
		return Event{
			Action:    ActionComplete,
			AddressID: f.addresses[f.addressIdx].ID,
			CardID:    f.cards[f.cardIdx].ID,
		}
	case KeyRune:
		switch r {
		case 'a', 'A':
			f.step = StepAddress
		case 'n', 'N':
			f.step = StepCard
		case 'r', 'R':
			return Event{Action: ActionRefreshCards}
		}
	}
	return Event{}
}

func (f *Form) moveSelection(delta int) {
	if f.focusCards {
		f.cardIdx = clamp(f.cardIdx+delta, len(f.cards))
	} else {
		f.addressIdx = clamp(f.addressIdx+delta, len(f.addresses))
	}
}

func (f *Form) handleAddress(k Key, r rune) Event {
	switch k {
	case KeyEsc:
		f.validation = ""
		if len(f.addresses) > 0 {
			f.step = StepSelection
		} else {
			return Event{Action: ActionCancel}
		}
	case KeyTab, KeyDown:
		f.fieldIdx = (f.fieldIdx + 1) % len(addressFields)
	case KeyUp:
		f.fieldIdx = (f.fieldIdx + len(addressFields) - 1) % len(addressFields)
	case KeyBackspace:
		s := f.activeField()
		if len(*s) > 0 {
			*s = (*s)[:len(*s)-1]
		}
	case KeyRune:
		if r >= ' ' {
			*f.activeField() += string(r)
		}
	case KeyEnter:
		if err := f.validate.Struct(f.input); err != nil {
			f.validation = validationMessage(err)
			return Event{}
		}
		f.validation = ""
		return Event{Action: ActionSubmitAddress, Address: f.input}
	}
	return Event{}
}

func (f *Form) handleCard(k Key, r rune) Event {
	switch k {
	case KeyEsc:
		if len(f.addresses) > 0 && len(f.cards) > 0 {
			f.step = StepSelection
			return Event{}
		}
		return Event{Action: ActionCancel}
	case KeyEnter:
		return Event{Action: ActionCollectCard}
	case KeyRune:
		if r == 'd' || r == 'D' || r == 'r' || r == 'R' {
			// The user entered card details in the browser and is done.
			return Event{Action: ActionRefreshCards}
		}
	}
	return Event{}
}

// AddressCreated installs a freshly created address, selects it, and
// advances: straight to completion when a card is already available,
// otherwise on to card collection.
func (f *Form) AddressCreated(id string) Event {
	f.addresses = append(f.addresses, client.Address{
		ID:      id,
		Name:    f.input.Name,
		Street1: f.input.Street1,
		City:    f.input.City,
		Country: f.input.Country,
		Zip:     f.input.Zip,
	})
	f.addressIdx = len(f.addresses) - 1

	if len(f.cards) > 0 {
		return Event{
			Action:    ActionComplete,
			AddressID: id,
			CardID:    f.cards[f.cardIdx].ID,
		}
	}
	f.step = StepCard
	return Event{}
}

// CardsRefreshed replaces the saved card list after collection.
func (f *Form) CardsRefreshed(cards []client.Card) {
	f.cards = cards
	if f.cardIdx >= len(cards) {
		f.cardIdx = 0
	}
	if f.step == StepCard && len(cards) > 0 {
		f.step = StepSelection
	}
}

func (f *Form) activeField() *string {
	fields := []*string{
		&f.input.Name, &f.input.Street1, &f.input.Street2, &f.input.City,
		&f.input.Province, &f.input.Country, &f.input.Zip, &f.input.Phone,
	}
	return fields[f.fieldIdx]
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "address is incomplete"
	}
	fe := verrs[0]
	if fe.Tag() == "len" {
		return "country must be a 2-letter code"
	}
	return fe.Field() + " is required"
}

func clamp(v, n int) int {
	if n == 0 {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}
