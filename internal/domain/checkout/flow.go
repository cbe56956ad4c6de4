package checkout

import (
	"slices"
	"strings"

	"pos-terminal/internal/domain/cart"
	"pos-terminal/internal/domain/catalog"
	"pos-terminal/internal/pkg/errs"
	"pos-terminal/internal/pkg/money"
)

type TransitionListener func(Transition)

type subscription struct {
	id int
	fn TransitionListener
}

// Flow is the payment dialog state machine:
//
//	idle -> reviewing -> submitting -> settled -> idle
//	                          \-> failed -> reviewing
//
// Like cart.Cart it is owned by a single terminal and not safe for concurrent use.
type Flow struct {
	state     State
	draft     Draft
	lastError string
	lastSale  *SaleResult
	listeners []subscription
	nextSubID int
}

func NewFlow() *Flow {
	return &Flow{state: StateIdle}
}

func (f *Flow) State() State { return f.state }
func (f *Flow) Draft() Draft { return f.draft }

func (f *Flow) Snapshot() Snapshot {
	var sale *SaleResult
	if f.lastSale != nil {
		s := *f.lastSale
		sale = &s
	}
	return Snapshot{
		State:     f.state,
		Draft:     f.draft,
		LastError: f.lastError,
		LastSale:  sale,
	}
}

// Begin opens the payment dialog with the amount pre-filled to the exact total.
func (f *Flow) Begin(c *cart.Cart, client catalog.ClientRef) error {
	switch f.state {
	case StateIdle:
	case StateSubmitting:
		return ErrCheckoutInProgress
	default:
		return errs.Wrapf(ErrCheckoutOpen, "checkout is %s", f.state)
	}
	if c.IsEmpty() {
		return ErrEmptyCart
	}

	total := c.Total()
	f.draft = Draft{
		Total:      total,
		Client:     client,
		AmountPaid: total.String(),
	}
	f.lastError = ""
	f.transition(StateReviewing)
	return nil
}

// UpdateDraft edits the dialog; nil arguments keep the current value.
func (f *Flow) UpdateDraft(amountPaid *string, client *catalog.ClientRef) error {
	if err := f.requireReviewing(); err != nil {
		return err
	}
	if amountPaid != nil {
		f.draft.AmountPaid = strings.TrimSpace(*amountPaid)
	}
	if client != nil {
		f.draft.Client = *client
	}
	f.transition(StateReviewing)
	return nil
}

func (f *Flow) Cancel() error {
	if err := f.requireReviewing(); err != nil {
		return err
	}
	f.draft = Draft{}
	f.lastError = ""
	f.transition(StateIdle)
	return nil
}

// Confirm validates the draft and locks the flow in Submitting. The returned
// request is built from the cart as it is now.
func (f *Flow) Confirm(c *cart.Cart) (Request, error) {
	if err := f.requireReviewing(); err != nil {
		return Request{}, err
	}
	if c.IsEmpty() {
		return Request{}, ErrEmptyCart
	}
	paid, err := money.ParseAmount(f.draft.AmountPaid)
	if err != nil {
		f.lastError = ErrInvalidAmount.Error()
		f.transition(StateReviewing)
		return Request{}, errs.Wrap(ErrInvalidAmount, err.Error())
	}

	lines := c.Lines()
	items := make([]RequestItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, RequestItem{ProductID: l.ProductID(), Quantity: l.Quantity().Int()})
	}

	f.lastError = ""
	f.transition(StateSubmitting)
	return Request{
		Items:      items,
		ClientID:   f.draft.Client.ID(),
		AmountPaid: paid,
	}, nil
}

func (f *Flow) Settle(result SaleResult) error {
	if f.state != StateSubmitting {
		return ErrNotSubmitting
	}
	f.lastSale = &result
	f.lastError = ""
	f.transition(StateSettled)
	f.draft = Draft{}
	f.transition(StateIdle)
	return nil
}

// Fail returns to Reviewing with the draft intact so the operator can retry.
func (f *Flow) Fail(message string) error {
	if f.state != StateSubmitting {
		return ErrNotSubmitting
	}
	f.lastError = message
	f.transition(StateFailed)
	f.transition(StateReviewing)
	return nil
}

func (f *Flow) Subscribe(fn TransitionListener) (unsubscribe func()) {
	f.nextSubID++
	id := f.nextSubID
	f.listeners = append(f.listeners, subscription{id: id, fn: fn})
	return func() {
		f.listeners = slices.DeleteFunc(f.listeners, func(s subscription) bool { return s.id == id })
	}
}

func (f *Flow) requireReviewing() error {
	switch f.state {
	case StateReviewing:
		return nil
	case StateSubmitting:
		return ErrCheckoutInProgress
	default:
		return ErrNotReviewing
	}
}

func (f *Flow) transition(to State) {
	t := Transition{From: f.state, To: to}
	f.state = to
	for _, s := range slices.Clone(f.listeners) {
		s.fn(t)
	}
}
