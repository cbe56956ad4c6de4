package commands

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"sync"
	"time"

	"pos-terminal/internal/domain/cart"
	"pos-terminal/internal/domain/catalog"
	"pos-terminal/internal/domain/checkout"
	"pos-terminal/internal/pkg/clock"
	"pos-terminal/internal/pkg/errs"
	"pos-terminal/internal/pkg/money"
	"pos-terminal/internal/usecase/queries"
	"pos-terminal/internal/usecase/readmodel"
	"pos-terminal/internal/usecase/shared"
)

type ViewListener func(*readmodel.TerminalRM)

type viewSubscription struct {
	id int
	fn ViewListener
}

// Terminal is one operator session: its own cart and payment dialog over the
// shared catalog. All state changes happen under mu; the sale request itself
// runs outside the lock with the flow held in Submitting.
type Terminal struct {
	id       string
	catalog  *queries.CatalogCache
	gateway  shared.SyncGateway
	recorder shared.CheckoutRecorder
	format   readmodel.Formatter
	clock    clock.Clock
	logger   *slog.Logger

	mu        sync.Mutex
	cart      *cart.Cart
	flow      *checkout.Flow
	lastSeen  time.Time
	listeners []viewSubscription
	nextSubID int
}

type TerminalDeps struct {
	Catalog  *queries.CatalogCache
	Gateway  shared.SyncGateway
	Recorder shared.CheckoutRecorder
	Format   readmodel.Formatter
	Clock    clock.Clock
	Logger   *slog.Logger
}

func NewTerminal(id string, deps TerminalDeps) *Terminal {
	t := &Terminal{
		id:       id,
		catalog:  deps.Catalog,
		gateway:  deps.Gateway,
		recorder: deps.Recorder,
		format:   deps.Format,
		clock:    deps.Clock,
		logger:   deps.Logger.With("terminal_id", id),
		cart:     cart.New(),
		flow:     checkout.NewFlow(),
		lastSeen: deps.Clock.Now(),
	}
	// every cart mutation and flow transition re-renders before returning
	t.cart.Subscribe(func(cart.Snapshot) { t.publishLocked() })
	t.flow.Subscribe(func(checkout.Transition) { t.publishLocked() })
	return t
}

func (t *Terminal) ID() string { return t.id }

func (t *Terminal) View(ctx context.Context) *readmodel.TerminalRM {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.touchLocked()
	return t.viewLocked(ctx)
}

// Search filters the catalog and doubles as the barcode scanner input: an exact
// barcode match adds the product and asks the UI to clear the field.
func (t *Terminal) Search(ctx context.Context, term, quantity string) (*readmodel.SearchRM, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.touchLocked()

	product, scanned := t.catalog.MatchBarcode(term)
	if !scanned {
		return &readmodel.SearchRM{
			Term:     term,
			Products: t.format.ProductCards(t.catalog.Search(ctx, term)),
			Cart:     t.format.Cart(t.cart.Snapshot()),
		}, nil
	}

	if err := t.requireCartEditableLocked(); err != nil {
		return nil, err
	}
	line := t.format.CartLine(t.cart.AddItem(product, cart.ParseQuantity(quantity)))
	t.logger.Debug("scan-to-add", "product_id", product.ID(), "barcode", product.Barcode())

	return &readmodel.SearchRM{
		Term:      "",
		ClearTerm: true,
		Added:     &line,
		Products:  t.format.ProductCards(t.catalog.Products(ctx)),
		Cart:      t.format.Cart(t.cart.Snapshot()),
	}, nil
}

func (t *Terminal) AddItem(_ context.Context, productID catalog.ProductID, quantity string) (*readmodel.CartRM, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.touchLocked()

	if err := t.requireCartEditableLocked(); err != nil {
		return nil, err
	}
	product, err := t.catalog.ProductByID(productID)
	if err != nil {
		return nil, errs.Wrapf(err, "product %d", productID)
	}
	t.cart.AddItem(product, cart.ParseQuantity(quantity))

	rm := t.format.Cart(t.cart.Snapshot())
	return &rm, nil
}

func (t *Terminal) RemoveItem(_ context.Context, productID catalog.ProductID) (*readmodel.CartRM, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.touchLocked()

	if err := t.requireCartEditableLocked(); err != nil {
		return nil, err
	}
	t.cart.RemoveItem(productID)

	rm := t.format.Cart(t.cart.Snapshot())
	return &rm, nil
}

// BeginCheckout opens the payment dialog. A nil client id is a walk-in sale.
func (t *Terminal) BeginCheckout(_ context.Context, clientID *int64) (*readmodel.CheckoutRM, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.touchLocked()

	ref, err := t.resolveClient(clientID)
	if err != nil {
		return nil, err
	}
	if err := t.flow.Begin(t.cart, ref); err != nil {
		return nil, err
	}

	rm := t.format.Checkout(t.flow.Snapshot())
	return &rm, nil
}

type UpdateCheckoutInput struct {
	AmountPaid *string
	ClientID   *int64
	WalkIn     bool
}

func (t *Terminal) UpdateCheckout(_ context.Context, in UpdateCheckoutInput) (*readmodel.CheckoutRM, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.touchLocked()

	var client *catalog.ClientRef
	switch {
	case in.WalkIn:
		ref := catalog.WalkIn()
		client = &ref
	case in.ClientID != nil:
		ref, err := t.resolveClient(in.ClientID)
		if err != nil {
			return nil, err
		}
		client = &ref
	}
	if err := t.flow.UpdateDraft(in.AmountPaid, client); err != nil {
		return nil, err
	}

	rm := t.format.Checkout(t.flow.Snapshot())
	return &rm, nil
}

func (t *Terminal) CancelCheckout(_ context.Context) (*readmodel.CheckoutRM, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.touchLocked()

	if err := t.flow.Cancel(); err != nil {
		return nil, err
	}
	rm := t.format.Checkout(t.flow.Snapshot())
	return &rm, nil
}

// ConfirmCheckout submits the sale. Validation failures never reach the
// backend. On any backend failure the cart and draft are left untouched and
// the dialog returns to Reviewing.
func (t *Terminal) ConfirmCheckout(ctx context.Context) (*readmodel.SettlementRM, error) {
	t.mu.Lock()
	t.touchLocked()
	draft := t.flow.Draft()
	req, err := t.flow.Confirm(t.cart)
	t.mu.Unlock()
	if err != nil {
		return nil, err
	}

	// in-flight sales are not cancellable by the operator
	result, submitErr := t.gateway.SubmitSale(context.WithoutCancel(ctx), req)

	t.mu.Lock()
	if submitErr != nil {
		message := shared.OperatorMessage(submitErr)
		if err := t.flow.Fail(message); err != nil {
			t.logger.Error("checkout state lost while submitting", "error", err)
		}
		t.mu.Unlock()

		reason := shared.FailureReason(submitErr)
		t.recorder.CheckoutFailed(reason)
		if reason == "rejected" {
			t.logger.Warn("sale rejected by backend", "detail", message)
		} else {
			t.logger.Error("sale could not be delivered", "error", submitErr)
		}
		return nil, errs.Wrap(submitErr, "confirm checkout")
	}

	t.cart.Clear()
	if err := t.flow.Settle(result); err != nil {
		t.logger.Error("checkout state lost while submitting", "error", err)
	}
	t.mu.Unlock()
	t.recorder.CheckoutSettled()
	t.logger.Info("sale settled", "sale_id", result.ID, "items", len(req.Items))

	// best-effort; a fetch started before the sale must not satisfy this one
	if err := t.catalog.ReloadProducts(context.WithoutCancel(ctx)); err != nil {
		t.logger.Warn("catalog refresh after sale failed", "error", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.publishLocked()

	settlement := &readmodel.SettlementRM{
		SaleID:     result.ID,
		AmountPaid: money.Format(t.format.Symbol, req.AmountPaid),
		Total:      money.Format(t.format.Symbol, draft.Total),
		Change:     money.Format(t.format.Symbol, req.AmountPaid.Sub(draft.Total)),
		ReceiptURL: receiptURL(result.ID),
		Cart:       t.format.Cart(t.cart.Snapshot()),
		Checkout:   t.format.Checkout(t.flow.Snapshot()),
	}
	return settlement, nil
}

func (t *Terminal) Receipt(ctx context.Context, saleID int64) (*shared.Receipt, error) {
	t.mu.Lock()
	t.touchLocked()
	t.mu.Unlock()

	receipt, err := t.gateway.FetchReceipt(ctx, saleID)
	if err != nil {
		return nil, errs.Wrapf(err, "receipt for sale %d", saleID)
	}
	return receipt, nil
}

// Subscribe registers a listener that receives a fresh view after every change.
// Listeners run with the terminal locked and must not call back into it.
func (t *Terminal) Subscribe(fn ViewListener) (unsubscribe func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextSubID++
	id := t.nextSubID
	t.listeners = append(t.listeners, viewSubscription{id: id, fn: fn})
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.listeners = slices.DeleteFunc(t.listeners, func(s viewSubscription) bool { return s.id == id })
	}
}

// Publish pushes the current view to listeners, e.g. after a catalog refresh.
func (t *Terminal) Publish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.publishLocked()
}

// Busy terminals are never evicted.
func (t *Terminal) Busy() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.flow.State().IsLocked() || len(t.listeners) > 0
}

func (t *Terminal) IdleSince() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastSeen
}

func (t *Terminal) requireCartEditableLocked() error {
	switch t.flow.State() {
	case checkout.StateIdle:
		return nil
	case checkout.StateSubmitting:
		return checkout.ErrCheckoutInProgress
	default:
		return checkout.ErrCheckoutOpen
	}
}

func (t *Terminal) resolveClient(clientID *int64) (catalog.ClientRef, error) {
	if clientID == nil {
		return catalog.WalkIn(), nil
	}
	c, err := t.catalog.ClientByID(catalog.ClientID(*clientID))
	if err != nil {
		return catalog.ClientRef{}, errs.Wrapf(err, "client %d", *clientID)
	}
	return c.Ref(), nil
}

func (t *Terminal) touch() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.touchLocked()
}

func (t *Terminal) touchLocked() {
	t.lastSeen = t.clock.Now()
}

func (t *Terminal) viewLocked(ctx context.Context) *readmodel.TerminalRM {
	return &readmodel.TerminalRM{
		TerminalID: t.id,
		Products:   t.format.ProductCards(t.catalog.Products(ctx)),
		Clients:    t.format.ClientOptions(t.catalog.Clients(ctx)),
		Cart:       t.format.Cart(t.cart.Snapshot()),
		Checkout:   t.format.Checkout(t.flow.Snapshot()),
	}
}

func (t *Terminal) publishLocked() {
	if len(t.listeners) == 0 {
		return
	}
	view := t.viewLocked(context.Background())
	for _, s := range slices.Clone(t.listeners) {
		s.fn(view)
	}
}

func receiptURL(saleID int64) string {
	return "/api/terminal/sales/" + strconv.FormatInt(saleID, 10) + "/receipt"
}
