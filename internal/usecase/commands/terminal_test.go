//go:build unit

package commands_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"pos-terminal/internal/domain/catalog"
	"pos-terminal/internal/domain/checkout"
	"pos-terminal/internal/pkg/clock"
	"pos-terminal/internal/pkg/config"
	"pos-terminal/internal/pkg/errs"
	"pos-terminal/internal/usecase/commands"
	"pos-terminal/internal/usecase/queries"
	"pos-terminal/internal/usecase/readmodel"
	"pos-terminal/internal/usecase/shared"
	"pos-terminal/tests/common/builder"
	sharedmock "pos-terminal/tests/mock/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const terminalID = "till-1"

type TerminalCommandsTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	gateway  *sharedmock.MockSyncGateway
	recorder *sharedmock.MockCheckoutRecorder
	clock    *clock.MockClock
	cache    *queries.CatalogCache
	registry *commands.TerminalRegistry
	uc       commands.TerminalCommands
	ctx      context.Context
}

func (s *TerminalCommandsTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.gateway = sharedmock.NewMockSyncGateway(s.ctrl)
	s.recorder = sharedmock.NewMockCheckoutRecorder(s.ctrl)
	s.recorder.EXPECT().CatalogRefreshed(gomock.Any(), gomock.Any()).AnyTimes()
	s.clock = clock.NewMockClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.cache = queries.NewCatalogCache(s.gateway, s.recorder, logger)
	s.gateway.EXPECT().FetchProducts(gomock.Any()).Return(builder.DefaultCatalog(), nil).Times(1)
	s.gateway.EXPECT().FetchClients(gomock.Any()).Return(builder.DefaultClients(), nil).Times(1)
	s.Require().NoError(s.cache.Refresh(s.ctx))

	s.registry = commands.NewTerminalRegistry(s.cache, s.gateway, s.recorder, s.clock, config.NewTestConfig(), logger)
	s.uc = commands.NewTerminalCommands(s.registry, s.cache, logger)
}

func (s *TerminalCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestTerminalCommandsSuite(t *testing.T) {
	suite.Run(t, new(TerminalCommandsTestSuite))
}

// fillCart puts Cola x2 and Chips x1 in the cart, $8.00 in total.
func (s *TerminalCommandsTestSuite) fillCart() {
	_, err := s.uc.AddItem(s.ctx, terminalID, 1, "2")
	s.Require().NoError(err)
	rm, err := s.uc.AddItem(s.ctx, terminalID, 2, "1")
	s.Require().NoError(err)
	s.Require().Equal("$8.00", rm.Total)
}

func (s *TerminalCommandsTestSuite) reviewWithAmount(amount string) {
	s.fillCart()
	rm, err := s.uc.BeginCheckout(s.ctx, terminalID, nil)
	s.Require().NoError(err)
	s.Require().Equal("8", rm.AmountPaid)

	rm, err = s.uc.UpdateCheckout(s.ctx, terminalID, commands.UpdateCheckoutInput{AmountPaid: &amount})
	s.Require().NoError(err)
	s.Require().Equal("reviewing", rm.State)
}

func (s *TerminalCommandsTestSuite) TestConfirmCheckout_正常系() {
	s.reviewWithAmount("10")

	var submitted checkout.Request
	s.gateway.EXPECT().SubmitSale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req checkout.Request) (checkout.SaleResult, error) {
			submitted = req
			return checkout.SaleResult{ID: 501}, nil
		}).Times(1)
	s.gateway.EXPECT().FetchProducts(gomock.Any()).Return(builder.DefaultCatalog(), nil).Times(1)
	s.recorder.EXPECT().CheckoutSettled().Times(1)

	settlement, err := s.uc.ConfirmCheckout(s.ctx, terminalID)
	s.Require().NoError(err)

	s.Equal([]checkout.RequestItem{{ProductID: 1, Quantity: 2}, {ProductID: 2, Quantity: 1}}, submitted.Items)
	s.Nil(submitted.ClientID)
	s.True(decimal.RequireFromString("10").Equal(submitted.AmountPaid))

	s.Equal(int64(501), settlement.SaleID)
	s.Equal("$8.00", settlement.Total)
	s.Equal("$10.00", settlement.AmountPaid)
	s.Equal("$2.00", settlement.Change)
	s.Equal("/api/terminal/sales/501/receipt", settlement.ReceiptURL)
	s.True(settlement.Cart.Empty)
	s.Equal("idle", settlement.Checkout.State)
	s.Require().NotNil(settlement.Checkout.LastSaleID)
	s.Equal(int64(501), *settlement.Checkout.LastSaleID)

	view, err := s.uc.View(s.ctx, terminalID)
	s.Require().NoError(err)
	s.True(view.Cart.Empty)
	s.False(view.Checkout.Open)
}

func (s *TerminalCommandsTestSuite) TestConfirmCheckout_顧客指定() {
	s.fillCart()
	clientID := int64(10)
	rm, err := s.uc.BeginCheckout(s.ctx, terminalID, &clientID)
	s.Require().NoError(err)
	s.Equal("Kiosco Norte", rm.ClientName)

	var submitted checkout.Request
	s.gateway.EXPECT().SubmitSale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req checkout.Request) (checkout.SaleResult, error) {
			submitted = req
			return checkout.SaleResult{ID: 7}, nil
		})
	s.gateway.EXPECT().FetchProducts(gomock.Any()).Return(builder.DefaultCatalog(), nil)
	s.recorder.EXPECT().CheckoutSettled()

	_, err = s.uc.ConfirmCheckout(s.ctx, terminalID)
	s.Require().NoError(err)
	s.Require().NotNil(submitted.ClientID)
	s.Equal(catalog.ClientID(10), *submitted.ClientID)
}

func colaStock(n int) []catalog.Product {
	return []catalog.Product{
		builder.NewProductBuilder().AsCola().WithStock(n).BuildDomain(),
		builder.NewProductBuilder().AsChips().WithStock(n).BuildDomain(),
	}
}

// a catalog fetch started before the sale must not stand in for the refresh after it
func (s *TerminalCommandsTestSuite) TestConfirmCheckout_販売前の取得を再利用しない() {
	s.reviewWithAmount("10")

	started := make(chan struct{})
	release := make(chan struct{})
	gomock.InOrder(
		s.gateway.EXPECT().FetchProducts(gomock.Any()).
			DoAndReturn(func(context.Context) ([]catalog.Product, error) {
				close(started)
				<-release
				return colaStock(10), nil
			}).Times(1),
		s.gateway.EXPECT().FetchProducts(gomock.Any()).Return(colaStock(8), nil).Times(1),
	)
	s.gateway.EXPECT().SubmitSale(gomock.Any(), gomock.Any()).Return(checkout.SaleResult{ID: 501}, nil).Times(1)
	s.recorder.EXPECT().CheckoutSettled().Times(1)

	staleDone := make(chan error, 1)
	go func() { staleDone <- s.cache.RefreshProducts(context.Background()) }()
	<-started

	_, err := s.uc.ConfirmCheckout(s.ctx, terminalID)
	s.Require().NoError(err)

	view, err := s.uc.View(s.ctx, terminalID)
	s.Require().NoError(err)
	s.Equal(8, view.Products[0].StockQuantity)

	close(release)
	s.Require().NoError(<-staleDone)

	view, err = s.uc.View(s.ctx, terminalID)
	s.Require().NoError(err)
	s.Equal(8, view.Products[0].StockQuantity, "older list must not overwrite the post-sale one")
}

func (s *TerminalCommandsTestSuite) TestConfirmCheckout_負の金額は送信しない() {
	s.reviewWithAmount("-5")

	_, err := s.uc.ConfirmCheckout(s.ctx, terminalID)
	s.Require().Error(err)
	s.ErrorIs(err, checkout.ErrInvalidAmount)
	s.True(errs.Is(err, errs.ErrDomainValidation))

	view, err := s.uc.View(s.ctx, terminalID)
	s.Require().NoError(err)
	s.Equal("reviewing", view.Checkout.State)
	s.NotEmpty(view.Checkout.Error)
	s.Equal("$8.00", view.Cart.Total)
}

func (s *TerminalCommandsTestSuite) TestConfirmCheckout_失敗時はカートを保持() {
	cases := []struct {
		name       string
		submitErr  error
		reason     string
		wantMsg    string
		wantMarker error
	}{
		{
			name:       "backend rejection",
			submitErr:  shared.NewSyncError("submit sale", 400, "Insufficient stock for Cola"),
			reason:     "rejected",
			wantMsg:    "Insufficient stock for Cola",
			wantMarker: errs.ErrSyncRejected,
		},
		{
			name:       "connection failure",
			submitErr:  shared.NewTransportError("submit sale", errors.New("connection refused")),
			reason:     "transport",
			wantMsg:    shared.ConnectivityMessage,
			wantMarker: errs.ErrTransport,
		},
	}

	for i, c := range cases {
		id := terminalID + "-" + string(rune('a'+i))
		_, err := s.uc.AddItem(s.ctx, id, 1, "2")
		s.Require().NoError(err)
		_, err = s.uc.AddItem(s.ctx, id, 2, "1")
		s.Require().NoError(err)
		_, err = s.uc.BeginCheckout(s.ctx, id, nil)
		s.Require().NoError(err)

		before, err := s.uc.View(s.ctx, id)
		s.Require().NoError(err)

		s.gateway.EXPECT().SubmitSale(gomock.Any(), gomock.Any()).Return(checkout.SaleResult{}, c.submitErr).Times(1)
		s.recorder.EXPECT().CheckoutFailed(c.reason).Times(1)

		_, err = s.uc.ConfirmCheckout(s.ctx, id)
		s.Require().Error(err, c.name)
		s.True(errs.Is(err, c.wantMarker), c.name)

		after, err := s.uc.View(s.ctx, id)
		s.Require().NoError(err)
		if diff := cmp.Diff(before.Cart, after.Cart); diff != "" {
			s.Failf("cart changed after failed sale", "%s (-before +after):\n%s", c.name, diff)
		}
		s.Equal("reviewing", after.Checkout.State, c.name)
		s.Equal(c.wantMsg, after.Checkout.Error, c.name)
		s.Equal("8", after.Checkout.AmountPaid, c.name)
		s.True(after.Checkout.ConfirmEnabled, c.name)
	}
}

func (s *TerminalCommandsTestSuite) TestConfirmCheckout_送信中の二重確定を拒否() {
	s.reviewWithAmount("10")

	started := make(chan struct{})
	release := make(chan struct{})
	s.gateway.EXPECT().SubmitSale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, checkout.Request) (checkout.SaleResult, error) {
			close(started)
			<-release
			return checkout.SaleResult{ID: 9}, nil
		}).Times(1)
	s.gateway.EXPECT().FetchProducts(gomock.Any()).Return(builder.DefaultCatalog(), nil).Times(1)
	s.recorder.EXPECT().CheckoutSettled().Times(1)

	done := make(chan error, 1)
	go func() {
		_, err := s.uc.ConfirmCheckout(s.ctx, terminalID)
		done <- err
	}()
	<-started

	view, err := s.uc.View(s.ctx, terminalID)
	s.Require().NoError(err)
	s.Equal("submitting", view.Checkout.State)
	s.False(view.Checkout.ConfirmEnabled)
	s.Equal(readmodel.ProcessingLabel, view.Checkout.ConfirmLabel)

	_, err = s.uc.ConfirmCheckout(s.ctx, terminalID)
	s.ErrorIs(err, checkout.ErrCheckoutInProgress)
	s.True(errs.Is(err, errs.ErrCheckoutConflict))

	_, err = s.uc.AddItem(s.ctx, terminalID, 3, "1")
	s.ErrorIs(err, checkout.ErrCheckoutInProgress)

	_, err = s.uc.CancelCheckout(s.ctx, terminalID)
	s.ErrorIs(err, checkout.ErrCheckoutInProgress)

	search, err := s.uc.Search(s.ctx, terminalID, "yerba", "")
	s.Require().NoError(err)
	s.Len(search.Products, 1)

	close(release)
	s.NoError(<-done)
}

func (s *TerminalCommandsTestSuite) TestSearch_バーコードでカート追加() {
	rm, err := s.uc.Search(s.ctx, terminalID, "7790001000011", "3")
	s.Require().NoError(err)

	s.True(rm.ClearTerm)
	s.Empty(rm.Term)
	s.Require().NotNil(rm.Added)
	s.Equal(int64(1), rm.Added.ProductID)
	s.Equal(3, rm.Added.Quantity)
	s.Equal("$7.50", rm.Added.LineTotal)
	s.Equal("$7.50", rm.Cart.Total)
	s.Len(rm.Products, 3)
}

func (s *TerminalCommandsTestSuite) TestSearch_部分一致は追加しない() {
	rm, err := s.uc.Search(s.ctx, terminalID, "7790001", "3")
	s.Require().NoError(err)

	s.False(rm.ClearTerm)
	s.Nil(rm.Added)
	s.Equal("7790001", rm.Term)
	s.Len(rm.Products, 3)
	s.True(rm.Cart.Empty)
}

func (s *TerminalCommandsTestSuite) TestAddItem_数量の補正と合算() {
	_, err := s.uc.AddItem(s.ctx, terminalID, 1, "abc")
	s.Require().NoError(err)
	rm, err := s.uc.AddItem(s.ctx, terminalID, 1, "0")
	s.Require().NoError(err)

	s.Require().Len(rm.Lines, 1)
	s.Equal(2, rm.Lines[0].Quantity)
	s.Equal(2, rm.ItemCount)
	s.Equal("$5.00", rm.Total)
}

func (s *TerminalCommandsTestSuite) TestAddItem_存在しない商品() {
	_, err := s.uc.AddItem(s.ctx, terminalID, 99, "1")
	s.Require().Error(err)
	s.True(errs.Is(err, errs.ErrNotFound))
}

func (s *TerminalCommandsTestSuite) TestRemoveItem() {
	s.fillCart()

	rm, err := s.uc.RemoveItem(s.ctx, terminalID, 1)
	s.Require().NoError(err)
	s.Len(rm.Lines, 1)
	s.Equal("$3.00", rm.Total)

	rm, err = s.uc.RemoveItem(s.ctx, terminalID, 1)
	s.Require().NoError(err, "removing an absent line is a no-op")
	s.Len(rm.Lines, 1)
}

func (s *TerminalCommandsTestSuite) TestCartEdits_レビュー中は拒否() {
	s.fillCart()
	_, err := s.uc.BeginCheckout(s.ctx, terminalID, nil)
	s.Require().NoError(err)

	_, err = s.uc.AddItem(s.ctx, terminalID, 3, "1")
	s.ErrorIs(err, checkout.ErrCheckoutOpen)
	_, err = s.uc.RemoveItem(s.ctx, terminalID, 1)
	s.ErrorIs(err, checkout.ErrCheckoutOpen)
	_, err = s.uc.Search(s.ctx, terminalID, "7790001000035", "1")
	s.ErrorIs(err, checkout.ErrCheckoutOpen)

	rm, err := s.uc.CancelCheckout(s.ctx, terminalID)
	s.Require().NoError(err)
	s.Equal("idle", rm.State)

	cart, err := s.uc.AddItem(s.ctx, terminalID, 3, "1")
	s.Require().NoError(err)
	s.Equal("$12.75", cart.Total)
}

func (s *TerminalCommandsTestSuite) TestBeginCheckout_異常系() {
	_, err := s.uc.BeginCheckout(s.ctx, terminalID, nil)
	s.ErrorIs(err, checkout.ErrEmptyCart)

	s.fillCart()
	unknown := int64(404)
	_, err = s.uc.BeginCheckout(s.ctx, terminalID, &unknown)
	s.True(errs.Is(err, errs.ErrNotFound))

	_, err = s.uc.BeginCheckout(s.ctx, terminalID, nil)
	s.Require().NoError(err)
	_, err = s.uc.BeginCheckout(s.ctx, terminalID, nil)
	s.ErrorIs(err, checkout.ErrCheckoutOpen)
}

func (s *TerminalCommandsTestSuite) TestUpdateCheckout_顧客の切り替え() {
	s.fillCart()
	_, err := s.uc.BeginCheckout(s.ctx, terminalID, nil)
	s.Require().NoError(err)

	clientID := int64(11)
	rm, err := s.uc.UpdateCheckout(s.ctx, terminalID, commands.UpdateCheckoutInput{ClientID: &clientID})
	s.Require().NoError(err)
	s.Equal("Almacén Sur", rm.ClientName)
	s.Require().NotNil(rm.ClientID)
	s.Equal(int64(11), *rm.ClientID)
	s.Equal("8", rm.AmountPaid)

	rm, err = s.uc.UpdateCheckout(s.ctx, terminalID, commands.UpdateCheckoutInput{WalkIn: true})
	s.Require().NoError(err)
	s.Nil(rm.ClientID)
	s.Equal(catalog.WalkInName, rm.ClientName)
}

func (s *TerminalCommandsTestSuite) TestUpdateCheckout_レビュー外は拒否() {
	amount := "10"
	_, err := s.uc.UpdateCheckout(s.ctx, terminalID, commands.UpdateCheckoutInput{AmountPaid: &amount})
	s.ErrorIs(err, checkout.ErrNotReviewing)

	_, err = s.uc.CancelCheckout(s.ctx, terminalID)
	s.ErrorIs(err, checkout.ErrNotReviewing)
}

func (s *TerminalCommandsTestSuite) TestSubscribe() {
	var views []*readmodel.TerminalRM
	unsubscribe, err := s.uc.Subscribe(s.ctx, terminalID, func(v *readmodel.TerminalRM) {
		views = append(views, v)
	})
	s.Require().NoError(err)

	_, err = s.uc.AddItem(s.ctx, terminalID, 2, "2")
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Equal(terminalID, views[0].TerminalID)
	s.Equal("$6.00", views[0].Cart.Total)

	unsubscribe()
	_, err = s.uc.AddItem(s.ctx, terminalID, 2, "1")
	s.Require().NoError(err)
	s.Len(views, 1)
}

func (s *TerminalCommandsTestSuite) TestRefreshCatalog_失敗しても一覧を保持() {
	var pushed int
	unsubscribe, err := s.uc.Subscribe(s.ctx, terminalID, func(*readmodel.TerminalRM) { pushed++ })
	s.Require().NoError(err)
	defer unsubscribe()

	s.gateway.EXPECT().FetchClients(gomock.Any()).Return(builder.DefaultClients(), nil)
	s.gateway.EXPECT().FetchProducts(gomock.Any()).
		Return(nil, shared.NewTransportError("fetch products", errors.New("timeout")))

	err = s.uc.RefreshCatalog(s.ctx)
	s.Require().Error(err)
	s.True(errs.Is(err, errs.ErrTransport))
	s.Equal(1, pushed)

	view, err := s.uc.View(s.ctx, terminalID)
	s.Require().NoError(err)
	s.Len(view.Products, 3)
	s.Len(view.Clients, 3)
	s.Nil(view.Clients[0].ID)
}

func (s *TerminalCommandsTestSuite) TestReceipt() {
	receipt := &shared.Receipt{SaleID: 501, ContentType: "application/pdf", Filename: "remito-501.pdf", Body: []byte("%PDF")}
	s.gateway.EXPECT().FetchReceipt(gomock.Any(), int64(501)).Return(receipt, nil)

	got, err := s.uc.Receipt(s.ctx, terminalID, 501)
	s.Require().NoError(err)
	s.Equal(receipt, got)
}

func (s *TerminalCommandsTestSuite) TestTerminalsAreIsolated() {
	_, err := s.uc.AddItem(s.ctx, "till-a", 1, "1")
	s.Require().NoError(err)

	view, err := s.uc.View(s.ctx, "till-b")
	s.Require().NoError(err)
	s.True(view.Cart.Empty)
	s.Equal(2, s.registry.Len())
}

func (s *TerminalCommandsTestSuite) TestRegistry_不正な端末ID() {
	_, err := s.uc.View(s.ctx, "   ")
	s.ErrorIs(err, commands.ErrInvalidTerminalID)
	s.True(errs.Is(err, errs.ErrDomainValidation))
}

func (s *TerminalCommandsTestSuite) TestRegistry_Sweep() {
	_, err := s.uc.AddItem(s.ctx, "idle-till", 1, "1")
	s.Require().NoError(err)
	unsubscribe, err := s.uc.Subscribe(s.ctx, "watched-till", func(*readmodel.TerminalRM) {})
	s.Require().NoError(err)
	defer unsubscribe()

	s.Equal(0, s.registry.Sweep(), "nothing is idle yet")

	s.clock.Advance(2 * time.Hour)
	s.Equal(1, s.registry.Sweep())
	s.Equal(1, s.registry.Len())

	view, err := s.uc.View(s.ctx, "idle-till")
	s.Require().NoError(err)
	s.True(view.Cart.Empty, "evicted sessions restart empty")
}

func (s *TerminalCommandsTestSuite) TestRegistry_取得で利用時刻を更新() {
	_, err := s.uc.AddItem(s.ctx, "busy-till", 1, "2")
	s.Require().NoError(err)

	s.clock.Advance(2 * time.Hour)
	t, err := s.registry.Get("busy-till")
	s.Require().NoError(err)

	s.Equal(0, s.registry.Sweep(), "a session just handed to a request is not idle")
	rm, err := t.AddItem(s.ctx, 2, "1")
	s.Require().NoError(err)
	s.Equal("$8.00", rm.Total)

	view, err := s.uc.View(s.ctx, "busy-till")
	s.Require().NoError(err)
	s.Equal("$8.00", view.Cart.Total, "the request mutated the registered session")
}

func TestTerminalCommands_カタログ読み込みの再試行間隔(t *testing.T) {
	ctrl := gomock.NewController(t)
	gateway := sharedmock.NewMockSyncGateway(ctrl)
	recorder := sharedmock.NewMockCheckoutRecorder(ctrl)
	recorder.EXPECT().CatalogRefreshed(gomock.Any(), gomock.Any()).AnyTimes()
	clk := clock.NewMockClock(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctx := context.Background()

	cache := queries.NewCatalogCache(gateway, recorder, logger)
	registry := commands.NewTerminalRegistry(cache, gateway, recorder, clk, config.NewTestConfig(), logger)
	uc := commands.NewTerminalCommands(registry, cache, logger)

	down := shared.NewTransportError("fetch", errors.New("connection refused"))
	gateway.EXPECT().FetchClients(gomock.Any()).Return(nil, down).Times(1)
	gateway.EXPECT().FetchProducts(gomock.Any()).Return(nil, down).Times(1)

	view, err := uc.View(ctx, terminalID)
	require.NoError(t, err)
	assert.Empty(t, view.Products)

	// within the interval nobody waits on the backend again
	clk.Advance(10 * time.Second)
	view, err = uc.View(ctx, terminalID)
	require.NoError(t, err)
	assert.Empty(t, view.Products)

	clk.Advance(time.Minute)
	gateway.EXPECT().FetchClients(gomock.Any()).Return(builder.DefaultClients(), nil).Times(1)
	gateway.EXPECT().FetchProducts(gomock.Any()).Return(builder.DefaultCatalog(), nil).Times(1)

	view, err = uc.View(ctx, terminalID)
	require.NoError(t, err)
	assert.Len(t, view.Products, 3)

	clk.Advance(time.Minute)
	_, err = uc.View(ctx, terminalID)
	require.NoError(t, err, "loaded catalogs are not fetched lazily again")
}
