package api

import (
	"io"
	"mime"
	"net/http"
	"strconv"
	"sync"
	"time"

	"pos-terminal/internal/domain/catalog"
	reqdto "pos-terminal/internal/handler/dto/request"
	resdto "pos-terminal/internal/handler/dto/response"
	"pos-terminal/internal/handler/httperr"
	"pos-terminal/internal/handler/middleware"
	"pos-terminal/internal/pkg/errs"
	"pos-terminal/internal/usecase/commands"
	"pos-terminal/internal/usecase/readmodel"
	"pos-terminal/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

const (
	eventTerminal     = "terminal"
	eventPing         = "ping"
	heartbeatInterval = 15 * time.Second
)

type TerminalHandler struct {
	cmds commands.TerminalCommands

	closing   chan struct{}
	closeOnce sync.Once
}

func NewTerminalHandler(cmds commands.TerminalCommands) *TerminalHandler {
	return &TerminalHandler{cmds: cmds, closing: make(chan struct{})}
}

// CloseStreams ends every open event stream. Registered with the HTTP server's
// shutdown so streams do not hold the graceful shutdown open.
func (h *TerminalHandler) CloseStreams() {
	h.closeOnce.Do(func() { close(h.closing) })
}

// @Summary Terminal view
// @Description Product grid, cart, client options and payment dialog of the caller's terminal
// @Tags terminal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.TerminalResponse
// @Failure 401 {object} map[string]string
// @Router /terminal [get]
func (h *TerminalHandler) View(c *gin.Context) {
	terminalID, ok := terminalFrom(c)
	if !ok {
		return
	}
	rm, err := h.cmds.View(c.Request.Context(), terminalID)
	if err != nil {
		abortWithTerminalError(c, err)
		return
	}
	respond(c, http.StatusOK, rm, resdto.FromTerminalRM)
}

// @Summary Search or scan
// @Description Filters the catalog by name or barcode. An exact barcode match adds the product to the cart
// @Tags terminal
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search term or scanned barcode"
// @Param qty query string false "Quantity for scan-to-add (invalid values count as 1)"
// @Success 200 {object} resdto.SearchResponse
// @Failure 409 {object} httperr.Response
// @Router /terminal/products [get]
func (h *TerminalHandler) Search(c *gin.Context) {
	terminalID, ok := terminalFrom(c)
	if !ok {
		return
	}
	rm, err := h.cmds.Search(c.Request.Context(), terminalID, c.Query("q"), c.Query("qty"))
	if err != nil {
		abortWithTerminalError(c, err)
		return
	}
	respond(c, http.StatusOK, rm, resdto.FromSearchRM)
}

// @Summary Add to cart
// @Tags terminal
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddItemRequest true "Product and quantity"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /terminal/cart/items [post]
func (h *TerminalHandler) AddItem(c *gin.Context) {
	terminalID, ok := terminalFrom(c)
	if !ok {
		return
	}
	var req reqdto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	productID, quantity := req.ToDomain()
	rm, err := h.cmds.AddItem(c.Request.Context(), terminalID, productID, quantity)
	if err != nil {
		abortWithTerminalError(c, err)
		return
	}
	respond(c, http.StatusOK, rm, resdto.FromCartRM)
}

// @Summary Remove from cart
// @Description Removing a product that is not in the cart is a no-op
// @Tags terminal
// @Produce json
// @Security BearerAuth
// @Param productId path int true "Product ID"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /terminal/cart/items/{productId} [delete]
func (h *TerminalHandler) RemoveItem(c *gin.Context) {
	terminalID, ok := terminalFrom(c)
	if !ok {
		return
	}
	productID, err := strconv.ParseInt(c.Param("productId"), 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid product id", nil)
		return
	}
	rm, err := h.cmds.RemoveItem(c.Request.Context(), terminalID, catalog.ProductID(productID))
	if err != nil {
		abortWithTerminalError(c, err)
		return
	}
	respond(c, http.StatusOK, rm, resdto.FromCartRM)
}

// @Summary Open payment dialog
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.BeginCheckoutRequest false "Client (omit for walk-in)"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /terminal/checkout [post]
func (h *TerminalHandler) BeginCheckout(c *gin.Context) {
	terminalID, ok := terminalFrom(c)
	if !ok {
		return
	}
	var req reqdto.BeginCheckoutRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
			return
		}
	}
	rm, err := h.cmds.BeginCheckout(c.Request.Context(), terminalID, req.ClientID)
	if err != nil {
		abortWithTerminalError(c, err)
		return
	}
	respond(c, http.StatusOK, rm, resdto.FromCheckoutRM)
}

// @Summary Edit payment dialog
// @Description Omitted fields keep their value. walk_in=true clears the client
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpdateCheckoutRequest true "Amount paid and client"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /terminal/checkout [patch]
func (h *TerminalHandler) UpdateCheckout(c *gin.Context) {
	terminalID, ok := terminalFrom(c)
	if !ok {
		return
	}
	var req reqdto.UpdateCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	rm, err := h.cmds.UpdateCheckout(c.Request.Context(), terminalID, req.ToInput())
	if err != nil {
		abortWithTerminalError(c, err)
		return
	}
	respond(c, http.StatusOK, rm, resdto.FromCheckoutRM)
}

// @Summary Close payment dialog
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 409 {object} httperr.Response
// @Router /terminal/checkout [delete]
func (h *TerminalHandler) CancelCheckout(c *gin.Context) {
	terminalID, ok := terminalFrom(c)
	if !ok {
		return
	}
	rm, err := h.cmds.CancelCheckout(c.Request.Context(), terminalID)
	if err != nil {
		abortWithTerminalError(c, err)
		return
	}
	respond(c, http.StatusOK, rm, resdto.FromCheckoutRM)
}

// @Summary Confirm sale
// @Description Submits the sale to the backend. On failure the cart is kept and the dialog stays open
// @Tags checkout
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SettlementResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response "Rejected by the backend"
// @Failure 502 {object} httperr.Response "Backend unreachable"
// @Router /terminal/checkout/confirm [post]
func (h *TerminalHandler) ConfirmCheckout(c *gin.Context) {
	terminalID, ok := terminalFrom(c)
	if !ok {
		return
	}
	rm, err := h.cmds.ConfirmCheckout(c.Request.Context(), terminalID)
	if err != nil {
		abortWithTerminalError(c, err)
		return
	}
	respond(c, http.StatusOK, rm, resdto.FromSettlementRM)
}

// @Summary Sale receipt
// @Description Proxies the backend receipt (remito) document for a settled sale
// @Tags checkout
// @Produce application/pdf
// @Produce text/html
// @Security BearerAuth
// @Param id path int true "Sale ID"
// @Success 200 {file} binary
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /terminal/sales/{id}/receipt [get]
func (h *TerminalHandler) Receipt(c *gin.Context) {
	terminalID, ok := terminalFrom(c)
	if !ok {
		return
	}
	saleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || saleID <= 0 {
		if err == nil {
			err = errs.New("sale id must be positive")
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid sale id", nil)
		return
	}
	receipt, err := h.cmds.Receipt(c.Request.Context(), terminalID, saleID)
	if err != nil {
		abortWithTerminalError(c, err)
		return
	}
	c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": receipt.Filename}))
	c.Data(http.StatusOK, receipt.ContentType, receipt.Body)
}

// @Summary Refresh catalog
// @Description Reloads products and clients from the backend and returns the refreshed view
// @Tags terminal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.TerminalResponse
// @Failure 422 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /terminal/catalog/refresh [post]
func (h *TerminalHandler) RefreshCatalog(c *gin.Context) {
	terminalID, ok := terminalFrom(c)
	if !ok {
		return
	}
	if err := h.cmds.RefreshCatalog(c.Request.Context()); err != nil {
		abortWithTerminalError(c, err)
		return
	}
	rm, err := h.cmds.View(c.Request.Context(), terminalID)
	if err != nil {
		abortWithTerminalError(c, err)
		return
	}
	respond(c, http.StatusOK, rm, resdto.FromTerminalRM)
}

// @Summary Terminal events
// @Description Server-sent events: a "terminal" event with the full view after every change, "ping" as heartbeat
// @Tags terminal
// @Produce text/event-stream
// @Security BearerAuth
// @Success 200 {object} resdto.TerminalResponse
// @Router /terminal/events [get]
func (h *TerminalHandler) Events(c *gin.Context) {
	terminalID, ok := terminalFrom(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	// latest view wins; a slow client skips intermediate states
	updates := make(chan *readmodel.TerminalRM, 1)
	unsubscribe, err := h.cmds.Subscribe(ctx, terminalID, func(v *readmodel.TerminalRM) {
		select {
		case updates <- v:
			return
		default:
		}
		select {
		case <-updates:
		default:
		}
		select {
		case updates <- v:
		default:
		}
	})
	if err != nil {
		abortWithTerminalError(c, err)
		return
	}
	defer unsubscribe()

	initial, err := h.cmds.View(ctx, terminalID)
	if err != nil {
		abortWithTerminalError(c, err)
		return
	}

	if !sendView(c, initial) {
		return
	}

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	c.Stream(func(_ io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-h.closing:
			return false
		case v := <-updates:
			return sendView(c, v)
		case <-heartbeat.C:
			c.SSEvent(eventPing, strconv.FormatInt(time.Now().Unix(), 10))
			return true
		}
	})
}

func sendView(c *gin.Context, rm *readmodel.TerminalRM) bool {
	res, err := resdto.FromTerminalRM(rm)
	if err != nil {
		_ = c.Error(err)
		return false
	}
	c.SSEvent(eventTerminal, res)
	c.Writer.Flush()
	return true
}

func terminalFrom(c *gin.Context) (string, bool) {
	terminalID, ok := middleware.GetTerminalID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, commands.ErrInvalidTerminalID, "Unauthorized", nil)
		return "", false
	}
	return terminalID, true
}

func respond[RM any, R any](c *gin.Context, status int, rm *RM, mapper func(*RM) (*R, error)) {
	res, err := mapper(rm)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(status, res)
}

// abortWithTerminalError picks the message per status: backend rejections carry
// the backend's own text, transport failures a generic one.
func abortWithTerminalError(c *gin.Context, err error) {
	status := httperr.StatusFor(err)
	switch status {
	case http.StatusUnprocessableEntity:
		httperr.AbortWithError(c, status, err, shared.OperatorMessage(err), nil)
	case http.StatusBadGateway:
		httperr.AbortWithError(c, status, err, shared.ConnectivityMessage, nil)
	case http.StatusBadRequest:
		httperr.AbortWithError(c, status, err, errs.RootMessage(err), detailOf(err))
	case http.StatusInternalServerError:
		httperr.AbortWithError(c, status, err, "Internal server error", nil)
	default:
		httperr.AbortWithError(c, status, err, errs.RootMessage(err), nil)
	}
}

// detailOf exposes the wrap context of validation errors, e.g. why an amount was refused.
func detailOf(err error) any {
	if msg, root := err.Error(), errs.RootMessage(err); msg != root {
		return msg
	}
	return nil
}
