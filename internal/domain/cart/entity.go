package cart

import (
	"slices"

	"pos-terminal/internal/domain/catalog"

	"github.com/shopspring/decimal"
)

// Snapshot is what listeners receive after every mutation.
type Snapshot struct {
	Lines []LineItem
	Total decimal.Decimal
}

type Listener func(Snapshot)

type subscription struct {
	id int
	fn Listener
}

// Cart is not safe for concurrent use; the owning terminal serializes access.
type Cart struct {
	lines     []LineItem
	listeners []subscription
	nextSubID int
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) AddItem(p catalog.Product, q Quantity) LineItem {
	q = NewQuantity(int(q))

	var added LineItem
	if i := c.indexOf(p.ID()); i >= 0 {
		c.lines[i].quantity += q
		added = c.lines[i]
	} else {
		added = newLineItem(p, q)
		c.lines = append(c.lines, added)
	}

	c.notify()
	return added
}

// RemoveItem reports whether a line was removed. Unknown ids are ignored.
func (c *Cart) RemoveItem(id catalog.ProductID) bool {
	i := c.indexOf(id)
	if i < 0 {
		return false
	}
	c.lines = slices.Delete(c.lines, i, i+1)
	c.notify()
	return true
}

func (c *Cart) Clear() {
	c.lines = nil
	c.notify()
}

func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

func (c *Cart) Lines() []LineItem {
	return slices.Clone(c.lines)
}

func (c *Cart) Line(id catalog.ProductID) (LineItem, bool) {
	if i := c.indexOf(id); i >= 0 {
		return c.lines[i], true
	}
	return LineItem{}, false
}

func (c *Cart) Len() int      { return len(c.lines) }
func (c *Cart) IsEmpty() bool { return len(c.lines) == 0 }

func (c *Cart) Snapshot() Snapshot {
	return Snapshot{Lines: c.Lines(), Total: c.Total()}
}

// Subscribe registers a render callback invoked synchronously after each mutation.
func (c *Cart) Subscribe(fn Listener) (unsubscribe func()) {
	c.nextSubID++
	id := c.nextSubID
	c.listeners = append(c.listeners, subscription{id: id, fn: fn})
	return func() {
		c.listeners = slices.DeleteFunc(c.listeners, func(s subscription) bool { return s.id == id })
	}
}

func (c *Cart) indexOf(id catalog.ProductID) int {
	return slices.IndexFunc(c.lines, func(l LineItem) bool { return l.productID == id })
}

func (c *Cart) notify() {
	if len(c.listeners) == 0 {
		return
	}
	snap := c.Snapshot()
	for _, s := range slices.Clone(c.listeners) {
		s.fn(snap)
	}
}
