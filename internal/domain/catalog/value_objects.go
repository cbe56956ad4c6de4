package catalog

const WalkInName = "Walk-in customer"

// ClientRef is the client attached to a sale. A nil id means a walk-in sale.
type ClientRef struct {
	id   *ClientID
	name string
}

func WalkIn() ClientRef {
	return ClientRef{name: WalkInName}
}

func (r ClientRef) ID() *ClientID {
	if r.id == nil {
		return nil
	}
	id := *r.id
	return &id
}

func (r ClientRef) Name() string {
	if r.id == nil && r.name == "" {
		return WalkInName
	}
	return r.name
}

func (r ClientRef) IsWalkIn() bool { return r.id == nil }
