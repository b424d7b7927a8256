package domain

// Effect describes a side effect a transition requires. Transitions never
// perform effects themselves; the service layer executes them after the new
// state has been persisted.
type Effect interface {
	isEffect()
}

// NotifyBuyerNewOffer asks for the buyer to be told a new offer awaits their
// action (email + in-app).
type NotifyBuyerNewOffer struct{}

func (NotifyBuyerNewOffer) isEffect() {}

// NotifySellerRequestSubmitted asks for the seller to be told an inspection
// request was submitted for their property, with a response link.
type NotifySellerRequestSubmitted struct{}

func (NotifySellerRequestSubmitted) isEffect() {}

// NotifyBuyerRejected asks for the buyer to be told the admin rejected the
// inspection request.
type NotifyBuyerRejected struct {
	Reason string
}

func (NotifyBuyerRejected) isEffect() {}

// NotifyBuyerLOIRejected asks for the buyer to be told their Letter of
// Intention was rejected.
type NotifyBuyerLOIRejected struct {
	Reason string
}

func (NotifyBuyerLOIRejected) isEffect() {}

// AppendActivity asks for an append-only activity log entry.
type AppendActivity struct {
	Message string
	Status  Status
	Stage   Stage
}

func (AppendActivity) isEffect() {}
