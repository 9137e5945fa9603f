package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
)

// FormState is the shipment form's position in the creation workflow.
type FormState string

const (
	StateEditing    FormState = "editing"
	StateSubmitting FormState = "submitting"
	StateCreated    FormState = "created"
	StateFailed     FormState = "failed"
)

var (
	// ErrSubmitInFlight is returned when Submit is invoked while an earlier
	// submission is still pending; the call is a no-op.
	ErrSubmitInFlight = errors.New("a submission is already in flight")
	// ErrSenderUnresolved blocks submission until the sender phone number
	// resolves to a registered customer.
	ErrSenderUnresolved = errors.New("sender is not a registered customer; add the customer first")
	// ErrPriceRequired blocks submission until a quote has been computed.
	ErrPriceRequired = errors.New("a computed price is required before submitting")
)

// ValidationError aggregates every problem found before a network call is
// attempted.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// ShipmentForm is the editable form state for one shipment.
type ShipmentForm struct {
	SenderPhoneNumber string
	SenderName        string
	ReceiverName      string
	ReceiverAddress   string
	ReceiverPhone     string
	Description       string
	DeliveryType      string
	OriginState       string
	DestinationState  string
	Weight            float64
	Category          string
	Insurance         bool
	ItemValue         float64
	ItemCondition     string
	PaymentMethod     string
	AmountPaid        float64
	BranchName        string
	StaffID           uint
	RiderID           uint
}

// CreatedShipment is the outcome of a successful submission.
type CreatedShipment struct {
	ID            uint    `json:"ID"`
	WaybillNumber string  `json:"waybillNumber"`
	TotalPrice    float64 `json:"totalPrice"`
	Status        string  `json:"status"`
}

// Workflow drives one shipment from an empty form to a persisted record
// with a waybill number. It is owned by a single form session.
type Workflow struct {
	client  *Client
	pricing *PricingEngine

	mu             sync.Mutex
	state          FormState
	form           ShipmentForm
	senderResolved bool
	senderNotFound bool
	failReason     string
	created        *CreatedShipment

	submitting atomic.Bool
}

// NewWorkflow creates a workflow in the Editing state.
func NewWorkflow(c *Client) *Workflow {
	return &Workflow{
		client:  c,
		pricing: NewPricingEngine(c),
		state:   StateEditing,
	}
}

// Pricing exposes the workflow's pricing engine, e.g. to install the
// resolved category names.
func (w *Workflow) Pricing() *PricingEngine {
	return w.pricing
}

// State reports the current workflow state.
func (w *Workflow) State() FormState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Form returns a copy of the current form.
func (w *Workflow) Form() ShipmentForm {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form
}

// SenderNotFound reports whether the last phone commit found no customer.
func (w *Workflow) SenderNotFound() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.senderNotFound
}

// Created returns the created shipment after a successful submission.
func (w *Workflow) Created() *CreatedShipment {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.created
}

// FailReason returns the reason of the last failed submission.
func (w *Workflow) FailReason() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.failReason
}

// Edit mutates the form. The sender name stays read-only once it has been
// resolved from a registered customer.
func (w *Workflow) Edit(fn func(*ShipmentForm)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	resolvedName := w.form.SenderName
	fn(&w.form)
	if w.senderResolved {
		w.form.SenderName = resolvedName
	}
}

// CommitSenderPhone runs the sender lookup for the committed phone number.
// A hit fills (and locks) the sender name; a miss flags sender-not-found,
// which blocks submission until a registered customer is used.
func (w *Workflow) CommitSenderPhone(ctx context.Context, phoneNumber string) error {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return nil
	}

	customer, err := w.client.CustomerByPhone(ctx, phoneNumber)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.form.SenderPhoneNumber = phoneNumber

	if err != nil {
		w.senderResolved = false
		w.form.SenderName = ""
		if errors.Is(err, ErrNotFound) {
			w.senderNotFound = true
			return nil
		}
		return fmt.Errorf("failed to look up customer: %w", err)
	}

	w.form.SenderName = customer.Name
	w.senderResolved = true
	w.senderNotFound = false
	return nil
}

// RequestPrice computes (or recomputes) the quote for the current form. It
// is an explicit action and is idempotent: a repeat overwrites the held
// quote and resets AmountPaid to the new total, discarding any manual edit.
func (w *Workflow) RequestPrice(ctx context.Context) (*Quote, error) {
	w.mu.Lock()
	req := QuoteRequest{
		DeliveryType:      w.form.DeliveryType,
		OriginState:       w.form.OriginState,
		DestinationState:  w.form.DestinationState,
		Weight:            w.form.Weight,
		Category:          w.form.Category,
		Insurance:         w.form.Insurance,
		DeclaredItemValue: w.form.ItemValue,
	}
	w.mu.Unlock()

	quote, err := w.pricing.Calculate(ctx, req)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.form.AmountPaid = quote.TotalPrice
	w.mu.Unlock()
	return quote, nil
}

// requiredFields lists each missing required field by its form name.
func (w *Workflow) requiredFields() []string {
	var missing []string
	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	check("senderName", w.form.SenderName)
	check("receiverName", w.form.ReceiverName)
	check("receiverAddress", w.form.ReceiverAddress)
	check("receiverPhone", w.form.ReceiverPhone)
	check("description", w.form.Description)
	check("originState", w.form.OriginState)
	check("destinationState", w.form.DestinationState)
	check("category", w.form.Category)
	check("branchName", w.form.BranchName)
	if w.form.Weight <= 0 {
		missing = append(missing, "weight")
	}
	if w.form.StaffID == 0 {
		missing = append(missing, "staffId")
	}
	if w.form.RiderID == 0 {
		missing = append(missing, "riderId")
	}
	return missing
}

// Submit validates the form and persists the shipment. Preconditions, in
// order: no submission already in flight, every required field present, the
// sender resolved to a registered customer, and a successfully computed
// quote. Nothing touches the network until all of them hold. On failure the
// form is left intact for retry.
func (w *Workflow) Submit(ctx context.Context) (*CreatedShipment, error) {
	if !w.submitting.CompareAndSwap(false, true) {
		return nil, ErrSubmitInFlight
	}
	defer w.submitting.Store(false)

	w.mu.Lock()
	if missing := w.requiredFields(); len(missing) > 0 {
		w.mu.Unlock()
		return nil, &ValidationError{Problems: missingProblems(missing)}
	}
	if !w.senderResolved {
		w.mu.Unlock()
		return nil, ErrSenderUnresolved
	}
	quote := w.pricing.Quote()
	if quote == nil {
		w.mu.Unlock()
		return nil, ErrPriceRequired
	}

	form := w.form
	w.state = StateSubmitting
	w.mu.Unlock()

	itemCondition := form.ItemCondition
	if itemCondition == "" {
		itemCondition = "Not Damaged or Good"
	}
	paymentMethod := form.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	var resp struct {
		Shipment CreatedShipment `json:"shipment"`
	}
	err := w.client.post(ctx, "/shipments", map[string]interface{}{
		"senderName":        form.SenderName,
		"senderPhoneNumber": form.SenderPhoneNumber,
		"receiverName":      form.ReceiverName,
		"receiverAddress":   form.ReceiverAddress,
		"receiverPhone":     form.ReceiverPhone,
		"description":       form.Description,
		"deliveryType":      form.DeliveryType,
		"originState":       form.OriginState,
		"destinationState":  form.DestinationState,
		"weight":            form.Weight,
		"name":              form.Category,
		"insurance":         form.Insurance,
		"itemValue":         form.ItemValue,
		"itemCondition":     itemCondition,
		"paymentMethod":     paymentMethod,
		"amountPaid":        form.AmountPaid,
		"branchName":        form.BranchName,
		"staffId":           form.StaffID,
		"riderId":           form.RiderID,
	}, &resp)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.state = StateFailed
		w.failReason = err.Error()
		return nil, fmt.Errorf("failed to create shipment: %w", err)
	}

	w.state = StateCreated
	w.created = &resp.Shipment
	return w.created, nil
}

func missingProblems(missing []string) []string {
	problems := make([]string, len(missing))
	for i, field := range missing {
		problems[i] = "missing required field " + field
	}
	return problems
}
