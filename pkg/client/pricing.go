package client

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
)

// InsuranceRate is the fraction of the declared item value charged when
// insurance is requested (0.5%). It is composed locally on top of the
// server-side quote.
const InsuranceRate = 0.005

// ErrPriceCalculation marks a failed quote: network failure, unknown
// category, no matching weight band. The engine holds no quote afterwards.
var ErrPriceCalculation = errors.New("price calculation failed")

// ErrQuoteSuperseded is returned when a calculation was overtaken by a newer
// one that failed, leaving no quote to report.
var ErrQuoteSuperseded = errors.New("quote superseded by a newer calculation")

// QuoteRequest are the shipment attributes a quote is computed from.
type QuoteRequest struct {
	DeliveryType      string
	OriginState       string
	DestinationState  string
	Weight            float64
	Category          string
	Insurance         bool
	DeclaredItemValue float64
}

// Quote is a computed price: the server's charge composition plus the
// locally computed insurance surcharge.
type Quote struct {
	RemotePrice     float64
	InsuranceAmount float64
	TotalPrice      float64
}

// PricingEngine computes shipment quotes. Repeating a calculation is
// idempotent and overwrites the held quote; when calculations race, only
// the most recently issued one may land (stale responses are discarded).
type PricingEngine struct {
	client *Client

	mu         sync.Mutex
	nextSeq    uint64
	appliedSeq uint64
	quote      *Quote

	knownCategories map[string]bool
}

// NewPricingEngine creates an engine backed by the gateway client.
func NewPricingEngine(c *Client) *PricingEngine {
	return &PricingEngine{client: c}
}

// SetKnownCategories restricts quotes to the resolved category names. With
// no set installed the server is the sole validator.
func (e *PricingEngine) SetKnownCategories(names []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.knownCategories = make(map[string]bool, len(names))
	for _, n := range names {
		e.knownCategories[strings.ToLower(n)] = true
	}
}

// Quote returns the currently held quote, nil when none has been computed
// or the last calculation failed.
func (e *PricingEngine) Quote() *Quote {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.quote
}

func (e *PricingEngine) validate(req QuoteRequest) error {
	var problems []string
	if req.Weight <= 0 || math.IsNaN(req.Weight) || math.IsInf(req.Weight, 0) {
		problems = append(problems, "weight must be a positive number")
	}
	if strings.TrimSpace(req.Category) == "" {
		problems = append(problems, "category is required")
	}
	if req.DeliveryType == "" {
		problems = append(problems, "delivery type is required")
	}
	if req.OriginState == "" || req.DestinationState == "" {
		problems = append(problems, "origin and destination states are required")
	}
	if req.Insurance && (req.DeclaredItemValue < 0 || math.IsNaN(req.DeclaredItemValue)) {
		problems = append(problems, "declared item value must be non-negative")
	}

	e.mu.Lock()
	known := e.knownCategories
	e.mu.Unlock()
	if known != nil && req.Category != "" && !known[strings.ToLower(req.Category)] {
		problems = append(problems, fmt.Sprintf("unknown category %q", req.Category))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// Calculate computes a quote for req. Validation failures return a
// *ValidationError without touching the network. Remote failures return an
// error wrapping ErrPriceCalculation and clear the held quote, so a caller
// can never submit against a stale price.
func (e *PricingEngine) Calculate(ctx context.Context, req QuoteRequest) (*Quote, error) {
	if err := e.validate(req); err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.nextSeq++
	seq := e.nextSeq
	e.mu.Unlock()

	var resp struct {
		TotalPrice float64 `json:"totalPrice"`
	}
	err := e.client.post(ctx, "/prices/calculate", map[string]interface{}{
		"deliveryType":     req.DeliveryType,
		"originState":      req.OriginState,
		"destinationState": req.DestinationState,
		"weight":           req.Weight,
		"name":             req.Category,
		"insurance":        req.Insurance,
	}, &resp)

	e.mu.Lock()
	defer e.mu.Unlock()

	if seq < e.appliedSeq {
		// A newer calculation already landed; this response is stale. If
		// that calculation failed it also cleared the quote, and there is
		// nothing to report.
		if e.quote == nil {
			return nil, ErrQuoteSuperseded
		}
		return e.quote, nil
	}
	e.appliedSeq = seq

	if err != nil {
		e.quote = nil
		return nil, fmt.Errorf("%w: %v", ErrPriceCalculation, err)
	}

	insurance := 0.0
	if req.Insurance {
		insurance = req.DeclaredItemValue * InsuranceRate
	}
	e.quote = &Quote{
		RemotePrice:     resp.TotalPrice,
		InsuranceAmount: insurance,
		TotalPrice:      resp.TotalPrice + insurance,
	}
	return e.quote, nil
}
