package utils

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/royalcourier/backoffice-backend/internal/models"
)

var (
	ErrCategoryNotFound  = errors.New("price category not found")
	ErrNoWeightBand      = errors.New("no weight band matches the given weight")
	ErrNoDeliveryCharge  = errors.New("no charge configured for delivery type")
	ErrNoScopeCharge     = errors.New("no charge configured for delivery scope")
	ErrInvalidWeight     = errors.New("weight must be a positive number")
	ErrInvalidWeightBand = errors.New("malformed weight range")
)

// QuoteBreakdown is the itemized result of a price calculation.
type QuoteBreakdown struct {
	BasePrice      float64 `json:"basePrice"`
	WeightCharge   float64 `json:"weightCharge"`
	DeliveryCharge float64 `json:"deliveryCharge"`
	ScopeCharge    float64 `json:"scopeCharge"`
	TotalPrice     float64 `json:"totalPrice"`
}

// ScopeFor resolves the delivery scope from the route: withinState when the
// origin and destination states match, interstate otherwise.
func ScopeFor(originState, destinationState string) models.DeliveryScope {
	if strings.EqualFold(strings.TrimSpace(originState), strings.TrimSpace(destinationState)) {
		return models.ScopeWithinState
	}
	return models.ScopeInterstate
}

// CalculateShipmentPrice composes the chargeable price for a shipment from a
// price category: basePrice + weight band charge + delivery type charge +
// route scope charge. Identical inputs always produce the identical total.
func CalculateShipmentPrice(categories []models.PriceCategory, categoryName, deliveryType, originState, destinationState string, weight float64) (QuoteBreakdown, error) {
	if weight <= 0 || math.IsNaN(weight) || math.IsInf(weight, 0) {
		return QuoteBreakdown{}, ErrInvalidWeight
	}

	category, ok := findCategory(categories, categoryName)
	if !ok {
		return QuoteBreakdown{}, fmt.Errorf("%w: %q", ErrCategoryNotFound, categoryName)
	}

	weightCharge, err := weightChargeFor(category.WeightCharges, weight)
	if err != nil {
		return QuoteBreakdown{}, err
	}

	deliveryCharge, ok := deliveryChargeFor(category.DeliveryCharges, deliveryType)
	if !ok {
		return QuoteBreakdown{}, fmt.Errorf("%w: %q", ErrNoDeliveryCharge, deliveryType)
	}

	scope := ScopeFor(originState, destinationState)
	scopeCharge, ok := scopeChargeFor(category.DeliveryScopeCharges, scope)
	if !ok {
		return QuoteBreakdown{}, fmt.Errorf("%w: %q", ErrNoScopeCharge, scope)
	}

	total := category.BasePrice + weightCharge + deliveryCharge + scopeCharge
	return QuoteBreakdown{
		BasePrice:      category.BasePrice,
		WeightCharge:   weightCharge,
		DeliveryCharge: deliveryCharge,
		ScopeCharge:    scopeCharge,
		TotalPrice:     math.Round(total*100) / 100,
	}, nil
}

func findCategory(categories []models.PriceCategory, name string) (models.PriceCategory, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return models.PriceCategory{}, false
}

// weightChargeFor returns the charge of the first band containing weight.
// Bands are written "lo-hi" with an inclusive upper bound, or "lo+" for the
// open-ended last band.
func weightChargeFor(charges []models.WeightCharge, weight float64) (float64, error) {
	for _, wc := range charges {
		lo, hi, open, err := parseWeightRange(wc.Range)
		if err != nil {
			return 0, err
		}
		if weight < lo {
			continue
		}
		if open || weight <= hi {
			return wc.Charge, nil
		}
	}
	return 0, fmt.Errorf("%w: %.2fkg", ErrNoWeightBand, weight)
}

func parseWeightRange(r string) (lo, hi float64, open bool, err error) {
	r = strings.TrimSpace(r)
	if strings.HasSuffix(r, "+") {
		lo, err = strconv.ParseFloat(strings.TrimSuffix(r, "+"), 64)
		if err != nil {
			return 0, 0, false, fmt.Errorf("%w: %q", ErrInvalidWeightBand, r)
		}
		return lo, 0, true, nil
	}
	parts := strings.SplitN(r, "-", 2)
	if len(parts) != 2 {
		return 0, 0, false, fmt.Errorf("%w: %q", ErrInvalidWeightBand, r)
	}
	lo, err = strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: %q", ErrInvalidWeightBand, r)
	}
	hi, err = strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, false, fmt.Errorf("%w: %q", ErrInvalidWeightBand, r)
	}
	return lo, hi, false, nil
}

func deliveryChargeFor(charges []models.DeliveryCharge, deliveryType string) (float64, bool) {
	for _, dc := range charges {
		if strings.EqualFold(dc.Type, deliveryType) {
			return dc.Charge, true
		}
	}
	return 0, false
}

func scopeChargeFor(charges []models.ScopeCharge, scope models.DeliveryScope) (float64, bool) {
	for _, sc := range charges {
		if strings.EqualFold(sc.Scope, string(scope)) {
			return sc.Charge, true
		}
	}
	return 0, false
}
