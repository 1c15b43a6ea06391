// Package billing prices a cart against the product catalog.
//
// Pricing is a pure computation: resolve each line's product, sum the
// rounded line totals, then apply the flat shipping rule and the 12% tax.
package billing

import (
	"errors"
	"math"

	"github.com/Rajputmansi7/fitness-store/internal/sdk/models"
)

var (
	ErrEmptyCart       = errors.New("billing: cart is empty")
	ErrUnknownProduct  = errors.New("billing: unknown product")
	ErrInvalidQuantity = errors.New("billing: quantity must be a positive integer")
)

const (
	freeShippingThreshold = 100
	flatShipping          = 5
	taxRate               = 0.12
)

// Price computes the bill for the given cart lines. The resolve function
// maps a product id to its catalog entry. A line referencing an unknown
// product or a non-positive quantity fails the whole cart; no partial
// bill is ever produced.
func Price(items []models.CartLine, resolve func(id string) (models.Product, bool)) (models.Bill, error) {
	if len(items) == 0 {
		return models.Bill{}, ErrEmptyCart
	}

	var subtotal float64
	details := make([]models.BillLine, 0, len(items))
	for _, item := range items {
		if item.Qty <= 0 {
			return models.Bill{}, ErrInvalidQuantity
		}
		product, ok := resolve(item.ID)
		if !ok {
			return models.Bill{}, ErrUnknownProduct
		}

		line := models.BillLine{
			ID:        product.ID,
			Name:      product.Name,
			Company:   product.Company,
			Price:     product.Price,
			Qty:       item.Qty,
			LineTotal: roundCents(product.Price * float64(item.Qty)),
		}
		subtotal += line.LineTotal
		details = append(details, line)
	}
	subtotal = roundCents(subtotal)

	shipping := float64(flatShipping)
	if subtotal > freeShippingThreshold {
		shipping = 0
	}
	tax := roundCents(subtotal * taxRate)

	return models.Bill{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    roundCents(subtotal + shipping + tax),
		Details:  details,
	}, nil
}

func roundCents(x float64) float64 {
	return math.Round(x*100) / 100
}
