package app

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rajputmansi7/fitness-store/internal/sdk/middleware"
	"github.com/Rajputmansi7/fitness-store/internal/sdk/models"
	"github.com/Rajputmansi7/fitness-store/internal/services/billing"
	"github.com/Rajputmansi7/fitness-store/internal/services/sentry"
)

func (a *App) HandleListProducts(c *gin.Context) {
	products, err := a.db.ListProducts(c.Request.Context())
	if err != nil {
		a.toSentry(c, "products", "store", sentry.LevelError, err)
		writeError(c, ErrStore, nil)
		return
	}

	c.JSON(http.StatusOK, products)
}

// HandleBill prices the caller's cart against the catalog and records a
// checkout activity. A line referencing an unknown product fails the
// whole request; no partial bill is computed.
func (a *App) HandleBill(c *gin.Context) {
	claims, err := middleware.Claims(c)
	if err != nil {
		writeError(c, ErrUnauthorized, nil)
		return
	}

	var req BillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, ErrInvalidBody, nil)
		return
	}

	products, err := a.db.ListProducts(c.Request.Context())
	if err != nil {
		a.toSentry(c, "bill", "store", sentry.LevelError, err)
		writeError(c, ErrStore, nil)
		return
	}

	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	bill, err := billing.Price(req.Items, func(id string) (models.Product, bool) {
		p, ok := byID[id]
		return p, ok
	})
	if err != nil {
		switch {
		case errors.Is(err, billing.ErrEmptyCart):
			writeError(c, ErrEmptyCart, nil)
		case errors.Is(err, billing.ErrUnknownProduct):
			writeError(c, ErrUnknownProduct, nil)
		case errors.Is(err, billing.ErrInvalidQuantity):
			writeError(c, ErrInvalidQuantity, nil)
		default:
			a.toSentry(c, "bill", "price", sentry.LevelError, err)
			writeError(c, ErrStore, nil)
		}
		return
	}

	act := models.NewActivity{
		Type:  models.ActivityCheckout,
		Email: claims.Email,
		Details: map[string]any{
			"subtotal":   bill.Subtotal,
			"shipping":   bill.Shipping,
			"tax":        bill.Tax,
			"total":      bill.Total,
			"itemsCount": len(req.Items),
		},
	}
	if _, err := a.db.AppendActivity(c.Request.Context(), act); err != nil {
		a.toSentry(c, "bill", "activity", sentry.LevelError, err)
		writeError(c, ErrStore, nil)
		return
	}

	c.JSON(http.StatusOK, bill)
}
