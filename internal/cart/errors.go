package cart

import (
	pkgerrors "github.com/wellway-health/wellway-backend/pkg/errors"
)

// Mutation failures carry a machine-readable reason so callers can branch on
// the exact condition without parsing messages.
const (
	reasonProductNotFound        = "product_not_found"
	reasonItemNotInCart          = "item_not_in_cart"
	reasonInvalidQuantity        = "invalid_quantity"
	reasonConcurrentModification = "concurrent_modification"
)

func newProductNotFoundError(productID int64) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "product not found or unavailable").
		WithDetails(map[string]any{"reason": reasonProductNotFound, "product_id": productID})
}

func newItemNotInCartError(productID int64) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "item not in cart").
		WithDetails(map[string]any{"reason": reasonItemNotInCart, "product_id": productID})
}

func newInvalidQuantityError(quantity int) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a positive integer").
		WithDetails(map[string]any{"reason": reasonInvalidQuantity, "quantity": quantity})
}

func newConcurrentModificationError(ownerID int64) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeConflict, "cart was modified concurrently, retry the operation").
		WithDetails(map[string]any{"reason": reasonConcurrentModification, "owner_id": ownerID})
}

func errorReason(err error) string {
	appErr := pkgerrors.As(err)
	if appErr == nil {
		return ""
	}
	details, ok := appErr.Details().(map[string]any)
	if !ok {
		return ""
	}
	reason, _ := details["reason"].(string)
	return reason
}

// IsProductNotFound reports whether err came from resolving a missing or
// unavailable product.
func IsProductNotFound(err error) bool {
	return errorReason(err) == reasonProductNotFound
}

// IsItemNotInCart reports whether err came from targeting a line the cart
// does not hold.
func IsItemNotInCart(err error) bool {
	return errorReason(err) == reasonItemNotInCart
}

// IsInvalidQuantity reports whether err came from a non-positive or
// out-of-range quantity.
func IsInvalidQuantity(err error) bool {
	return errorReason(err) == reasonInvalidQuantity
}

// IsConcurrentModification reports whether err came from a lost write race on
// the owner's cart.
func IsConcurrentModification(err error) bool {
	return errorReason(err) == reasonConcurrentModification
}
