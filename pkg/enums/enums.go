package enums

// ProductKind distinguishes catalog entries between the two storefronts.
type ProductKind string

const (
	ProductKindPharmacy   ProductKind = "pharmacy_product"
	ProductKindDiagnostic ProductKind = "diagnostic_test"
)

func (k ProductKind) Valid() bool {
	switch k {
	case ProductKindPharmacy, ProductKindDiagnostic:
		return true
	}
	return false
}

// CartKind selects the fulfillment policy applied to a cart.
type CartKind string

const (
	CartKindPharmacy    CartKind = "pharmacy"
	CartKindDiagnostics CartKind = "diagnostics"
)

func (k CartKind) Valid() bool {
	switch k {
	case CartKindPharmacy, CartKindDiagnostics:
		return true
	}
	return false
}

// CartStatus tracks the lifecycle of a cart record.
type CartStatus string

const (
	CartStatusActive    CartStatus = "active"
	CartStatusConverted CartStatus = "converted"
)
