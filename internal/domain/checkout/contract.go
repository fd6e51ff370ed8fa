package checkout

// DefaultItemsSnapshotMax bounds the items JSON snapshot carried in session
// metadata; providers cap metadata value sizes.
const DefaultItemsSnapshotMax = 5000

// Contract is the external calling contract for one checkout surface: which
// fields the caller must supply and how large the metadata snapshot may grow.
// Storefront variants differ only in this object, not in pipeline code.
type Contract struct {
	// Required lists contract-declared required fields on top of the always
	// enforced items and customer name/email. Supported names: shipMethod,
	// region, orderRef, notes, customer.phone.
	Required []string

	// ItemsSnapshotMax is the byte ceiling for the items metadata snapshot.
	ItemsSnapshotMax int
}

// NewContract builds a Contract, applying the snapshot default when max <= 0.
func NewContract(required []string, itemsSnapshotMax int) Contract {
	if itemsSnapshotMax <= 0 {
		itemsSnapshotMax = DefaultItemsSnapshotMax
	}
	return Contract{
		Required:         required,
		ItemsSnapshotMax: itemsSnapshotMax,
	}
}
