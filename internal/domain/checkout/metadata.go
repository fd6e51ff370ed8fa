package checkout

import "encoding/json"

// Metadata keys attached to every created session. The set is fixed; values
// are always present, coerced to strings, "" for absent optionals.
const (
	MetaCustomerName  = "customer_name"
	MetaCustomerEmail = "customer_email"
	MetaCustomerPhone = "customer_phone"
	MetaShipMethod    = "ship_method"
	MetaRegion        = "region"
	MetaNotes         = "notes"
	MetaOrderRef      = "order_ref"
	MetaProductsTotal = "products_total"
	MetaShippingTotal = "shipping_total"
	MetaOrderTotal    = "order_total"
	MetaItems         = "items"
)

// EncodeMetadata flattens the submission into the session's string-to-string
// side channel. The items snapshot is the JSON encoding of the items sequence
// cut raw at ItemsSnapshotMax bytes: the payload never exceeds the ceiling,
// but a cut snapshot is not guaranteed to parse as JSON. Only the items value
// is truncated; no other key is affected.
func (c Contract) EncodeMetadata(sub Submission) map[string]string {
	items, _ := json.Marshal(sub.Items)
	if len(items) > c.ItemsSnapshotMax {
		items = items[:c.ItemsSnapshotMax]
	}

	return map[string]string{
		MetaCustomerName:  sub.Customer.Name,
		MetaCustomerEmail: sub.Customer.Email,
		MetaCustomerPhone: sub.Customer.Phone,
		MetaShipMethod:    sub.ShipMethod,
		MetaRegion:        sub.Region,
		MetaNotes:         sub.Notes,
		MetaOrderRef:      sub.OrderRef,
		MetaProductsTotal: sub.Totals.ProductsTotal.String(),
		MetaShippingTotal: sub.Totals.ShippingTotal.String(),
		MetaOrderTotal:    sub.Totals.OrderTotal.String(),
		MetaItems:         string(items),
	}
}
