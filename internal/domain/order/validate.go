package order

import (
	"github.com/shopspring/decimal"

	"github.com/Software-Eng-Excellence/SokainaElhajj-SE2/internal/faults"
)

func incomplete(object, id string, priceSet, quantitySet, itemSet bool) error {
	var missing []string
	if id == "" {
		missing = append(missing, "id")
	}
	if !priceSet {
		missing = append(missing, "price")
	}
	if !quantitySet {
		missing = append(missing, "quantity")
	}
	if !itemSet {
		missing = append(missing, "item")
	}
	if len(missing) > 0 {
		return &faults.IncompleteObjectError{Object: object, Missing: missing}
	}
	return nil
}

// Validate checks order content: price and quantity must be positive.
func Validate(o IdentifiableOrder) error {
	return validate(o.price, o.quantity, o.item != nil)
}

func validate(price decimal.Decimal, quantity int, hasItem bool) error {
	if !price.IsPositive() {
		return &faults.InvalidValueError{Field: "price", Reason: "must be greater than 0"}
	}
	if quantity <= 0 {
		return &faults.InvalidValueError{Field: "quantity", Reason: "must be greater than 0"}
	}
	if !hasItem {
		return &faults.InvalidValueError{Field: "item", Reason: "required"}
	}
	return nil
}
