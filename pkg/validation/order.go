package validation

import (
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"

	"github.com/getmockd/printmock/pkg/domain"
)

// RequiredOrderFields are checked in this order for every order item.
var RequiredOrderFields = []string{
	"email", "phone", "name", "orderNumber", "filename", "fileURL",
	"bill_to_street_1", "bill_to_city", "bill_to_state", "bill_to_zip", "bill_to_country_as_iso",
	"ship_to_name", "ship_to_street_1", "ship_to_city", "ship_to_state", "ship_to_zip", "ship_to_country_as_iso",
	"order_item_name", "order_quantity", "order_item_color",
}

// Shape messages for the two families of order routes.
const (
	OrderShapeMessage   = "Order must be a non-empty array of order items"
	RequestShapeMessage = "Request must be a non-empty array of order items"
)

var quantityPattern = regexp.MustCompile(`^\d+$`)

// ValidateOrderItems validates an order-creation payload.
func ValidateOrderItems(payload any) *FieldError {
	return validateItems(payload, OrderShapeMessage)
}

// ValidateEstimateItems validates an estimate payload. It applies the same
// rules as ValidateOrderItems with a different shape message.
func ValidateEstimateItems(payload any) *FieldError {
	return validateItems(payload, RequestShapeMessage)
}

func validateItems(payload any, shapeMessage string) *FieldError {
	items, ok := payload.([]any)
	if !ok || len(items) == 0 {
		return NewFieldError("order", shapeMessage, CodeInvalidFormat)
	}

	for i, raw := range items {
		prefix := fmt.Sprintf("order[%d]", i)
		item, _ := raw.(map[string]any)

		for _, field := range RequiredOrderFields {
			if !Present(item[field]) {
				return NewFieldError(prefix+"."+field, field+" is required", CodeRequiredField)
			}
		}

		if !IsQuantityString(domain.ScalarString(item["order_quantity"])) {
			return NewFieldError(prefix+".order_quantity", "Quantity must be a positive integer string", CodeInvalidQuantity)
		}
	}
	return nil
}

// IsQuantityString reports whether s is a non-empty run of ASCII digits.
// There is no upper bound.
func IsQuantityString(s string) bool {
	return quantityPattern.MatchString(s)
}

// ParseQuantity converts a validated quantity string.
func ParseQuantity(s string) (decimal.Decimal, error) {
	if !IsQuantityString(s) {
		return decimal.Decimal{}, fmt.Errorf("invalid quantity %q", s)
	}
	return decimal.NewFromString(s)
}

// Present reports whether a decoded JSON value counts as supplied: absent,
// null, false, "" and 0 are not.
func Present(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	default:
		return true
	}
}
