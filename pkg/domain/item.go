package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// OrderItem is one line of a create or estimate request.
type OrderItem struct {
	Email                 string `json:"email"`
	Phone                 string `json:"phone"`
	Name                  string `json:"name"`
	OrderNumber           string `json:"orderNumber"`
	Filename              string `json:"filename"`
	FileURL               string `json:"fileURL"`
	BillToStreet1         string `json:"bill_to_street_1"`
	BillToStreet2         string `json:"bill_to_street_2,omitempty"`
	BillToStreet3         string `json:"bill_to_street_3,omitempty"`
	BillToCity            string `json:"bill_to_city"`
	BillToState           string `json:"bill_to_state"`
	BillToZip             string `json:"bill_to_zip"`
	BillToCountryISO      string `json:"bill_to_country_as_iso"`
	BillToIsUSResidential string `json:"bill_to_is_US_residential,omitempty"`
	ShipToName            string `json:"ship_to_name"`
	ShipToStreet1         string `json:"ship_to_street_1"`
	ShipToStreet2         string `json:"ship_to_street_2,omitempty"`
	ShipToStreet3         string `json:"ship_to_street_3,omitempty"`
	ShipToCity            string `json:"ship_to_city"`
	ShipToState           string `json:"ship_to_state"`
	ShipToZip             string `json:"ship_to_zip"`
	ShipToCountryISO      string `json:"ship_to_country_as_iso"`
	ShipToIsUSResidential string `json:"ship_to_is_US_residential,omitempty"`
	OrderItemName         string `json:"order_item_name"`
	OrderQuantity         string `json:"order_quantity"`
	OrderImageURL         string `json:"order_image_url,omitempty"`
	OrderSKU              string `json:"order_sku,omitempty"`
	OrderItemColor        string `json:"order_item_color"`
	Profile               string `json:"profile,omitempty"`
}

// ItemFromJSON builds an OrderItem from a decoded JSON object. Numbers and
// booleans are rendered as strings; other non-string values are dropped.
func ItemFromJSON(m map[string]any) OrderItem {
	s := func(key string) string { return ScalarString(m[key]) }
	return OrderItem{
		Email:                 s("email"),
		Phone:                 s("phone"),
		Name:                  s("name"),
		OrderNumber:           s("orderNumber"),
		Filename:              s("filename"),
		FileURL:               s("fileURL"),
		BillToStreet1:         s("bill_to_street_1"),
		BillToStreet2:         s("bill_to_street_2"),
		BillToStreet3:         s("bill_to_street_3"),
		BillToCity:            s("bill_to_city"),
		BillToState:           s("bill_to_state"),
		BillToZip:             s("bill_to_zip"),
		BillToCountryISO:      s("bill_to_country_as_iso"),
		BillToIsUSResidential: s("bill_to_is_US_residential"),
		ShipToName:            s("ship_to_name"),
		ShipToStreet1:         s("ship_to_street_1"),
		ShipToStreet2:         s("ship_to_street_2"),
		ShipToStreet3:         s("ship_to_street_3"),
		ShipToCity:            s("ship_to_city"),
		ShipToState:           s("ship_to_state"),
		ShipToZip:             s("ship_to_zip"),
		ShipToCountryISO:      s("ship_to_country_as_iso"),
		ShipToIsUSResidential: s("ship_to_is_US_residential"),
		OrderItemName:         s("order_item_name"),
		OrderQuantity:         s("order_quantity"),
		OrderImageURL:         s("order_image_url"),
		OrderSKU:              s("order_sku"),
		OrderItemColor:        s("order_item_color"),
		Profile:               s("profile"),
	}
}

// ScalarString renders a decoded JSON scalar as a string. Objects, arrays
// and null yield "".
func ScalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return strconv.FormatFloat(f, 'f', -1, 64)
		}
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// SplitName splits a full name on the first space into first and last
// parts. A single word becomes the first name; everything after the first
// space, inner spaces included, is the last name.
func SplitName(full string) (first, last string) {
	first, last, _ = strings.Cut(full, " ")
	return first, last
}

// BillingAddress maps the bill_to_* fields to an Address.
func (it OrderItem) BillingAddress() Address {
	first, last := SplitName(it.Name)
	return Address{
		FirstName: first,
		LastName:  last,
		Address1:  it.BillToStreet1,
		Address2:  it.BillToStreet2,
		City:      it.BillToCity,
		State:     it.BillToState,
		Zip:       it.BillToZip,
		Country:   it.BillToCountryISO,
		Phone:     it.Phone,
	}
}

// ShippingAddress maps the ship_to_* fields to an Address.
func (it OrderItem) ShippingAddress() Address {
	first, last := SplitName(it.ShipToName)
	return Address{
		FirstName: first,
		LastName:  last,
		Address1:  it.ShipToStreet1,
		Address2:  it.ShipToStreet2,
		City:      it.ShipToCity,
		State:     it.ShipToState,
		Zip:       it.ShipToZip,
		Country:   it.ShipToCountryISO,
	}
}

// Residential reports whether the shipping address is flagged as a US
// residence.
func (it OrderItem) Residential() bool {
	return it.ShipToIsUSResidential == "true"
}

// ProfileOrDefault returns the item's profile or DefaultProfile.
func (it OrderItem) ProfileOrDefault() string {
	if it.Profile == "" {
		return DefaultProfile
	}
	return it.Profile
}
