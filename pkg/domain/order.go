package domain

import "time"

// Status is an order lifecycle status.
type Status string

// Order statuses. Orders normally move pending -> printing -> printed ->
// shipped; cancelled can be reached from any status except shipped.
const (
	StatusPending   Status = "pending"
	StatusPrinting  Status = "printing"
	StatusPrinted   Status = "printed"
	StatusShipped   Status = "shipped"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every status in lifecycle order.
var Statuses = []Status{StatusPending, StatusPrinting, StatusPrinted, StatusShipped, StatusCancelled}

// Valid reports whether s is one of the five known statuses.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is expected from s.
func (s Status) Terminal() bool {
	return s == StatusShipped || s == StatusCancelled
}

// DefaultProfile is the material used when an order item names none.
const DefaultProfile = "PLA"

// Address is a billing or shipping address.
type Address struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	CompanyName string `json:"companyName,omitempty"`
	Address1    string `json:"address1"`
	Address2    string `json:"address2,omitempty"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	Country     string `json:"country"`
	Phone       string `json:"phone,omitempty"`
}

// Order is a stored print order.
type Order struct {
	OrderID         string    `json:"orderId"`
	OrderNumber     string    `json:"orderNumber"`
	Status          Status    `json:"status"`
	Filename        string    `json:"filename"`
	FileURL         string    `json:"fileURL"`
	Quantity        string    `json:"quantity"`
	Color           string    `json:"color"`
	Profile         string    `json:"profile"`
	TotalPrice      float64   `json:"totalPrice"`
	ShippingCost    float64   `json:"shippingCost"`
	PrintingCost    float64   `json:"printingCost"`
	TrackingNumbers []string  `json:"trackingNumbers"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	BillingAddress  Address   `json:"billingAddress"`
	ShippingAddress Address   `json:"shippingAddress"`
	Email           string    `json:"email"`
	Residential     bool      `json:"residential"`
}

// Clone returns a copy of o that shares no mutable state with it.
func (o Order) Clone() Order {
	o.TrackingNumbers = append([]string{}, o.TrackingNumbers...)
	return o
}

// OrderPatch carries the fields of an order update. Nil fields are left
// unchanged.
type OrderPatch struct {
	OrderNumber     *string
	Status          *Status
	Filename        *string
	FileURL         *string
	Quantity        *string
	Color           *string
	Profile         *string
	TotalPrice      *float64
	ShippingCost    *float64
	PrintingCost    *float64
	TrackingNumbers []string
	BillingAddress  *Address
	ShippingAddress *Address
	Email           *string
	Residential     *bool
}

// Apply merges p into o.
func (p OrderPatch) Apply(o *Order) {
	setIf(&o.OrderNumber, p.OrderNumber)
	setIf(&o.Status, p.Status)
	setIf(&o.Filename, p.Filename)
	setIf(&o.FileURL, p.FileURL)
	setIf(&o.Quantity, p.Quantity)
	setIf(&o.Color, p.Color)
	setIf(&o.Profile, p.Profile)
	setIf(&o.TotalPrice, p.TotalPrice)
	setIf(&o.ShippingCost, p.ShippingCost)
	setIf(&o.PrintingCost, p.PrintingCost)
	setIf(&o.BillingAddress, p.BillingAddress)
	setIf(&o.ShippingAddress, p.ShippingAddress)
	setIf(&o.Email, p.Email)
	setIf(&o.Residential, p.Residential)
	if p.TrackingNumbers != nil {
		o.TrackingNumbers = append([]string{}, p.TrackingNumbers...)
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
