package api

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/getmockd/printmock/pkg/catalog"
	"github.com/getmockd/printmock/pkg/domain"
	"github.com/getmockd/printmock/pkg/httputil"
	"github.com/getmockd/printmock/pkg/pricing"
	"github.com/getmockd/printmock/pkg/validation"
)

// FilamentsResponse is the body of GET /api/filament.
type FilamentsResponse struct {
	Filaments []domain.Filament `json:"filaments"`
}

// SliceResponse is the body of POST /api/slicer.
type SliceResponse struct {
	Message string    `json:"message"`
	Data    SliceData `json:"data"`
}

// SliceData carries the slicer quote.
type SliceData struct {
	Price string `json:"price"`
}

// EstimateResponse is the body of POST /api/order/estimate.
type EstimateResponse struct {
	TotalPrice   float64 `json:"totalPrice"`
	ShippingCost float64 `json:"shippingCost"`
	PrintingCost float64 `json:"printingCost"`
}

// ShippingEstimateResponse is the body of POST /api/order/estimateShipping.
type ShippingEstimateResponse struct {
	ShippingCost float64 `json:"shippingCost"`
	CurrencyCode string  `json:"currencyCode"`
}

func (s *Server) handleListFilaments(w http.ResponseWriter, r *http.Request) {
	filaments, err := catalog.Filaments()
	if err != nil {
		s.log.Error("loading filament catalogue failed", "error", err)
		httputil.WriteInternalError(w, ErrMsgInternal)
		return
	}
	httputil.WriteOK(w, FilamentsResponse{Filaments: filaments})
}

func (s *Server) handleSlice(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readJSONObject(w, r)
	if !ok {
		return
	}
	fileURL := body["fileURL"]
	if !validation.Present(fileURL) {
		httputil.WriteBadRequest(w, "fileURL is required")
		return
	}
	if _, isString := fileURL.(string); !isString {
		httputil.WriteBadRequest(w, "fileURL must be a string")
		return
	}

	timer := time.NewTimer(pricing.Delay(s.slicerMin, s.slicerMax))
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-r.Context().Done():
		s.log.Debug("slicer request abandoned", "error", r.Context().Err())
		httputil.WriteError(w, http.StatusServiceUnavailable, "Request cancelled")
		return
	}

	httputil.WriteOK(w, SliceResponse{
		Message: "Slicing successful",
		Data:    SliceData{Price: pricing.FormatUSD(pricing.SliceQuote())},
	})
}

func (s *Server) handleEstimateOrder(w http.ResponseWriter, r *http.Request) {
	item, quantity, ok := s.readOrderItem(w, r, validation.ValidateEstimateItems)
	if !ok {
		return
	}
	quote := pricing.Estimate(quantity, item.ShipToZip, item.ShipToIsUSResidential)
	httputil.WriteOK(w, EstimateResponse{
		TotalPrice:   quote.TotalPrice,
		ShippingCost: quote.ShippingCost,
		PrintingCost: quote.PrintingCost,
	})
}

func (s *Server) handleEstimateShipping(w http.ResponseWriter, r *http.Request) {
	item, _, ok := s.readOrderItem(w, r, validation.ValidateEstimateItems)
	if !ok {
		return
	}
	httputil.WriteOK(w, ShippingEstimateResponse{
		ShippingCost: pricing.ShippingCost(item.ShipToZip, item.ShipToIsUSResidential),
		CurrencyCode: "usd",
	})
}

// readJSON reads and decodes the request body, writing the malformed-JSON
// response on failure.
func (s *Server) readJSON(w http.ResponseWriter, r *http.Request) (any, bool) {
	data, err := httputil.ReadBody(r)
	if err != nil {
		s.log.Debug("reading request body failed", "error", err)
		httputil.WriteBadRequest(w, ErrMsgInvalidJSON)
		return nil, false
	}
	v, err := httputil.DecodeJSON(data)
	if err != nil {
		httputil.WriteBadRequest(w, ErrMsgInvalidJSON)
		return nil, false
	}
	return v, true
}

// readJSONObject is readJSON for routes taking an object. Other JSON
// values decode to an empty object.
func (s *Server) readJSONObject(w http.ResponseWriter, r *http.Request) (map[string]any, bool) {
	v, ok := s.readJSON(w, r)
	if !ok {
		return nil, false
	}
	m, isObject := v.(map[string]any)
	if !isObject {
		m = map[string]any{}
	}
	return m, true
}

// readOrderItem decodes and validates an order-item array and returns its
// first item. Multi-item requests are validated in full but priced on the
// first item only.
func (s *Server) readOrderItem(w http.ResponseWriter, r *http.Request, validate func(any) *validation.FieldError) (domain.OrderItem, decimal.Decimal, bool) {
	payload, ok := s.readJSON(w, r)
	if !ok {
		return domain.OrderItem{}, decimal.Decimal{}, false
	}
	if fe := validate(payload); fe != nil {
		writeValidationError(w, fe)
		return domain.OrderItem{}, decimal.Decimal{}, false
	}

	first, _ := payload.([]any)[0].(map[string]any)
	item := domain.ItemFromJSON(first)
	quantity, err := validation.ParseQuantity(item.OrderQuantity)
	if err != nil {
		writeValidationError(w, validation.NewFieldError("order[0].order_quantity", err.Error(), validation.CodeInvalidQuantity))
		return domain.OrderItem{}, decimal.Decimal{}, false
	}
	return item, quantity, true
}
