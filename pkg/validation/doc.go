// Package validation checks order-item payloads and the smaller request
// bodies accepted by the API.
//
// Validation is short-circuiting: ValidateOrderItems scans items in order
// and, within an item, RequiredOrderFields in declared order, returning the
// first violation as a *FieldError. Callers render it as
//
//	{"error": "Validation failed", "details": [{"field", "message", "code"}]}
//
// The validators are pure and operate on decoded JSON (any), so they can be
// used before the payload is mapped onto typed structs.
package validation
