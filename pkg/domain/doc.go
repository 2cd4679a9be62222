// Package domain defines the order, webhook and catalogue types shared by
// the store, the pricing routines and the HTTP API.
package domain
