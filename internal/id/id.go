package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/google/uuid"
)

const (
	orderIDMin = 1_000_000_000
	orderIDMax = 9_999_999_999

	base36 = "0123456789abcdefghijklmnopqrstuvwxyz"
	digits = "0123456789"
	upper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// Carrier prefixes used by TrackingNumber. "1Z" produces a UPS-shaped
// number; the others produce prefix + 20 digits.
var trackingCarriers = []string{"1Z", "92", "94"}

// now is replaced in tests.
var now = time.Now

// UUID generates a UUID v4 string.
func UUID() string {
	return uuid.New().String()
}

// OrderID returns a random 10-digit order identifier in
// [1000000000, 9999999999].
func OrderID() string {
	return strconv.FormatInt(orderIDMin+randInt(orderIDMax-orderIDMin+1), 10)
}

// OrderNumber returns ORD-<last 8 digits of epoch ms>-<3-digit random>.
func OrderNumber() string {
	ms := strconv.FormatInt(now().UnixMilli(), 10)
	if len(ms) > 8 {
		ms = ms[len(ms)-8:]
	}
	return fmt.Sprintf("ORD-%s-%03d", ms, randInt(1000))
}

// TrackingNumber returns a carrier-style tracking number.
func TrackingNumber() string {
	carrier := trackingCarriers[randInt(int64(len(trackingCarriers)))]
	if carrier == "1Z" {
		return "1Z" + randString(digits, 6) + randString(upper, 2) + randString(digits, 10)
	}
	return carrier + randString(digits, 20)
}

// Prefixed returns <prefix>_<epoch-ms>_<9 base36 chars>.
func Prefixed(prefix string) string {
	return fmt.Sprintf("%s_%d_%s", prefix, now().UnixMilli(), randString(base36, 9))
}

// WebhookID returns a wh_ prefixed identifier.
func WebhookID() string { return Prefixed("wh") }

// LogID returns a log_ prefixed identifier.
func LogID() string { return Prefixed("log") }

// RequestID returns a req_ prefixed identifier used for ledger entries.
func RequestID() string { return Prefixed("req") }

// randInt returns a uniform value in [0, n).
func randInt(n int64) int64 {
	v, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		panic(fmt.Sprintf("id: crypto/rand failed: %v", err))
	}
	return v.Int64()
}

func randString(charset string, length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[randInt(int64(len(charset)))]
	}
	return string(b)
}
