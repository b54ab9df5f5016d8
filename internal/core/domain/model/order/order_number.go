package order

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"time"
)

// orderNumberPrefix is the literal prefix of every generated order number.
const orderNumberPrefix = "ORD"

// orderNumberPattern matches ORD + YYYYMMDD + 4 digits.
var orderNumberPattern = regexp.MustCompile(`^ORD\d{8}\d{4}$`)

// GenerateOrderNumber produces a human-readable order number: the literal
// prefix ORD, the creation date as YYYYMMDD, and a 4-digit pseudo-random
// suffix. Uniqueness is enforced by the store's unique constraint, not by
// the generator; callers retry with a fresh number on collision.
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("%s%s%04d", orderNumberPrefix, now.Format("20060102"), rand.IntN(10000))
}

// ValidateOrderNumber reports whether s has the generated order number
// shape.
func ValidateOrderNumber(s string) bool {
	return orderNumberPattern.MatchString(s)
}
