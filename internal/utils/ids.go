// Package utils provides small, generic helper functions used across
// different layers of the application. These utilities are independent
// of domain or business logic.
package utils

import (
	"strconv"
	"strings"
)

// ParseID parses a positive decimal record id such as a path parameter.
// Surrounding whitespace is ignored; zero, negatives, and garbage are rejected.
//
// Example:
//
//	id, ok := utils.ParseID("42") // 42, true
//	_, ok = utils.ParseID("0")    // 0, false
func ParseID(s string) (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil || n == 0 || uint64(uint(n)) != n {
		return 0, false
	}
	return uint(n), true
}
