package utils

import (
	"strconv"
	"strings"
)

// Page is a normalized page request: Number starts at 1 and Size is within
// the bounds given to ParsePage.
type Page struct {
	Number int
	Size   int
}

// ParsePage reads page and page_size query values. Missing or malformed
// values fall back to page 1 and defSize; Size is clamped to [1, maxSize].
//
// Example:
//
//	p := utils.ParsePage("3", "500", 20, 100) // Page{Number: 3, Size: 100}
func ParsePage(page, size string, defSize, maxSize int) Page {
	p := Page{Number: atoiDefault(page, 1), Size: atoiDefault(size, defSize)}
	if p.Number < 1 {
		p.Number = 1
	}
	if p.Size < 1 {
		p.Size = 1
	}
	if maxSize > 0 && p.Size > maxSize {
		p.Size = maxSize
	}
	return p
}

// Offset is the number of rows to skip for this page.
func (p Page) Offset() int { return (p.Number - 1) * p.Size }

// TotalPages returns how many pages of p.Size hold total rows.
func (p Page) TotalPages(total int64) int {
	if total <= 0 || p.Size <= 0 {
		return 0
	}
	return int((total + int64(p.Size) - 1) / int64(p.Size))
}

func atoiDefault(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	return def
}
