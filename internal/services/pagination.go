package services

import "math"

const (
	DefaultPageSize = 10
	MaxPageSize     = 100

	// maxPageNumber keeps (Number-1)*Size from overflowing int.
	maxPageNumber = math.MaxInt / MaxPageSize
)

// Page is a normalized page request. Number starts at 1.
type Page struct {
	Number int
	Size   int
}

func NewPage(number, size int) Page {
	if number < 1 {
		number = 1
	}
	if number > maxPageNumber {
		number = maxPageNumber
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	return Page{Number: number, Size: size}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

func TotalPages(total, size int) int {
	if total <= 0 || size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
