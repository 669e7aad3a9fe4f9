// Package results filters and orders scan findings for display.
package results

import (
	"cmp"
	"slices"
	"strings"

	"github.com/anstrom/portsim/internal/errors"
	"github.com/anstrom/portsim/internal/scanning"
)

// Filter selects findings by port status.
type Filter string

// Filter values.
const (
	FilterAll    Filter = "all"
	FilterOpen   Filter = "open"
	FilterClosed Filter = "closed"
)

// SortKey names the field findings are ordered by.
type SortKey string

// Sort keys.
const (
	SortByPort    SortKey = "port"
	SortByStatus  SortKey = "status"
	SortByService SortKey = "service"
)

// Order is the sort direction.
type Order string

// Sort directions.
const (
	Ascending  Order = "asc"
	Descending Order = "desc"
)

// ViewOptions controls how findings are presented.
type ViewOptions struct {
	Filter Filter  `json:"filter"`
	SortBy SortKey `json:"sort"`
	Order  Order   `json:"order"`
}

// DefaultViewOptions shows every finding by ascending port.
func DefaultViewOptions() ViewOptions {
	return ViewOptions{Filter: FilterAll, SortBy: SortByPort, Order: Ascending}
}

// ParseFilter parses a filter name. An empty string selects FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterOpen, FilterClosed:
		return f, nil
	default:
		return "", errors.ErrInvalidOption("status", s)
	}
}

// ParseSortKey parses a sort key. An empty string selects SortByPort.
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortByPort, nil
	case SortByPort, SortByStatus, SortByService:
		return k, nil
	default:
		return "", errors.ErrInvalidOption("sort", s)
	}
}

// ParseOrder parses a sort direction. An empty string selects Ascending.
func ParseOrder(s string) (Order, error) {
	switch o := Order(strings.ToLower(strings.TrimSpace(s))); o {
	case "":
		return Ascending, nil
	case Ascending, Descending:
		return o, nil
	default:
		return "", errors.ErrInvalidOption("order", s)
	}
}

// ParseViewOptions parses all three view parameters, returning the first error.
func ParseViewOptions(filter, sortBy, order string) (ViewOptions, error) {
	var opts ViewOptions
	var err error
	if opts.Filter, err = ParseFilter(filter); err != nil {
		return ViewOptions{}, err
	}
	if opts.SortBy, err = ParseSortKey(sortBy); err != nil {
		return ViewOptions{}, err
	}
	if opts.Order, err = ParseOrder(order); err != nil {
		return ViewOptions{}, err
	}
	return opts, nil
}

// Toggle flips the direction.
func (o Order) Toggle() Order {
	if o == Descending {
		return Ascending
	}
	return Descending
}

// ToggleSort applies a header click: selecting the current key flips the
// direction, selecting a new key sorts ascending by it.
func (v ViewOptions) ToggleSort(key SortKey) ViewOptions {
	if v.SortBy == key {
		v.Order = v.Order.Toggle()
		return v
	}
	v.SortBy = key
	v.Order = Ascending
	return v
}

// View returns the findings selected by opts in the requested order.
// The input slice is never modified. Ties keep their discovery order.
func View(findings []scanning.Finding, opts ViewOptions) []scanning.Finding {
	out := make([]scanning.Finding, 0, len(findings))
	for _, f := range findings {
		if matches(f, opts.Filter) {
			out = append(out, f)
		}
	}

	compare := comparator(opts.SortBy)
	if opts.Order == Descending {
		slices.SortStableFunc(out, func(a, b scanning.Finding) int { return compare(b, a) })
	} else {
		slices.SortStableFunc(out, compare)
	}
	return out
}

func matches(f scanning.Finding, filter Filter) bool {
	switch filter {
	case FilterOpen:
		return f.Status == scanning.PortOpen
	case FilterClosed:
		return f.Status == scanning.PortClosed
	default:
		return true
	}
}

func comparator(key SortKey) func(a, b scanning.Finding) int {
	switch key {
	case SortByStatus:
		return func(a, b scanning.Finding) int { return cmp.Compare(a.Status, b.Status) }
	case SortByService:
		return func(a, b scanning.Finding) int { return cmp.Compare(a.Service, b.Service) }
	default:
		return func(a, b scanning.Finding) int { return cmp.Compare(a.Port, b.Port) }
	}
}

// Counts tallies findings by status.
type Counts struct {
	Total  int `json:"total"`
	Open   int `json:"open"`
	Closed int `json:"closed"`
}

// Count tallies findings by status.
func Count(findings []scanning.Finding) Counts {
	c := Counts{Total: len(findings)}
	for _, f := range findings {
		switch f.Status {
		case scanning.PortOpen:
			c.Open++
		case scanning.PortClosed:
			c.Closed++
		}
	}
	return c
}
