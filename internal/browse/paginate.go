package browse

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 20

// windowRadius is how many pages around the current page stay visible in the
// page-number window.
const windowRadius = 2

// Page describes one computed page over a filtered sequence.
type Page struct {
	// Start and End are the half-open slice bounds of the page items.
	Start int
	End   int

	// Number is the clamped page number actually served.
	Number int

	// TotalPages is max(1, ceil(total/size)).
	TotalPages int
}

// Paginate computes the page bounds for a sequence of length total.
// size values < 1 fall back to DefaultPageSize; the requested page is
// clamped into [1, TotalPages], never rejected.
func Paginate(total, size, page int) Page {
	if size < 1 {
		size = DefaultPageSize
	}

	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return Page{Start: start, End: end, Number: page, TotalPages: totalPages}
}

// PageMark is one entry of the page-number window: either a page number or
// an ellipsis standing in for a collapsed run of hidden pages.
type PageMark struct {
	Page     int  `json:"page,omitempty"`
	Ellipsis bool `json:"ellipsis,omitempty"`
}

// Window builds the "1 … 7 8 9 … 42" page-number control. The first page,
// the last page, and every page within two of current are always visible; a
// hidden run collapses into a single ellipsis marker only when it is at
// least two pages long (a run of one is cheaper to show than to elide).
func Window(current, totalPages int) []PageMark {
	if totalPages < 1 {
		totalPages = 1
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	visible := func(p int) bool {
		if p == 1 || p == totalPages {
			return true
		}
		return p >= current-windowRadius && p <= current+windowRadius
	}

	var marks []PageMark
	page := 1
	for page <= totalPages {
		if visible(page) {
			marks = append(marks, PageMark{Page: page})
			page++
			continue
		}

		// Measure the hidden run starting here.
		runStart := page
		for page <= totalPages && !visible(page) {
			page++
		}
		if page-runStart >= 2 {
			marks = append(marks, PageMark{Ellipsis: true})
		} else {
			marks = append(marks, PageMark{Page: runStart})
		}
	}

	return marks
}
