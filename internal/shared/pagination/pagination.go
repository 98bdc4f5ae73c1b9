// Package pagination computes length-aware page metadata and the navigation
// links clients render under a paginated table.
package pagination

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultPerPage is the number of records per page.
	DefaultPerPage = 10

	// onEachSide is the number of numbered links kept on each side of the current page.
	onEachSide = 3

	PreviousLabel = "&laquo; Previous"
	NextLabel     = "Next &raquo;"
	Separator     = "..."
)

// Params represents the requested page.
type Params struct {
	Page    int
	PerPage int
	Offset  int
}

// NewParams clamps page to at least 1 and falls back to DefaultPerPage for a non-positive perPage.
// page is also capped so that the offset fits in an int.
func NewParams(page, perPage int) Params {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	if maxPage := math.MaxInt / perPage; page > maxPage {
		page = maxPage
	}
	return Params{
		Page:    page,
		PerPage: perPage,
		Offset:  (page - 1) * perPage,
	}
}

// ParsePage reads a page number from a query string value. Anything that is
// not a positive integer yields 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Meta describes one page of a result set.
type Meta struct {
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	PerPage     int   `json:"per_page"`
	From        *int  `json:"from"`
	To          *int  `json:"to"`
	Total       int64 `json:"total"`
}

// NewMeta builds page metadata. count is the number of records actually on the page.
func NewMeta(p Params, total int64, count int) Meta {
	lastPage := int((total + int64(p.PerPage) - 1) / int64(p.PerPage))
	if lastPage < 1 {
		lastPage = 1
	}
	m := Meta{
		CurrentPage: p.Page,
		LastPage:    lastPage,
		PerPage:     p.PerPage,
		Total:       total,
	}
	if count > 0 {
		from := p.Offset + 1
		to := p.Offset + count
		m.From = &from
		m.To = &to
	}
	return m
}

// HasMorePages reports whether a page exists after the current one.
func (m Meta) HasMorePages() bool {
	return m.CurrentPage < m.LastPage
}

// Link is one entry of the navigation bar. URL is nil when the link is
// disabled; Page is nil for separators.
type Link struct {
	URL    *string `json:"url"`
	Label  string  `json:"label"`
	Active bool    `json:"active"`
	Page   *int    `json:"page"`
}

// Links returns previous, numbered and next links for m. Every URL is built
// from path plus query with the page parameter replaced, so the caller's
// filters survive navigation.
func Links(m Meta, path string, query url.Values) []Link {
	pageURL := func(page int) *string {
		q := url.Values{}
		for k, vs := range query {
			if k == "page" {
				continue
			}
			q[k] = append([]string(nil), vs...)
		}
		q.Set("page", strconv.Itoa(page))
		u := path + "?" + q.Encode()
		return &u
	}
	pageLink := func(page int) Link {
		n := page
		return Link{URL: pageURL(page), Label: strconv.Itoa(page), Active: page == m.CurrentPage, Page: &n}
	}

	links := make([]Link, 0, 16)

	prev := Link{Label: PreviousLabel}
	if m.CurrentPage > 1 {
		n := m.CurrentPage - 1
		prev.URL, prev.Page = pageURL(n), &n
	}
	links = append(links, prev)

	for _, block := range elements(m.CurrentPage, m.LastPage) {
		if block == nil {
			links = append(links, Link{Label: Separator})
			continue
		}
		for _, page := range block {
			links = append(links, pageLink(page))
		}
	}

	next := Link{Label: NextLabel}
	if m.HasMorePages() {
		n := m.CurrentPage + 1
		next.URL, next.Page = pageURL(n), &n
	}
	return append(links, next)
}

// elements returns blocks of page numbers; a nil block stands for a separator.
func elements(current, last int) [][]int {
	if last < onEachSide*2+8 {
		return [][]int{pageRange(1, last)}
	}

	window := onEachSide + 4
	start := pageRange(1, 2)
	finish := pageRange(last-1, last)

	switch {
	case current <= window:
		return [][]int{pageRange(1, window+onEachSide), nil, finish}
	case current > last-window:
		return [][]int{start, nil, pageRange(last-(window+(onEachSide-1)), last)}
	default:
		return [][]int{start, nil, pageRange(current-onEachSide, current+onEachSide), nil, finish}
	}
}

func pageRange(from, to int) []int {
	out := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}
