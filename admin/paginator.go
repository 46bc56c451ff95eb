// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package admin

import (
	"net/url"
	"strconv"
)

// Paginator splits a change list into pages. Page is zero-based, as in the
// p query parameter.
type Paginator struct {
	Total   int
	PerPage int
	Page    int

	query url.Values
}

// RequestedPage returns the zero-based page asked for in q.
func RequestedPage(q url.Values) int {
	page, err := strconv.Atoi(q.Get(PageParam))
	if err != nil || page < 0 {
		return 0
	}
	return page
}

// NewPaginator reads the page from q and clamps it to the available pages.
func NewPaginator(q url.Values, total, perPage int) Paginator {
	p := Paginator{Total: total, PerPage: perPage, query: q}
	page := RequestedPage(q)
	if last := p.NumPages() - 1; page > last {
		page = last
	}
	p.Page = page
	return p
}

func (p Paginator) NumPages() int {
	if p.Total == 0 || p.PerPage <= 0 {
		return 1
	}
	return (p.Total + p.PerPage - 1) / p.PerPage
}

func (p Paginator) Offset() int {
	return p.Page * p.PerPage
}

func (p Paginator) Multipage() bool {
	return p.NumPages() > 1
}

// PageLink is one page number in the pagination bar.
type PageLink struct {
	Number      int // one-based, for display
	QueryString string
	Current     bool
}

func (p Paginator) Links() []PageLink {
	links := make([]PageLink, 0, p.NumPages())
	for i := 0; i < p.NumPages(); i++ {
		links = append(links, PageLink{
			Number:      i + 1,
			QueryString: QueryString(p.query, map[string]string{PageParam: strconv.Itoa(i)}),
			Current:     i == p.Page,
		})
	}
	return links
}
