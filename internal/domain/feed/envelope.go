// Package feed holds the closed set of input schemas for the API-Football v3
// resources. Payloads are decoded into these types once, at the adapter
// boundary; nothing past the normalizer sees untyped JSON.
package feed

// Envelope is the common response wrapper.
type Envelope[T any] struct {
	Get      string `json:"get"`
	Errors   Scalar `json:"errors"`
	Results  int    `json:"results"`
	Paging   Paging `json:"paging"`
	Response []T    `json:"response"`
}

type Paging struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// Page is one decoded page of a listing.
type Page[T any] struct {
	Entries []T
	Current int
	Total   int
}

// IsLast reports whether no further page should be requested. Unpaged
// resources report 0/0 or 1/1.
func (p Page[T]) IsLast() bool {
	return p.Total <= 0 || p.Current >= p.Total
}

// PageOf flattens an envelope into a Page.
func PageOf[T any](env Envelope[T]) Page[T] {
	current := env.Paging.Current
	if current <= 0 {
		current = 1
	}
	return Page[T]{Entries: env.Response, Current: current, Total: env.Paging.Total}
}
