// Package ports defines the contracts between the console adapter and the
// application layer, and between the application layer and its observers.
//
// Port Design Principles:
//   - Context first on operations that log or trace
//   - Return domain types, never adapter types
//   - Business outcomes such as "out of stock" are domain errors
package ports

import (
	"context"
	"iter"

	"github.com/jsamuelsen/library-console/internal/domain"
)

// SearchResult is the outcome of a first-match catalog search.
type SearchResult struct {
	// Label names the searched field (domain.LabelTitle, domain.LabelAuthor).
	Label string

	// Key is the searched value. Empty for ad hoc predicate searches.
	Key string

	// Book is the first matching record. Valid only when Found is true.
	Book domain.Book

	// Found reports whether any record matched.
	Found bool

	// CatalogEmpty reports that the catalog held no records at search time.
	CatalogEmpty bool
}

// Err returns a *domain.NotFoundError when nothing matched, nil otherwise.
func (r SearchResult) Err() error {
	if r.Found {
		return nil
	}

	return domain.NewNotFoundError("book", r.Key)
}

// BookCatalog is the ordered, append-only collection of book records.
type BookCatalog interface {
	// AddBook appends a record and returns a handle to it. Duplicates are kept.
	AddBook(ctx context.Context, title, author string) *domain.Book

	// Books yields every record in insertion order. The sequence is restartable.
	Books() iter.Seq[domain.Book]

	// Len reports the number of records.
	Len() int

	// SearchByTitle reports the first record whose title equals title.
	SearchByTitle(ctx context.Context, title string) SearchResult

	// SearchByAuthor reports the first record whose author equals author.
	SearchByAuthor(ctx context.Context, author string) SearchResult
}

// Lending tracks per-title stock counts.
type Lending interface {
	// InitializeStock sets (overwrites) the count for book's title.
	InitializeStock(ctx context.Context, book *domain.Book, quantity int)

	// Borrow decrements the count for title and returns the remaining count.
	// Returns domain.ErrNotRegistered or domain.ErrOutOfStock without changing state.
	Borrow(ctx context.Context, title string) (int, error)

	// Return increments the count for title and returns the new count.
	// Returns domain.ErrNotRegistered without changing state.
	Return(ctx context.Context, title string) (int, error)

	// Stock yields every title and its count in unspecified order.
	Stock() iter.Seq2[string, int]

	// Len reports the number of registered titles.
	Len() int
}

// Lending outcomes recorded by LendingMetrics.
const (
	OutcomeSuccess       = "success"
	OutcomeNotRegistered = "not_registered"
	OutcomeOutOfStock    = "out_of_stock"
)

// LendingMetrics observes catalog and lending activity.
// Implementations must be safe for concurrent use; they are scraped
// from a different goroutine than the one that records.
type LendingMetrics interface {
	BookAdded()
	StockInitialized(quantity int)
	BorrowRecorded(outcome string)
	ReturnRecorded(outcome string)
}
