// Package app contains the application services behind the console:
// the book catalog and the lending registry.
//
// Both services are single-goroutine by contract. They are driven by the
// console loop only and hold no locks.
package app

import (
	"context"
	"iter"
	"log/slog"

	"github.com/jsamuelsen/library-console/internal/domain"
	"github.com/jsamuelsen/library-console/internal/platform/logging"
	"github.com/jsamuelsen/library-console/internal/ports"
)

// Catalog owns the ordered list of book records.
// Records are appended and never removed; duplicates are kept.
type Catalog struct {
	books   []*domain.Book
	metrics ports.LendingMetrics
	logger  *slog.Logger
}

// CatalogConfig contains optional collaborators for the catalog.
type CatalogConfig struct {
	Metrics ports.LendingMetrics
	Logger  *slog.Logger
}

// NewCatalog creates an empty catalog.
func NewCatalog(cfg CatalogConfig) *Catalog {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &Catalog{
		books:   make([]*domain.Book, 0),
		metrics: metrics,
		logger:  logger.With(slog.String("component", "app.Catalog")),
	}
}

// AddBook appends a new record and returns a handle to it.
// The handle is what callers pass on to the lending registry.
func (c *Catalog) AddBook(ctx context.Context, title, author string) *domain.Book {
	book := domain.NewBook(title, author)
	c.books = append(c.books, &book)
	c.metrics.BookAdded()

	logging.FromContextOr(ctx, c.logger).DebugContext(ctx, "book added",
		slog.String("title", title),
		slog.String("author", author),
		slog.Int("catalog_size", len(c.books)),
	)

	return &book
}

// Books yields the records in insertion order. Each call starts over.
func (c *Catalog) Books() iter.Seq[domain.Book] {
	return func(yield func(domain.Book) bool) {
		for _, b := range c.books {
			if !yield(*b) {
				return
			}
		}
	}
}

// Len reports the number of records.
func (c *Catalog) Len() int {
	return len(c.books)
}

// SearchBooks reports the first record, in insertion order, that satisfies pred.
// Later matches are never reported.
func (c *Catalog) SearchBooks(ctx context.Context, label string, pred domain.BookPredicate) ports.SearchResult {
	result := ports.SearchResult{Label: label, CatalogEmpty: len(c.books) == 0}

	if b := c.FindBook(pred); b != nil {
		result.Book = *b
		result.Found = true
	}

	logging.FromContextOr(ctx, c.logger).DebugContext(ctx, "catalog searched",
		slog.String("label", label),
		slog.Bool("found", result.Found),
	)

	return result
}

// SearchByTitle reports the first record whose title equals title exactly.
func (c *Catalog) SearchByTitle(ctx context.Context, title string) ports.SearchResult {
	result := c.SearchBooks(ctx, domain.LabelTitle, domain.TitleEquals(title))
	result.Key = title

	return result
}

// SearchByAuthor reports the first record whose author equals author exactly.
func (c *Catalog) SearchByAuthor(ctx context.Context, author string) ports.SearchResult {
	result := c.SearchBooks(ctx, domain.LabelAuthor, domain.AuthorEquals(author))
	result.Key = author

	return result
}

// FindBook returns a handle to the first record satisfying pred, or nil.
func (c *Catalog) FindBook(pred domain.BookPredicate) *domain.Book {
	for _, b := range c.books {
		if pred(*b) {
			return b
		}
	}

	return nil
}

// GetBookByTitle returns the first record whose title equals title, or nil.
func (c *Catalog) GetBookByTitle(title string) *domain.Book {
	return c.FindBook(domain.TitleEquals(title))
}

// GetBookByAuthor returns the first record whose author equals author, or nil.
func (c *Catalog) GetBookByAuthor(author string) *domain.Book {
	return c.FindBook(domain.AuthorEquals(author))
}

// noopMetrics discards all observations.
type noopMetrics struct{}

func (noopMetrics) BookAdded()            {}
func (noopMetrics) StockInitialized(int)  {}
func (noopMetrics) BorrowRecorded(string) {}
func (noopMetrics) ReturnRecorded(string) {}

var (
	_ ports.BookCatalog = (*Catalog)(nil)
	_ ports.Lending     = (*LendingRegistry)(nil)
)
