package app

import (
	"context"
	"iter"
	"log/slog"

	"github.com/jsamuelsen/library-console/internal/domain"
	"github.com/jsamuelsen/library-console/internal/platform/logging"
	"github.com/jsamuelsen/library-console/internal/ports"
)

// DefaultStockQuantity is the stock seeded for a newly cataloged title.
const DefaultStockQuantity = 3

// LendingRegistry maps book titles to the number of copies available.
//
// Entries are keyed by title text alone, so catalog records sharing a title
// share one counter. Returns are not capped at the initialized quantity.
type LendingRegistry struct {
	stock   map[string]int
	metrics ports.LendingMetrics
	logger  *slog.Logger
}

// LendingRegistryConfig contains optional collaborators for the registry.
type LendingRegistryConfig struct {
	Metrics ports.LendingMetrics
	Logger  *slog.Logger
}

// NewLendingRegistry creates an empty registry.
func NewLendingRegistry(cfg LendingRegistryConfig) *LendingRegistry {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	metrics := cfg.Metrics
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &LendingRegistry{
		stock:   make(map[string]int),
		metrics: metrics,
		logger:  logger.With(slog.String("component", "app.LendingRegistry")),
	}
}

// InitializeStock sets the count for book's title to quantity,
// overwriting any previous count.
func (r *LendingRegistry) InitializeStock(ctx context.Context, book *domain.Book, quantity int) {
	if book == nil {
		return
	}

	previous, existed := r.stock[book.Title]
	r.stock[book.Title] = quantity
	r.metrics.StockInitialized(quantity)

	logger := logging.FromContextOr(ctx, r.logger)
	if existed {
		logger.InfoContext(ctx, "stock reset for existing title",
			slog.String("title", book.Title),
			slog.Int("previous", previous),
			slog.Int("quantity", quantity),
		)

		return
	}

	logger.DebugContext(ctx, "stock initialized",
		slog.String("title", book.Title),
		slog.Int("quantity", quantity),
	)
}

// Borrow takes one copy of title and returns the remaining count.
func (r *LendingRegistry) Borrow(ctx context.Context, title string) (int, error) {
	logger := logging.FromContextOr(ctx, r.logger).With(slog.String("title", title))

	count, ok := r.stock[title]
	if !ok {
		r.metrics.BorrowRecorded(ports.OutcomeNotRegistered)
		logger.DebugContext(ctx, "borrow rejected: title not registered")

		return 0, domain.NewNotRegisteredError(title)
	}

	if count <= 0 {
		r.metrics.BorrowRecorded(ports.OutcomeOutOfStock)
		logger.DebugContext(ctx, "borrow rejected: out of stock")

		return count, domain.NewOutOfStockError(title)
	}

	count--
	r.stock[title] = count
	r.metrics.BorrowRecorded(ports.OutcomeSuccess)
	logger.DebugContext(ctx, "book borrowed", slog.Int("remaining", count))

	return count, nil
}

// Return puts one copy of title back and returns the new count.
func (r *LendingRegistry) Return(ctx context.Context, title string) (int, error) {
	logger := logging.FromContextOr(ctx, r.logger).With(slog.String("title", title))

	count, ok := r.stock[title]
	if !ok {
		r.metrics.ReturnRecorded(ports.OutcomeNotRegistered)
		logger.DebugContext(ctx, "return rejected: title not registered")

		return 0, domain.NewNotRegisteredError(title)
	}

	count++
	r.stock[title] = count
	r.metrics.ReturnRecorded(ports.OutcomeSuccess)
	logger.DebugContext(ctx, "book returned", slog.Int("count", count))

	return count, nil
}

// Stock yields every registered title with its count. Order is unspecified.
func (r *LendingRegistry) Stock() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for title, count := range r.stock {
			if !yield(title, count) {
				return
			}
		}
	}
}

// Count reports the count for title and whether the title is registered.
func (r *LendingRegistry) Count(title string) (int, bool) {
	count, ok := r.stock[title]
	return count, ok
}

// Len reports the number of registered titles.
func (r *LendingRegistry) Len() int {
	return len(r.stock)
}
