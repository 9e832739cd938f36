// Package console drives the library through an interactive text menu.
//
// The console is the only goroutine that touches the catalog and the lending
// registry. Every command runs in its own span with its own request ID; the
// session as a whole shares one correlation ID.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jsamuelsen/library-console/internal/domain"
	"github.com/jsamuelsen/library-console/internal/platform/logging"
	"github.com/jsamuelsen/library-console/internal/platform/telemetry"
	"github.com/jsamuelsen/library-console/internal/ports"
)

// Command outcomes recorded on spans and command instruments.
const (
	outcomeOK            = "ok"
	outcomeFound         = "found"
	outcomeNotFound      = "not_found"
	outcomeEmpty         = "empty"
	outcomeNotRegistered = ports.OutcomeNotRegistered
	outcomeOutOfStock    = ports.OutcomeOutOfStock
	outcomeInvalid       = "invalid"
	outcomeInputClosed   = "input_closed"
	outcomeError         = "error"
)

// checkerName is the health checker name reported by Checker.
const checkerName = "console"

// ErrInputClosed is reported by the health checker once the console input
// has ended.
var ErrInputClosed = errors.New("console input closed")

// Config contains the console's collaborators.
type Config struct {
	// In is the console input. Required.
	In io.Reader

	// Out receives all user-facing output. Required.
	Out io.Writer

	// Catalog holds the book records. Required.
	Catalog ports.BookCatalog

	// Lending holds per-title stock. Required.
	Lending ports.Lending

	// Messages is the output catalogue. Defaults to English.
	Messages *Messages

	// DefaultQuantity seeds the stock of every added book.
	DefaultQuantity int

	// Logger defaults to slog.Default().
	Logger *slog.Logger

	// Tracer defaults to a noop tracer.
	Tracer trace.Tracer

	// Instruments is optional.
	Instruments *telemetry.CommandInstruments

	// SessionID correlates every command of the session. Defaults to a new UUID.
	SessionID string
}

// Console runs the menu loop.
type Console struct {
	in          *lineReader
	out         *printer
	catalog     ports.BookCatalog
	lending     ports.Lending
	msgs        Messages
	quantity    int
	logger      *slog.Logger
	tracer      trace.Tracer
	instruments *telemetry.CommandInstruments
	sessionID   string
	inputClosed atomic.Bool
}

// New creates a console from cfg.
func New(cfg Config) (*Console, error) {
	switch {
	case cfg.In == nil:
		return nil, errors.New("console: input reader is required")
	case cfg.Out == nil:
		return nil, errors.New("console: output writer is required")
	case cfg.Catalog == nil:
		return nil, errors.New("console: catalog is required")
	case cfg.Lending == nil:
		return nil, errors.New("console: lending registry is required")
	}

	msgs := English()
	if cfg.Messages != nil {
		msgs = *cfg.Messages
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("")
	}

	sessionID := cfg.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	return &Console{
		in:          newLineReader(cfg.In),
		out:         &printer{w: cfg.Out},
		catalog:     cfg.Catalog,
		lending:     cfg.Lending,
		msgs:        msgs,
		quantity:    cfg.DefaultQuantity,
		logger:      logger.With(slog.String("component", "console")),
		tracer:      tracer,
		instruments: cfg.Instruments,
		sessionID:   sessionID,
	}, nil
}

// SessionID returns the correlation ID shared by every command of this session.
func (c *Console) SessionID() string {
	return c.sessionID
}

// Checker returns a health checker that fails once the input has ended.
// It is safe to call from any goroutine.
func (c *Console) Checker() ports.HealthChecker {
	return ports.CheckerFunc{
		CheckName: checkerName,
		Fn: func(context.Context) error {
			if c.inputClosed.Load() {
				return ErrInputClosed
			}

			return nil
		},
	}
}

// Run executes the menu loop until the exit selector is chosen or the input
// ends, both of which return nil. Cancellation of ctx is observed between
// commands and returned as ctx.Err().
func (c *Console) Run(ctx context.Context) error {
	ctx = logging.WithCorrelationID(logging.WithContext(ctx, c.logger), c.sessionID)
	logger := logging.FromContext(ctx)

	logger.InfoContext(ctx, "console session started")

	for {
		if err := ctx.Err(); err != nil {
			logger.InfoContext(ctx, "console session cancelled")
			return err
		}

		c.renderMenu()
		if err := c.out.Err(); err != nil {
			return fmt.Errorf("writing menu: %w", err)
		}

		line, err := c.in.ReadLine()
		if err != nil {
			return c.endOfInput(ctx, err)
		}

		sel, err := parseSelector(line)
		if err != nil {
			logger.DebugContext(ctx, "malformed selector", slog.String("input", line))
			c.out.Println(c.msgs.NotANumber)

			continue
		}

		if !sel.Valid() {
			logger.DebugContext(ctx, "unknown selector", slog.Int("selector", int(sel)))
			c.out.Println(c.msgs.InvalidSelector)

			continue
		}

		done, err := c.dispatch(ctx, sel)
		if err != nil {
			return c.endOfInput(ctx, err)
		}

		if err := c.out.Err(); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		if done {
			c.inputClosed.Store(true)
			logger.InfoContext(ctx, "console session finished")

			return nil
		}
	}
}

// endOfInput ends the session. Running out of input is a normal exit.
func (c *Console) endOfInput(ctx context.Context, err error) error {
	c.inputClosed.Store(true)

	if errors.Is(err, io.EOF) {
		logging.FromContextOr(ctx, c.logger).InfoContext(ctx, "console input closed")
		return nil
	}

	return fmt.Errorf("console: %w", err)
}

// handler runs one command and reports its outcome.
type handler func(ctx context.Context) (outcome string, err error)

// dispatch runs the command for sel. It reports done after the exit command.
func (c *Console) dispatch(ctx context.Context, sel Selector) (bool, error) {
	command := sel.Command()
	requestID := uuid.NewString()
	ctx = logging.WithRequestID(ctx, requestID)

	ctx, span := c.tracer.Start(ctx, "console."+command,
		trace.WithAttributes(
			attribute.String("console.command", command),
			attribute.String("console.request_id", requestID),
			attribute.String("console.session_id", c.sessionID),
		),
	)
	defer span.End()

	start := time.Now()

	outcome, err := c.handlerFor(sel)(ctx)
	if err != nil {
		outcome = outcomeError
		if errors.Is(err, io.EOF) {
			outcome = outcomeInputClosed
		} else {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}

	elapsed := time.Since(start)
	span.SetAttributes(attribute.String("console.outcome", outcome))
	c.instruments.Record(ctx, command, outcome, elapsed)

	logging.FromContextOr(ctx, c.logger).DebugContext(ctx, "command handled",
		slog.String("command", command),
		slog.String("outcome", outcome),
		slog.Duration("duration", elapsed),
	)

	return sel == SelectorExit && err == nil, err
}

func (c *Console) handlerFor(sel Selector) handler {
	switch sel {
	case SelectorAddBook:
		return c.addBook
	case SelectorListBooks:
		return c.listBooks
	case SelectorSearchByTitle:
		return c.searchByTitle
	case SelectorSearchByAuthor:
		return c.searchByAuthor
	case SelectorBorrow:
		return c.borrow
	case SelectorReturn:
		return c.returnBook
	case SelectorShowStock:
		return c.showStock
	case SelectorExit:
		return c.exit
	default:
		return c.invalidSelector(sel)
	}
}

// invalidSelector handles a selector that bypassed Valid.
func (c *Console) invalidSelector(sel Selector) handler {
	return func(ctx context.Context) (string, error) {
		logging.FromContextOr(ctx, c.logger).WarnContext(ctx, "no handler for selector", slog.Int("selector", int(sel)))
		c.out.Println(c.msgs.InvalidSelector)

		return outcomeInvalid, nil
	}
}

func (c *Console) addBook(ctx context.Context) (string, error) {
	title, err := c.prompt(c.msgs.PromptTitle)
	if err != nil {
		return "", err
	}

	author, err := c.prompt(c.msgs.PromptAuthor)
	if err != nil {
		return "", err
	}

	book := c.catalog.AddBook(ctx, title, author)
	c.out.Printf(c.msgs.BookAddedf+"\n", title, author)
	c.lending.InitializeStock(ctx, book, c.quantity)

	return outcomeOK, nil
}

func (c *Console) listBooks(context.Context) (string, error) {
	if c.catalog.Len() == 0 {
		c.out.Println(c.msgs.NoBooks)
		return outcomeEmpty, nil
	}

	c.out.Println(c.msgs.ListHeader)
	for b := range c.catalog.Books() {
		c.out.Printf(c.msgs.BookLinef+"\n", b.Title, b.Author)
	}

	return outcomeOK, nil
}

func (c *Console) searchByTitle(ctx context.Context) (string, error) {
	title, err := c.prompt(c.msgs.PromptTitle)
	if err != nil {
		return "", err
	}

	return c.renderSearch(ctx, c.catalog.SearchByTitle(ctx, title)), nil
}

func (c *Console) searchByAuthor(ctx context.Context) (string, error) {
	author, err := c.prompt(c.msgs.PromptAuthor)
	if err != nil {
		return "", err
	}

	return c.renderSearch(ctx, c.catalog.SearchByAuthor(ctx, author)), nil
}

func (c *Console) renderSearch(ctx context.Context, result ports.SearchResult) string {
	if result.CatalogEmpty {
		c.out.Println(c.msgs.NoBooks)
		return outcomeEmpty
	}

	c.out.Printf(c.msgs.SearchHeaderf+"\n", c.msgs.label(result.Label))

	if err := result.Err(); domain.IsNotFound(err) {
		logging.FromContextOr(ctx, c.logger).DebugContext(ctx, "search missed", slog.Any("error", err))
		c.out.Println(c.msgs.NotFound)

		return outcomeNotFound
	}

	c.out.Printf(c.msgs.BookLinef+"\n", result.Book.Title, result.Book.Author)

	return outcomeFound
}

func (c *Console) borrow(ctx context.Context) (string, error) {
	title, err := c.prompt(c.msgs.PromptBorrowTitle)
	if err != nil {
		return "", err
	}

	remaining, err := c.lending.Borrow(ctx, title)

	switch {
	case domain.IsNotRegistered(err):
		c.out.Printf(c.msgs.NotRegisteredf+"\n", title)
		return outcomeNotRegistered, nil
	case domain.IsOutOfStock(err):
		c.out.Printf(c.msgs.OutOfStockf+"\n", title)
		return outcomeOutOfStock, nil
	case err != nil:
		return "", fmt.Errorf("borrowing %q: %w", title, err)
	}

	c.out.Printf(c.msgs.BorrowSuccessf+"\n", title, remaining)

	return outcomeOK, nil
}

func (c *Console) returnBook(ctx context.Context) (string, error) {
	title, err := c.prompt(c.msgs.PromptReturnTitle)
	if err != nil {
		return "", err
	}

	count, err := c.lending.Return(ctx, title)

	switch {
	case domain.IsNotRegistered(err):
		c.out.Printf(c.msgs.NotRegisteredf+"\n", title)
		return outcomeNotRegistered, nil
	case err != nil:
		return "", fmt.Errorf("returning %q: %w", title, err)
	}

	c.out.Printf(c.msgs.ReturnSuccessf+"\n", title, count)

	return outcomeOK, nil
}

func (c *Console) showStock(context.Context) (string, error) {
	if c.lending.Len() == 0 {
		c.out.Println(c.msgs.NoStock)
		return outcomeEmpty, nil
	}

	c.out.Println(c.msgs.StockHeader)
	for title, count := range c.lending.Stock() {
		c.out.Printf(c.msgs.StockLinef+"\n", title, count)
	}

	return outcomeOK, nil
}

func (c *Console) exit(context.Context) (string, error) {
	c.out.Println(c.msgs.Farewell)
	return outcomeOK, nil
}

// prompt prints p and reads one text line.
func (c *Console) prompt(p string) (string, error) {
	c.out.Print(p)
	if err := c.out.Err(); err != nil {
		return "", err
	}

	return c.in.ReadLine()
}

func (c *Console) renderMenu() {
	c.out.Println()
	c.out.Println(c.msgs.MenuTitle)
	for _, item := range c.msgs.MenuItems {
		c.out.Println(item)
	}
	c.out.Print(c.msgs.Prompt)
}

// printer writes to the console output and keeps the first write error.
// Once an error is recorded, later writes are skipped.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) Print(a ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprint(p.w, a...)
	}
}

func (p *printer) Println(a ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintln(p.w, a...)
	}
}

func (p *printer) Printf(format string, a ...any) {
	if p.err == nil {
		_, p.err = fmt.Fprintf(p.w, format, a...)
	}
}

// Err returns the first write error, if any.
func (p *printer) Err() error {
	return p.err
}
