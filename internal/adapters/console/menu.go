package console

import (
	"strconv"
	"strings"
)

// Selector is a menu choice read from the console.
type Selector int

// Menu selectors. The numbering is part of the console contract.
const (
	SelectorAddBook Selector = iota + 1
	SelectorListBooks
	SelectorSearchByTitle
	SelectorSearchByAuthor
	SelectorBorrow
	SelectorReturn
	SelectorShowStock
	SelectorExit
)

// Valid reports whether s is one of the menu selectors.
func (s Selector) Valid() bool {
	return s >= SelectorAddBook && s <= SelectorExit
}

// Command returns the command name used in spans, metrics and logs.
func (s Selector) Command() string {
	switch s {
	case SelectorAddBook:
		return "add_book"
	case SelectorListBooks:
		return "list_books"
	case SelectorSearchByTitle:
		return "search_by_title"
	case SelectorSearchByAuthor:
		return "search_by_author"
	case SelectorBorrow:
		return "borrow"
	case SelectorReturn:
		return "return"
	case SelectorShowStock:
		return "show_stock"
	case SelectorExit:
		return "exit"
	default:
		return "unknown"
	}
}

// parseSelector parses one selector line. Surrounding whitespace is ignored;
// anything else that is not a base-10 integer is an error.
func parseSelector(line string) (Selector, error) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, err
	}

	return Selector(n), nil
}
