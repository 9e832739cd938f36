// Package domain contains core business entities and rules.
package domain

// Search labels reported alongside search results.
const (
	LabelTitle  = "title"
	LabelAuthor = "author"
)

// Book is a single catalog record: a title and an author.
// Books carry no identity; two books with equal fields are indistinguishable.
type Book struct {
	// Title is matched exactly, including case and whitespace.
	Title string

	// Author is matched exactly, including case and whitespace.
	Author string
}

// NewBook constructs a book record. Empty fields are accepted.
func NewBook(title, author string) Book {
	return Book{Title: title, Author: author}
}

// String renders the book as "title by author".
func (b Book) String() string {
	return b.Title + " by " + b.Author
}

// BookPredicate selects catalog records.
type BookPredicate func(Book) bool

// TitleEquals matches books whose title is exactly title.
func TitleEquals(title string) BookPredicate {
	return func(b Book) bool {
		return b.Title == title
	}
}

// AuthorEquals matches books whose author is exactly author.
func AuthorEquals(author string) BookPredicate {
	return func(b Book) bool {
		return b.Author == author
	}
}
