package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		line    string
		want    Selector
		wantErr bool
	}{
		{line: "1", want: SelectorAddBook},
		{line: "8", want: SelectorExit},
		{line: " 5 ", want: SelectorBorrow},
		{line: "42", want: 42},
		{line: "-3", want: -3},
		{line: "abc", wantErr: true},
		{line: "", wantErr: true},
		{line: "1 2", wantErr: true},
		{line: "0x1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseSelector(tt.line)

			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelector_Valid(t *testing.T) {
	for s := SelectorAddBook; s <= SelectorExit; s++ {
		assert.True(t, s.Valid(), "selector %d", s)
	}

	assert.False(t, Selector(0).Valid())
	assert.False(t, Selector(9).Valid())
	assert.False(t, Selector(-1).Valid())
}

func TestSelector_Command(t *testing.T) {
	want := map[Selector]string{
		SelectorAddBook:        "add_book",
		SelectorListBooks:      "list_books",
		SelectorSearchByTitle:  "search_by_title",
		SelectorSearchByAuthor: "search_by_author",
		SelectorBorrow:         "borrow",
		SelectorReturn:         "return",
		SelectorShowStock:      "show_stock",
		SelectorExit:           "exit",
		Selector(99):           "unknown",
	}

	for sel, name := range want {
		assert.Equal(t, name, sel.Command())
	}
}
