package console

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// lineReader reads whole lines from the console input.
//
// A line is everything up to the next '\n'; the terminator and a preceding
// '\r' are dropped and all other characters, spaces included, are kept.
// Reading a selector consumes its entire line, so no terminator is ever left
// behind for the next text prompt to trip over.
type lineReader struct {
	r *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReader(r)}
}

// ReadLine returns the next line. A final line without a terminator is
// returned normally; io.EOF is reported only once no characters remain.
func (l *lineReader) ReadLine() (string, error) {
	line, err := l.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSuffix(line, "\r"), nil
		}

		return "", err
	}

	line = strings.TrimSuffix(line, "\n")

	return strings.TrimSuffix(line, "\r"), nil
}
