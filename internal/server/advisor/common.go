package advisor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// CommonList maps a password to its 1-based rank in a most-used list.
type CommonList struct {
	ranks map[string]int
	size  int
}

// NewCommonList ranks words in the order given. Duplicates keep their first rank.
func NewCommonList(words []string) *CommonList {
	l := &CommonList{ranks: make(map[string]int, len(words)), size: len(words)}
	for i, w := range words {
		if _, ok := l.ranks[w]; !ok {
			l.ranks[w] = i + 1
		}
	}
	return l
}

// ReadCommonList parses one password per line; the line number is the rank.
// Blank lines still count so ranks match the source file.
func ReadCommonList(r io.Reader) (*CommonList, error) {
	sc := bufio.NewScanner(r)
	var words []string
	for sc.Scan() {
		words = append(words, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read common list: %w", err)
	}
	return NewCommonList(words), nil
}

// LoadCommonList reads the list stored at path.
func LoadCommonList(path string) (*CommonList, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open common list: %w", err)
	}
	defer f.Close()
	return ReadCommonList(f)
}

func (l *CommonList) Rank(password string) (int, bool) {
	if password == "" {
		return 0, false
	}
	r, ok := l.ranks[password]
	return r, ok
}

// Len is the number of lines in the list, the largest possible rank.
func (l *CommonList) Len() int { return l.size }
