package toxguard

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/toxguard-ai/toxguard/internal/redact"
)

// ErrVocabUnreadable is returned when the vocabulary bytes are not text.
var ErrVocabUnreadable = errors.New("vocabulary is not valid UTF-8 text")

// Vocabulary maps token strings to dense ids assigned by line order.
type Vocabulary struct {
	ids  map[string]int64
	size int64
}

// ParseVocabulary builds a vocabulary from a newline-separated token list.
// Line number (after skipping blanks) becomes the token id. Duplicate tokens
// keep the id of their last occurrence.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	if !utf8.Valid(data) {
		return nil, ErrVocabUnreadable
	}

	ids := make(map[string]int64)
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var idx int64
	var dups int
	for sc.Scan() {
		token := strings.TrimSpace(sc.Text())
		if token == "" {
			continue
		}
		if _, ok := ids[token]; ok {
			dups++
		}
		ids[token] = idx
		idx++
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan vocab: %w", err)
	}
	if dups > 0 {
		redact.Logf("toxguard: vocabulary has %d duplicate tokens (last occurrence wins)", dups)
	}

	return &Vocabulary{ids: ids, size: idx}, nil
}

// LoadVocabulary reads and parses a vocab.txt file.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocab: %w", err)
	}
	return ParseVocabulary(data)
}

// IDOf returns the id for token, if present.
func (v *Vocabulary) IDOf(token string) (int64, bool) {
	if v == nil {
		return 0, false
	}
	id, ok := v.ids[token]
	return id, ok
}

// Size returns the number of distinct ids assigned.
func (v *Vocabulary) Size() int64 {
	if v == nil {
		return 0
	}
	return v.size
}
