package toxguard

import (
	"strings"
)

const continuationPrefix = "##"

// Punctuation that gets split off into its own word-candidate before
// whitespace splitting.
var splitPunctuation = map[rune]bool{
	'.': true, ',': true, '!': true, '?': true, ';': true, ':': true,
	'(': true, ')': true, '[': true, ']': true, '{': true, '}': true,
	'"': true, '-': true,
}

// WordPieceTokenizer converts raw text into a fixed-length id sequence.
type WordPieceTokenizer struct {
	vocab  *Vocabulary
	config TokenizerConfig
	ids    specialTokenIDs
}

// NewWordPieceTokenizer builds a tokenizer over vocab with the given config
// and special tokens.
func NewWordPieceTokenizer(vocab *Vocabulary, config TokenizerConfig, specials SpecialTokens) *WordPieceTokenizer {
	if config.MaxSeqLen <= 0 {
		config.MaxSeqLen = DefaultMaxSeqLen
	}
	return &WordPieceTokenizer{
		vocab:  vocab,
		config: config,
		ids:    resolveSpecialIDs(vocab, specials),
	}
}

// MaxSeqLen returns the fixed output length of Encode.
func (t *WordPieceTokenizer) MaxSeqLen() int { return t.config.MaxSeqLen }

// PadID returns the id used for trailing padding.
func (t *WordPieceTokenizer) PadID() int64 { return t.ids.pad }

// Encode tokenizes text into exactly MaxSeqLen ids: CLS, subword ids, SEP,
// then PAD fill. SEP is omitted when truncation consumed all space.
func (t *WordPieceTokenizer) Encode(text string) []int64 {
	seqLen := t.config.MaxSeqLen
	if t.config.LowerCase {
		text = strings.ToLower(text)
	}
	text = strings.TrimSpace(text)

	tokens := make([]int64, 0, seqLen)
	tokens = append(tokens, t.ids.cls)

	// Reserve the final slot for SEP.
	limit := seqLen - 1
outer:
	for _, word := range splitWords(text) {
		for _, id := range t.wordPiece(word) {
			if len(tokens) >= limit {
				break outer
			}
			tokens = append(tokens, id)
		}
	}

	if len(tokens) < seqLen {
		tokens = append(tokens, t.ids.sep)
	}
	for len(tokens) < seqLen {
		tokens = append(tokens, t.ids.pad)
	}
	return tokens[:seqLen]
}

// wordPiece maps one word to its subword ids: the exact word when known,
// otherwise greedy longest-prefix matching with the ## continuation marker.
// A word with no matching prefix at any position collapses to a single UNK;
// partial matches never leak through.
func (t *WordPieceTokenizer) wordPiece(word string) []int64 {
	if id, ok := t.vocab.IDOf(word); ok {
		return []int64{id}
	}

	var pieces []int64
	start := 0
	for start < len(word) {
		matched := false
		for end := len(word); end > start; end-- {
			sub := word[start:end]
			if start > 0 {
				sub = continuationPrefix + sub
			}
			if id, ok := t.vocab.IDOf(sub); ok {
				pieces = append(pieces, id)
				start = end
				matched = true
				break
			}
		}
		if !matched {
			return []int64{t.ids.unk}
		}
	}
	if len(pieces) == 0 {
		return []int64{t.ids.unk}
	}
	return pieces
}

// splitWords isolates punctuation into separate candidates and splits the
// rest on whitespace runs.
func splitWords(text string) []string {
	if text == "" {
		return nil
	}
	var b strings.Builder
	b.Grow(len(text) + 16)
	for _, r := range text {
		if splitPunctuation[r] {
			b.WriteByte(' ')
			b.WriteRune(r)
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return strings.Fields(b.String())
}
