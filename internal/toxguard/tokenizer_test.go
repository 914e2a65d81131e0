package toxguard

import (
	"strings"
	"testing"
)

func newTestTokenizer(t *testing.T, tokens []string, maxSeqLen int) *WordPieceTokenizer {
	t.Helper()
	vocab, err := ParseVocabulary([]byte(strings.Join(tokens, "\n")))
	if err != nil {
		t.Fatalf("parse vocab: %v", err)
	}
	cfg := TokenizerConfig{MaxSeqLen: maxSeqLen, LowerCase: true}
	return NewWordPieceTokenizer(vocab, cfg, defaultSpecialTokens())
}

var baseVocab = []string{"[PAD]", "[CLS]", "[SEP]", "[UNK]", "hello", "world", "play", "##ing", "he", ","}

func TestEncodeAlwaysFixedLength(t *testing.T) {
	tok := newTestTokenizer(t, baseVocab, 8)
	for _, text := range []string{"", "hello", "hello world", strings.Repeat("hello ", 50), "zzz qqq"} {
		ids := tok.Encode(text)
		if len(ids) != 8 {
			t.Fatalf("text %q: got length %d, want 8", text, len(ids))
		}
	}
}

func TestEncodeEmptyInput(t *testing.T) {
	tok := newTestTokenizer(t, baseVocab, 6)
	ids := tok.Encode("")
	// [CLS] [SEP] then PAD fill.
	want := []int64{1, 2, 0, 0, 0, 0}
	assertIDs(t, ids, want)
}

func TestEncodeKnownWordSingleID(t *testing.T) {
	tok := newTestTokenizer(t, baseVocab, 6)
	ids := tok.Encode("hello")
	want := []int64{1, 4, 2, 0, 0, 0}
	assertIDs(t, ids, want)
}

func TestEncodeLowercasesInput(t *testing.T) {
	tok := newTestTokenizer(t, baseVocab, 6)
	assertIDs(t, tok.Encode("HELLO"), []int64{1, 4, 2, 0, 0, 0})
}

func TestEncodeGreedySubwords(t *testing.T) {
	tok := newTestTokenizer(t, baseVocab, 6)
	// "playing" is not in vocab; greedy longest-prefix gives play + ##ing.
	assertIDs(t, tok.Encode("playing"), []int64{1, 6, 7, 2, 0, 0})
}

func TestEncodeUnknownWordCollapsesToUNK(t *testing.T) {
	tok := newTestTokenizer(t, baseVocab, 6)
	// "hexyz": "he" matches as a prefix but "##xyz" never does, so the whole
	// word becomes a single UNK with no partial pieces leaking through.
	assertIDs(t, tok.Encode("hexyz"), []int64{1, 3, 2, 0, 0, 0})
	assertIDs(t, tok.Encode("qqq"), []int64{1, 3, 2, 0, 0, 0})
}

func TestEncodeSplitsPunctuation(t *testing.T) {
	tok := newTestTokenizer(t, baseVocab, 8)
	// "hello,world" → hello , world
	assertIDs(t, tok.Encode("hello,world"), []int64{1, 4, 9, 5, 2, 0, 0, 0})
}

func TestEncodeTruncationReservesSEPSlot(t *testing.T) {
	tok := newTestTokenizer(t, baseVocab, 4)
	// Budget is CLS + 2 ids + SEP.
	assertIDs(t, tok.Encode("hello hello hello hello"), []int64{1, 4, 4, 2})
}

func TestEncodeTruncationMidWord(t *testing.T) {
	tok := newTestTokenizer(t, []string{"[PAD]", "[CLS]", "[SEP]", "[UNK]", "play", "##ing"}, 3)
	// Only one slot before the SEP reserve; the word's second piece is cut.
	assertIDs(t, tok.Encode("playing"), []int64{1, 4, 2})
}

func TestEncodeMinimalVocabEndToEnd(t *testing.T) {
	vocab, err := ParseVocabulary([]byte("[CLS]\n[SEP]\n[PAD]\n"))
	if err != nil {
		t.Fatalf("parse vocab: %v", err)
	}
	tok := NewWordPieceTokenizer(vocab, TokenizerConfig{MaxSeqLen: 4, LowerCase: true}, defaultSpecialTokens())
	assertIDs(t, tok.Encode(""), []int64{0, 1, 2, 2})
}

func TestEncodeHelloEndToEnd(t *testing.T) {
	vocab, err := ParseVocabulary([]byte("[CLS]\n[SEP]\n[PAD]\nhello\n"))
	if err != nil {
		t.Fatalf("parse vocab: %v", err)
	}
	tok := NewWordPieceTokenizer(vocab, TokenizerConfig{MaxSeqLen: 5, LowerCase: true}, defaultSpecialTokens())
	assertIDs(t, tok.Encode("hello"), []int64{0, 3, 1, 2, 2})
}

func TestSplitWords(t *testing.T) {
	got := splitWords(`he said: "hello, world!"`)
	want := []string{"he", "said", ":", `"`, "hello", ",", "world", "!", `"`}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func assertIDs(t *testing.T, got, want []int64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, got, want)
		}
	}
}
