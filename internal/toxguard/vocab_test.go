package toxguard

import (
	"errors"
	"testing"
)

func TestParseVocabularyAssignsLineOrderIDs(t *testing.T) {
	data := []byte("[PAD]\n[CLS]\n\n  [SEP]  \nhello\n")
	vocab, err := ParseVocabulary(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]int64{"[PAD]": 0, "[CLS]": 1, "[SEP]": 2, "hello": 3}
	for token, wantID := range want {
		id, ok := vocab.IDOf(token)
		if !ok {
			t.Fatalf("token %q missing", token)
		}
		if id != wantID {
			t.Fatalf("token %q: got id %d, want %d", token, id, wantID)
		}
	}
	if vocab.Size() != 4 {
		t.Fatalf("got size %d, want 4", vocab.Size())
	}
}

func TestParseVocabularyBlankLinesDoNotConsumeIDs(t *testing.T) {
	vocab, err := ParseVocabulary([]byte("a\n\n\nb\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id, _ := vocab.IDOf("b"); id != 1 {
		t.Fatalf("got id %d for b, want 1", id)
	}
}

func TestParseVocabularyDuplicateLastWins(t *testing.T) {
	vocab, err := ParseVocabulary([]byte("dup\nother\ndup\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id, _ := vocab.IDOf("dup"); id != 2 {
		t.Fatalf("got id %d for dup, want last-occurrence id 2", id)
	}
}

func TestParseVocabularyRejectsBinary(t *testing.T) {
	_, err := ParseVocabulary([]byte{0xff, 0xfe, 0x00, 0x81})
	if !errors.Is(err, ErrVocabUnreadable) {
		t.Fatalf("got %v, want ErrVocabUnreadable", err)
	}
}

func TestVocabularyLookupMiss(t *testing.T) {
	vocab, err := ParseVocabulary([]byte("a\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := vocab.IDOf("missing"); ok {
		t.Fatalf("expected miss for unknown token")
	}
}
