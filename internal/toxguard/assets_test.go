package toxguard

import (
	"os"
	"path/filepath"
	"testing"
)

func TestModelDirLooksValid(t *testing.T) {
	dir := writeModelDir(t, testVocab)
	if !ModelDirLooksValid(dir) {
		t.Fatalf("expected valid model dir")
	}
	if ModelDirLooksValid(t.TempDir()) {
		t.Fatalf("empty dir must not look valid")
	}
}

func TestLoadTokenizerOptionalAssetsDegrade(t *testing.T) {
	// Only vocab.txt present: config and special tokens fall back to
	// defaults, and loading succeeds.
	dir := writeModelDir(t, testVocab)
	tok, err := loadTokenizer(dir, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.MaxSeqLen() != DefaultMaxSeqLen {
		t.Fatalf("got seq len %d, want default %d", tok.MaxSeqLen(), DefaultMaxSeqLen)
	}

	// A corrupt tokenizer config still degrades rather than failing.
	if err := os.WriteFile(filepath.Join(dir, TokenizerConfigName), []byte("{{{"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadTokenizer(dir, 0); err != nil {
		t.Fatalf("corrupt tokenizer config must not fail the load: %v", err)
	}
}

func TestLoadTokenizerSeqLenOverride(t *testing.T) {
	dir := writeModelDir(t, testVocab)
	if err := os.WriteFile(filepath.Join(dir, TokenizerConfigName), []byte(`{"model_max_length": 512}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	tok, err := loadTokenizer(dir, 64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.MaxSeqLen() != 64 {
		t.Fatalf("got seq len %d, want override 64", tok.MaxSeqLen())
	}
}

func TestLoadTokenizerMissingVocabFails(t *testing.T) {
	if _, err := loadTokenizer(t.TempDir(), 0); err == nil {
		t.Fatalf("expected error without vocab.txt")
	}
}
