package toxguard

import (
	"os"
	"path/filepath"
)

// Model directory layout. The model and vocabulary are mandatory; the
// tokenizer config and special-tokens map degrade to defaults when absent.
const (
	ModelFileName        = "model.onnx"
	VocabFileName        = "vocab.txt"
	TokenizerConfigName  = "tokenizer_config.json"
	SpecialTokensMapName = "special_tokens_map.json"
)

func modelPath(dir string) string {
	return filepath.Join(dir, ModelFileName)
}

// ModelDirLooksValid reports whether dir contains the mandatory assets.
func ModelDirLooksValid(dir string) bool {
	for _, name := range []string{ModelFileName, VocabFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			return false
		}
	}
	return true
}

// loadTokenizer assembles the tokenizer from the assets under dir.
// seqLenOverride, when positive, wins over the tokenizer config's
// model_max_length.
func loadTokenizer(dir string, seqLenOverride int) (*WordPieceTokenizer, error) {
	vocab, err := LoadVocabulary(filepath.Join(dir, VocabFileName))
	if err != nil {
		return nil, err
	}
	cfg := loadTokenizerConfigFile(filepath.Join(dir, TokenizerConfigName))
	specials := loadSpecialTokensFile(filepath.Join(dir, SpecialTokensMapName))
	if seqLenOverride > 0 {
		cfg.MaxSeqLen = seqLenOverride
	}
	return NewWordPieceTokenizer(vocab, cfg, specials), nil
}
