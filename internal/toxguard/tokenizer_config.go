package toxguard

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/toxguard-ai/toxguard/internal/redact"
)

// Defaults used when the tokenizer config or special-tokens resources are
// absent or malformed. Config loading never blocks initialization: a broken
// auxiliary file degrades to these values, it does not fail the load.
const (
	DefaultMaxSeqLen = 512
	DefaultLowerCase = true

	defaultCLSToken  = "[CLS]"
	defaultSEPToken  = "[SEP]"
	defaultUNKToken  = "[UNK]"
	defaultPADToken  = "[PAD]"
	defaultMaskToken = "[MASK]"

	// Numeric fallbacks when a special token is missing from the vocabulary.
	fallbackCLSID int64 = 101
	fallbackSEPID int64 = 102
	fallbackUNKID int64 = 100
	fallbackPADID int64 = 0
)

// TokenizerConfig holds the normalization options for the tokenizer.
type TokenizerConfig struct {
	MaxSeqLen int
	LowerCase bool
}

// SpecialTokens holds the special-token strings looked up in the vocabulary.
type SpecialTokens struct {
	CLS  string
	SEP  string
	UNK  string
	PAD  string
	Mask string
}

func defaultTokenizerConfig() TokenizerConfig {
	return TokenizerConfig{MaxSeqLen: DefaultMaxSeqLen, LowerCase: DefaultLowerCase}
}

func defaultSpecialTokens() SpecialTokens {
	return SpecialTokens{
		CLS:  defaultCLSToken,
		SEP:  defaultSEPToken,
		UNK:  defaultUNKToken,
		PAD:  defaultPADToken,
		Mask: defaultMaskToken,
	}
}

// ParseTokenizerConfig reads a tokenizer_config.json document. Malformed or
// empty input yields the defaults.
func ParseTokenizerConfig(data []byte) TokenizerConfig {
	cfg := defaultTokenizerConfig()
	if len(data) == 0 {
		return cfg
	}

	var raw struct {
		ModelMaxLength *json.Number `json:"model_max_length"`
		DoLowerCase    *bool        `json:"do_lower_case"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		redact.Logf("toxguard: tokenizer config unparseable, using defaults: %v", err)
		return cfg
	}

	if raw.ModelMaxLength != nil {
		if n, err := raw.ModelMaxLength.Int64(); err == nil && n > 0 {
			cfg.MaxSeqLen = int(n)
		}
	}
	if raw.DoLowerCase != nil {
		cfg.LowerCase = *raw.DoLowerCase
	}
	return cfg
}

// ParseSpecialTokens reads a special_tokens_map.json document. Values may be
// plain strings or objects with a "content" field. Malformed or empty input
// yields the defaults.
func ParseSpecialTokens(data []byte) SpecialTokens {
	st := defaultSpecialTokens()
	if len(data) == 0 {
		return st
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		redact.Logf("toxguard: special tokens map unparseable, using defaults: %v", err)
		return st
	}

	if v := specialTokenString(raw["cls_token"]); v != "" {
		st.CLS = v
	}
	if v := specialTokenString(raw["sep_token"]); v != "" {
		st.SEP = v
	}
	if v := specialTokenString(raw["unk_token"]); v != "" {
		st.UNK = v
	}
	if v := specialTokenString(raw["pad_token"]); v != "" {
		st.PAD = v
	}
	if v := specialTokenString(raw["mask_token"]); v != "" {
		st.Mask = v
	}
	return st
}

func specialTokenString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]any:
		if content, ok := val["content"].(string); ok {
			return strings.TrimSpace(content)
		}
	}
	return ""
}

func loadTokenizerConfigFile(path string) TokenizerConfig {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			redact.Logf("toxguard: tokenizer config unreadable, using defaults: %v", err)
		}
		return defaultTokenizerConfig()
	}
	return ParseTokenizerConfig(data)
}

func loadSpecialTokensFile(path string) SpecialTokens {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			redact.Logf("toxguard: special tokens map unreadable, using defaults: %v", err)
		}
		return defaultSpecialTokens()
	}
	return ParseSpecialTokens(data)
}

// specialTokenIDs resolves the special-token strings against the vocabulary,
// falling back to the documented numeric ids when a token is absent.
type specialTokenIDs struct {
	cls int64
	sep int64
	unk int64
	pad int64
}

func resolveSpecialIDs(vocab *Vocabulary, st SpecialTokens) specialTokenIDs {
	out := specialTokenIDs{
		cls: fallbackCLSID,
		sep: fallbackSEPID,
		unk: fallbackUNKID,
		pad: fallbackPADID,
	}
	if id, ok := vocab.IDOf(st.CLS); ok {
		out.cls = id
	}
	if id, ok := vocab.IDOf(st.SEP); ok {
		out.sep = id
	}
	if id, ok := vocab.IDOf(st.UNK); ok {
		out.unk = id
	}
	if id, ok := vocab.IDOf(st.PAD); ok {
		out.pad = id
	}
	return out
}
