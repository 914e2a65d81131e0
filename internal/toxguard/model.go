package toxguard

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ort "github.com/yalue/onnxruntime_go"
)

// Fixed tensor names the exported model is traced with.
const (
	inputIDsName      = "input_ids"
	attentionMaskName = "attention_mask"
	tokenTypeIDsName  = "token_type_ids"
	outputLogitsName  = "logits"
)

var (
	// ErrSessionUnavailable is returned when inference is requested before
	// the session is ready.
	ErrSessionUnavailable = errors.New("toxguard session unavailable")
	// ErrEmptyOutput is returned when the engine produces no output values.
	ErrEmptyOutput = errors.New("model returned no outputs")
)

// ModelRunner executes the network on one encoded sequence and returns the
// flattened logits of the first output.
type ModelRunner interface {
	Run(ids, mask, typeIDs []int64) ([]float32, error)
	Destroy() error
}

// ModelLoader opens a model file and returns a runner for it. Injectable so
// tests can substitute a fake engine.
type ModelLoader func(modelPath string) (ModelRunner, error)

// onnxModel wraps an ONNX Runtime session over the model file.
type onnxModel struct {
	session *ort.DynamicAdvancedSession
}

// LoadONNXModel initializes the ONNX Runtime environment (once per process)
// and opens a session on the model file. It is the default ModelLoader.
func LoadONNXModel(modelPath string) (ModelRunner, error) {
	if strings.TrimSpace(modelPath) == "" {
		return nil, errors.New("model path is empty")
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("model file missing at %s: %w", modelPath, err)
	}

	if !ort.IsInitialized() {
		libPath := resolveSharedLibraryPath(filepath.Dir(modelPath))
		if libPath == "" {
			return nil, fmt.Errorf("onnxruntime shared library not found; set ONNXRUNTIME_SHARED_LIBRARY_PATH or install the runtime")
		}
		ort.SetSharedLibraryPath(libPath)
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("initialize onnxruntime: %w", err)
		}
	}

	session, err := ort.NewDynamicAdvancedSession(
		modelPath,
		[]string{inputIDsName, attentionMaskName, tokenTypeIDsName},
		[]string{outputLogitsName},
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("create onnx session: %w", err)
	}
	return &onnxModel{session: session}, nil
}

// Run submits the three input tensors and copies out the first output's
// flattened values. All tensors are created for this call and destroyed on
// every path.
func (m *onnxModel) Run(ids, mask, typeIDs []int64) ([]float32, error) {
	if m == nil || m.session == nil {
		return nil, ErrSessionUnavailable
	}

	shape := ort.NewShape(1, int64(len(ids)))
	idsTensor, err := ort.NewTensor(shape, ids)
	if err != nil {
		return nil, fmt.Errorf("input_ids tensor: %w", err)
	}
	defer idsTensor.Destroy()
	maskTensor, err := ort.NewTensor(shape, mask)
	if err != nil {
		return nil, fmt.Errorf("attention_mask tensor: %w", err)
	}
	defer maskTensor.Destroy()
	typeTensor, err := ort.NewTensor(shape, typeIDs)
	if err != nil {
		return nil, fmt.Errorf("token_type_ids tensor: %w", err)
	}
	defer typeTensor.Destroy()

	outs := make([]ort.Value, 1)
	if err := m.session.Run([]ort.Value{idsTensor, maskTensor, typeTensor}, outs); err != nil {
		return nil, fmt.Errorf("onnx run: %w", err)
	}
	defer func() {
		for _, v := range outs {
			if v != nil {
				v.Destroy()
			}
		}
	}()

	if outs[0] == nil {
		return nil, ErrEmptyOutput
	}
	tensor, ok := outs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output type %T", outs[0])
	}
	data := tensor.GetData()
	if len(data) == 0 {
		return nil, ErrEmptyOutput
	}
	logits := make([]float32, len(data))
	copy(logits, data)
	return logits, nil
}

// Destroy releases the session.
func (m *onnxModel) Destroy() error {
	if m == nil || m.session == nil {
		return nil
	}
	err := m.session.Destroy()
	m.session = nil
	return err
}

// buildInputs derives the attention mask (0 iff the position is padding) and
// the all-zero segment ids from an encoded sequence.
func buildInputs(ids []int64, padID int64) (mask, typeIDs []int64) {
	mask = make([]int64, len(ids))
	typeIDs = make([]int64, len(ids))
	for i, id := range ids {
		if id != padID {
			mask[i] = 1
		}
	}
	return mask, typeIDs
}

// resolveSharedLibraryPath attempts to locate a platform-specific onnxruntime
// shared library. If ONNXRUNTIME_SHARED_LIBRARY_PATH is set, it wins;
// otherwise we probe common names/locations.
func resolveSharedLibraryPath(modelDir string) string {
	if env := strings.TrimSpace(os.Getenv("ONNXRUNTIME_SHARED_LIBRARY_PATH")); env != "" {
		return env
	}

	names := []string{
		"libonnxruntime.dylib",
		"onnxruntime.dylib",
		"libonnxruntime.so",
		"onnxruntime.so",
		"onnxruntime.dll",
	}
	dirs := []string{
		modelDir,
		filepath.Join(modelDir, "lib"),
		".",
		"/opt/homebrew/lib",
		"/usr/local/lib",
		"/usr/lib",
	}

	for _, dir := range dirs {
		for _, name := range names {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate
			}
		}
	}
	return ""
}
