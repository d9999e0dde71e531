package encoder

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
)

var ErrUnknownLabel = errors.New("label not in encoder vocabulary")

type Encoder interface {
	Encode(value string) (int, error)
}

// LabelEncoder maps each known label to its index in the sorted class list,
// the same codes a fitted label encoder assigns during training.
type LabelEncoder struct {
	classes []string
	codes   map[string]int
}

type artifact struct {
	Classes []string `json:"classes"`
}

func New(classes []string) (*LabelEncoder, error) {
	if len(classes) == 0 {
		return nil, errors.New("encoder has no classes")
	}
	sorted := make([]string, len(classes))
	copy(sorted, classes)
	sort.Strings(sorted)

	e := &LabelEncoder{codes: make(map[string]int, len(sorted))}
	for _, c := range sorted {
		if _, ok := e.codes[c]; ok {
			continue
		}
		e.codes[c] = len(e.classes)
		e.classes = append(e.classes, c)
	}
	return e, nil
}

// Load reads an encoder artifact of the form {"classes": [...]}.
func Load(path string) (*LabelEncoder, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read encoder: %w", err)
	}
	var a artifact
	if err := json.Unmarshal(b, &a); err != nil {
		return nil, fmt.Errorf("decode encoder %s: %w", path, err)
	}
	return New(a.Classes)
}

func (e *LabelEncoder) Encode(value string) (int, error) {
	code, ok := e.codes[value]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, value)
	}
	return code, nil
}

func (e *LabelEncoder) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}
