package sentiment

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
)

// ArtifactFormatVersion is bumped whenever the persisted layout changes.
const ArtifactFormatVersion = 1

// ErrArtifactLoad marks a missing or unusable model artifact. Serving processes
// treat it as fatal.
var ErrArtifactLoad = errors.New("sentiment artifact could not be loaded")

// Artifact is the single persisted unit holding a fitted vectorizer and the
// classifier trained on its output.
type Artifact struct {
	FormatVersion int             `json:"format_version"`
	CreatedAt     time.Time       `json:"created_at"`
	MaxFeatures   int             `json:"max_features"`
	Alpha         float64         `json:"alpha"`
	Accuracy      float64         `json:"accuracy"`
	Vectorizer    VectorizerState `json:"vectorizer"`
	Classifier    ClassifierState `json:"classifier"`
}

type VectorizerState struct {
	Vocabulary []string  `json:"vocabulary"`
	IDF        []float64 `json:"idf"`
}

type ClassifierState struct {
	ClassLogPrior  []float64   `json:"class_log_prior"`
	FeatureLogProb [][]float64 `json:"feature_log_prob"`
}

func NewArtifact(v *Vectorizer, nb *NaiveBayes) *Artifact {
	return &Artifact{
		FormatVersion: ArtifactFormatVersion,
		CreatedAt:     time.Now().UTC(),
		Vectorizer: VectorizerState{
			Vocabulary: v.Vocabulary(),
			IDF:        v.IDF(),
		},
		Classifier: ClassifierState{
			ClassLogPrior:  nb.ClassLogPrior(),
			FeatureLogProb: nb.FeatureLogProb(),
		},
	}
}

// Model rebuilds the fitted pair and checks that the two halves agree.
func (a *Artifact) Model() (*Vectorizer, *NaiveBayes, error) {
	if a.FormatVersion != ArtifactFormatVersion {
		return nil, nil, fmt.Errorf("unsupported artifact format version %d", a.FormatVersion)
	}

	v, err := NewVectorizer(a.Vectorizer.Vocabulary, a.Vectorizer.IDF)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid vectorizer: %w", err)
	}

	nb, err := NewNaiveBayes(a.Classifier.ClassLogPrior, a.Classifier.FeatureLogProb)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid classifier: %w", err)
	}

	if v.NumFeatures() != nb.NumFeatures() {
		return nil, nil, fmt.Errorf("vectorizer has %d features but classifier expects %d", v.NumFeatures(), nb.NumFeatures())
	}

	return v, nb, nil
}

// SaveArtifact writes the artifact as JSON. The file is replaced atomically so a
// serving process never observes a half-written model.
func SaveArtifact(path string, a *Artifact) error {
	data, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("failed to encode artifact: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set artifact permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move artifact into place: %w", err)
	}

	slog.Info("[Artifact] Model saved",
		slog.String("path", path),
		slog.Int("vocabulary", len(a.Vectorizer.Vocabulary)),
		slog.Int("bytes", len(data)))
	return nil
}

// LoadPredictor reads and validates the artifact at path. Every failure wraps
// ErrArtifactLoad.
func LoadPredictor(path string) (*Predictor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrArtifactLoad, err)
	}

	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrArtifactLoad, path, err)
	}

	v, nb, err := a.Model()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrArtifactLoad, path, err)
	}

	sum := sha256.Sum256(data)
	p, err := NewPredictor(v, nb, hex.EncodeToString(sum[:])[:12])
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrArtifactLoad, path, err)
	}

	slog.Info("[Artifact] Model loaded",
		slog.String("path", path),
		slog.String("model_id", p.ModelID()),
		slog.Int("vocabulary", v.NumFeatures()),
		slog.Float64("accuracy", a.Accuracy))
	return p, nil
}
