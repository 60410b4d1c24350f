package sentiment

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/bbalet/stopwords"
	"gonum.org/v1/gonum/floats"
)

// SparseVector holds the non-zero entries of a feature vector. Indices are
// strictly ascending.
type SparseVector struct {
	Indices []int
	Values  []float64
}

func (v SparseVector) NNZ() int {
	return len(v.Indices)
}

// Tokenize splits cleaned text into vocabulary candidates: English stop words and
// tokens shorter than MinTokenLength are dropped.
func Tokenize(cleaned string) []string {
	filtered := stopwords.CleanString(cleaned, StopWordLanguage, false)

	fields := strings.Fields(filtered)
	tokens := fields[:0]
	for _, f := range fields {
		if len(f) >= MinTokenLength {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

// Vectorizer turns cleaned text into L2-normalized TF-IDF vectors over a fixed
// vocabulary. A fitted Vectorizer is never modified.
type Vectorizer struct {
	vocabulary []string
	index      map[string]int
	idf        []float64
}

// FitVectorizer learns the vocabulary and IDF weights from a cleaned corpus. The
// maxFeatures most frequent terms (by total count, ties lexicographic) are kept;
// maxFeatures <= 0 keeps every term.
func FitVectorizer(corpus []string, maxFeatures int) *Vectorizer {
	termFreq := make(map[string]int)
	docFreq := make(map[string]int)

	for _, doc := range corpus {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(doc) {
			termFreq[tok]++
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				docFreq[tok]++
			}
		}
	}

	terms := make([]string, 0, len(termFreq))
	for term := range termFreq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if termFreq[terms[i]] != termFreq[terms[j]] {
			return termFreq[terms[i]] > termFreq[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if maxFeatures > 0 && len(terms) > maxFeatures {
		terms = terms[:maxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(corpus))
	idf := make([]float64, len(terms))
	for i, term := range terms {
		idf[i] = math.Log((1+n)/(1+float64(docFreq[term]))) + 1
	}

	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}

	return &Vectorizer{vocabulary: terms, index: index, idf: idf}
}

// NewVectorizer rebuilds a fitted vectorizer from persisted state.
func NewVectorizer(vocabulary []string, idf []float64) (*Vectorizer, error) {
	if len(vocabulary) != len(idf) {
		return nil, fmt.Errorf("vocabulary has %d terms but %d idf weights", len(vocabulary), len(idf))
	}

	index := make(map[string]int, len(vocabulary))
	for i, term := range vocabulary {
		if term == "" {
			return nil, errors.New("vocabulary contains an empty term")
		}
		if _, dup := index[term]; dup {
			return nil, fmt.Errorf("vocabulary term %q appears twice", term)
		}
		if w := idf[i]; math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return nil, fmt.Errorf("idf weight for %q is not a positive finite number", term)
		}
		index[term] = i
	}

	return &Vectorizer{
		vocabulary: append([]string(nil), vocabulary...),
		index:      index,
		idf:        append([]float64(nil), idf...),
	}, nil
}

// NumFeatures is the vocabulary size, i.e. the dimension of every vector.
func (v *Vectorizer) NumFeatures() int {
	return len(v.vocabulary)
}

func (v *Vectorizer) Vocabulary() []string {
	return append([]string(nil), v.vocabulary...)
}

func (v *Vectorizer) IDF() []float64 {
	return append([]float64(nil), v.idf...)
}

// Transform vectorizes cleaned text. Out-of-vocabulary tokens are ignored and
// text without known tokens yields an empty vector.
func (v *Vectorizer) Transform(cleaned string) SparseVector {
	counts := make(map[int]float64)
	for _, tok := range Tokenize(cleaned) {
		if idx, ok := v.index[tok]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return SparseVector{}
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	values := make([]float64, len(indices))
	for i, idx := range indices {
		values[i] = counts[idx] * v.idf[idx]
	}
	if norm := floats.Norm(values, 2); norm > 0 {
		floats.Scale(1/norm, values)
	}

	return SparseVector{Indices: indices, Values: values}
}
