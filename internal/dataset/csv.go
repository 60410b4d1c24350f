package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/spacesedan/reelverdict/internal/models"
)

// Column names of the review and movie exports, with accepted aliases.
var (
	reviewMovieIDColumns = []string{"imdb_id", "movie_id"}
	reviewTitleColumns   = []string{"review title", "review_title"}
	reviewTextColumns    = []string{"review", "review_text"}
	reviewRatingColumns  = []string{"review_rating", "rating"}

	movieIDColumns     = []string{"id", "imdb_id"}
	movieTitleColumns  = []string{"title"}
	movieRatingColumns = []string{"rating"}
	movieGenreColumns  = []string{"genre"}
	movieYearColumns   = []string{"year"}
	moviePosterColumns = []string{"poster_url"}
)

var ErrMissingColumn = errors.New("required column missing")

type header map[string]int

func readHeader(r *csv.Reader) (header, error) {
	names, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	h := make(header, len(names))
	for i, name := range names {
		h[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	return h, nil
}

// column returns the index of the first alias present, or -1.
func (h header) column(aliases []string) int {
	for _, alias := range aliases {
		if i, ok := h[alias]; ok {
			return i
		}
	}
	return -1
}

func (h header) require(aliases []string) (int, error) {
	i := h.column(aliases)
	if i < 0 {
		return -1, fmt.Errorf("%w: %s", ErrMissingColumn, aliases[0])
	}
	return i, nil
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	return cr
}

// ReadReviews parses a review export. Rows whose rating is not a number are
// skipped and counted; missing review text becomes the empty string.
func ReadReviews(r io.Reader) ([]models.Review, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	idCol, err := h.require(reviewMovieIDColumns)
	if err != nil {
		return nil, err
	}
	ratingCol, err := h.require(reviewRatingColumns)
	if err != nil {
		return nil, err
	}
	textCol, err := h.require(reviewTextColumns)
	if err != nil {
		return nil, err
	}
	titleCol := h.column(reviewTitleColumns)

	var (
		reviews []models.Review
		skipped int
	)
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rating, err := parseRating(field(record, ratingCol))
		if err != nil {
			skipped++
			slog.Debug("[Dataset] Skipping review with unusable rating",
				slog.Int("line", line),
				slog.String("error", err.Error()))
			continue
		}

		reviews = append(reviews, models.Review{
			MovieID:      field(record, idCol),
			ReviewTitle:  field(record, titleCol),
			ReviewText:   field(record, textCol),
			ReviewRating: rating,
		})
	}

	if skipped > 0 {
		slog.Warn("[Dataset] Skipped reviews without a numeric rating",
			slog.Int("skipped", skipped),
			slog.Int("kept", len(reviews)))
	}
	return reviews, nil
}

// Ratings outside this range are treated as unusable.
const (
	MinRating = 1
	MaxRating = 10
)

// parseRating accepts "8" as well as "8.0".
func parseRating(raw string) (int, error) {
	if raw == "" {
		return 0, errors.New("empty rating")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("invalid rating %q", raw)
	}
	if f < MinRating || f > MaxRating {
		return 0, fmt.Errorf("rating %q outside %d-%d", raw, MinRating, MaxRating)
	}
	return int(f), nil
}

// ReadMovies parses a movie list export.
func ReadMovies(r io.Reader) ([]models.Movie, error) {
	cr := newReader(r)
	h, err := readHeader(cr)
	if err != nil {
		return nil, err
	}

	idCol, err := h.require(movieIDColumns)
	if err != nil {
		return nil, err
	}
	titleCol, err := h.require(movieTitleColumns)
	if err != nil {
		return nil, err
	}
	ratingCol := h.column(movieRatingColumns)
	genreCol := h.column(movieGenreColumns)
	yearCol := h.column(movieYearColumns)
	posterCol := h.column(moviePosterColumns)

	var movies []models.Movie
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		movie := models.Movie{
			ID:        field(record, idCol),
			Title:     field(record, titleCol),
			Genre:     field(record, genreCol),
			PosterURL: field(record, posterCol),
		}
		if movie.ID == "" {
			continue
		}
		if v, err := strconv.ParseFloat(field(record, ratingCol), 64); err == nil {
			movie.Rating = v
		}
		if v, err := strconv.ParseFloat(field(record, yearCol), 64); err == nil {
			movie.Year = int(v)
		}
		movies = append(movies, movie)
	}
	return movies, nil
}

func LoadReviews(path string) ([]models.Review, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open reviews: %w", err)
	}
	defer f.Close()

	reviews, err := ReadReviews(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read reviews from %s: %w", path, err)
	}

	slog.Info("[Dataset] Loaded reviews",
		slog.String("path", path),
		slog.Int("count", len(reviews)))
	return reviews, nil
}

// LoadMoviesWithFallback loads the first movie list in paths that exists, so the
// combined export is preferred over the base one when both are configured.
func LoadMoviesWithFallback(paths ...string) ([]models.Movie, error) {
	for _, path := range paths {
		f, err := os.Open(path)
		if errors.Is(err, os.ErrNotExist) {
			slog.Debug("[Dataset] Movie list not found, trying next",
				slog.String("path", path))
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to open movies: %w", err)
		}

		movies, err := ReadMovies(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read movies from %s: %w", path, err)
		}

		slog.Info("[Dataset] Loaded movies",
			slog.String("path", path),
			slog.Int("count", len(movies)))
		return movies, nil
	}
	return nil, fmt.Errorf("no movie list found in %v: %w", paths, os.ErrNotExist)
}
