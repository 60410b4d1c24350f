package dataset

import (
	"errors"
	"sort"
	"strings"

	"github.com/spacesedan/reelverdict/internal/models"
)

var ErrMovieNotFound = errors.New("movie not found")

// ReviewIndex groups reviews by movie id, keeping dataset order within a movie.
// It is read-only after construction.
type ReviewIndex struct {
	byMovie map[string][]models.Review
	total   int
}

func NewReviewIndex(reviews []models.Review) *ReviewIndex {
	idx := &ReviewIndex{byMovie: make(map[string][]models.Review)}
	for _, r := range reviews {
		if r.MovieID == "" {
			continue
		}
		idx.byMovie[r.MovieID] = append(idx.byMovie[r.MovieID], r)
		idx.total++
	}
	return idx
}

// ReviewsFor returns the reviews of one movie; callers must not modify the slice.
func (idx *ReviewIndex) ReviewsFor(movieID string) []models.Review {
	return idx.byMovie[movieID]
}

func (idx *ReviewIndex) MovieIDs() []string {
	ids := make([]string, 0, len(idx.byMovie))
	for id := range idx.byMovie {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (idx *ReviewIndex) Len() int {
	return idx.total
}

// Catalog is the in-memory movie list keyed by id.
type Catalog struct {
	movies []models.Movie
	byID   map[string]int
}

func NewCatalog(movies []models.Movie) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(movies))}
	for _, m := range movies {
		if _, dup := c.byID[m.ID]; dup {
			continue
		}
		c.byID[m.ID] = len(c.movies)
		c.movies = append(c.movies, m)
	}
	return c
}

func (c *Catalog) Get(id string) (models.Movie, error) {
	i, ok := c.byID[id]
	if !ok {
		return models.Movie{}, ErrMovieNotFound
	}
	return c.movies[i], nil
}

func (c *Catalog) All() []models.Movie {
	return append([]models.Movie(nil), c.movies...)
}

func (c *Catalog) Len() int {
	return len(c.movies)
}

// Search returns movies whose title contains query, ignoring case, in catalog
// order. An empty query matches nothing.
func (c *Catalog) Search(query string) []models.Movie {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var hits []models.Movie
	for _, m := range c.movies {
		if strings.Contains(strings.ToLower(m.Title), query) {
			hits = append(hits, m)
		}
	}
	return hits
}
