package dataset

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reviewsCSV = `imdb_id,review title,review,review_rating
tt001,Great,"Loved it, truly",9
tt001,Meh,Fine I guess,6
tt002,Awful,,2
tt002,Broken,No rating here,
tt003,Decimal,Rated with a decimal,8.0
tt003,Garbage,Not a number,ten
tt004,Nan,Not a rating,NaN
tt004,Inf,Infinite,Inf
tt004,Huge,Huge,1e300
tt004,High,Out of scale,42
tt004,Low,Below scale,-3
tt004,Zero,Zero,0
`

func TestReadReviews(t *testing.T) {
	reviews, err := ReadReviews(strings.NewReader(reviewsCSV))
	require.NoError(t, err)
	require.Len(t, reviews, 4)

	assert.Equal(t, "tt001", reviews[0].MovieID)
	assert.Equal(t, "Great", reviews[0].ReviewTitle)
	assert.Equal(t, "Loved it, truly", reviews[0].ReviewText)
	assert.Equal(t, 9, reviews[0].ReviewRating)

	assert.Equal(t, "", reviews[2].ReviewText, "missing text becomes empty")
	assert.Equal(t, 2, reviews[2].ReviewRating)

	assert.Equal(t, "tt003", reviews[3].MovieID)
	assert.Equal(t, 8, reviews[3].ReviewRating)

	for _, r := range reviews {
		assert.NotEqual(t, "tt004", r.MovieID, "unusable rating kept: %q", r.ReviewTitle)
	}
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "1", want: 1},
		{raw: "10", want: 10},
		{raw: "7.0", want: 7},
		{raw: "", wantErr: true},
		{raw: "NaN", wantErr: true},
		{raw: "Inf", wantErr: true},
		{raw: "-Inf", wantErr: true},
		{raw: "1e300", wantErr: true},
		{raw: "42", wantErr: true},
		{raw: "-3", wantErr: true},
		{raw: "0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseRating(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadReviewsMissingColumn(t *testing.T) {
	_, err := ReadReviews(strings.NewReader("imdb_id,review\ntt001,hello\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadReviewsHeaderWithBOM(t *testing.T) {
	data := "\ufeffimdb_id,review,review_rating\ntt009,ok,5\n"
	reviews, err := ReadReviews(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "tt009", reviews[0].MovieID)
}

func TestReadMovies(t *testing.T) {
	data := `id,title,rating,genre,year,poster_url
tt001,The First,8.1,Drama,1999,http://img/1.jpg
tt002,Second Take,,Comedy,2004.0,
,No Id,5,Drama,2000,
`
	movies, err := ReadMovies(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, movies, 2)

	assert.Equal(t, "The First", movies[0].Title)
	assert.InDelta(t, 8.1, movies[0].Rating, 1e-9)
	assert.Equal(t, 1999, movies[0].Year)
	assert.Equal(t, "http://img/1.jpg", movies[0].PosterURL)

	assert.Equal(t, 0.0, movies[1].Rating)
	assert.Equal(t, 2004, movies[1].Year)
}

func TestLoadMoviesWithFallback(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "movies.csv")
	require.NoError(t, os.WriteFile(base, []byte("id,title\ntt001,Base Movie\n"), 0o644))

	movies, err := LoadMoviesWithFallback(filepath.Join(dir, "combined.csv"), base)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Base Movie", movies[0].Title)

	combined := filepath.Join(dir, "combined.csv")
	require.NoError(t, os.WriteFile(combined, []byte("id,title\ntt002,Combined Movie\n"), 0o644))

	movies, err = LoadMoviesWithFallback(combined, base)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Combined Movie", movies[0].Title)
}

func TestLoadMoviesWithFallbackNoneFound(t *testing.T) {
	dir := t.TempDir()
	_, err := LoadMoviesWithFallback(filepath.Join(dir, "a.csv"), filepath.Join(dir, "b.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadReviews(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	require.NoError(t, os.WriteFile(path, []byte(reviewsCSV), 0o644))

	reviews, err := LoadReviews(path)
	require.NoError(t, err)
	assert.Len(t, reviews, 4)

	_, err = LoadReviews(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
