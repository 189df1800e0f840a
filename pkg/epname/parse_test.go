package epname

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(n int) *int { return &n }

func TestParse(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		wantSeason   *int
		wantEpisode  *int
		wantResidual string
		wantExt      string
	}{
		{
			name:         "standard SxxExx",
			path:         "foo.s01e01.mkv",
			wantSeason:   intp(1),
			wantEpisode:  intp(1),
			wantResidual: "foo",
			wantExt:      "mkv",
		},
		{
			name:         "canonical template output",
			path:         "Foo - S01E01 - Pilot.mkv",
			wantSeason:   intp(1),
			wantEpisode:  intp(1),
			wantResidual: "Foo",
			wantExt:      "mkv",
		},
		{
			name:         "cross notation",
			path:         "foo-1x01.mkv",
			wantSeason:   intp(1),
			wantEpisode:  intp(1),
			wantResidual: "foo",
			wantExt:      "mkv",
		},
		{
			name:         "separated S and E",
			path:         "Show.S02.E05.720p.mp4",
			wantSeason:   intp(2),
			wantEpisode:  intp(5),
			wantResidual: "Show",
			wantExt:      "mp4",
		},
		{
			name:         "bare three digits",
			path:         "show.102.720p.mkv",
			wantSeason:   intp(1),
			wantEpisode:  intp(2),
			wantResidual: "show",
			wantExt:      "mkv",
		},
		{
			name:         "bare four digits",
			path:         "show.1205.mkv",
			wantSeason:   intp(12),
			wantEpisode:  intp(5),
			wantResidual: "show",
			wantExt:      "mkv",
		},
		{
			name:         "year is not an episode id",
			path:         "Show.1999.103.mkv",
			wantSeason:   intp(1),
			wantEpisode:  intp(3),
			wantResidual: "Show 1999",
			wantExt:      "mkv",
		},
		{
			name:         "absolute numbering fallback",
			path:         "Show.Episode.12.mkv",
			wantEpisode:  intp(12),
			wantResidual: "Show",
			wantExt:      "mkv",
		},
		{
			name:         "no recognizable pattern",
			path:         "foo.mkv",
			wantResidual: "foo",
			wantExt:      "mkv",
		},
		{
			name:         "underscores and dots normalized in residual",
			path:         "random_file.name.avi",
			wantResidual: "random file name",
			wantExt:      "avi",
		},
		{
			name:         "no extension",
			path:         "foo S01E02",
			wantSeason:   intp(1),
			wantEpisode:  intp(2),
			wantResidual: "foo",
			wantExt:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := Parse(tt.path)

			assert.Equal(t, tt.wantSeason, f.Season, "season")
			assert.Equal(t, tt.wantEpisode, f.Episode, "episode")
			assert.Equal(t, tt.wantResidual, f.Residual, "residual")
			assert.Equal(t, tt.wantExt, f.Ext, "extension")
			assert.Equal(t, tt.path, f.Path)
		})
	}
}

func TestParse_Deterministic(t *testing.T) {
	a := Parse("Show.S03E07.1080p.mkv")
	b := Parse("Show.S03E07.1080p.mkv")
	assert.Equal(t, a, b)
}

// Names produced by the naming template must parse back to the same
// identifiers.
func TestParse_RoundTrip(t *testing.T) {
	namer := NewNamer("")

	cases := []struct {
		show    string
		season  int
		episode int
		title   string
	}{
		{"Foo", 1, 1, "Pilot"},
		{"Breaking Bad", 5, 14, "Ozymandias"},
		{"The Wire", 3, 11, "Middle Ground"},
		{"Doctor Who", 12, 3, "Orphan 55"},
	}

	for _, c := range cases {
		name := namer.EpisodeName(c.show, c.season, c.episode, c.title, "mkv")
		f := Parse(name)

		require.True(t, f.HasEpisodeInfo(), "parse %q", name)
		assert.Equal(t, c.season, *f.Season, "season of %q", name)
		assert.Equal(t, c.episode, *f.Episode, "episode of %q", name)
	}
}
