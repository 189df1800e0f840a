package epname

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamer_EpisodeName(t *testing.T) {
	n := NewNamer("") // default template

	tests := []struct {
		name    string
		show    string
		season  int
		episode int
		title   string
		ext     string
		want    string
	}{
		{
			name:    "basic",
			show:    "Foo",
			season:  1,
			episode: 1,
			title:   "Pilot",
			ext:     "mkv",
			want:    "Foo - S01E01 - Pilot.mkv",
		},
		{
			name:    "double digit everything",
			show:    "Supernatural",
			season:  15,
			episode: 20,
			title:   "Carry On",
			ext:     "mp4",
			want:    "Supernatural - S15E20 - Carry On.mp4",
		},
		{
			name:    "unsafe characters stripped",
			show:    "What If...?",
			season:  1,
			episode: 3,
			title:   "Love/Hate: Part 2",
			ext:     "mkv",
			want:    "What If - S01E03 - Love Hate Part 2.mkv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.EpisodeName(tt.show, tt.season, tt.episode, tt.title, tt.ext)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNamer_CustomTemplate(t *testing.T) {
	n := NewNamer("{show}.S{season:02}E{episode:02}.{ext}")
	got := n.EpisodeName("Show", 2, 7, "ignored", "mkv")
	assert.Equal(t, "Show.S02E07.mkv", got)
}

func TestApplyTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     map[string]any
		want     string
	}{
		{
			name:     "simple substitution",
			template: "{show} - {title}",
			vars:     map[string]any{"show": "Foo", "title": "Pilot"},
			want:     "Foo - Pilot",
		},
		{
			name:     "zero padding",
			template: "S{season:02}E{episode:02}",
			vars:     map[string]any{"season": 1, "episode": 5},
			want:     "S01E05",
		},
		{
			name:     "no padding needed",
			template: "S{season:02}",
			vars:     map[string]any{"season": 12},
			want:     "S12",
		},
		{
			name:     "unknown placeholder left alone",
			template: "{show} {nope}",
			vars:     map[string]any{"show": "Foo"},
			want:     "Foo {nope}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, applyTemplate(tt.template, tt.vars))
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Normal Title", "Normal Title"},
		{"What If...?", "What If"},
		{"a/b\\c", "a b c"},
		{`He said: "run"`, "He said run"},
		{"  padded  ", "padded"},
		{"dots..everywhere...", "dots.everywhere"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Sanitize(tt.in), "Sanitize(%q)", tt.in)
	}
}

func TestSanitize_Deterministic(t *testing.T) {
	in := `The <Best>: Episode?*`
	assert.Equal(t, Sanitize(in), Sanitize(in))
}
