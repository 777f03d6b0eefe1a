package models

import (
	"errors"
	"testing"
)

func TestTitleOf(t *testing.T) {
	tc := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{name: "keeps trailing space", filename: "Song Name [abc123].mp4", want: "Song Name "},
		{name: "first bracket wins", filename: "A [b] [c].mkv", want: "A "},
		{name: "leading bracket", filename: "[tag] rest.mp4", want: ""},
		{name: "no delimiter", filename: "plain.mp4", wantErr: true},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TitleOf(tt.filename)
			if tt.wantErr {
				if !errors.Is(err, ErrMissingDelimiter) {
					t.Fatalf("expected ErrMissingDelimiter, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("TitleOf(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestParseFilename(t *testing.T) {
	t.Run("title and tag", func(t *testing.T) {
		entry, err := ParseFilename("Alpha [1].mp4")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.Title != "Alpha " || entry.Tag != "1" || entry.Filename != "Alpha [1].mp4" {
			t.Errorf("unexpected entry: %+v", entry)
		}
	})

	t.Run("unterminated tag", func(t *testing.T) {
		entry, err := ParseFilename("Beta [2.mp4")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if entry.Tag != "" {
			t.Errorf("expected empty tag, got %q", entry.Tag)
		}
	})

	t.Run("rejects missing delimiter", func(t *testing.T) {
		if _, err := ParseFilename("Gamma.mp4"); !errors.Is(err, ErrMissingDelimiter) {
			t.Errorf("expected ErrMissingDelimiter, got %v", err)
		}
	})
}

func TestDisplayTitle(t *testing.T) {
	if got := DisplayTitle("Song [x].mp4"); got != "Song " {
		t.Errorf("got %q", got)
	}
	if got := (QueueEntry{Token: "t", Filename: "odd.mp4"}).Title(); got != "odd.mp4" {
		t.Errorf("expected raw filename fallback, got %q", got)
	}
}
