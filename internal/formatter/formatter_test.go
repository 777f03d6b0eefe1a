package formatter

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/ktv/internal/catalog"
	"github.com/desertthunder/ktv/internal/matcher"
	"github.com/desertthunder/ktv/internal/models"
	"github.com/desertthunder/ktv/internal/shared"
)

var results = []matcher.Result{
	{Candidate: "Alpha [1].mp4", Score: 90, Index: 0},
	{Candidate: "Alphabet, Soup [x9].mkv", Score: 64, Index: 3},
}

func testCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Root: "./media/",
		Entries: []models.MediaEntry{
			{Filename: "Alpha [1].mp4", Title: "Alpha ", Tag: "1"},
			{Filename: "Beta [].mp4", Title: "Beta ", Tag: ""},
		},
		Rejected: []catalog.Rejection{{Filename: "broken.mp4", Reason: "filename has no tag delimiter"}},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", Text},
		{"text", Text},
		{"CSV", CSV},
		{"md", Markdown},
		{"markdown", Markdown},
		{" json ", JSON},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	if _, err := ParseFormat("yaml"); !errors.Is(err, shared.ErrInvalidFlag) {
		t.Errorf("expected ErrInvalidFlag, got %v", err)
	}
}

func TestResults(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		data, err := RenderResults("alph", results, Text)
		if err != nil {
			t.Fatalf("RenderResults failed: %v", err)
		}
		want := "1. Alpha [90]\n2. Alphabet, Soup [64]\n"
		if string(data) != want {
			t.Errorf("got %q, want %q", data, want)
		}
	})

	t.Run("text without matches", func(t *testing.T) {
		data, _ := RenderResults("zzz", nil, Text)
		if string(data) != "No songs match 'zzz'!\n" {
			t.Errorf("unexpected output %q", data)
		}
	})

	t.Run("csv", func(t *testing.T) {
		data, err := RenderResults("alph", results, CSV)
		if err != nil {
			t.Fatalf("RenderResults failed: %v", err)
		}
		output := string(data)
		if !strings.HasPrefix(output, "Rank,Filename,Title,Score\n") {
			t.Errorf("CSV missing headers, got: %s", output)
		}
		if !strings.Contains(output, `2,"Alphabet, Soup [x9].mkv","Alphabet, Soup",64`) {
			t.Errorf("CSV should quote fields with commas, got: %s", output)
		}
	})

	t.Run("markdown", func(t *testing.T) {
		data, err := RenderResults("alph", results, Markdown)
		if err != nil {
			t.Fatalf("RenderResults failed: %v", err)
		}
		output := string(data)
		for _, want := range []string{`# Results for "alph"`, "**Matches**: 2", "1. Alpha (`Alpha [1].mp4`, score 90)"} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got: %s", want, output)
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		data, err := RenderResults("alph", results, JSON)
		if err != nil {
			t.Fatalf("RenderResults failed: %v", err)
		}
		var report SearchReport
		if err := json.Unmarshal(data, &report); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if report.Query != "alph" || len(report.Results) != 2 || report.Results[0].Title != "Alpha" {
			t.Errorf("unexpected report %+v", report)
		}
	})

	t.Run("json without matches is an empty list", func(t *testing.T) {
		data, _ := RenderResults("zzz", nil, JSON)
		if !strings.Contains(string(data), `"results": []`) {
			t.Errorf("expected empty results array, got %s", data)
		}
	})
}

func TestCatalog(t *testing.T) {
	cat := testCatalog()

	t.Run("text", func(t *testing.T) {
		data, err := RenderCatalog(cat, Text)
		if err != nil {
			t.Fatalf("RenderCatalog failed: %v", err)
		}
		output := string(data)
		for _, want := range []string{"Media: ./media/", "Songs: 2", "1. Alpha", "2. Beta", "Rejected: 1", "broken.mp4"} {
			if !strings.Contains(output, want) {
				t.Errorf("text missing %q, got: %s", want, output)
			}
		}
	})

	t.Run("csv", func(t *testing.T) {
		data, err := RenderCatalog(cat, CSV)
		if err != nil {
			t.Fatalf("RenderCatalog failed: %v", err)
		}
		want := "Filename,Title,Tag\nAlpha [1].mp4,Alpha,1\nBeta [].mp4,Beta,\n"
		if string(data) != want {
			t.Errorf("got %q, want %q", data, want)
		}
	})

	t.Run("markdown", func(t *testing.T) {
		data, err := RenderCatalog(cat, Markdown)
		if err != nil {
			t.Fatalf("RenderCatalog failed: %v", err)
		}
		output := string(data)
		for _, want := range []string{"# ./media/", "**Songs**: 2", "1. Alpha [1]\n", "2. Beta\n", "## Rejected", "- `broken.mp4`"} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got: %s", want, output)
			}
		}
	})

	t.Run("json", func(t *testing.T) {
		data, err := RenderCatalog(&catalog.Catalog{Root: "empty"}, JSON)
		if err != nil {
			t.Fatalf("RenderCatalog failed: %v", err)
		}
		output := string(data)
		if !strings.Contains(output, `"entries": []`) || !strings.Contains(output, `"rejected": []`) {
			t.Errorf("expected empty arrays, got %s", output)
		}
	})
}
