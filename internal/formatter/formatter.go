// package formatter renders catalog listings and search results as plain text, CSV, Markdown or JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/desertthunder/ktv/internal/catalog"
	"github.com/desertthunder/ktv/internal/matcher"
	"github.com/desertthunder/ktv/internal/models"
	"github.com/desertthunder/ktv/internal/shared"
)

// Format names an output encoding accepted by the --format flag.
type Format string

const (
	Text     Format = "text"
	CSV      Format = "csv"
	Markdown Format = "markdown"
	JSON     Format = "json"
)

// ParseFormat resolves a --format value. The empty string means [Text].
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return Text, nil
	case "md":
		return Markdown, nil
	case Text, CSV, Markdown, JSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want text, csv, markdown or json)", shared.ErrInvalidFlag, s)
	}
}

// ResultRow is a single search match as written by the exporters.
type ResultRow struct {
	Filename string `json:"filename"`
	Title    string `json:"title"`
	Score    int    `json:"score"`
}

// SearchReport is the JSON document for a search.
type SearchReport struct {
	Query   string      `json:"query"`
	Results []ResultRow `json:"results"`
}

// CatalogReport is the JSON document for a catalog listing.
type CatalogReport struct {
	Root     string              `json:"root"`
	Entries  []models.MediaEntry `json:"entries"`
	Rejected []catalog.Rejection `json:"rejected"`
}

func rows(results []matcher.Result) []ResultRow {
	out := make([]ResultRow, len(results))
	for i, r := range results {
		out[i] = ResultRow{Filename: r.Candidate, Title: strings.TrimSpace(models.DisplayTitle(r.Candidate)), Score: r.Score}
	}
	return out
}

// RenderResults encodes the matches for query in format.
func RenderResults(query string, results []matcher.Result, format Format) ([]byte, error) {
	switch format {
	case CSV:
		return ResultsToCSV(results)
	case Markdown:
		return ResultsToMarkdown(query, results)
	case JSON:
		return ToJSON(SearchReport{Query: query, Results: rows(results)})
	default:
		return ResultsToText(query, results)
	}
}

// RenderCatalog encodes cat in format.
func RenderCatalog(cat *catalog.Catalog, format Format) ([]byte, error) {
	switch format {
	case CSV:
		return CatalogToCSV(cat)
	case Markdown:
		return CatalogToMarkdown(cat)
	case JSON:
		report := CatalogReport{Root: cat.Root, Entries: cat.Entries, Rejected: cat.Rejected}
		if report.Entries == nil {
			report.Entries = []models.MediaEntry{}
		}
		if report.Rejected == nil {
			report.Rejected = []catalog.Rejection{}
		}
		return ToJSON(report)
	default:
		return CatalogToText(cat)
	}
}

// ToJSON marshals v as indented JSON followed by a newline.
func ToJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return append(data, '\n'), nil
}

func writeCSV(headers []string, records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

// ResultsToCSV converts matches to CSV with columns: Rank, Filename, Title, Score
func ResultsToCSV(results []matcher.Result) ([]byte, error) {
	records := make([][]string, len(results))
	for i, r := range rows(results) {
		records[i] = []string{strconv.Itoa(i + 1), r.Filename, r.Title, strconv.Itoa(r.Score)}
	}
	return writeCSV([]string{"Rank", "Filename", "Title", "Score"}, records)
}

// ResultsToMarkdown converts matches to a Markdown list
func ResultsToMarkdown(query string, results []matcher.Result) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Results for %q\n\n", query))
	if len(results) == 0 {
		buf.WriteString(fmt.Sprintf("No songs match '%s'!\n", query))
		return buf.Bytes(), nil
	}

	buf.WriteString(fmt.Sprintf("**Matches**: %d\n\n", len(results)))
	for i, r := range rows(results) {
		buf.WriteString(fmt.Sprintf("%d. %s (`%s`, score %d)\n", i+1, r.Title, r.Filename, r.Score))
	}
	return buf.Bytes(), nil
}

// ResultsToText converts matches to plain text
func ResultsToText(query string, results []matcher.Result) ([]byte, error) {
	var buf bytes.Buffer

	if len(results) == 0 {
		buf.WriteString(fmt.Sprintf("No songs match '%s'!\n", query))
		return buf.Bytes(), nil
	}
	for i, r := range rows(results) {
		buf.WriteString(fmt.Sprintf("%d. %s [%d]\n", i+1, r.Title, r.Score))
	}
	return buf.Bytes(), nil
}

// CatalogToCSV converts the conforming catalog entries to CSV with columns: Filename, Title, Tag
func CatalogToCSV(cat *catalog.Catalog) ([]byte, error) {
	records := make([][]string, len(cat.Entries))
	for i, e := range cat.Entries {
		records[i] = []string{e.Filename, strings.TrimSpace(e.Title), e.Tag}
	}
	return writeCSV([]string{"Filename", "Title", "Tag"}, records)
}

// CatalogToMarkdown converts a catalog, including quarantined files, to Markdown
func CatalogToMarkdown(cat *catalog.Catalog) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", cat.Root))
	buf.WriteString(fmt.Sprintf("**Songs**: %d\n", len(cat.Entries)))
	buf.WriteString(fmt.Sprintf("**Rejected**: %d\n\n", len(cat.Rejected)))

	buf.WriteString("## Songs\n\n")
	for i, e := range cat.Entries {
		tagPart := ""
		if e.Tag != "" {
			tagPart = fmt.Sprintf(" [%s]", e.Tag)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s\n", i+1, strings.TrimSpace(e.Title), tagPart))
	}

	if len(cat.Rejected) > 0 {
		buf.WriteString("\n## Rejected\n\n")
		for _, r := range cat.Rejected {
			buf.WriteString(fmt.Sprintf("- `%s`: %s\n", r.Filename, r.Reason))
		}
	}
	return buf.Bytes(), nil
}

// CatalogToText converts a catalog to plain text
func CatalogToText(cat *catalog.Catalog) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Media: %s\n", cat.Root))
	buf.WriteString(fmt.Sprintf("Songs: %d\n\n", len(cat.Entries)))
	for i, e := range cat.Entries {
		buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, strings.TrimSpace(e.Title)))
	}

	if len(cat.Rejected) > 0 {
		buf.WriteString(fmt.Sprintf("\nRejected: %d\n", len(cat.Rejected)))
		for _, r := range cat.Rejected {
			buf.WriteString(fmt.Sprintf("  %s (%s)\n", r.Filename, r.Reason))
		}
	}
	return buf.Bytes(), nil
}
