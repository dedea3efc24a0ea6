// =============================================================================
// Auto SYSCO - Document Text Extraction
// =============================================================================
//
// This module turns an invoice document into plain text lines. Two sources
// are supported:
//
//   .pdf : glyphs are read page by page and grouped into rows by baseline.
//          Glyphs on a row are joined with a space wherever the gap between
//          the end of one and the start of the next is wider than a fraction
//          of the font size, which preserves the column breaks the line
//          classifier relies on.
//   .txt : text already extracted by another tool, read line by line.
//          Form feeds (page separators) become line breaks.
//
// Pages are concatenated in page order. Any failure to open or parse the
// document is a DocumentReadError and aborts the run.
//
// =============================================================================

package document

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/Allen-Getty99/auto-sysco/internal/common"
)

// TextExtractor renders a document as ordered text lines.
type TextExtractor interface {
	Extract(path string) ([]string, error)
}

// New picks an extractor for the document's file type.
func New(path string) (TextExtractor, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return PDFExtractor{}, nil
	case ".txt":
		return PlainTextExtractor{}, nil
	default:
		return nil, common.NewDocumentReadError(path, fmt.Errorf("unsupported document type %q", filepath.Ext(path)))
	}
}

// ExtractLines opens path with the matching extractor.
func ExtractLines(path string) ([]string, error) {
	extractor, err := New(path)
	if err != nil {
		return nil, err
	}
	return extractor.Extract(path)
}

// =============================================================================
// PDF EXTRACTION
// =============================================================================

const (
	// minWordGap is the smallest gap, in points, that always separates two words.
	minWordGap = 1.0

	// rowTolerance is the largest baseline difference, in points, between
	// glyphs of the same row.
	rowTolerance = 2.0
)

// PDFExtractor reads text from PDF documents.
type PDFExtractor struct{}

// Extract returns the text rows of every page, top to bottom.
func (PDFExtractor) Extract(path string) (lines []string, err error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, common.NewDocumentReadError(path, fmt.Errorf("failed to open PDF: %w", err))
	}
	defer f.Close()

	// The reader panics on some malformed content streams.
	defer func() {
		if p := recover(); p != nil {
			lines = nil
			err = common.NewDocumentReadError(path, fmt.Errorf("failed to parse PDF: %v", p))
		}
	}()

	for pageNr := 1; pageNr <= r.NumPage(); pageNr++ {
		page := r.Page(pageNr)
		if page.V.IsNull() {
			continue
		}

		lines = append(lines, PageLines(page.Content().Text)...)
	}

	return lines, nil
}

// PageLines groups the glyphs of a page into rows by baseline and renders
// each row with JoinRow. Rows run top to bottom and glyphs left to right.
// Glyphs sharing a position keep their content stream order.
func PageLines(glyphs []pdf.Text) []string {
	sorted := make([]pdf.Text, 0, len(glyphs))
	for _, g := range glyphs {
		// TJ arrays end with a synthetic newline glyph.
		if g.S == "\n" || g.S == "" {
			continue
		}
		sorted = append(sorted, g)
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var (
		lines []string
		row   pdf.TextHorizontal
		rowY  float64
	)
	flush := func() {
		if len(row) == 0 {
			return
		}
		sort.SliceStable(row, func(i, j int) bool { return row[i].X < row[j].X })
		lines = append(lines, JoinRow(row))
		row = nil
	}

	for _, g := range sorted {
		if len(row) > 0 && math.Abs(rowY-g.Y) > rowTolerance {
			flush()
		}
		if len(row) == 0 {
			rowY = g.Y
		}
		row = append(row, g)
	}
	flush()

	return lines
}

// JoinRow joins the text fragments of a row, inserting a space where the gap
// between consecutive fragments indicates a word or column break.
func JoinRow(fragments pdf.TextHorizontal) string {
	var b strings.Builder
	prevEnd := 0.0

	for i, frag := range fragments {
		if i > 0 && frag.X-prevEnd > gapThreshold(frag.FontSize) {
			if !strings.HasSuffix(b.String(), " ") && !strings.HasPrefix(frag.S, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(frag.S)
		prevEnd = frag.X + frag.W
	}

	return b.String()
}

func gapThreshold(fontSize float64) float64 {
	if t := fontSize * 0.2; t > minWordGap {
		return t
	}
	return minWordGap
}

// =============================================================================
// PLAIN TEXT EXTRACTION
// =============================================================================

// maxLineSize bounds a single line of pre-extracted text.
const maxLineSize = 1024 * 1024

// PlainTextExtractor reads already-extracted document text.
type PlainTextExtractor struct{}

// Extract returns the file's lines, splitting pages on form feeds.
func (PlainTextExtractor) Extract(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, common.NewDocumentReadError(path, fmt.Errorf("failed to open file: %w", err))
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		lines = append(lines, strings.Split(strings.TrimRight(scanner.Text(), "\r"), "\f")...)
	}
	if err := scanner.Err(); err != nil {
		return nil, common.NewDocumentReadError(path, fmt.Errorf("failed to read file: %w", err))
	}

	return lines, nil
}
