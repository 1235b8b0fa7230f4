// Package report summarizes a merge run as Markdown or HTML.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/takaryo1010/wordmerge/internal/config"
	"github.com/takaryo1010/wordmerge/internal/merge"
	"github.com/takaryo1010/wordmerge/internal/record"
	"github.com/takaryo1010/wordmerge/internal/store"
)

// maxListed caps the ID lists so a badly mismatched run stays readable.
const maxListed = 50

// Summary describes one merge run.
type Summary struct {
	OriginalPath   string
	TranslatedPath string
	OutputPath     string
	Originals      int
	Translated     int
	Output         int
	DistinctIDs    int
	Matched        int
	Unmatched      int
	MissingID      int
	DryRun         bool
	UnmatchedIDs   []string
	DuplicateIDs   []string
}

// FromResult builds a Summary for res. originals and translated are the
// input record counts.
func FromResult(cfg *config.Config, originals, translated int, res *merge.Result) *Summary {
	return &Summary{
		OriginalPath:   cfg.OriginalPath,
		TranslatedPath: cfg.TranslatedPath,
		OutputPath:     cfg.OutputPath,
		Originals:      originals,
		Translated:     translated,
		Output:         len(res.Records),
		DistinctIDs:    res.IndexSize,
		Matched:        res.Matched,
		Unmatched:      res.Unmatched,
		MissingID:      res.MissingID,
		DryRun:         cfg.DryRun,
		UnmatchedIDs:   idStrings(res.UnmatchedIDs),
		DuplicateIDs:   idStrings(res.Duplicates),
	}
}

func idStrings(ids []record.Value) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		if id.Kind() == record.KindString {
			out[i] = fmt.Sprintf("%q", id.Text())
			continue
		}
		out[i] = id.Text()
	}
	return out
}

// Markdown renders s as a Markdown document.
func Markdown(s *Summary) []byte {
	var b strings.Builder
	b.WriteString("# Merge report\n\n")
	if s.DryRun {
		fmt.Fprintf(&b, "Dry run: `%s` was not written.\n\n", s.OutputPath)
	}

	b.WriteString("| Item | Count |\n| --- | ---: |\n")
	row := func(name string, n int) { fmt.Fprintf(&b, "| %s | %d |\n", name, n) }
	row("Original records (`"+s.OriginalPath+"`)", s.Originals)
	row("Distinct original IDs", s.DistinctIDs)
	row("Translated records (`"+s.TranslatedPath+"`)", s.Translated)
	row("Matched", s.Matched)
	row("Unmatched", s.Unmatched)
	row("Without ID", s.MissingID)
	row("Output records (`"+s.OutputPath+"`)", s.Output)

	writeIDs(&b, "Unmatched IDs", s.UnmatchedIDs)
	writeIDs(&b, "Duplicate original IDs", s.DuplicateIDs)
	return []byte(b.String())
}

func writeIDs(b *strings.Builder, title string, ids []string) {
	if len(ids) == 0 {
		return
	}
	fmt.Fprintf(b, "\n## %s\n\n", title)
	for i, id := range ids {
		if i == maxListed {
			fmt.Fprintf(b, "- ... and %d more\n", len(ids)-maxListed)
			break
		}
		fmt.Fprintf(b, "- `%s`\n", id)
	}
}

// HTML converts Markdown report source to an HTML fragment.
func HTML(markdown []byte) ([]byte, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert(markdown, &buf); err != nil {
		return nil, fmt.Errorf("error during report rendering: %w", err)
	}
	return buf.Bytes(), nil
}

// Write renders s in the given format and stores it at path.
func Write(path, format string, s *Summary) error {
	out := Markdown(s)
	if format == config.ReportHTML {
		var err error
		if out, err = HTML(out); err != nil {
			return err
		}
	}
	return store.WriteFile(path, out)
}
