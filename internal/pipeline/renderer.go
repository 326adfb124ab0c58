package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ppiankov/baristacx/internal/model"
	"github.com/ppiankov/baristacx/internal/report"
)

// Export formats
const (
	FormatJSON     = "json"
	FormatMarkdown = "md"
)

// Renderer writes reports to disk and terminals. It formats the report
// as given and never recomputes any field.
type Renderer struct{}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// maxExportSuffix bounds the -N suffixes tried for one report name
const maxExportSuffix = 1000

// Export writes the report in each requested format under dir and returns
// the written paths in format order. Existing reports are never
// overwritten: when a name is taken the report gets a -2, -3, ... suffix.
func (r *Renderer) Export(rep *model.Report, dir string, formats []string) ([]string, error) {
	exts, err := exportFormats(formats)
	if err != nil {
		return nil, err
	}
	if len(exts) == 0 {
		return nil, nil
	}

	paths, err := reserve(dir, *rep, exts)
	if err != nil {
		return nil, err
	}

	for i, ext := range exts {
		switch ext {
		case FormatJSON:
			err = r.RenderJSON(rep, paths[i])
		case FormatMarkdown:
			err = r.RenderMarkdown(rep, paths[i])
		}
		if err != nil {
			return paths[:i], err
		}
	}
	return paths, nil
}

// exportFormats normalizes and de-duplicates format names
func exportFormats(formats []string) ([]string, error) {
	var exts []string
	seen := make(map[string]bool, len(formats))
	for _, format := range formats {
		format = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
		switch format {
		case FormatJSON:
		case FormatMarkdown, "markdown":
			format = FormatMarkdown
		default:
			return nil, fmt.Errorf("unknown export format: %s (supported: json, md)", format)
		}
		if !seen[format] {
			seen[format] = true
			exts = append(exts, format)
		}
	}
	return exts, nil
}

// reserve creates an empty file for every export of one report. If any
// name is taken the whole set moves to the next suffix, so all formats of
// a report share one name and no two reports share a file.
func reserve(dir string, rep model.Report, exts []string) ([]string, error) {
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	for n := 1; n <= maxExportSuffix; n++ {
		paths := make([]string, 0, len(exts))
		taken := false
		for _, ext := range exts {
			path := filepath.Join(dir, exportName(rep, ext, n))
			f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
			if errors.Is(err, fs.ErrExist) {
				taken = true
				break
			}
			if err != nil {
				release(paths)
				return nil, fmt.Errorf("create %s: %w", path, err)
			}
			if err := f.Close(); err != nil {
				release(append(paths, path))
				return nil, fmt.Errorf("close %s: %w", path, err)
			}
			paths = append(paths, path)
		}
		if !taken {
			return paths, nil
		}
		release(paths)
	}
	return nil, fmt.Errorf("no free report name for %s in %s", rep.ScenarioID, dir)
}

func release(paths []string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}

// exportName is report.Filename with a -n suffix from the second attempt on
func exportName(rep model.Report, ext string, n int) string {
	name := report.Filename(rep, ext)
	if n == 1 {
		return name
	}
	return fmt.Sprintf("%s-%d.%s", strings.TrimSuffix(name, "."+ext), n, ext)
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(rep *model.Report, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderMarkdown writes the document export built from report.Sections
func (r *Renderer) RenderMarkdown(rep *model.Report, path string) error {
	return writeFile(path, []byte(Markdown(*rep)))
}

// RenderCoachNote writes a coaching note next to a report
func (r *Renderer) RenderCoachNote(note string, path string) error {
	var sb strings.Builder
	sb.WriteString("# Coaching Note\n\n")
	sb.WriteString("_Generated by a language model. The session score is unaffected._\n\n")
	sb.WriteString(strings.TrimSpace(note))
	sb.WriteString("\n")
	return writeFile(path, []byte(sb.String()))
}

// RenderSummary prints a short human-readable summary
func (r *Renderer) RenderSummary(w io.Writer, rep *model.Report) {
	fmt.Fprintf(w, "\n%s\n", rep.ScenarioTitle)
	fmt.Fprintf(w, "Score: %d/100  Band: %s  Duration: %ds\n", rep.Score, rep.Band, rep.DurationSec)

	if len(rep.Missteps) > 0 {
		fmt.Fprintln(w, "\nMissteps:")
		for _, m := range rep.Missteps {
			fmt.Fprintf(w, "  ✗ %s: %s\n", m.Key, m.Explain)
		}
	}

	if len(rep.NextChecklist) > 0 {
		fmt.Fprintln(w, "\nNext attempt:")
		for _, item := range rep.NextChecklist {
			fmt.Fprintf(w, "  • %s\n", item)
		}
	}
}

// Markdown lays out the report sections as a Markdown document
func Markdown(rep model.Report) string {
	var sb strings.Builder
	for _, sec := range report.Sections(rep) {
		switch sec.Label {
		case "Header":
			fmt.Fprintf(&sb, "# %s\n\n", strings.Join(sec.Lines, " "))
		case "Breakdown":
			fmt.Fprintf(&sb, "## %s\n\n```json\n%s\n```\n\n", sec.Label, strings.Join(sec.Lines, "\n"))
		default:
			fmt.Fprintf(&sb, "## %s\n\n", sec.Label)
			for _, line := range sec.Lines {
				sb.WriteString(line)
				sb.WriteString("  \n")
			}
			sb.WriteString("\n")
		}
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
