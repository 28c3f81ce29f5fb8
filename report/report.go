// Package report writes result tables to disk as CSV and as LaTeX.
//
// File names follow "<variable>_<experiment>.<ext>"; for example the value
// functions of the weak governance experiment land in
// V_main_text_weak_governance.csv and V_main_text_weak_governance.tex.
package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/template"

	"github.com/katalvlaran/farsight/frame"
)

// DefaultFloatFormat is the number format of LaTeX tables.
const DefaultFloatFormat = "%.5f"

// SummaryFile is the name of the run summary written by WriteSummary.
const SummaryFile = "summary.csv"

// ErrNilTable indicates a missing table.
var ErrNilTable = errors.New("report: nil table")

// Source is anything that can hand out named result tables.
type Source interface {
	ExperimentName() string
	Table(variable string) (*frame.Frame, error)
}

// WriteCSV writes f with a header row of column labels and the row label
// in the first column. Numbers keep full precision.
func WriteCSV(w io.Writer, f *frame.Frame) error {
	if f == nil {
		return ErrNilTable
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(append([]string{""}, f.ColLabels...)); err != nil {
		return err
	}
	rec := make([]string, 0, f.Cols()+1)
	for i, label := range f.RowLabels {
		rec = append(rec[:0], label)
		for _, v := range f.Data[i] {
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

var latexTemplate = template.Must(template.New("table").Funcs(template.FuncMap{"join": strings.Join}).Parse(`\begin{table}
\centering
\caption{ {{- .Caption -}} }
\begin{tabular}{ {{- .Align -}} }
\toprule
{} & {{ join .Cols " & " }} \\
\midrule
{{ range .Rows -}}
{{ .Label }} & {{ join .Cells " & " }} \\
{{ end -}}
\bottomrule
\end{tabular}
\end{table}
`))

type latexRow struct {
	Label string
	Cells []string
}

type latexTable struct {
	Caption string
	Align   string
	Cols    []string
	Rows    []latexRow
}

// WriteLaTeX writes f as a booktabs table environment with the given
// caption. Numbers use floatFormat, DefaultFloatFormat when empty.
func WriteLaTeX(w io.Writer, f *frame.Frame, caption, floatFormat string) error {
	if f == nil {
		return ErrNilTable
	}
	if floatFormat == "" {
		floatFormat = DefaultFloatFormat
	}
	t := latexTable{
		Caption: escapeLaTeX(caption),
		Align:   "l" + strings.Repeat("r", f.Cols()),
	}
	for _, c := range f.ColLabels {
		t.Cols = append(t.Cols, escapeLaTeX(c))
	}
	for i, label := range f.RowLabels {
		row := latexRow{Label: escapeLaTeX(label)}
		for _, v := range f.Data[i] {
			row.Cells = append(row.Cells, fmt.Sprintf(floatFormat, v))
		}
		t.Rows = append(t.Rows, row)
	}

	return latexTemplate.Execute(w, t)
}

var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	`&`, `\&`,
	`%`, `\%`,
	`$`, `\$`,
	`#`, `\#`,
	`_`, `\_`,
	`{`, `\{`,
	`}`, `\}`,
	`~`, `\textasciitilde{}`,
	`^`, `\textasciicircum{}`,
)

func escapeLaTeX(s string) string {
	return latexEscaper.Replace(s)
}

// WriteResult writes every variable of src to dir as CSV and LaTeX and
// returns the written paths.
func WriteResult(dir string, src Source, variables []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	var written []string
	for _, v := range variables {
		f, err := src.Table(v)
		if err != nil {
			return written, err
		}
		base := filepath.Join(dir, v+"_"+src.ExperimentName())

		if err = writeFile(base+".csv", func(w io.Writer) error { return WriteCSV(w, f) }); err != nil {
			return written, err
		}
		written = append(written, base+".csv")

		caption := src.ExperimentName() + ": " + v
		if err = writeFile(base+".tex", func(w io.Writer) error { return WriteLaTeX(w, f, caption, "") }); err != nil {
			return written, err
		}
		written = append(written, base+".tex")
	}

	return written, nil
}

// SummaryRow is one experiment's line in the run summary.
type SummaryRow struct {
	Experiment     string
	ExperimentName string
	Passed         bool
	Message        string
}

// WriteSummary writes rows to dir/summary.csv.
func WriteSummary(dir string, rows []SummaryRow) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("report: %w", err)
	}
	path := filepath.Join(dir, SummaryFile)
	err := writeFile(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.Write([]string{"experiment", "experiment_name", "status", "message"}); err != nil {
			return err
		}
		for _, r := range rows {
			status := "failed"
			if r.Passed {
				status = "passed"
			}
			if err := cw.Write([]string{r.Experiment, r.ExperimentName, status, r.Message}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
	if err != nil {
		return "", err
	}

	return path, nil
}

func writeFile(path string, fill func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("report: %w", err)
	}
	if err = fill(f); err != nil {
		f.Close()
		return fmt.Errorf("report: %s: %w", path, err)
	}

	return f.Close()
}
