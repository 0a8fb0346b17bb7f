package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/checkmark/internal/logging"
	"github.com/yaklabco/checkmark/internal/ui/pretty"
	"github.com/yaklabco/checkmark/pkg/fsutil"
	"github.com/yaklabco/checkmark/pkg/mdast"
	"github.com/yaklabco/checkmark/pkg/runner"
)

// TextReporter formats results as styled terminal output, grouped by file.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	width  int
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	width := opts.Width
	if width <= 0 {
		width = pretty.TerminalWidth(opts.Writer)
	}
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		width:  width,
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(ctx context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(file.Path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}

		if len(file.Issues) == 0 {
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FormatFileHeader(file.Path, len(file.Issues)))

		snapshot := r.loadSource(ctx, file.Path)
		for _, iss := range file.Issues {
			fmt.Fprint(r.bw, r.styles.FormatIssue(iss, sourceLine(snapshot, iss.RowStart), r.width))
			total++
		}

		// Blank line between files
		fmt.Fprintln(r.bw)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// loadSource reads the file again for context lines. A file that cannot be
// read is shown without context.
func (r *TextReporter) loadSource(ctx context.Context, path string) *mdast.FileSnapshot {
	if !r.opts.ShowContext {
		return nil
	}
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		logging.FromContext(ctx).Debug("source context unavailable",
			logging.FieldPath, path, logging.FieldError, err)
		return nil
	}
	return mdast.NewFileSnapshot(path, content)
}

// sourceLine extracts a specific line from a file snapshot using its line
// index.
func sourceLine(snapshot *mdast.FileSnapshot, lineNum int) string {
	if snapshot == nil {
		return ""
	}
	content := snapshot.LineContent(lineNum)
	if content == nil {
		return ""
	}
	return string(content)
}
