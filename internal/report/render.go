package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/signalnine/tmc/internal/classify"
	"github.com/signalnine/tmc/internal/color"
	"github.com/signalnine/tmc/internal/result"
)

const (
	indent   = "        "
	barWidth = 40
)

// DisplayConfig holds the per-invocation rendering switches.
type DisplayConfig struct {
	ShowAllPassed   bool
	ShowDetails     bool
	ShowProgressBar bool
	BarFilled       color.Color
	BarEmpty        color.Color
}

// Printer writes rendered outcomes to a single sink. It is not safe for
// concurrent use; callers print one outcome at a time.
type Printer struct {
	w       io.Writer
	cfg     DisplayConfig
	painter color.Painter
}

func NewPrinter(w io.Writer, cfg DisplayConfig, painter color.Painter) *Printer {
	return &Printer{w: w, cfg: cfg, painter: painter}
}

func (p *Printer) Painter() color.Painter {
	return p.painter
}

// PrintSubmission renders a server submission outcome. A nil outcome prints nothing.
func (p *Printer) PrintSubmission(o *result.SubmissionOutcome) error {
	if o == nil {
		return nil
	}
	return p.writeLines(SubmissionLines(o, p.cfg, p.painter))
}

// PrintRun renders a local test run outcome. A nil outcome prints nothing.
func (p *Printer) PrintRun(o *result.RunOutcome) error {
	if o == nil {
		return nil
	}
	return p.writeLines(RunLines(o, p.cfg, p.painter))
}

func (p *Printer) Println(s string) error {
	return p.writeLines([]string{s})
}

func (p *Printer) writeLines(lines []string) error {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	_, err := io.WriteString(p.w, b.String())
	return err
}

// SubmissionLines renders a submission outcome into output lines.
func SubmissionLines(o *result.SubmissionOutcome, cfg DisplayConfig, p color.Painter) []string {
	c := classify.ClassifySubmission(o, classify.Options{ShowAllPassed: cfg.ShowAllPassed})

	lines := testLines(c.Tests, cfg.ShowDetails, p)

	switch b := c.Block.(type) {
	case classify.ErrorBlock:
		lines = append(lines, "", b.Text)
	case classify.ValgrindBlock:
		lines = append(lines, p.Paint(color.Failure, "Failed due to errors in valgrind log:"), b.Log)
	case classify.ProcessingBlock:
		lines = append(lines, "PROCESSING")
	case classify.NoBlock:
	default:
		panic(fmt.Sprintf("report: unhandled status block %T", b))
	}
	if c.Block.Terminal() {
		return lines
	}

	lines = append(lines, aggregateLine(c.Counts))
	if cfg.ShowProgressBar && c.Counts.Total > 0 {
		lines = append(lines, ProgressBar(c.Counts.Passed, c.Counts.Total, cfg.BarFilled, cfg.BarEmpty, p))
	}
	return append(lines, narrativeLines(c.Narrative, p)...)
}

// RunLines renders a local run outcome into output lines.
func RunLines(o *result.RunOutcome, cfg DisplayConfig, p color.Painter) []string {
	c := classify.ClassifyRun(o, classify.Options{ShowAllPassed: cfg.ShowAllPassed})

	lines := testLines(c.Tests, cfg.ShowDetails, p)
	lines = append(lines, aggregateLine(c.Counts))
	if cfg.ShowProgressBar && c.Counts.Total > 0 {
		lines = append(lines, ProgressBar(c.Counts.Passed, c.Counts.Total, cfg.BarFilled, cfg.BarEmpty, p))
	}
	return append(lines, narrativeLines(c.Narrative, p)...)
}

// testLines renders each test entry followed by a blank line.
func testLines(tests []result.TestOutcome, details bool, p color.Painter) []string {
	var lines []string
	for _, t := range tests {
		if t.Successful {
			lines = append(lines, p.Paint(color.Success, "Passed: ")+t.Name, "")
			continue
		}
		lines = append(lines, p.Paint(color.Failure, "Failed: ")+t.Name, indent+t.Message)
		if details {
			if len(t.DetailedMessage) > 0 {
				lines = append(lines, "", "Detailed message:")
				lines = append(lines, t.DetailedMessage...)
			}
			if len(t.ExceptionTrace) > 0 {
				lines = append(lines, "", "Exception:")
				lines = append(lines, t.ExceptionTrace...)
			}
		}
		lines = append(lines, "")
	}
	return lines
}

func aggregateLine(c classify.Counts) string {
	return fmt.Sprintf("Test results: %d/%d tests passed", c.Passed, c.Total)
}

func narrativeLines(n *classify.Narrative, p color.Painter) []string {
	if n == nil {
		return nil
	}
	return strings.Split(p.Paint(n.Tag, n.Headline)+n.Tail, "\n")
}

// ProgressBar draws a fixed-width bar of passed/total. The filled part is
// rounded down so a bar is only full when every test passed.
func ProgressBar(passed, total int, filled, empty color.Color, p color.Painter) string {
	if total <= 0 {
		return ""
	}
	if passed < 0 {
		passed = 0
	}
	if passed > total {
		passed = total
	}
	n := passed * barWidth / total
	pct := passed * 100 / total
	return fmt.Sprintf("%3d%% [%s%s]", pct,
		p.Color(filled, strings.Repeat("█", n)),
		p.Color(empty, strings.Repeat("░", barWidth-n)))
}
