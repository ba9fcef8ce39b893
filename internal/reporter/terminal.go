package reporter

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// TerminalReporter outputs human-friendly text to the terminal.
type TerminalReporter struct {
	mu        sync.Mutex
	progress  *progressbar.ProgressBar
	lastStage string
	cyan      *color.Color
	green     *color.Color
	yellow    *color.Color
	red       *color.Color
	magenta   *color.Color
	bold      *color.Color
}

// NewTerminalReporter creates a new terminal reporter.
func NewTerminalReporter() *TerminalReporter {
	return &TerminalReporter{
		cyan:    color.New(color.FgCyan, color.Bold),
		green:   color.New(color.FgGreen),
		yellow:  color.New(color.FgYellow, color.Bold),
		red:     color.New(color.FgRed, color.Bold),
		magenta: color.New(color.FgMagenta),
		bold:    color.New(color.Bold),
	}
}

// printLabel prints a bold label with fixed width padding followed by a value.
func (r *TerminalReporter) printLabel(width int, label, value string) {
	paddedLabel := fmt.Sprintf("%-*s", width, label)
	fmt.Printf("  %s %s\n", r.bold.Sprint(paddedLabel), value)
}

func (r *TerminalReporter) Initialization(summary InitializationSummary) {
	fmt.Println()
	_, _ = r.cyan.Println("VIDEO")
	const w = 10
	r.printLabel(w, "File:", summary.InputFile)
	r.printLabel(w, "Duration:", summary.Duration)
	r.printLabel(w, "Rate:", summary.FrameRate+" fps")

	fmt.Println()
	_, _ = r.cyan.Println("SEARCH")
	r.printLabel(w, "Target:", fmt.Sprintf("SSIM %.4f (%s over %d samples)",
		summary.TargetSSIM, summary.Metric, summary.SampleCount))
	r.printLabel(w, "QP range:", summary.QPRange)
	r.printLabel(w, "Sampling:", summary.SamplingMode)
}

func (r *TerminalReporter) StageProgress(stage, message string) {
	r.finishProgress()
	r.mu.Lock()
	if r.lastStage != stage {
		r.lastStage = stage
		r.mu.Unlock()
		fmt.Println()
		_, _ = r.cyan.Println(strings.ToUpper(stage))
	} else {
		r.mu.Unlock()
	}
	fmt.Printf("  %s %s\n", r.magenta.Sprint("›"), message)
}

func (r *TerminalReporter) AudioPlan(decisions []string) {
	for _, d := range decisions {
		fmt.Printf("  %s audio %s\n", r.magenta.Sprint("›"), d)
	}
}

func (r *TerminalReporter) SearchStarted(maxProbes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = progressbar.NewOptions(maxProbes,
		progressbar.OptionSetDescription("  Probing QP values"),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowCount(),
	)
}

func (r *TerminalReporter) SearchObservation(obs SearchObservation) {
	r.mu.Lock()
	if r.progress != nil {
		_ = r.progress.Add(1)
	}
	r.mu.Unlock()

	var parts []string
	for _, s := range obs.Scores {
		parts = append(parts, fmt.Sprintf("%.4f", s))
	}
	fmt.Printf("  %s QP %d: samples [%s] aggregate %.4f\n",
		r.magenta.Sprint("›"), obs.QP, strings.Join(parts, " "), obs.Aggregate)
}

func (r *TerminalReporter) SearchComplete(qp int) {
	r.finishProgress()
	fmt.Printf("  %s sample search selected QP %s\n",
		r.magenta.Sprint("›"), r.green.Sprintf("%d", qp))
}

func (r *TerminalReporter) VerifyAttempt(attempt VerifyAttempt) {
	if !attempt.Scored {
		fmt.Printf("  %s QP %d: fallback encode (not measured)\n",
			r.magenta.Sprint("›"), attempt.QP)
		return
	}

	status := r.yellow.Sprint("below target")
	if attempt.Met {
		status = r.green.Sprint("meets target")
	}
	fmt.Printf("  %s QP %d: full-file SSIM %.4f (%s)\n",
		r.magenta.Sprint("›"), attempt.QP, attempt.Score, status)
}

func (r *TerminalReporter) Warning(message string) {
	r.finishProgress()
	fmt.Printf("  %s %s\n", r.yellow.Sprint("Warning:"), message)
}

func (r *TerminalReporter) Error(err ReporterError) {
	r.finishProgress()
	fmt.Println()
	_, _ = r.red.Printf("%s: %s\n", err.Title, err.Message)
	if err.Suggestion != "" {
		fmt.Printf("  %s\n", err.Suggestion)
	}
}

func (r *TerminalReporter) OperationComplete(summary CompletionSummary) {
	r.finishProgress()
	fmt.Println()
	_, _ = r.cyan.Println("RESULT")
	const w = 12
	r.printLabel(w, "Output:", summary.OutputFile)
	r.printLabel(w, "Final QP:", fmt.Sprintf("%d", summary.FinalQP))
	if summary.TargetMet {
		r.printLabel(w, "SSIM:", r.green.Sprintf("%.4f", summary.FullFileScore))
	} else {
		r.printLabel(w, "SSIM:", r.yellow.Sprint("target not met on full file"))
	}
	r.printLabel(w, "Size:", fmt.Sprintf("%s → %s", summary.OriginalSize, summary.EncodedSize))
	r.printLabel(w, "Elapsed:", summary.Elapsed)
}

func (r *TerminalReporter) finishProgress() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.progress != nil {
		_ = r.progress.Finish()
		r.progress = nil
	}
}
