// Package reporter provides progress reporting for optimization runs.
package reporter

// Reporter defines the interface for progress reporting.
type Reporter interface {
	Initialization(summary InitializationSummary)
	StageProgress(stage, message string)
	AudioPlan(decisions []string)
	SearchStarted(maxProbes int)
	SearchObservation(obs SearchObservation)
	SearchComplete(qp int)
	VerifyAttempt(attempt VerifyAttempt)
	Warning(message string)
	Error(err ReporterError)
	OperationComplete(summary CompletionSummary)
}

// InitializationSummary describes the run before work begins.
type InitializationSummary struct {
	InputFile    string
	Duration     string
	FrameRate    string
	TargetSSIM   float64
	QPRange      string
	SamplingMode string
	Metric       string
	SampleCount  int
}

// SearchObservation is one evaluator probe during the binary search.
type SearchObservation struct {
	QP        int
	Scores    []float64
	Aggregate float64
}

// VerifyAttempt is one full-file encode attempt during verification.
type VerifyAttempt struct {
	QP     int
	Score  float64
	Met    bool
	Scored bool
}

// ReporterError describes a fatal error with optional context.
type ReporterError struct {
	Title      string
	Message    string
	Suggestion string
}

// CompletionSummary describes the accepted result.
type CompletionSummary struct {
	OutputFile    string
	FinalQP       int
	FullFileScore float64
	TargetMet     bool
	OriginalSize  string
	EncodedSize   string
	Elapsed       string
}

// NullReporter is a no-op reporter that discards all updates.
type NullReporter struct{}

func (NullReporter) Initialization(InitializationSummary) {}
func (NullReporter) StageProgress(string, string)         {}
func (NullReporter) AudioPlan([]string)                   {}
func (NullReporter) SearchStarted(int)                    {}
func (NullReporter) SearchObservation(SearchObservation)  {}
func (NullReporter) SearchComplete(int)                   {}
func (NullReporter) VerifyAttempt(VerifyAttempt)          {}
func (NullReporter) Warning(string)                       {}
func (NullReporter) Error(ReporterError)                  {}
func (NullReporter) OperationComplete(CompletionSummary)  {}
