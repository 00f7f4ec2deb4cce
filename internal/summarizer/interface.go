package summarizer

import "context"

// Summarizer turns finished transcripts into LLM-written summaries.
type Summarizer interface {
	// SummarizeAll writes <base>.summary.md and <base>.summary.docx next to
	// every transcript under root that has no summary yet.
	SummarizeAll(ctx context.Context, root string) (Result, error)
}

// Result counts what one SummarizeAll pass did.
type Result struct {
	Written int
	Skipped int
	Failed  int
}
