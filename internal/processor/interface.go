package processor

import (
	"context"

	"github.com/nguyentantai21042004/transcribe-batch/internal/media"
)

// Processor runs the transcription batch over a set of discovered files
type Processor interface {
	// Run skips files whose transcript already exists and transcribes the
	// rest one at a time, in order. The returned Summary is valid even
	// when err is non-nil.
	Run(ctx context.Context, files []media.File) (Summary, error)
}
