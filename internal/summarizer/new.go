package summarizer

import (
	"os"
	"strings"

	"github.com/nguyentantai21042004/transcribe-batch/internal/logger"
	"google.golang.org/genai"
)

type implSummarizer struct {
	apiKeys    []string
	currentKey int
	clients    map[string]*genai.Client
	logger     logger.Logger
	model      string
	transcript string // transcript extension, no dot
}

// New creates a Summarizer that rotates through the supplied Gemini API keys.
func New(apiKeys []string, model, transcriptExt string, log logger.Logger) Summarizer {
	return &implSummarizer{
		apiKeys:    apiKeys,
		clients:    make(map[string]*genai.Client),
		logger:     log,
		model:      model,
		transcript: transcriptExt,
	}
}

// KeysFromEnv reads a comma-separated key list from the named variable.
func KeysFromEnv(name string) []string {
	var keys []string
	for _, k := range strings.Split(os.Getenv(name), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
