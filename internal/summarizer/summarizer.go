package summarizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"google.golang.org/genai"
)

const summarySuffix = ".summary"

const summaryInstruction = `You are an analyst summarizing a recorded talk or meeting. Using the transcript you are given, write a DETAILED summary in the language of the transcript.

Requirements:
- Start with a one-sentence title describing the subject
- List ALL main topics or steps in the order they appear, as a numbered list
- Explain each point in detail, including important caveats, tips and warnings
- Use markdown: headings, bullet points, bold for key terms
- Finish with an "Important notes" section if anything needs emphasis`

const speakerInstruction = `
- The transcript is labelled by speaker. Attribute key statements by writing lines as "SPEAKER_00: ..." with the label unchanged`

// reSpeakerLine matches the speaker prefix whisperx puts on diarized lines.
var reSpeakerLine = regexp.MustCompile(`(?m)^\[SPEAKER_\d+\]:`)

// instructionFor adds speaker guidance when the transcript is diarized.
func instructionFor(transcript string) string {
	if reSpeakerLine.MatchString(transcript) {
		return summaryInstruction + speakerInstruction
	}
	return summaryInstruction
}

// SummarizeAll finds transcripts under root, calls Gemini for each one that
// has no summary yet and writes the markdown and docx outputs beside it.
func (s *implSummarizer) SummarizeAll(ctx context.Context, root string) (Result, error) {
	var res Result

	if len(s.apiKeys) == 0 {
		return res, errors.New("no Gemini API keys configured")
	}

	transcripts, err := s.discoverTranscripts(root)
	if err != nil {
		return res, fmt.Errorf("discover transcripts: %w", err)
	}

	if len(transcripts) == 0 {
		s.logger.Info(ctx, "No transcripts found in %s", root)
		return res, nil
	}

	s.logger.Info(ctx, "Found %d transcripts to check for summaries", len(transcripts))

	for i, path := range transcripts {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		base := strings.TrimSuffix(path, filepath.Ext(path))
		mdPath := base + summarySuffix + ".md"
		name := filepath.Base(base)

		if _, err := os.Stat(mdPath); err == nil {
			s.logger.Debug(ctx, "Summary exists: %s", mdPath)
			res.Skipped++
			continue
		}

		s.logger.Info(ctx, "[%d/%d] Summarizing: %s", i+1, len(transcripts), name)

		content, err := os.ReadFile(path)
		if err != nil {
			s.logger.Error(ctx, "Failed to read %s: %v", path, err)
			res.Failed++
			continue
		}
		if strings.TrimSpace(string(content)) == "" {
			s.logger.Warn(ctx, "Empty transcript, skipping: %s", path)
			res.Skipped++
			continue
		}

		summary, err := s.callGemini(ctx, string(content))
		if err != nil {
			s.logger.Error(ctx, "Failed to summarize %s: %v", name, err)
			res.Failed++
			continue
		}

		md := fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
			name,
			time.Now().Format("2006-01-02 15:04"),
			strings.TrimSpace(summary),
		)

		if err := os.WriteFile(mdPath, []byte(md), 0644); err != nil {
			s.logger.Error(ctx, "Failed to write %s: %v", mdPath, err)
			res.Failed++
			continue
		}

		docxPath := base + summarySuffix + ".docx"
		if err := markdownToDocx(name, summary, docxPath); err != nil {
			s.logger.Warn(ctx, "Failed to write %s: %v", docxPath, err)
		}

		s.logger.Info(ctx, "[DONE] %s -> %s", name, mdPath)
		res.Written++
	}

	s.logger.Info(ctx, "Summaries: %d written, %d skipped, %d failed", res.Written, res.Skipped, res.Failed)
	return res, nil
}

// callGemini sends the transcript to Gemini and returns the summary text.
// A rate-limited key is rotated out and the next one is tried once.
func (s *implSummarizer) callGemini(ctx context.Context, transcript string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instructionFor(transcript), genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.3),
	}
	contents := []*genai.Content{genai.NewContentFromText("Transcript:\n"+transcript, genai.RoleUser)}

	var lastErr error
	for range len(s.apiKeys) {
		client, err := s.client(ctx)
		if err != nil {
			lastErr = err
			s.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, s.model, contents, cfg)
		if err != nil {
			if !isRateLimited(err) {
				return "", fmt.Errorf("generate content: %w", err)
			}
			s.logger.Warn(ctx, "Key %d rate limited, rotating...", s.currentKey+1)
			s.rotateKey()
			lastErr = err
			continue
		}

		if text := strings.TrimSpace(result.Text()); text != "" {
			return text, nil
		}
		return "", errors.New("empty response from Gemini")
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

// client returns the cached client for the current key.
func (s *implSummarizer) client(ctx context.Context) (*genai.Client, error) {
	key := s.apiKeys[s.currentKey]
	if c, ok := s.clients[key]; ok {
		return c, nil
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  key,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create client for key %d: %w", s.currentKey+1, err)
	}
	s.clients[key] = c
	return c, nil
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func (s *implSummarizer) rotateKey() {
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
}

// discoverTranscripts returns every transcript under root, sorted.
func (s *implSummarizer) discoverTranscripts(root string) ([]string, error) {
	ext := "." + s.transcript
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}
