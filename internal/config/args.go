package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// RunConfig is the fully resolved configuration of one invocation. It is
// built once by ParseArgs and not modified afterwards.
type RunConfig struct {
	InputPath  string
	OutputPath string
	ModelSize  string
	Language   Language
	Extension  string // empty means all supported extensions
	Diarize    bool
	Model      ResolvedModel

	Watch     bool
	Summarize bool
	Verbose   bool

	Settings Config
}

const usage = `Usage:
  transcribe [flags] <input_folder> [model_size] [language] [extension_filter] [diarize]

Arguments:
  input_folder       folder to scan recursively (required)
  model_size         tiny | base | small | medium | large-v3 (default: small)
  language           en | es | multi (default: multi)
  extension_filter   only process this extension; "" for all supported
  diarize            true | false (default: false)

Flags:
  -o, --output-dir <path>   write transcripts here instead of the generated folder
  --config <file>           YAML settings file
  --continue-on-error       keep going when a file fails
  --watch                   keep watching the input folder after the batch
  --summarize               write Gemini summaries for finished transcripts
  -v, --verbose             debug logging
  -h, --help                show this help
`

// Usage returns the command help text.
func Usage() string {
	return usage
}

// ParseArgs resolves command-line arguments into a RunConfig. It returns
// flag.ErrHelp when help was requested and *ConfigError for invalid input.
func ParseArgs(args []string) (*RunConfig, error) {
	fs := flag.NewFlagSet("transcribe", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		outputDir       string
		configPath      string
		continueOnError bool
		rc              RunConfig
	)
	fs.StringVar(&outputDir, "output-dir", "", "")
	fs.StringVar(&outputDir, "o", "", "")
	fs.StringVar(&configPath, "config", "", "")
	fs.BoolVar(&continueOnError, "continue-on-error", false, "")
	fs.BoolVar(&rc.Watch, "watch", false, "")
	fs.BoolVar(&rc.Summarize, "summarize", false, "")
	fs.BoolVar(&rc.Verbose, "verbose", false, "")
	fs.BoolVar(&rc.Verbose, "v", false, "")

	// flag stops at the first positional; keep parsing so flags may follow them.
	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			if errors.Is(err, flag.ErrHelp) {
				return nil, err
			}
			return nil, &ConfigError{Arg: "flags", Message: "invalid flag", Err: err}
		}
		rest = fs.Args()
		if len(rest) == 0 {
			break
		}
		positional = append(positional, rest[0])
		rest = rest[1:]
	}

	settings := Default()
	if configPath != "" {
		loaded, err := Load(configPath)
		if err != nil {
			return nil, &ConfigError{Arg: "config", Message: "cannot load settings", Err: err}
		}
		settings = loaded
	}
	if continueOnError {
		settings.Batch.FailurePolicy = Continue
	}
	if rc.Verbose {
		settings.Logging.Level = "debug"
	}
	rc.Settings = settings

	if err := applyPositional(&rc, positional); err != nil {
		return nil, err
	}

	if outputDir != "" {
		abs, err := filepath.Abs(outputDir)
		if err != nil {
			return nil, &ConfigError{Arg: "output-dir", Message: "cannot resolve path", Err: err}
		}
		rc.OutputPath = abs
	} else {
		rc.OutputPath = DefaultOutputPath(rc.InputPath, rc.ModelSize, rc.Language, rc.Diarize)
	}

	rc.Model = ResolveModel(rc.ModelSize, rc.Language)
	return &rc, nil
}

func applyPositional(rc *RunConfig, positional []string) error {
	if len(positional) == 0 || strings.TrimSpace(positional[0]) == "" {
		return &ConfigError{Arg: "input_folder", Message: "required"}
	}
	if len(positional) > 5 {
		return &ConfigError{Arg: "arguments", Message: fmt.Sprintf("too many positional arguments (%d)", len(positional))}
	}

	input, err := filepath.Abs(positional[0])
	if err != nil {
		return &ConfigError{Arg: "input_folder", Message: "cannot resolve path", Err: err}
	}
	info, err := os.Stat(input)
	if err != nil {
		return &ConfigError{Arg: "input_folder", Message: "not found: " + positional[0], Err: err}
	}
	if !info.IsDir() {
		return &ConfigError{Arg: "input_folder", Message: "not a directory: " + positional[0]}
	}
	if filepath.Dir(input) == input {
		return &ConfigError{Arg: "input_folder", Message: "refusing to transcribe the filesystem root: " + input}
	}
	rc.InputPath = input

	rc.ModelSize = "small"
	if len(positional) > 1 && positional[1] != "" {
		rc.ModelSize = strings.ToLower(positional[1])
	}
	if !validModelSize(rc.ModelSize) {
		return &ConfigError{Arg: "model_size", Message: fmt.Sprintf("unknown model %q (use one of %s)", rc.ModelSize, strings.Join(ModelSizes, ", "))}
	}

	rc.Language = LanguageMulti
	if len(positional) > 2 {
		rc.Language = ParseLanguage(positional[2])
	}

	if len(positional) > 3 {
		rc.Extension = NormalizeExtension(positional[3])
	}

	if len(positional) > 4 && positional[4] != "" {
		diarize, err := strconv.ParseBool(positional[4])
		if err != nil {
			return &ConfigError{Arg: "diarize", Message: fmt.Sprintf("must be true or false (got %q)", positional[4])}
		}
		rc.Diarize = diarize
	}

	return nil
}

// NormalizeExtension lowercases an extension and strips its leading dot.
func NormalizeExtension(ext string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
}

// DefaultOutputPath names the output folder after the settings that shape
// the transcripts, next to the input folder, so repeated runs with the same
// settings resume into the same place.
func DefaultOutputPath(input, modelSize string, lang Language, diarize bool) string {
	name := fmt.Sprintf("%s_transcripts_%s_%s", filepath.Base(input), modelSize, lang)
	if diarize {
		name += "_diarized"
	}
	return filepath.Join(filepath.Dir(input), name)
}
