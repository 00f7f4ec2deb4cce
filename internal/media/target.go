package media

import (
	"os"
	"path/filepath"
)

// Target is where a file's transcripts land.
type Target struct {
	Dir          string
	ArtifactPath string // primary artifact; its presence marks the file done
}

// TargetFor mirrors f's directory under outputRoot. Nothing is created.
func TargetFor(f File, outputRoot, primaryExt string) Target {
	dir := filepath.Join(outputRoot, f.RelDir)
	return Target{
		Dir:          dir,
		ArtifactPath: filepath.Join(dir, f.BaseName+"."+primaryExt),
	}
}

// IsComplete reports whether the primary artifact already exists.
func IsComplete(t Target) bool {
	_, err := os.Stat(t.ArtifactPath)
	return err == nil
}
