package encoding

import (
	"os"
	"path/filepath"
	"strings"

	"streamsift/internal/fileutil"
	"streamsift/internal/services"
)

// OutputPath returns where a remux of input lands. An empty outputDir means
// the input is replaced in place. The file name and extension are kept.
func OutputPath(input, outputDir string) string {
	outputDir = strings.TrimSpace(outputDir)
	if outputDir == "" {
		return input
	}
	return filepath.Join(outputDir, filepath.Base(input))
}

// tempOutputPath places the in-progress file next to the destination so the
// final rename stays on one filesystem. The extension is preserved because
// ffmpeg picks the muxer from it.
func tempOutputPath(output string) string {
	return filepath.Join(filepath.Dir(output), ".streamsift-"+filepath.Base(output))
}

func lockPath(output string) string {
	return output + ".lock"
}

func finalizeOutput(tempPath, desiredPath string) (string, error) {
	if strings.EqualFold(tempPath, desiredPath) {
		return tempPath, nil
	}
	if err := os.Rename(tempPath, desiredPath); err != nil {
		_ = os.Remove(tempPath)
		return "", services.Wrap(
			services.ErrTransient,
			"encoding",
			"finalize output",
			"Failed to move remuxed file into destination",
			err,
		)
	}
	return desiredPath, nil
}

// stageUnchanged copies a file that needs no processing into the output
// directory. It is a no-op when the output is the input.
func stageUnchanged(input, output string) (bool, error) {
	if filepath.Clean(input) == filepath.Clean(output) {
		return false, nil
	}
	if err := fileutil.CopyFileVerified(input, output); err != nil {
		return false, services.Wrap(
			services.ErrTransient,
			"encoding",
			"stage unchanged",
			"Failed to copy unchanged file into output directory",
			err,
		)
	}
	return true, nil
}
