package fetcher

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

// extractASC extracts the single .asc grid from a zip archive into destDir
// and returns its path. Archives with zero or multiple grids are rejected
// rather than guessed at.
func extractASC(zipPath, destDir string) (string, error) {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		return "", eris.Wrap(err, "fetcher: open zip archive")
	}
	defer r.Close() //nolint:errcheck

	var grids []*zip.File
	for _, f := range r.File {
		if !f.FileInfo().IsDir() && strings.EqualFold(filepath.Ext(f.Name), ".asc") {
			grids = append(grids, f)
		}
	}
	if len(grids) != 1 {
		return "", eris.Errorf("fetcher: expected exactly 1 .asc grid in archive, got %d", len(grids))
	}
	return extractEntry(grids[0], destDir)
}

func extractEntry(f *zip.File, destDir string) (string, error) {
	// Flatten archive subdirectories; guard against zip slip.
	name := filepath.Base(f.Name)
	destPath := filepath.Join(destDir, name)
	if !strings.HasPrefix(filepath.Clean(destPath), filepath.Clean(destDir)+string(os.PathSeparator)) {
		return "", eris.Errorf("fetcher: illegal zip entry path %q", f.Name)
	}

	rc, err := f.Open()
	if err != nil {
		return "", eris.Wrap(err, "fetcher: open zip entry")
	}
	defer rc.Close() //nolint:errcheck

	out, err := os.Create(destPath)
	if err != nil {
		return "", eris.Wrap(err, "fetcher: create extracted file")
	}
	defer out.Close() //nolint:errcheck

	if _, err := io.Copy(out, rc); err != nil {
		return "", eris.Wrap(err, "fetcher: write extracted file")
	}
	return destPath, nil
}
