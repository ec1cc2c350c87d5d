// Package fetcher downloads population raster datasets over HTTP or FTP.
// Gridded population archives (GPW, WorldPop) ship as zipped ESRI ASCII
// grids, so the dataset path handles zip extraction too.
package fetcher

import (
	"context"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Fetcher downloads a URL to a local file. Implementations exist for HTTP(S)
// and FTP.
type Fetcher interface {
	Download(ctx context.Context, rawURL string) (io.ReadCloser, error)
	DownloadToFile(ctx context.Context, rawURL, path string) (int64, error)
}

// forURL picks a fetcher by URL scheme.
func forURL(rawURL string) (Fetcher, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrapf(err, "fetcher: parse url %s", rawURL)
	}
	switch u.Scheme {
	case "http", "https":
		return NewHTTPFetcher(HTTPOptions{}), nil
	case "ftp":
		return NewFTPFetcher(FTPOptions{}), nil
	default:
		return nil, eris.Errorf("fetcher: unsupported scheme %q", u.Scheme)
	}
}

// FetchDataset downloads a raster dataset to destPath. The download goes to
// a temp file next to the destination and is renamed into place only on
// success, so a half-written grid never shadows a good one. Zip archives are
// extracted and must contain exactly one .asc grid.
func FetchDataset(ctx context.Context, rawURL, destPath string) error {
	f, err := forURL(rawURL)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return eris.Wrap(err, "fetcher: create dataset directory")
	}

	tmp := destPath + ".partial"
	defer os.Remove(tmp)

	n, err := f.DownloadToFile(ctx, rawURL, tmp)
	if err != nil {
		return err
	}
	zap.L().Info("dataset downloaded",
		zap.String("url", rawURL),
		zap.Int64("bytes", n),
	)

	if strings.HasSuffix(strings.ToLower(rawURL), ".zip") {
		extracted, err := extractASC(tmp, filepath.Dir(destPath))
		if err != nil {
			return err
		}
		if extracted == destPath {
			return nil
		}
		return renameDataset(extracted, destPath)
	}

	return renameDataset(tmp, destPath)
}

func renameDataset(from, to string) error {
	if err := os.Rename(from, to); err != nil {
		return eris.Wrapf(err, "fetcher: move dataset to %s", to)
	}
	return nil
}
