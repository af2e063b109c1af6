package kml

import (
	"archive/zip"
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Load reads a KMZ or KML document from a local path or an http(s) URL and
// parses it into a node tree. Remote inputs are downloaded to a temporary
// file first; the extension decides whether the file is treated as a ZIP
// archive (.kmz) or a bare document.
func Load(ctx context.Context, input string) (*Document, error) {
	local := input
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		tmp, err := download(ctx, input)
		if err != nil {
			return nil, err
		}
		defer func() { _ = os.Remove(tmp) }()
		local = tmp
	}

	if strings.EqualFold(filepath.Ext(local), ".kmz") {
		return loadKMZ(local)
	}
	return loadKML(local)
}

func loadKML(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "kml: open %s", path)
	}
	defer f.Close() //nolint:errcheck

	doc, err := Parse(f)
	if err != nil {
		return nil, eris.Wrapf(err, "kml: parse %s", path)
	}
	return doc, nil
}

// loadKMZ opens a KMZ archive and parses its document entry. The archive's
// main document is conventionally named doc.kml; failing that, the first
// .kml entry wins.
func loadKMZ(kmzPath string) (*Document, error) {
	r, err := zip.OpenReader(kmzPath)
	if err != nil {
		return nil, eris.Wrapf(err, "kml: open archive %s", kmzPath)
	}
	defer r.Close() //nolint:errcheck

	entry := findDocEntry(&r.Reader)
	if entry == nil {
		return nil, eris.Errorf("kml: no .kml entry in %s", kmzPath)
	}

	f, err := entry.Open()
	if err != nil {
		return nil, eris.Wrapf(err, "kml: open archive entry %s", entry.Name)
	}
	defer f.Close() //nolint:errcheck

	doc, err := Parse(f)
	if err != nil {
		return nil, eris.Wrapf(err, "kml: parse %s!%s", kmzPath, entry.Name)
	}
	return doc, nil
}

func findDocEntry(r *zip.Reader) *zip.File {
	var first *zip.File
	for _, f := range r.File {
		if !strings.EqualFold(path.Ext(f.Name), ".kml") {
			continue
		}
		if strings.EqualFold(path.Base(f.Name), "doc.kml") {
			return f
		}
		if first == nil {
			first = f
		}
	}
	return first
}

// download fetches a remote map export to a temporary file, preserving the
// URL's extension so loadKMZ/loadKML dispatch still works.
func download(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", eris.Wrapf(err, "kml: parse url %s", rawURL)
	}
	ext := path.Ext(u.Path)
	if ext == "" {
		ext = ".kmz"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", eris.Wrap(err, "kml: build request")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", eris.Wrapf(err, "kml: download %s", rawURL)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return "", eris.Errorf("kml: download %s returned status %d", rawURL, resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "walks-*"+ext)
	if err != nil {
		return "", eris.Wrap(err, "kml: create temp file")
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", eris.Wrapf(err, "kml: write %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", eris.Wrapf(err, "kml: close %s", tmp.Name())
	}

	zap.L().Debug("downloaded map export",
		zap.String("url", rawURL),
		zap.String("path", tmp.Name()),
	)
	return tmp.Name(), nil
}
