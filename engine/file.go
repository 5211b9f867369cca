package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/iand/semdoc/doc"
	"github.com/iand/semdoc/format"
	"github.com/iand/semdoc/logging"
)

const defaultOutFileSuffix = ".html"

// IsURL reports whether s names a remote document.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// LoadFile reads source from a local path or an http(s) URL.
func LoadFile(ctx context.Context, pathOrURL string) (string, error) {
	if !IsURL(pathOrURL) {
		data, err := os.ReadFile(pathOrURL)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", pathOrURL, err)
		}
		return string(data), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pathOrURL, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pathOrURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("fetch %s: unexpected status %s", pathOrURL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", pathOrURL, err)
	}
	return string(data), nil
}

type FileOptions struct {
	// ToFile writes the output next to the input, or into OutDir when set.
	// Remote inputs are never written.
	ToFile bool

	// OutFileName overrides the output file name. A relative name is
	// resolved against the output directory.
	OutFileName string

	OutDir string
}

type FileResult struct {
	HTML string

	// Path is the file the output was written to, empty when nothing was
	// written.
	Path string
}

var ErrOverwriteInput = errors.New("output would overwrite input")

// ConvertFile loads, converts and formats a document and optionally writes
// the result to disk.
func (e *Engine) ConvertFile(ctx context.Context, pathOrURL string, fo FileOptions) (*FileResult, error) {
	src, err := LoadFile(ctx, pathOrURL)
	if err != nil {
		return nil, err
	}

	d := e.Parse(src)
	out, err := format.Apply(ctx, e.opts.Format, e.Render(d))
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", pathOrURL, err)
	}

	res := &FileResult{HTML: out}
	if !fo.ToFile {
		return res, nil
	}
	if IsURL(pathOrURL) {
		logging.Warn("not writing output for remote document", "url", pathOrURL)
		return res, nil
	}

	path := outputPath(pathOrURL, fo, d.Attr(doc.AttrOutFileSuffix))
	inAbs, _ := filepath.Abs(pathOrURL)
	outAbs, _ := filepath.Abs(path)
	if inAbs == outAbs {
		return nil, fmt.Errorf("write %s: %w", path, ErrOverwriteInput)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	logging.Info("wrote converted document", "input", pathOrURL, "output", path)
	res.Path = path
	return res, nil
}

func outputPath(input string, fo FileOptions, suffix string) string {
	dir := fo.OutDir
	if dir == "" {
		dir = filepath.Dir(input)
	}

	name := fo.OutFileName
	if name == "" {
		if suffix == "" {
			suffix = defaultOutFileSuffix
		}
		base := filepath.Base(input)
		name = strings.TrimSuffix(base, filepath.Ext(base)) + suffix
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}
