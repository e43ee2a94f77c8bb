package refdata

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Table file names shared by every source.
const (
	FullMoonsFile  = "fullmoons.json"
	HousesFile     = "houses.json"
	NakshatrasFile = "nakshatras.json"
)

//go:embed data/*.json
var embedded embed.FS

// Source opens one reference table by file name.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	String() string
}

// FSSource reads tables from a filesystem.
type FSSource struct {
	fsys  fs.FS
	label string
}

// Embedded returns the tables compiled into the binary.
func Embedded() *FSSource {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		panic(fmt.Sprintf("refdata: embedded data missing: %v", err))
	}
	return &FSSource{fsys: sub, label: "embedded"}
}

// Dir reads tables from a directory on disk.
func Dir(path string) *FSSource {
	return &FSSource{fsys: os.DirFS(path), label: "dir:" + path}
}

func (s *FSSource) Open(_ context.Context, name string) (io.ReadCloser, error) {
	return s.fsys.Open(name)
}

func (s *FSSource) String() string { return s.label }

// HTTPSource fetches tables relative to a base URL.
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource validates baseURL and returns a source using client.
// A nil client falls back to http.DefaultClient.
func NewHTTPSource(baseURL string, client *http.Client) (*HTTPSource, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse data url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse data url: unsupported scheme %q", u.Scheme)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{base: u, client: client}, nil
}

func (s *HTTPSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	target := s.base.ResolveReference(&url.URL{Path: name})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close() //nolint:errcheck // body discarded on error status
		return nil, fmt.Errorf("fetch %s: unexpected status %d", target, resp.StatusCode)
	}
	return resp.Body, nil
}

func (s *HTTPSource) String() string { return s.base.String() }
