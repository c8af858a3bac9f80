package data

import (
	"encoding/csv"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Known sources. The training CSV is the published weight-lifting-exercise
// recording of six participants.
var sourceURLs = map[string]string{
	"wle-training": "https://d396qusza40orc.cloudfront.net/predmachlearn/pml-training.csv",
	"wle-testing":  "https://d396qusza40orc.cloudfront.net/predmachlearn/pml-testing.csv",
}

// Loader fetches raw CSV sources and caches them on disk. A cached source is
// never re-downloaded, so repeated loads of the same name read byte-identical
// data.
type Loader struct {
	CacheDir string
	// Client defaults to http.DefaultClient.
	Client *http.Client
}

func NewLoader(cacheDir string) *Loader {
	return &Loader{CacheDir: cacheDir}
}

// Load returns the raw frame for a named source, downloading it on first use.
func (l *Loader) Load(sourceName string) (*Frame, error) {
	path, err := l.fetch(sourceName)
	if err != nil {
		return nil, err
	}
	return ReadCSV(path)
}

func (l *Loader) fetch(sourceName string) (string, error) {
	url, ok := sourceURLs[sourceName]
	if !ok {
		return "", errors.Errorf("unknown source %q", sourceName)
	}
	path := filepath.Join(l.CacheDir, sourceName+".csv")
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := os.MkdirAll(l.CacheDir, 0o755); err != nil {
		return "", err
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Get(url)
	if err != nil {
		return "", errors.Wrapf(err, "fetch %s", sourceName)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("fetch %s: status %s", sourceName, resp.Status)
	}
	tmp, err := os.CreateTemp(l.CacheDir, sourceName+"-*.part")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", errors.Wrapf(err, "fetch %s", sourceName)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return path, nil
}

// ReadCSV parses a CSV file into a Frame. The first record is the header.
func ReadCSV(path string) (*Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	if len(rows) < 2 {
		return nil, errors.Errorf("read %s: no data rows", path)
	}
	return &Frame{Header: rows[0], Records: rows[1:]}, nil
}
