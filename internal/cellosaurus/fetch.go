package cellosaurus

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v2"
)

// DefaultURL is the upstream location of the Cellosaurus flat file.
const DefaultURL = "https://ftp.expasy.org/databases/cellosaurus/cellosaurus.txt"

// ConvertFromDownload fetches the Cellosaurus flat file from url (DefaultURL
// when empty) and parses it into a database. The raw download is kept next
// to the default install path so a re-run can use ConvertFromPath instead.
func ConvertFromDownload(url string) (DB, error) {
	if url == "" {
		url = DefaultURL
	}
	path := filepath.Join(filepath.Dir(DefaultPath()), "cellosaurus.txt")
	if err := download(url, path); err != nil {
		return nil, err
	}
	return ConvertFromPath(path)
}

// download streams url to path, rendering a byte progress bar on stderr.
func download(url, path string) error {
	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("downloading '%s': %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("downloading '%s': %s", url, resp.Status)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	handle, err := os.Create(path)
	if err != nil {
		return err
	}
	defer handle.Close()
	bar := progressbar.NewOptions(
		int(resp.ContentLength),
		progressbar.OptionSetBytes(int(resp.ContentLength)),
		progressbar.OptionSetDescription(filepath.Base(url)),
		progressbar.OptionSetWriter(os.Stderr),
	)
	if _, err := io.Copy(io.MultiWriter(handle, barWriter{bar}), resp.Body); err != nil {
		return fmt.Errorf("downloading '%s': %w", url, err)
	}
	fmt.Fprintln(os.Stderr)
	return nil
}

// barWriter adapts the progress bar to io.Writer for io.Copy.
type barWriter struct {
	bar *progressbar.ProgressBar
}

func (w barWriter) Write(p []byte) (int, error) {
	_ = w.bar.Add(len(p))
	return len(p), nil
}
