package store

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/iterum-provenance/dbt-runner/data"
	"github.com/iterum-provenance/dbt-runner/env"
)

// maxRedirects is the amount of redirects followed before a URL is considered invalid
const maxRedirects = 10

// NewHTTPClient returns the client used for artifact downloads.
// It applies no timeout of its own and gives up on redirect loops.
func NewHTTPClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return ErrTooManyRedirects
			}
			return nil
		},
	}
}

// classifyRequestErr maps a failed request onto the matching sentinel error
func classifyRequestErr(err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, ErrTooManyRedirects):
		return fmt.Errorf("%w: %v", ErrTooManyRedirects, err)
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
}

// fetchArtifactory streams the package tarball into a temporary file and unpacks it into the download directory
func (f *Fetcher) fetchArtifactory(ctx context.Context, conf *env.Config) (desc data.LocalPackageDesc, err error) {
	f.log.Infof("Fetching DBT package from Artifactory url: %v", conf.PackageURL)
	desc = data.LocalPackageDesc{Type: env.PackageArtifactory, Source: conf.PackageURL, LocalPath: conf.Path}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, conf.PackageURL, nil)
	if err != nil {
		return desc, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	resp, err := f.HTTP.Do(req)
	if err != nil {
		return desc, classifyRequestErr(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return desc, fmt.Errorf("%w: server responded with '%v'", ErrTransport, resp.Status)
	}

	archive, err := os.CreateTemp("", "dbt-*.tar.gz")
	if err != nil {
		return desc, fmt.Errorf("%w: failed to save downloaded package: %v", ErrExtract, err)
	}
	defer os.Remove(archive.Name())

	size, err := writeChunks(archive, resp.Body)
	if errClose := archive.Close(); err == nil {
		err = errClose
	}
	if err != nil {
		return desc, fmt.Errorf("%w: failed to save downloaded package: %v", ErrExtract, err)
	}

	if size == 0 {
		f.log.Warnln("Artifact has no content, nothing to extract")
		desc.Empty = true
		return desc, nil
	}

	if err = ExtractArchive(archive.Name(), f.DownloadDir); err != nil {
		return desc, fmt.Errorf("%w: %v", ErrExtract, err)
	}
	conf.Path = f.projectPath(conf)
	desc.LocalPath = conf.Path
	f.log.Infof("DBT project extracted from Artifactory package into %v", conf.Path)
	return desc, nil
}
