package store

import (
	"context"
	"net/http"
	"path"

	"github.com/iterum-provenance/dbt-runner/data"
	"github.com/iterum-provenance/dbt-runner/env"
	"github.com/iterum-provenance/dbt-runner/logging"
)

// DownloadDir is the parent directory all fetched packages are placed in
const DownloadDir = "dbt_download"

// Fetcher is the structure responsible for retrieving the dbt project
// from its configured source and placing it on local disk
type Fetcher struct {
	DownloadDir string
	HTTP        *http.Client
	NewObjects  func(conf *env.Config) (ObjectDownloader, error) // builds the object storage client on demand
	Clone       CloneFunc
	log         logging.Logger
}

// NewFetcher instantiates a Fetcher using the default clients
func NewFetcher(logger logging.Logger) *Fetcher {
	return &Fetcher{
		DownloadDir: DownloadDir,
		HTTP:        NewHTTPClient(),
		NewObjects:  NewObjectDownloader,
		Clone:       PlainClone,
		log:         logger,
	}
}

// projectPath returns the location of the project once fetched into the download directory
func (f *Fetcher) projectPath(conf *env.Config) string {
	return path.Join(f.DownloadDir, conf.Path)
}

// Fetch materializes the dbt project according to conf. On success conf.Path is
// rewritten to point at the fetched project. Exactly one strategy runs per call.
func (f *Fetcher) Fetch(ctx context.Context, conf *env.Config) (data.LocalPackageDesc, error) {
	if conf.PackageType != "" && conf.PackageURL == "" {
		return data.LocalPackageDesc{}, env.ErrMissing(env.PackageURL, "when "+env.PackageType+" is set to '"+conf.PackageType+"'")
	}

	switch conf.PackageType {
	case env.PackageArtifactory:
		return f.fetchArtifactory(ctx, conf)
	case env.PackageS3:
		return f.fetchObject(ctx, conf)
	case env.PackageGithub:
		f.log.Infoln("Github DBT location set")
		return f.fetchGit(ctx, conf)
	default:
		f.log.Infof("No DBT package type or URL specified. Assuming locally mounted in %v/", conf.Path)
		return data.LocalPackageDesc{LocalPath: conf.Path}, nil
	}
}
