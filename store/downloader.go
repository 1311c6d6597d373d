package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v6"
	"github.com/minio/minio-go/v6/pkg/credentials"

	"github.com/iterum-provenance/dbt-runner/data"
	"github.com/iterum-provenance/dbt-runner/env"
)

// ObjectDownloader downloads a single object from object storage into a local file
type ObjectDownloader interface {
	FGetObjectWithContext(ctx context.Context, bucketName, objectName, filePath string, opts minio.GetObjectOptions) error
}

var getOptions = minio.GetObjectOptions{}

// NewObjectDownloader creates a minio client for the configured S3 endpoint.
// Credentials are taken from the AWS environment variables, the shared credentials
// file or the instance role, in that order.
func NewObjectDownloader(conf *env.Config) (ObjectDownloader, error) {
	creds := credentials.NewChainCredentials([]credentials.Provider{
		&credentials.EnvAWS{},
		&credentials.FileAWSCredentials{},
		&credentials.IAM{Client: &http.Client{Transport: http.DefaultTransport}},
	})
	client, err := minio.NewWithCredentials(conf.S3Endpoint, creds, true, conf.AWSRegion)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// ParseObjectURL splits an `s3://bucket/key` (or `bucket/key`) reference into its bucket and key
func ParseObjectURL(raw string) (bucket, key string, err error) {
	if strings.Contains(raw, "://") {
		parsed, errParse := url.Parse(raw)
		if errParse != nil {
			return "", "", errParse
		}
		if parsed.Scheme != "s3" {
			return "", "", fmt.Errorf("unsupported object storage scheme '%v'", parsed.Scheme)
		}
		bucket, key = parsed.Host, strings.TrimPrefix(parsed.Path, "/")
	} else {
		parts := strings.SplitN(strings.TrimPrefix(raw, "/"), "/", 2)
		if len(parts) == 2 {
			bucket, key = parts[0], parts[1]
		}
	}
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("'%v' does not name both a bucket and an object key", raw)
	}
	return bucket, key, nil
}

// fetchObject downloads the package object. Tarballs are unpacked into the download
// directory, any other object is stored as <download-dir>/<path>.
func (f *Fetcher) fetchObject(ctx context.Context, conf *env.Config) (desc data.LocalPackageDesc, err error) {
	f.log.Infof("Fetching DBT package from S3 url: %v", conf.PackageURL)
	desc = data.LocalPackageDesc{Type: env.PackageS3, Source: conf.PackageURL, LocalPath: conf.Path}

	bucket, key, err := ParseObjectURL(conf.PackageURL)
	if err != nil {
		return desc, fmt.Errorf("%w: %v", env.ErrConfiguration, err)
	}
	client, err := f.NewObjects(conf)
	if err != nil {
		return desc, fmt.Errorf("%w: %v", ErrObject, err)
	}

	target := f.projectPath(conf)
	if !IsArchive(key) {
		if err = os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return desc, err
		}
		if err = client.FGetObjectWithContext(ctx, bucket, key, target, getOptions); err != nil {
			return desc, fmt.Errorf("%w: %v", ErrObject, err)
		}
		conf.Path = target
		desc.LocalPath = target
		f.log.Infof("DBT package object downloaded to %v", target)
		return desc, nil
	}

	tmpDir, err := os.MkdirTemp("", "dbt-object-")
	if err != nil {
		return desc, err
	}
	defer os.RemoveAll(tmpDir)
	archive := filepath.Join(tmpDir, filepath.Base(key))
	if err = client.FGetObjectWithContext(ctx, bucket, key, archive, getOptions); err != nil {
		return desc, fmt.Errorf("%w: %v", ErrObject, err)
	}
	if info, errStat := os.Stat(archive); errStat == nil && info.Size() == 0 {
		f.log.Warnln("Package object has no content, nothing to extract")
		desc.Empty = true
		return desc, nil
	}
	if err = ExtractArchive(archive, f.DownloadDir); err != nil {
		return desc, fmt.Errorf("%w: %v", ErrExtract, err)
	}
	conf.Path = target
	desc.LocalPath = target
	f.log.Infof("DBT project extracted from S3 package into %v", target)
	return desc, nil
}
