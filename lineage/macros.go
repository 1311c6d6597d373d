// Package lineage installs the asset registration macros into a dbt project so that
// the models it builds report their lineage
package lineage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/iterum-provenance/dbt-runner/env"
	"github.com/iterum-provenance/dbt-runner/logging"
	"github.com/iterum-provenance/dbt-runner/util"
)

// MacrosDir is the folder of a dbt project that macros are loaded from
const MacrosDir = "macros"

// Installer copies the registration macros into projects
type Installer struct {
	Source string
	log    logging.Logger
}

// NewInstaller instantiates an Installer copying macros from source
func NewInstaller(source string, logger logging.Logger) Installer {
	return Installer{
		Source: source,
		log:    logger,
	}
}

// Install copies the macros into the project at conf.Path when asset registration
// is enabled, returning the number of copied files. A project without a macros
// folder is logged and skipped, an unreadable source is an error.
func (installer Installer) Install(conf *env.Config) (copied int, err error) {
	if !env.Enabled(conf.RegisterAssets) {
		installer.log.Infoln("Asset registration disabled")
		return 0, nil
	}
	dest := filepath.Join(conf.Path, MacrosDir)
	installer.log.Infof("Adding DBT macros to the DBT Project folder %v/", conf.Path)

	entries, err := os.ReadDir(installer.Source)
	if err != nil {
		return 0, fmt.Errorf("could not read macros from '%v': %w", installer.Source, err)
	}
	if info, errDest := os.Stat(dest); errDest != nil || !info.IsDir() {
		installer.log.Warnf("Target dbt project folder not found to copy macros to: %v", dest)
		return 0, nil
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if err = copyFile(filepath.Join(installer.Source, entry.Name()), filepath.Join(dest, entry.Name())); err != nil {
			return copied, err
		}
		copied++
	}
	installer.log.Infof("Copied %v macros into %v", copied, dest)
	return copied, nil
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	_, errCopy := io.Copy(out, in)
	return util.ReturnFirstErr(errCopy, out.Close())
}
