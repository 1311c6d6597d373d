package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"

	"github.com/iterum-provenance/dbt-runner/data"
	"github.com/iterum-provenance/dbt-runner/env"
)

// CloneFunc clones the repository described by opts into dest
type CloneFunc func(ctx context.Context, dest string, opts *git.CloneOptions) (*git.Repository, error)

// PlainClone clones a repository with a worktree into dest
func PlainClone(ctx context.Context, dest string, opts *git.CloneOptions) (*git.Repository, error) {
	return git.PlainCloneContext(ctx, dest, false, opts)
}

// gitAuth returns token based authentication when a token is available
func gitAuth(token string) transport.AuthMethod {
	if token == "" {
		return nil
	}
	return &http.BasicAuth{
		Username: "x-access-token",
		Password: token,
	}
}

// checkoutRemoteBranch checks out origin/<branch> of repo, leaving HEAD detached at its commit
func checkoutRemoteBranch(repo *git.Repository, branch string) error {
	ref, err := repo.Reference(plumbing.NewRemoteReferenceName("origin", branch), true)
	if err != nil {
		return err
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return err
	}
	return worktree.Checkout(&git.CheckoutOptions{
		Hash:  ref.Hash(),
		Force: true,
	})
}

// fetchGit clones the repository into <download-dir>/<path>, replacing whatever was there
func (f *Fetcher) fetchGit(ctx context.Context, conf *env.Config) (desc data.LocalPackageDesc, err error) {
	branch := conf.PackageBranch
	f.log.Infof("Fetching DBT package from Github branch '%v' in repository: %v", branch, conf.PackageURL)
	target := f.projectPath(conf)
	desc = data.LocalPackageDesc{Type: env.PackageGithub, Source: conf.PackageURL, LocalPath: conf.Path}

	if err = os.RemoveAll(target); err != nil {
		return desc, fmt.Errorf("could not clear '%v': %w", target, err)
	}
	if err = os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return desc, err
	}

	repo, err := f.Clone(ctx, target, &git.CloneOptions{
		URL:  conf.PackageURL,
		Auth: gitAuth(conf.GithubAccessToken),
	})
	if err != nil {
		return desc, fmt.Errorf("%w: %v", ErrClone, err)
	}
	conf.Path = target
	desc.LocalPath = target
	f.log.Infof("DBT repository successfully cloned to %v", target)

	if branch == "" {
		return desc, nil
	}
	if err = checkoutRemoteBranch(repo, branch); err != nil {
		return desc, fmt.Errorf("%w '%v': %v", ErrCheckout, branch, err)
	}
	desc.Branch = branch
	f.log.Infof("Successfully checked out the following branch from cloned DBT project: %v", branch)
	return desc, nil
}
