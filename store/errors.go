package store

import "errors"

var (
	// ErrTimeout is returned when the artifact request timed out
	ErrTimeout = errors.New("request to fetch package timed out")
	// ErrTooManyRedirects is returned when the artifact URL keeps redirecting
	ErrTooManyRedirects = errors.New("too many redirects, invalid package URL")
	// ErrTransport is returned for any other failure to retrieve the artifact
	ErrTransport = errors.New("could not fetch package")
	// ErrExtract is returned when a downloaded archive could not be saved or unpacked
	ErrExtract = errors.New("failed to extract package")
	// ErrClone is returned when the repository could not be cloned
	ErrClone = errors.New("could not clone the repository")
	// ErrCheckout is returned when the requested branch could not be checked out
	ErrCheckout = errors.New("could not checkout the branch")
	// ErrObject is returned when an object could not be downloaded from object storage
	ErrObject = errors.New("could not download package object")
)
