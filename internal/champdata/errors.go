package champdata

import "fmt"

// LoadError reports a failed or unparseable external read.
type LoadError struct {
	Source string // "allowlist", "versions", "catalog", "counters"
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// DirectoryBuildError means the roster could not be built because one of its
// required inputs (allowlist or catalog) failed to load.
type DirectoryBuildError struct {
	Err error
}

func (e *DirectoryBuildError) Error() string {
	return fmt.Sprintf("build champion directory: %v", e.Err)
}

func (e *DirectoryBuildError) Unwrap() error { return e.Err }

func loadErr(source string, format string, args ...interface{}) error {
	return &LoadError{Source: source, Err: fmt.Errorf(format, args...)}
}
