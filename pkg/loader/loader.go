// Package loader acquires the group collection from a data source.
//
// Every source resolves to either the groups exactly as the upstream
// provided them, or a *LoadError. Nothing is retried or cached; calling
// LoadGroups again performs an independent load.
package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kraitsura/groups_viewer/pkg/model"
)

// ErrLoad matches every acquisition failure via errors.Is
var ErrLoad = errors.New("failed to load groups")

// LoadError is the only error kind produced by a Source
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %v", e.Source, ErrLoad)
	}
	return fmt.Sprintf("%s: %v: %v", e.Source, ErrLoad, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrLoad) succeed for any LoadError
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

func loadErr(source string, err error) *LoadError {
	return &LoadError{Source: source, Err: err}
}

// Envelope errors wrapped inside a LoadError
var (
	ErrFailureResult = errors.New("upstream returned a failure result")
	ErrNoData        = errors.New("upstream returned success without data")
)

// Source produces the ordered group collection
type Source interface {
	LoadGroups(ctx context.Context) ([]model.Group, error)
}

// Options tunes the sources built by Open
type Options struct {
	// Delay is the simulated latency of the fixture source
	Delay time.Duration
	// HTTPTimeout bounds a single HTTP request
	HTTPTimeout time.Duration
}

// Source URI schemes understood by Open
const (
	SchemeFixture = "fixture:"
	SchemeSQLite  = "sqlite://"
)

// Open builds a Source from a URI:
//
//	fixture:              embedded sample data with simulated delay
//	http(s)://host/path   JSON endpoint answering {result, data}
//	sqlite:///path/to.db  groups and friends tables
//	anything else         path to a .json, .jsonc or .jsonl file
func Open(uri string, opts Options) (Source, error) {
	uri = strings.TrimSpace(uri)
	switch {
	case uri == "" || uri == SchemeFixture || uri == "fixture":
		return NewFixtureSource(opts.Delay), nil
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return NewHTTPSource(uri, opts.HTTPTimeout), nil
	case strings.HasPrefix(uri, SchemeSQLite):
		path := strings.TrimPrefix(uri, SchemeSQLite)
		if path == "" {
			return nil, fmt.Errorf("sqlite source needs a path: %q", uri)
		}
		return NewSQLiteSource(path), nil
	case strings.Contains(uri, "://"):
		return nil, fmt.Errorf("unsupported source scheme: %q", uri)
	default:
		return NewFileSource(uri), nil
	}
}

// fromResponse applies the envelope success rule
func fromResponse(source string, resp model.GetGroupsResponse) ([]model.Group, error) {
	switch {
	case resp.OK():
		return resp.Data, nil
	case resp.Result == model.ResultSuccess:
		return nil, loadErr(source, ErrNoData)
	case resp.Result == model.ResultFailure:
		return nil, loadErr(source, ErrFailureResult)
	}
	return nil, loadErr(source, fmt.Errorf("%w (unknown result code %d)", ErrFailureResult, resp.Result))
}
