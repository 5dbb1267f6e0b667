// Package orchestrator sequences a bulk clone: credentials, catalog query,
// operator checkpoint, destination preparation and the clone loop.
package orchestrator

import (
	"context"
	"path/filepath"

	"github.com/NicabarNimble/go-devdir/internal/destination"
	"github.com/NicabarNimble/go-devdir/internal/errors"
	"github.com/NicabarNimble/go-devdir/internal/filter"
	"github.com/NicabarNimble/go-devdir/internal/github"
	"github.com/NicabarNimble/go-devdir/internal/logger"
	"github.com/NicabarNimble/go-devdir/internal/progress"
	"github.com/NicabarNimble/go-devdir/internal/token"
)

// Catalog lists the repositories of an account
type Catalog interface {
	ListRepositories(ctx context.Context, account string, pageSize int) (*github.CatalogResult, error)
}

// CatalogFactory builds a Catalog once the token is known
type CatalogFactory func(ctx context.Context, t token.Token) (Catalog, error)

// Cloner materializes one repository at targetPath
type Cloner interface {
	Clone(ctx context.Context, sourceURL, targetPath string) error
}

// Preparer readies the destination directory
type Preparer interface {
	Prepare(path string) (destination.State, error)
}

// Confirmer asks the operator a yes/no question
type Confirmer interface {
	Confirm(question string, def bool) (bool, error)
}

// Options are the inputs of a single run
type Options struct {
	Account     string
	Destination string
	SkipList    string
	PageSize    int
}

// Orchestrator runs the clone pipeline. All collaborators are injected.
type Orchestrator struct {
	Credentials token.Source
	NewCatalog  CatalogFactory
	Confirm     Confirmer
	Destination Preparer
	Cloner      Cloner
	Reporter    progress.Reporter
	Logger      *logger.Logger
}

// Run executes the pipeline. Setup failures are returned wrapped in an
// *errors.OperationError naming the stage; a declined confirmation returns
// errors.ErrCancelled. Individual clone failures never abort the loop and
// are collected in the returned Summary.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*progress.Summary, error) {
	log := o.Logger
	if log == nil {
		log = logger.NewNop()
	}
	log = log.With("account", opts.Account)

	tok, err := o.Credentials.Token(ctx)
	if err != nil {
		return nil, errors.New(errors.OpCredentials, err)
	}
	log.Debug("token resolved", "origin", tok.Origin)
	if p := token.DetectProvider(tok.Value); p != "" && p != token.ProviderGitHub {
		log.Warn("token does not look like a GitHub token", "provider", p)
	}

	catalog, err := o.NewCatalog(ctx, tok)
	if err != nil {
		return nil, errors.New(errors.OpCatalog, err)
	}

	result, err := catalog.ListRepositories(ctx, opts.Account, opts.PageSize)
	if err != nil {
		return nil, errors.New(errors.OpCatalog, err)
	}

	skip := filter.Parse(opts.SkipList)
	o.Reporter.Plan(progress.Plan{
		Account:     opts.Account,
		Destination: opts.Destination,
		SkipList:    skip.Names(),
		TotalCount:  result.TotalCount,
		Returned:    len(result.Items),
		Incomplete:  result.IncompleteResults,
	})
	if result.Truncated() {
		log.Warn("catalog result is truncated; only the first page will be cloned",
			"total_count", result.TotalCount, "returned", len(result.Items))
	}

	proceed, err := o.Confirm.Confirm("Do you want to continue?", false)
	if err != nil {
		return nil, errors.New(errors.OpConfirm, err)
	}
	if !proceed {
		return nil, errors.ErrCancelled
	}

	if _, err := o.Destination.Prepare(opts.Destination); err != nil {
		if errors.IsCancelled(err) {
			return nil, err
		}
		return nil, errors.New(errors.OpDestination, err)
	}

	summary := o.cloneAll(ctx, log, opts.Destination, result.Items, skip)
	if err := ctx.Err(); err != nil {
		return summary, errors.New(errors.OpClone, err)
	}
	return summary, nil
}

func (o *Orchestrator) cloneAll(ctx context.Context, log *logger.Logger, dest string, items []github.RepositoryRecord, skip filter.SkipSet) *progress.Summary {
	summary := &progress.Summary{}
	total := len(items)

	for i, record := range items {
		if ctx.Err() != nil {
			log.Warn("interrupted; remaining repositories are not cloned", "remaining", total-i)
			break
		}
		if !filter.ShouldInclude(record, skip) {
			summary.Skipped = append(summary.Skipped, record.Name)
			continue
		}

		o.Reporter.Repository(i+1, total, record)

		target := filepath.Join(dest, record.Name)
		err := o.Cloner.Clone(ctx, record.CloneURL, target)
		o.Reporter.CloneResult(record.Name, err)
		if err != nil {
			log.Error("clone failed", "repository", record.Name, "error", err)
			summary.Failures = append(summary.Failures, &errors.CloneError{Name: record.Name, Err: err})
			continue
		}

		log.Debug("cloned", "repository", record.Name, "path", target)
		summary.Cloned = append(summary.Cloned, record.Name)
	}

	o.Reporter.Finish(summary)
	return summary
}
