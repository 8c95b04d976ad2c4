package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"hotel-scout/models"
	"hotel-scout/storage"
	"hotel-scout/utils"
)

// Source is one tier of the listing lookup.
type Source interface {
	Name() string
	Fetch(ctx context.Context, city string) ([]models.Listing, error)
}

// Chain is an ordered list of sources; earlier sources take priority.
type Chain []Source

// Collect tries each source in order and returns the first non-empty result
// with the name of the source that produced it. A failing or empty source
// moves on to the next one; onSkip, if set, is told about each skip and
// whether another source is left to try.
func (c Chain) Collect(ctx context.Context, city string, onSkip func(src Source, err error, more bool)) ([]models.Listing, string) {
	for i, src := range c {
		if ctx.Err() != nil {
			break
		}
		listings, err := src.Fetch(ctx, city)
		if err == nil && len(listings) > 0 {
			return listings, src.Name()
		}
		if onSkip != nil {
			onSkip(src, err, i < len(c)-1)
		}
	}
	return nil, ""
}

// Race runs every source at once; the first non-empty successful result wins
// and the others are cancelled.
func (c Chain) Race(ctx context.Context, city string) ([]models.Listing, string, error) {
	jobs := make([]utils.Job[models.Listing], len(c))
	for i, src := range c {
		src := src
		jobs[i] = func(ctx context.Context) ([]models.Listing, error) {
			return src.Fetch(ctx, city)
		}
	}

	listings, idx, err := utils.FirstNonEmpty(ctx, jobs)
	if err != nil {
		return nil, "", err
	}
	return listings, c[idx].Name(), nil
}

// Archiver stores a run's results somewhere beyond the output files.
type Archiver interface {
	ForRun(runID, city string) storage.ListingWriter
}

// PipelineOptions wires the pipeline's collaborators.
type PipelineOptions struct {
	Sources  Chain
	Race     bool
	Outputs  []storage.ListingWriter
	Archiver Archiver
	Reporter *Reporter
	Logger   *utils.Logger
}

// Pipeline drives one lookup from city name to saved results.
type Pipeline struct {
	opts PipelineOptions
}

// Outcome is what one run found and decided.
type Outcome struct {
	RunID    string
	Source   string
	Listings []models.Listing
	Ranking  models.RankingResult
}

// NewPipeline creates a Pipeline.
func NewPipeline(opts PipelineOptions) *Pipeline {
	return &Pipeline{opts: opts}
}

// Run looks up city, ranks the listings against budget, prints the report and
// writes the filtered listings to every output. Source failures never fail the
// run; only output errors do. An empty result still produces empty outputs.
func (p *Pipeline) Run(ctx context.Context, city string, budget models.BudgetQuery) (*Outcome, error) {
	log := p.opts.Logger
	report := p.opts.Reporter

	runID := uuid.NewString()
	log.Info("[pipeline] Run %s — city %q, budget %.2f %s", runID, city, budget.Amount, budget.Currency)

	report.Searching()
	listings, source := p.collect(ctx, city)
	if len(listings) == 0 {
		log.Warn("[pipeline] Run %s — every source came back empty", runID)
		report.NoResults()
	} else {
		log.Info("[pipeline] Run %s — %d listings from %s source", runID, len(listings), source)
	}

	ranking := Rank(listings, budget)
	report.AveragePrice(ranking.AveragePrice)

	if CurrencyMismatch(listings, budget.Currency) {
		report.CurrencyWarning(budget.Currency)
	}

	report.Table(ranking.Filtered, ranking.BestValue)

	if err := p.save(runID, city, ranking.Filtered); err != nil {
		return nil, err
	}

	report.BestValue(ranking.BestValue)

	return &Outcome{
		RunID:    runID,
		Source:   source,
		Listings: listings,
		Ranking:  ranking,
	}, nil
}

func (p *Pipeline) collect(ctx context.Context, city string) ([]models.Listing, string) {
	if p.opts.Race {
		listings, source, err := p.opts.Sources.Race(ctx, city)
		if err != nil {
			p.opts.Logger.Warn("[pipeline] Source race produced nothing: %v", err)
		}
		return listings, source
	}

	return p.opts.Sources.Collect(ctx, city, func(src Source, err error, more bool) {
		if err != nil {
			p.opts.Logger.Warn("[pipeline] %s source failed: %v", src.Name(), err)
		} else {
			p.opts.Logger.Info("[pipeline] %s source returned no listings", src.Name())
		}
		if more {
			p.opts.Reporter.TryingFallback()
		}
	})
}

type pathed interface {
	Path() string
}

func (p *Pipeline) save(runID, city string, listings []models.Listing) error {
	var paths []string
	for _, w := range p.opts.Outputs {
		if err := w.Write(listings); err != nil {
			return fmt.Errorf("pipeline: save results: %w", err)
		}
		if pw, ok := w.(pathed); ok {
			paths = append(paths, pw.Path())
		}
	}
	if len(paths) > 0 {
		p.opts.Reporter.Saved(paths...)
	}

	if p.opts.Archiver != nil {
		// The archive is best-effort; the files above are the run's output.
		if err := p.opts.Archiver.ForRun(runID, city).Write(listings); err != nil {
			p.opts.Logger.Error("[pipeline] Run %s — archive write failed: %v", runID, err)
		} else {
			p.opts.Logger.Info("[pipeline] Run %s — %d listings archived", runID, len(listings))
		}
	}
	return nil
}
