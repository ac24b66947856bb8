package pipeline

import (
	"context"
	"time"

	"iggallery/pkg/config"
	"iggallery/pkg/errors"
	"iggallery/pkg/gallery"
	"iggallery/pkg/graph"
	"iggallery/pkg/logger"
	"iggallery/pkg/models"
	"iggallery/pkg/storage"
)

// Pipeline runs fetch, persist and render in that order. The first failing
// stage ends the run, so a failed fetch leaves both output files untouched.
type Pipeline struct {
	fetcher  MediaFetcher
	store    *storage.Manager
	renderer *gallery.Renderer
	config   *config.Config
	logger   logger.Logger
}

// Result summarizes a finished run
type Result struct {
	Records  int
	JSONPath string
	HTMLPath string
	Duration time.Duration
}

// New creates a pipeline from explicit stages
func New(cfg *config.Config, fetcher MediaFetcher, store *storage.Manager, renderer *gallery.Renderer, log logger.Logger) *Pipeline {
	if log == nil {
		log = logger.GetLogger()
	}
	return &Pipeline{
		fetcher:  fetcher,
		store:    store,
		renderer: renderer,
		config:   cfg,
		logger:   log,
	}
}

// NewFromConfig wires the Graph API client, the storage manager and the
// gallery renderer from cfg
func NewFromConfig(cfg *config.Config, log logger.Logger) *Pipeline {
	if log == nil {
		log = logger.GetLogger()
	}

	client := graph.NewClient(&cfg.Graph, log.WithField("component", "graph"))
	store := storage.NewManager(log.WithField("component", "storage"))
	renderer := gallery.NewRenderer(cfg.Site, cfg.Render.CaptionLength, log.WithField("component", "gallery"))

	return New(cfg, client, store, renderer, log)
}

// Run fetches the account's media, writes the JSON file and renders the page
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	if err := p.config.RequireCredentials(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeConfig, "missing credentials")
	}

	records, err := p.fetch(ctx)
	if err != nil {
		return nil, err
	}

	if err := p.persistAndRender(ctx, records); err != nil {
		return nil, err
	}

	result := p.result(len(records), start)
	logger.LogMetrics(p.logger, "update", map[string]interface{}{
		"records":   result.Records,
		"json_path": result.JSONPath,
		"html_path": result.HTMLPath,
		"duration":  result.Duration,
	})
	return result, nil
}

// RenderFromFile re-renders the page from the existing JSON file without
// contacting the API
func (p *Pipeline) RenderFromFile(ctx context.Context) (*Result, error) {
	start := time.Now()

	records, err := p.store.LoadRecords(p.config.Output.JSONPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrorTypeUnknown, "run cancelled")
	}

	if err := p.render(records); err != nil {
		return nil, err
	}

	result := p.result(len(records), start)
	logger.LogMetrics(p.logger, "render", map[string]interface{}{
		"records":   result.Records,
		"html_path": result.HTMLPath,
		"duration":  result.Duration,
	})
	return result, nil
}

func (p *Pipeline) fetch(ctx context.Context) ([]models.MediaRecord, error) {
	start := time.Now()
	logger.LogComponentStart(p.logger, "fetch", map[string]interface{}{
		"account_id":  p.config.Graph.AccountID,
		"api_version": p.config.Graph.APIVersion,
		"limit":       p.config.Graph.Limit,
	})

	records, err := p.fetcher.FetchMedia(ctx, p.config.Graph.AccountID, p.config.Graph.Limit)
	if err != nil {
		p.logger.WithError(err).Error("fetch failed, no files written")
		return nil, err
	}

	logger.LogComponentStop(p.logger, "fetch", time.Since(start))
	return records, nil
}

func (p *Pipeline) persistAndRender(ctx context.Context, records []models.MediaRecord) error {
	if err := ctx.Err(); err != nil {
		return errors.Wrap(err, errors.ErrorTypeUnknown, "run cancelled")
	}

	start := time.Now()
	logger.LogComponentStart(p.logger, "persist", map[string]interface{}{
		"path":    p.config.Output.JSONPath,
		"records": len(records),
	})
	if err := p.store.SaveRecords(p.config.Output.JSONPath, records); err != nil {
		p.logger.WithError(err).Error("persist failed")
		return err
	}
	logger.LogComponentStop(p.logger, "persist", time.Since(start))

	return p.render(records)
}

func (p *Pipeline) render(records []models.MediaRecord) error {
	start := time.Now()
	logger.LogComponentStart(p.logger, "render", map[string]interface{}{
		"path":  p.config.Output.HTMLPath,
		"cards": len(records),
	})
	if err := p.renderer.WriteFile(p.store, p.config.Output.HTMLPath, records); err != nil {
		p.logger.WithError(err).Error("render failed")
		return err
	}
	logger.LogComponentStop(p.logger, "render", time.Since(start))
	return nil
}

func (p *Pipeline) result(records int, start time.Time) *Result {
	return &Result{
		Records:  records,
		JSONPath: p.config.Output.JSONPath,
		HTMLPath: p.config.Output.HTMLPath,
		Duration: time.Since(start),
	}
}
