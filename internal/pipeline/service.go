// Package pipeline orchestrates the full site generation run: assemble the
// configuration from wizard input, validate it, persist it and normalize
// its image assets.
package pipeline

import (
	"context"
	"fmt"

	"github.com/forgesite/forgesite/internal/config"
	"github.com/forgesite/forgesite/internal/imaging"
	"github.com/forgesite/forgesite/internal/logger"
	"github.com/forgesite/forgesite/internal/site"
	"github.com/forgesite/forgesite/internal/store"
	forgeerrors "github.com/forgesite/forgesite/pkg/errors"
)

// Service coordinates the generation stages. Stages run strictly in order;
// each writes only under its own site directory, so concurrent runs for
// different sites never interfere.
type Service struct {
	store     *store.Store
	processor *imaging.Processor
	log       *logger.Logger
}

// NewService constructs a pipeline service.
func NewService(st *store.Store, processor *imaging.Processor, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{store: st, processor: processor, log: log}
}

// Request configures one generation run. Either InputPath or Input must be
// set; Input wins when both are.
type Request struct {
	InputPath string
	Input     *config.WizardInput

	SaveOptions store.SaveOptions

	// ProcessImages runs the asset normalizer after a successful save.
	ProcessImages bool

	// DryRun stops after validation without touching the filesystem.
	DryRun bool
}

// Outcome captures the artifacts of a run. Config and Validation are set
// whenever assembly ran, even if validation then failed.
type Outcome struct {
	Input      *config.WizardInput
	Config     *site.SiteConfig
	Validation site.Result
	Save       *store.SaveResult
	Assets     []imaging.AssetReport
}

// Run executes the pipeline for one site.
func (s *Service) Run(ctx context.Context, req Request) (*Outcome, error) {
	in := req.Input
	if in == nil {
		if req.InputPath == "" {
			return nil, fmt.Errorf("no wizard input provided")
		}
		parsed, err := config.ParseWizardInput(req.InputPath)
		if err != nil {
			return nil, err
		}
		in = parsed
	}

	outcome := &Outcome{Input: in}
	outcome.Config = site.Assemble(in)
	siteID := outcome.Config.Meta.SiteID
	s.log.WithFields(map[string]any{"site": siteID}).Debug("configuration assembled")

	outcome.Validation = site.Validate(outcome.Config)
	if !outcome.Validation.Valid {
		return outcome, forgeerrors.NewValidationError(siteID, outcome.Validation.Errors)
	}
	if req.DryRun {
		s.log.WithFields(map[string]any{"site": siteID}).Info("dry run, skipping persistence")
		return outcome, nil
	}

	if err := ctx.Err(); err != nil {
		return outcome, err
	}

	saved, err := s.store.Save(outcome.Config, req.SaveOptions)
	if err != nil {
		return outcome, err
	}
	outcome.Save = saved
	s.log.WithFields(map[string]any{"site": siteID, "config": saved.ConfigPath}).Info("configuration saved")

	if !req.ProcessImages {
		return outcome, nil
	}
	if err := ctx.Err(); err != nil {
		return outcome, err
	}

	reports, err := s.processor.ProcessSiteAssets(saved.AssetsDir, siteID)
	if err != nil {
		return outcome, fmt.Errorf("process assets for %s: %w", siteID, err)
	}
	outcome.Assets = reports
	return outcome, nil
}

// ProcessExisting re-runs asset normalization for an already saved site.
func (s *Service) ProcessExisting(ctx context.Context, assetsDir, siteID string) ([]imaging.AssetReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.processor.ProcessSiteAssets(assetsDir, siteID)
}
