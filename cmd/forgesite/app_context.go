package main

import (
	"os"

	"github.com/forgesite/forgesite/internal/imaging"
	"github.com/forgesite/forgesite/internal/logger"
	"github.com/forgesite/forgesite/internal/pipeline"
	"github.com/forgesite/forgesite/internal/store"
)

const (
	defaultConfigsDir   = "configs"
	defaultTemplatesDir = "templates"
)

// appContext bundles the wired services every subcommand needs.
type appContext struct {
	log     *logger.Logger
	store   *store.Store
	service *pipeline.Service
}

func newAppContext(root *rootFlags) (*appContext, error) {
	level := "info"
	if root.verbose {
		level = "debug"
	}
	log, err := logger.New(logger.Options{Level: level, Pretty: true})
	if err != nil {
		return nil, err
	}

	st := store.New(configsDir(), templatesDir(), log)
	processor := imaging.NewProcessor(imaging.NewGoRaster(), log, imaging.ProcessorOptions{})

	return &appContext{
		log:     log,
		store:   st,
		service: pipeline.NewService(st, processor, log),
	}, nil
}

func configsDir() string {
	if dir := os.Getenv("FORGESITE_CONFIGS_DIR"); dir != "" {
		return dir
	}
	return defaultConfigsDir
}

func templatesDir() string {
	if dir := os.Getenv("FORGESITE_TEMPLATES_DIR"); dir != "" {
		return dir
	}
	return defaultTemplatesDir
}
