package main

import (
	"context"

	"github.com/denismitr/estatebook/export"
	"github.com/denismitr/estatebook/form"
	"github.com/denismitr/estatebook/internal/config"
	"github.com/denismitr/estatebook/internal/kv"
	"github.com/denismitr/estatebook/internal/logger"
	"github.com/denismitr/estatebook/store"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// defaultTUILog keeps log lines off the screen while the TUI owns it.
const defaultTUILog = "estatebook.log"

type app struct {
	cfg      config.Config
	log      *zap.Logger
	store    *store.Store
	forms    *form.Controller
	exporter *export.Exporter
	closeDB  kv.Closer
}

func openApp(ctx context.Context, cmd *cobra.Command, interactive bool) (*app, error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, err
	}

	logFile := cfg.LogFile
	if interactive && logFile == "" {
		logFile = defaultTUILog
	}

	log, err := logger.New(cfg.LogLevel, logFile)
	if err != nil {
		return nil, err
	}

	db, closer, err := kv.Open(cfg.DataFile, &kv.Config{Log: log, ResetCorrupted: true})
	if err != nil {
		return nil, errors.Wrapf(err, "could not open %s", cfg.DataFile)
	}

	s := store.New(db, log)
	if err := s.Load(ctx); err != nil {
		_ = closer()
		return nil, err
	}

	log.Debug("estatebook started",
		zap.String("data_file", cfg.DataFile),
		zap.String("export_dir", cfg.ExportDir))

	return &app{
		cfg:      cfg,
		log:      log,
		store:    s,
		forms:    form.NewController(s, log),
		exporter: export.NewExporter(cfg.ExportDir, log),
		closeDB:  closer,
	}, nil
}

func (a *app) Close() error {
	err := a.closeDB()
	_ = a.log.Sync()
	return err
}
