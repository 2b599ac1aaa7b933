package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-timetable-api/internal/app"
	"github.com/noah-isme/exam-timetable-api/internal/dto"
	"github.com/noah-isme/exam-timetable-api/internal/models"
	"github.com/noah-isme/exam-timetable-api/pkg/config"
	"github.com/noah-isme/exam-timetable-api/pkg/logger"
)

type engine interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error)
	Conflicts(ctx context.Context, query dto.ConflictQuery) ([]models.Conflict, error)
}

// opener builds the engine the commands drive and a function releasing its resources.
type opener func(logLevel string) (engine, func() error, error)

func openEngine(logLevel string) (engine, func() error, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logr, err := logger.NewCLI(logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	a, err := app.New(cfg, logr)
	if err != nil {
		_ = logr.Sync()
		return nil, nil, err
	}
	closer := func() error {
		defer logr.Sync() //nolint:errcheck
		if err := a.Close(); err != nil {
			logr.Warn("close failed", zap.Error(err))
			return err
		}
		return nil
	}
	return a.Timetable, closer, nil
}

func newRootCmd(open opener) *cobra.Command {
	var logLevel string
	root := &cobra.Command{
		Use:          "timetablectl",
		Short:        "Operate the exam timetable engine against the configured database",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level written to stderr")

	withEngine := func(cmd *cobra.Command, run func(context.Context, engine) (interface{}, error)) error {
		eng, closeFn, err := open(logLevel)
		if err != nil {
			return err
		}
		defer closeFn() //nolint:errcheck
		out, err := run(cmd.Context(), eng)
		if err != nil {
			return err
		}
		return writeJSON(cmd.OutOrStdout(), out)
	}

	root.AddCommand(newGenerateCmd(withEngine), newConflictsCmd(withEngine))
	return root
}

type engineRunner func(cmd *cobra.Command, run func(context.Context, engine) (interface{}, error)) error

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
