package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vocabloom/vocabloom/internal/adapter/kvstore"
	adapterrepo "github.com/vocabloom/vocabloom/internal/adapter/repository"
	"github.com/vocabloom/vocabloom/internal/entity"
	"github.com/vocabloom/vocabloom/internal/infrastructure/config"
	"github.com/vocabloom/vocabloom/internal/infrastructure/logging"
	"github.com/vocabloom/vocabloom/internal/repository"
	"github.com/vocabloom/vocabloom/internal/usecase"
)

// app bundles the wired application for one command invocation.
type app struct {
	cfg    *config.Config
	logger *logrus.Logger
	repo   repository.VocabRepository
	store  usecase.VocabUsecase
	close  func() error
}

// openApp loads config, opens the local store and builds the vocabulary
// usecase. Unreadable stored data degrades to an empty collection with a
// warning instead of refusing to start.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := logging.NewLogger(cfg)
	if err != nil {
		return nil, err
	}

	path, err := cfg.DatabasePath()
	if err != nil {
		return nil, err
	}
	kv, err := kvstore.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("open store at %s: %w", path, err)
	}

	repo := adapterrepo.NewVocabRepository(kv)
	store, err := usecase.NewVocabUsecase(ctx, repo)
	if err != nil {
		if !errors.Is(err, entity.ErrStorageCorrupt) {
			kv.Close()
			return nil, err
		}
		logger.Warnf("stored vocabulary unreadable, continuing with an empty collection: %v", err)
	}

	return &app{
		cfg:    cfg,
		logger: logger,
		repo:   repo,
		store:  store,
		close:  kv.Close,
	}, nil
}

func bindFlagToViper(key string, flag *pflag.Flag) {
	if flag == nil {
		return
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}
