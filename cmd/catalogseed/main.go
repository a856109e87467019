package main

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"os"
	"strconv"

	"merchex/band"
	"merchex/errs"
	"merchex/listing"
	"merchex/pkg/config"
	"merchex/pkg/logger"
	"merchex/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var fixturePath string

var rootCmd = &cobra.Command{
	Use:          "catalogseed",
	Short:        "Load bands and listings from a YAML fixture",
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVarP(&fixturePath, "file", "f", "", "fixture file (default: built-in demo catalog)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	var src io.Reader = bytes.NewReader(defaultCatalog)
	if fixturePath != "" {
		file, err := os.Open(fixturePath)
		if err != nil {
			return err
		}
		defer file.Close()
		src = file
	}
	f, err := parseFixture(src)
	if err != nil {
		return err
	}

	db, err := postgres.NewConnection(postgres.Options{
		DBName:   cfg.DB.Name,
		DBUser:   cfg.DB.User,
		Password: cfg.DB.Pass,
		Host:     cfg.DB.Host,
		Port:     strconv.Itoa(cfg.DB.Port),
		SSLMode:  cfg.DB.EnableSSL,
	})
	if err != nil {
		log.Errorw("cannot open postgres connection", zap.Error(err))
		return err
	}

	bandRepo := postgres.NewBandRepository(db)
	res, err := seed(context.Background(),
		band.NewUsecase(bandRepo),
		listing.NewUsecase(postgres.NewListingRepository(db), bandRepo),
		f,
	)
	if err != nil {
		log.Errorw("seed failed", zap.Error(err), "fields", errs.ErrorFields(err), "bands", res.Bands, "listings", res.Listings)
		return err
	}

	log.Infow("seed completed", "bands", res.Bands, "listings", res.Listings)
	return nil
}
