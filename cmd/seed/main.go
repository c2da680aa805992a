package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/secopslab/secwatch/internal/config"
	"github.com/secopslab/secwatch/internal/ingest"
	"github.com/secopslab/secwatch/internal/logger"
	"github.com/secopslab/secwatch/internal/store"
	"github.com/secopslab/secwatch/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("seed")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create storages")
	}
	defer func() {
		if closeErr := storages.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("close storages")
		}
	}()

	usersResult, err := ingest.MigrateLegacyUsers(ctx, cfg.Storage.Legacy.UsersFile, storages.UserRepository)
	if err != nil {
		log.Fatal().Err(err).Msg("migrate legacy users")
	}
	log.Info().
		Int("inserted", usersResult.Inserted).
		Int("skipped", usersResult.Skipped).
		Int("dropped", usersResult.Dropped).
		Msg("legacy user migration finished")

	loader := ingest.NewLoader(storages.IncidentRepository, storages.TicketRepository, storages.DatasetRepository, log)

	if err = seedIncidents(ctx, loader, cfg.Storage.Seed.DataDir); err != nil {
		log.Fatal().Err(err).Msg("seed incidents")
	}
	if err = seedTickets(ctx, loader, cfg.Storage.Seed.DataDir); err != nil {
		log.Fatal().Err(err).Msg("seed tickets")
	}
	if err = seedDatasets(ctx, loader, cfg.Storage.Seed.DataDir); err != nil {
		log.Fatal().Err(err).Msg("seed datasets")
	}

	log.Info().Msg("seeding finished")
}

// openSeedFile opens a CSV under dataDir. A missing file is not an error:
// the returned file is nil and the caller skips the batch.
func openSeedFile(dataDir, name string) (*os.File, error) {
	file, err := os.Open(filepath.Join(dataDir, name))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return file, nil
}

func seedIncidents(ctx context.Context, loader *ingest.Loader, dataDir string) error {
	file, err := openSeedFile(dataDir, ingest.IncidentsCSV)
	if err != nil || file == nil {
		return err
	}
	defer file.Close()

	var batch []models.CyberIncident
	if batch, err = ingest.ReadIncidentsCSV(file); err != nil {
		return err
	}

	_, err = loader.LoadIncidents(ctx, batch)
	return err
}

func seedTickets(ctx context.Context, loader *ingest.Loader, dataDir string) error {
	file, err := openSeedFile(dataDir, ingest.TicketsCSV)
	if err != nil || file == nil {
		return err
	}
	defer file.Close()

	var batch []models.ITTicket
	if batch, err = ingest.ReadTicketsCSV(file); err != nil {
		return err
	}

	_, err = loader.LoadTickets(ctx, batch)
	return err
}

func seedDatasets(ctx context.Context, loader *ingest.Loader, dataDir string) error {
	file, err := openSeedFile(dataDir, ingest.DatasetsCSV)
	if err != nil || file == nil {
		return err
	}
	defer file.Close()

	var batch []models.DatasetMeta
	if batch, err = ingest.ReadDatasetsCSV(file); err != nil {
		return err
	}

	_, err = loader.LoadDatasets(ctx, batch)
	return err
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
