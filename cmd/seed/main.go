package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/config"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/fixtures"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/service/master"
	configService "github.com/cmlabs-hris/embroidery-backend-go/internal/service/productionconfig"
	"github.com/sirupsen/logrus"
)

func main() {
	businessID := flag.String("business", "", "business id to seed (required)")
	seedFile := flag.String("file", "", "optional JSON seed file with production_config, staff, customers, suppliers")
	effective := flag.String("effective", time.Now().UTC().Format("2006-01-02"), "effective date of the default production config")
	flag.Parse()

	if *businessID == "" {
		fmt.Fprintln(os.Stderr, "-business is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.App.LogLevel)

	var data fixtures.SeedData
	if *seedFile != "" {
		raw, err := os.ReadFile(*seedFile)
		if err != nil {
			log.WithError(err).Fatal("Error reading seed file")
		}
		if err := json.Unmarshal(raw, &data); err != nil {
			log.WithError(err).Fatal("Error parsing seed file")
		}
	}

	ids, err := seed(cfg, log, *businessID, *effective, data)
	if err != nil {
		log.WithError(err).Fatal("Seeding failed")
	}

	log.WithFields(logrus.Fields{
		"business_id": *businessID,
		"config_id":   ids.ConfigID,
		"staff":       len(ids.StaffIDs),
		"customers":   len(ids.CustomerIDs),
		"suppliers":   len(ids.SupplierIDs),
		"skipped":     ids.Skipped,
	}).Info("Seed complete")
}

func seed(cfg *config.Config, log *logrus.Logger, businessID, effective string, data fixtures.SeedData) (*fixtures.SeededDataIDs, error) {
	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	seeder := fixtures.NewSeeder(
		configService.NewConfigService(postgresql.NewProductionConfigRepository(db), log),
		master.NewMasterService(
			postgresql.NewStaffRepository(db),
			postgresql.NewCustomerRepository(db),
			postgresql.NewSupplierRepository(db),
			log,
		),
	)

	return seeder.Seed(context.Background(), businessID, effective, data)
}
