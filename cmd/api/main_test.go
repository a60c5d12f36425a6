package main

import (
	"testing"

	"github.com/cmlabs-hris/embroidery-backend-go/internal/config"
	"github.com/cmlabs-hris/embroidery-backend-go/internal/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestRun_ReturnsDatabaseError(t *testing.T) {
	cfg := &config.Config{
		Database: config.DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "postgres",
			Name:    "embroidery",
			SSLMode: "bogus",
		},
		App: config.AppConfig{Port: 0},
	}

	err := run(cfg, logger.Discard())
	assert.ErrorContains(t, err, "connect database")
}
