package main

import (
	"context"
	"os"

	"github.com/namiksejdovic1-tech/price-master-bih/config"
	"github.com/namiksejdovic1-tech/price-master-bih/scraper/competitor"
	"github.com/namiksejdovic1-tech/price-master-bih/storage"
	"github.com/namiksejdovic1-tech/price-master-bih/utils"
	"github.com/namiksejdovic1-tech/price-master-bih/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.Error("Could not load configuration: %v", err)
		os.Exit(1)
	}

	catalog, err := config.LoadSources(cfg.Scraper.SourcesPath)
	if err != nil {
		utils.Error("Could not load source catalog: %v", err)
		os.Exit(1)
	}
	utils.Info("Loaded %d sources: %v", len(catalog), catalog.Names())

	store, err := storage.NewProductStore(cfg.Store.ProductsPath)
	if err != nil {
		utils.Error("Could not open product store: %v", err)
		os.Exit(1)
	}

	jitter := competitor.NewJitter(cfg.Scraper.JitterMin, cfg.Scraper.JitterMax, nil)
	jitter.Enabled = cfg.Scraper.JitterEnabled

	sessions := competitor.NewChromeSessionFactory(competitor.ChromeOptions{
		Headless:     cfg.Scraper.Headless,
		NavTimeout:   cfg.Scraper.NavTimeout,
		ReadyTimeout: cfg.Scraper.ReadyTimeout,
		Jitter:       jitter,
	})
	scanner := competitor.NewScanner(catalog, sessions, nil)

	var snapshots *storage.SnapshotWriter
	if cfg.Database.DSN != "" {
		snapshots, err = storage.NewSnapshotWriter(cfg.Database.DSN)
		if err != nil {
			utils.Error("Could not connect snapshot mirror: %v", err)
			os.Exit(1)
		}
		defer snapshots.Close()

		if err := snapshots.EnsureSchema(context.Background()); err != nil {
			utils.Error("Could not ensure snapshot schema: %v", err)
			os.Exit(1)
		}
		utils.Success("Snapshot mirror connected")
	}

	exporter := storage.NewCSVExporter(catalog.Names())
	handler := web.NewHandler(store, scanner, exporter, snapshots)
	router := web.SetupRouter(cfg, handler)

	utils.Info("Dashboard listening on :%s | headless=%v jitter=%v-%v",
		cfg.Server.Port, cfg.Scraper.Headless, cfg.Scraper.JitterMin, cfg.Scraper.JitterMax)

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		utils.Error("Server stopped: %v", err)
		os.Exit(1)
	}
}
