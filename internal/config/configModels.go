package config

import "time"

type Config struct {
	Env           string           `yaml:"env" env:"ENV" env-default:"local"`
	HttpServer    HttpServerConfig `yaml:"httpServer"`
	Store         StoreConfig      `yaml:"store"`
	ScraperConfig ScraperConfig    `yaml:"scraper"`
}

type HttpServerConfig struct {
	Enabled bool          `yaml:"enabled" env:"HTTP_ENABLED" env-default:"false"`
	Address string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost"`
	Port    string        `yaml:"port" env:"HTTP_PORT" env-default:"8000"`
	Timeout time.Duration `yaml:"timeout" env-default:"5s"`
}

type StoreConfig struct {
	DBPath       string `yaml:"dbPath" env:"DB_PATH" env-default:"data/events.db"`
	SnapshotPath string `yaml:"snapshotPath" env:"SNAPSHOT_PATH" env-default:"data/events.json"`
}

// SiteConfig names one registered site adapter and the listing page it
// scrapes.
type SiteConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type ScraperConfig struct {
	PageTimeout time.Duration `yaml:"pageTimeout" env:"SCRAPER_PAGE_TIMEOUT" env-default:"30s"`
	SettleWait  time.Duration `yaml:"settleWait" env:"SCRAPER_SETTLE_WAIT" env-default:"2s"`
	UserAgent   string        `yaml:"userAgent" env-default:"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"`
	Sites       []SiteConfig  `yaml:"sites"`
}
