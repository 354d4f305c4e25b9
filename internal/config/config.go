package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host       string
	Port       int
	StatusPort int
}

type DataConfig struct {
	DatasetPath string
	UploadDir   string
}

type ReportConfig struct {
	CacheTTL time.Duration
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	Data        DataConfig
	Report      ReportConfig
}

// Load reads configuration from the environment, falling back to the
// optional YAML project file (config/app.yaml). The YAML file keeps the
// deployment layout of the original project config, so `data.raw_path`
// is honored as the dataset location.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")

	v.AutomaticEnv()

	_ = v.ReadInConfig()

	datasetPath := v.GetString("DATASET_PATH")
	if datasetPath == "" {
		datasetPath = v.GetString("data.raw_path")
	}

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:       v.GetString("HTTP_HOST"),
			Port:       v.GetInt("HTTP_PORT"),
			StatusPort: v.GetInt("STATUS_HTTP_PORT"),
		},
		Data: DataConfig{
			DatasetPath: datasetPath,
			UploadDir:   v.GetString("UPLOAD_DIR"),
		},
		Report: ReportConfig{
			CacheTTL: time.Duration(v.GetInt("REPORT_CACHE_TTL_SECONDS")) * time.Second,
		},
	}

	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 8000
	}
	if cfg.HTTP.StatusPort == 0 {
		cfg.HTTP.StatusPort = 5000
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Data.UploadDir == "" {
		cfg.Data.UploadDir = "data/raw"
	}
	if cfg.Report.CacheTTL <= 0 {
		cfg.Report.CacheTTL = 5 * time.Minute
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Data.DatasetPath == "" {
		return fmt.Errorf("DATASET_PATH (or data.raw_path in app.yaml) is required")
	}
	return nil
}
