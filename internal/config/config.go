package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host string
	Port int
}

type DBConfig struct {
	Path string
}

type AuthConfig struct {
	AccessSecret string
}

// AssetsConfig aponta os diretórios de imagens usados pelo motor de
// layout: logos e configurações de filial, imagens de compressor e os
// fundos de capa.
type AssetsConfig struct {
	Dir                string
	PurchaseCoverImage string
	RentalCoverImage   string
	CoversDir          string
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Assets      AssetsConfig
	DataDir     string
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host: v.GetString("HTTP_HOST"),
			Port: v.GetInt("HTTP_PORT"),
		},
		DB: DBConfig{
			Path: v.GetString("DB_PATH"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
		},
		Assets: AssetsConfig{
			Dir:                v.GetString("ASSETS_DIR"),
			PurchaseCoverImage: v.GetString("COVER_PURCHASE_IMAGE"),
			RentalCoverImage:   v.GetString("COVER_RENTAL_IMAGE"),
			CoversDir:          v.GetString("COVERS_DIR"),
		},
		DataDir: v.GetString("DATA_DIR"),
	}

	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTP.Host == "" {
		cfg.HTTP.Host = "0.0.0.0"
	}
	if cfg.HTTP.Port == 0 {
		cfg.HTTP.Port = 7090
	}
	if cfg.DB.Path == "" {
		cfg.DB.Path = "data/crm.db"
	}
	if cfg.Assets.Dir == "" {
		cfg.Assets.Dir = "assets"
	}
	if cfg.Assets.PurchaseCoverImage == "" {
		cfg.Assets.PurchaseCoverImage = "imgfundo.jpg"
	}
	if cfg.Assets.RentalCoverImage == "" {
		cfg.Assets.RentalCoverImage = "capaloc.jpg"
	}
	if cfg.Assets.CoversDir == "" {
		cfg.Assets.CoversDir = filepath.Join(cfg.Assets.Dir, "capas")
	}
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	return nil
}
