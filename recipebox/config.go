package recipebox

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"

	"recipebox/recipebox/catalog"
	"recipebox/recipebox/database"
	"recipebox/recipebox/images"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log     LogConfig         `toml:"log"`
	DB      database.DBConfig `toml:"db"`
	Catalog catalog.Config    `toml:"catalog"`
	Web     WebConfig         `toml:"web"`
	Spaces  images.Config     `toml:"spaces"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type WebConfig struct {
	Port           string `toml:"port"`
	SessionKey     string `toml:"session_key"`
	Environment    string `toml:"environment"`
	AllowedOrigins string `toml:"allowed_origins"`
}
