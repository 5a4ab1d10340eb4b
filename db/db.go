package db

import (
	"context"

	"github.com/caarlos0/env/v6"
	"github.com/xpsychometrics/collabmap/graph/model"
)

// DB hands out the collaboration dataset. Backends are read-only towards the
// visualization.
//
//go:generate mockgen -destination db_mock.go -package db . DB
type DB interface {
	Dataset(ctx context.Context) (*model.Dataset, error)
}

// Seeder is implemented by backends that can be filled with a dataset.
type Seeder interface {
	Seed(ctx context.Context, ds *model.Dataset) error
}

type Source string

const (
	SourceStatic   Source = "static"
	SourceYAML     Source = "yaml"
	SourcePostgres Source = "postgres"
)

type Config struct {
	Source Source `env:"DATASET_SOURCE" envDefault:"static"`
	// File is read when Source is yaml.
	File       string `env:"DATASET_FILE" envDefault:"collaborations.yaml"`
	PGHost     string `env:"PG_HOST" envDefault:"localhost"`
	PGUser     string `env:"PG_USER" envDefault:"collabmap"`
	PGPassword string `env:"PG_PASSWORD" envDefault:"example"`
	PGDatabase string `env:"PG_DATABASE" envDefault:"collabmap"`
	PGPort     int    `env:"PG_PORT" envDefault:"5432"`
}

func GetEnvConfig() Config {
	conf := Config{}
	env.Parse(&conf)
	return conf
}
