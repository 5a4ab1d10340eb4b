package app

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/xpsychometrics/collabmap/db"
	"github.com/xpsychometrics/collabmap/db/postgres"
	"github.com/xpsychometrics/collabmap/db/static"
	"github.com/xpsychometrics/collabmap/db/yamlfile"
	"github.com/xpsychometrics/collabmap/internal/controller"
)

type Config struct {
	Production bool `env:"PRODUCTION" envDefault:"false"`
	// Levels are {trace, debug, info, warn, error, fatal, panic}.
	// See github.com/rs/zerolog@v1.19.0/log.go for possible values.
	LogLevel string `env:"LOGLEVEL" envDefault:"debug"`
	// HTTP timeouts (read and write)
	HTTPTimeout time.Duration `env:"TIMEOUT" envDefault:"5s"`
	Port        string        `env:"PORT" envDefault:"8080"`
	CORSOrigins []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`
}

func GetEnvConfig() Config {
	conf := Config{}
	env.Parse(&conf)
	return conf
}

// SetupLogging configures the global zerolog logger.
func SetupLogging(conf Config) {
	level, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		println("failed to parse LogLevel: '" + conf.LogLevel + "', setting to debug")
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	if !conf.Production {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func RetryAtIntervals(fn func() error, intervals []time.Duration) {
	var err error
	err = fn()
	i := 0
	for err != nil {
		time.Sleep(intervals[i])
		if i < len(intervals)-1 {
			i++
		}
		err = fn()
	}
}

var postgresRetryIntervals = []time.Duration{
	1 * time.Second,
	5 * time.Second,
	5 * time.Second,
	10 * time.Second,
}

// OpenDB returns the dataset backend selected by conf.Source. Connecting to
// postgres is retried until it succeeds.
func OpenDB(conf db.Config) (db.DB, error) {
	switch conf.Source {
	case db.SourceStatic, "":
		return static.New(), nil
	case db.SourceYAML:
		return yamlfile.New(conf.File), nil
	case db.SourcePostgres:
		var (
			backend *postgres.PostgresDB
			err     error
		)
		RetryAtIntervals(func() error {
			backend, err = postgres.NewPostgresDB(conf)
			if err != nil {
				log.Error().Msgf("failed to connect to DB: %v", err)
			}
			return err
		}, postgresRetryIntervals)
		return backend, nil
	}
	return nil, errors.Errorf("unknown dataset source '%s'", conf.Source)
}

// NewServer wires the controller, metrics and routes into an http.Server.
func NewServer(conf Config, backend db.DB, canvas controller.CanvasConfig) *http.Server {
	metrics := NewMetrics()
	layouter := metrics.InstrumentLayouter(controller.NewForceSimulationLayouter())
	ctrl := controller.NewController(backend, layouter, canvas)
	return &http.Server{
		Addr:         ":" + conf.Port,
		Handler:      NewRouter(conf, ctrl, metrics),
		ReadTimeout:  conf.HTTPTimeout,
		WriteTimeout: conf.HTTPTimeout,
	}
}

// RunServer serves until ctx is done.
func RunServer(ctx context.Context, conf Config, dbconf db.Config, canvas controller.CanvasConfig) error {
	log.Info().Msgf("Config: source=%s canvas=%#v", dbconf.Source, canvas)
	backend, err := OpenDB(dbconf)
	if err != nil {
		return err
	}
	server := NewServer(conf, backend, canvas)
	errs := make(chan error, 1)
	go func() {
		log.Info().Msgf("connect to http://0.0.0.0:%s/map/force.svg for the collaboration map", conf.Port)
		errs <- server.ListenAndServe()
	}()
	select {
	case err := <-errs:
		return errors.Wrap(err, "ListenAndServe")
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), conf.HTTPTimeout)
		defer cancel()
		return server.Shutdown(shutdown)
	}
}
