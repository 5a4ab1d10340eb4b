package db

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvConfig(t *testing.T) {
	os.Setenv("DATASET_SOURCE", "postgres")
	os.Setenv("PG_HOST", "db.internal")
	os.Setenv("PG_PORT", "5433")
	t.Cleanup(func() {
		os.Unsetenv("DATASET_SOURCE")
		os.Unsetenv("PG_HOST")
		os.Unsetenv("PG_PORT")
	})
	conf := GetEnvConfig()
	assert := assert.New(t)
	assert.Equal(SourcePostgres, conf.Source)
	assert.Equal("db.internal", conf.PGHost)
	assert.Equal(5433, conf.PGPort)
	assert.Equal("collabmap", conf.PGUser, "default kept")
}

func TestGetEnvConfig_defaults(t *testing.T) {
	conf := GetEnvConfig()
	assert.Equal(t, SourceStatic, conf.Source)
	assert.Equal(t, "collaborations.yaml", conf.File)
}
