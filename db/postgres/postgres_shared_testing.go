package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xpsychometrics/collabmap/db"
)

var TESTONLY_Config = db.Config{
	PGHost:     "localhost",
	PGUser:     "collabmap",
	PGPassword: "example",
	PGDatabase: "collabmap",
	PGPort:     5432,
}

func TESTONLY_SetupAndCleanup(t *testing.T) *PostgresDB {
	assert := assert.New(t)
	pg, err := NewPostgresDB(TESTONLY_Config)
	if !assert.NoError(err) {
		t.FailNow()
	}
	pg.db.Exec(`DROP TABLE IF EXISTS collaborations CASCADE`)
	pg.db.Exec(`DROP TABLE IF EXISTS centers CASCADE`)
	assert.NoError(pg.Close())
	pg, err = NewPostgresDB(TESTONLY_Config)
	if !assert.NoError(err) {
		t.FailNow()
	}
	t.Cleanup(func() { pg.Close() })
	return pg
}
