package postgres

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/xpsychometrics/collabmap/db"
	"github.com/xpsychometrics/collabmap/graph/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Center struct {
	gorm.Model
	Key         string `gorm:"uniqueIndex;not null"`
	Name        string `gorm:"not null"`
	Institution string
	Country     string
	City        string
	Lat         float64
	Lng         float64
	Image       string
}

type Collaboration struct {
	gorm.Model
	// Position keeps the input order, label placement depends on it.
	Position    int    `gorm:"index;not null"`
	Institution string `gorm:"uniqueIndex;not null"`
	Country     string `gorm:"not null"`
	City        string
	Weight      int `gorm:"not null"`
	Lat         float64
	Lng         float64
}

func NewPostgresDB(conf db.Config) (*PostgresDB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
			conf.PGHost, conf.PGUser, conf.PGPassword, conf.PGDatabase, conf.PGPort),
	}), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	pg := &PostgresDB{
		db: db,
	}
	return pg.init()
}

type PostgresDB struct {
	db *gorm.DB
}

func (pg *PostgresDB) init() (*PostgresDB, error) {
	return pg, pg.db.AutoMigrate(&Center{}, &Collaboration{})
}

func (pg *PostgresDB) Close() error {
	sqlDB, err := pg.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (pg *PostgresDB) Dataset(ctx context.Context) (*model.Dataset, error) {
	center := Center{}
	if err := pg.db.WithContext(ctx).First(&center).Error; err != nil {
		return nil, errors.Wrap(err, "load center")
	}
	collaborations := []Collaboration{}
	if err := pg.db.WithContext(ctx).Order("position").Find(&collaborations).Error; err != nil {
		return nil, errors.Wrap(err, "load collaborations")
	}
	return ConvertToModel(center, collaborations), nil
}

// Seed replaces the stored dataset.
func (pg *PostgresDB) Seed(ctx context.Context, ds *model.Dataset) error {
	if err := db.Validate(ds); err != nil {
		return err
	}
	center, collaborations := ConvertToDB(ds)
	return pg.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&Collaboration{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&Center{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&center).Error; err != nil {
			return err
		}
		if len(collaborations) == 0 {
			return nil
		}
		return tx.Create(&collaborations).Error
	})
}
