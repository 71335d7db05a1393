package config

import (
	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"p9e.in/netzero/models"
)

func Migrations(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, []*gormigrate.Migration{
		{
			ID: "20250610_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.User{}, &models.Site{}, &models.EmissionRecord{},
					&models.ValueChainRecord{}, &models.Scenario{}, &models.CreditLot{})
			},
		},
		{
			ID: "20250718_add_renewable_tables",
			Migrate: func(tx *gorm.DB) error {
				return tx.AutoMigrate(&models.RenewableAsset{}, &models.RenewableGeneration{})
			},
		},
		{
			ID: "20250802_add_site_geo_columns",
			Migrate: func(tx *gorm.DB) error {
				// Older deployments predate the geography-aware factor
				// resolution; make sure the columns exist.
				for _, col := range []string{"state varchar(100)", "grid_region varchar(50)", "climate_zone varchar(50)"} {
					if err := tx.Exec("ALTER TABLE sites ADD COLUMN IF NOT EXISTS " + col).Error; err != nil {
						return err
					}
				}
				return nil
			},
		},
	})

	return m.Migrate()
}
