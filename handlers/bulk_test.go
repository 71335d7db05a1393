package handlers

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"p9e.in/netzero/models"
	"p9e.in/netzero/pkg/carbon"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Site{}, &models.EmissionRecord{}, &models.ValueChainRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createTestSite(t *testing.T, db *gorm.DB, name string) models.Site {
	t.Helper()
	site := models.Site{Name: name, State: "Jharkhand", GridRegion: "Eastern", ClimateZone: "Composite"}
	if err := db.Create(&site).Error; err != nil {
		t.Fatalf("create site: %v", err)
	}
	return site
}

func TestInsertEmissionBatchCommitsAllRows(t *testing.T) {
	db := setupTestDB(t)
	site := createTestSite(t, db, "Jharia Block A")

	if count, err := insertEmissionBatch(db, nil); err != nil || count != 0 {
		t.Errorf("empty batch: count = %d, err = %v", count, err)
	}

	entries := []models.EmissionInput{
		{SiteID: site.ID.String(), ActivityType: "diesel_combustion", Amount: "500", Unit: "L"},
		{SiteID: site.ID.String(), ActivityType: "grid_electricity", Amount: "1000", Unit: "kWh"},
	}

	count, err := insertEmissionBatch(db, entries)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}

	var n int64
	db.Model(&models.EmissionRecord{}).Count(&n)
	if n != 2 {
		t.Errorf("persisted %d records, want 2", n)
	}
}

func TestInsertEmissionBatchRollsBackOnLastEntry(t *testing.T) {
	db := setupTestDB(t)
	site := createTestSite(t, db, "Jharia Block A")

	entries := []models.EmissionInput{
		{SiteID: site.ID.String(), ActivityType: "diesel_combustion", Amount: "500", Unit: "L"},
		{SiteID: site.ID.String(), ActivityType: "grid_electricity", Amount: "1000", Unit: "kWh"},
		{SiteID: uuid.NewString(), ActivityType: "diesel_combustion", Amount: "10", Unit: "L"},
	}

	count, err := insertEmissionBatch(db, entries)
	if err == nil {
		t.Fatal("expected the batch to abort")
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}

	var aborted *carbon.TransactionAbortedError
	if !errors.As(err, &aborted) {
		t.Fatalf("error %T does not report the aborted entry", err)
	}
	if aborted.Index != 2 {
		t.Errorf("aborted index = %d, want 2", aborted.Index)
	}
	if !errors.Is(err, carbon.ErrReferenceNotFound) {
		t.Errorf("cause should be the unregistered site, got %v", err)
	}

	var n int64
	db.Model(&models.EmissionRecord{}).Count(&n)
	if n != 0 {
		t.Errorf("rollback left %d records behind", n)
	}
}

func TestInsertValueChainBatchRollsBackMidBatch(t *testing.T) {
	db := setupTestDB(t)
	site := createTestSite(t, db, "Korba Plant")

	seed := []models.ValueChainInput{
		{SiteID: site.ID.String(), Category: "Purchased Goods", Amount: "1200", Unit: "USD"},
	}
	if _, err := insertValueChainBatch(db, seed); err != nil {
		t.Fatalf("seed batch: %v", err)
	}

	entries := []models.ValueChainInput{
		{SiteID: site.ID.String(), Category: "Business Travel", Amount: "300", Unit: "USD"},
		{SiteID: site.ID.String(), Category: "Freight", Amount: "-50", Unit: "USD"},
		{SiteID: site.ID.String(), Category: "Waste Disposal", Amount: "80", Unit: "USD"},
	}

	count, err := insertValueChainBatch(db, entries)
	if err == nil {
		t.Fatal("expected the batch to abort")
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}

	var aborted *carbon.TransactionAbortedError
	if !errors.As(err, &aborted) {
		t.Fatalf("error %T does not report the aborted entry", err)
	}
	if aborted.Index != 1 {
		t.Errorf("aborted index = %d, want 1", aborted.Index)
	}
	if !errors.Is(err, carbon.ErrInvalidInput) {
		t.Errorf("cause should be the negative amount, got %v", err)
	}

	var n int64
	db.Model(&models.ValueChainRecord{}).Count(&n)
	if n != 1 {
		t.Errorf("pre-batch row count changed: %d, want 1", n)
	}
}
