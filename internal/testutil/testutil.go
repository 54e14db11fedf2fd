package testutil

import (
	"io"
	"log"
	"testing"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/content"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/content/accounts"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/content/opportunities"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/content/posts"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func silentLogger() logger.Interface {
	return logger.New(
		log.New(io.Discard, "", log.LstdFlags),
		logger.Config{LogLevel: logger.Silent},
	)
}

// SetupTestDB opens a private in-memory SQLite database with every table
// migrated. A single connection keeps the memory database alive and makes
// transactions serialize the way they would on one Postgres session.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: silentLogger()})
	if err != nil {
		t.Fatalf("open sqlite: %s", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %s", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %s", err)
	}
	if err := database.MigrateModels(db, Registry(db).Models()); err != nil {
		t.Fatalf("migrate content: %s", err)
	}

	t.Cleanup(func() { sqlDB.Close() })
	return db
}

// SetupMockDB returns GORM over the postgres dialector backed by sqlmock, for
// simulating driver faults.
func SetupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("create sqlmock: %s", err)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:       sqlDB,
		DriverName: "postgres",
	}), &gorm.Config{Logger: silentLogger()})
	if err != nil {
		t.Fatalf("open gorm over sqlmock: %s", err)
	}

	t.Cleanup(func() { sqlDB.Close() })
	return db, mock
}

// Registry builds the production content registry over db.
func Registry(db *gorm.DB) *content.Registry {
	return content.NewRegistry(posts.New(db), opportunities.New(db), accounts.New(db))
}

func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Role: models.RoleUser}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create user: %s", err)
	}
	return u
}

func CreateAdmin(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, Email: username + "@example.com", Role: models.RoleAdmin}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("create admin: %s", err)
	}
	return u
}

func CreatePost(t *testing.T, db *gorm.DB, authorID int64) *models.Post {
	t.Helper()
	p := &models.Post{AuthorID: authorID, Text: "post body"}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create post: %s", err)
	}
	return p
}

func CreateOpportunity(t *testing.T, db *gorm.DB, companyID int64) *models.Opportunity {
	t.Helper()
	o := &models.Opportunity{CompanyID: companyID, Title: "Striker wanted"}
	if err := db.Create(o).Error; err != nil {
		t.Fatalf("create opportunity: %s", err)
	}
	return o
}

// CreateReport inserts a report row directly, bypassing ingestion, so tests
// can seed any status.
func CreateReport(t *testing.T, db *gorm.DB, reporterID int64, targetType models.TargetType, targetID int64, status models.ReportStatus) *models.Report {
	t.Helper()
	r := &models.Report{
		ReporterID:  reporterID,
		TargetType:  targetType,
		TargetID:    targetID,
		Reason:      "spam",
		Status:      status,
		ActionTaken: models.ActionNone,
	}
	if err := db.Create(r).Error; err != nil {
		t.Fatalf("create report: %s", err)
	}
	return r
}

// ReloadReport reads a report back from the database.
func ReloadReport(t *testing.T, db *gorm.DB, id int64) *models.Report {
	t.Helper()
	var r models.Report
	if err := db.First(&r, "id = ?", id).Error; err != nil {
		t.Fatalf("reload report %d: %s", id, err)
	}
	return &r
}
