// Package testutil builds throwaway databases and fixtures for package tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/it-helpdesk/internal/constants"
	"github.com/yukikurage/it-helpdesk/internal/database"
	"github.com/yukikurage/it-helpdesk/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Password is the plain-text password of every fixture user.
const Password = "secret123"

// NewDB opens a migrated in-memory SQLite database that lives for the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a second connection would see a different in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.MigrateDatabase(db))

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// CreateUser inserts an active user with Password as password.
func CreateUser(t testing.TB, db *gorm.DB, username string, mutate ...func(*models.User)) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		Email:        username + "@example.com",
		IsActive:     true,
	}
	for _, m := range mutate {
		m(user)
	}
	require.NoError(t, db.Omit("Groups").Create(user).Error)
	return user
}

// CreateITAdmin inserts a user in the IT Admin group.
func CreateITAdmin(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := CreateUser(t, db, username)
	var group models.Group
	require.NoError(t, db.Where("name = ?", constants.ITAdminGroup).First(&group).Error)
	require.NoError(t, db.Model(user).Association("Groups").Append(&group))
	return user
}

// CreateStaff inserts a staff user.
func CreateStaff(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()
	return CreateUser(t, db, username, func(u *models.User) { u.IsStaff = true })
}

func CreateTicket(t testing.TB, db *gorm.DB, employee *models.User, title string, mutate ...func(*models.Ticket)) *models.Ticket {
	t.Helper()

	ticket := &models.Ticket{
		Title:         title,
		Category:      models.CategoryHardware,
		Description:   "Description of " + title,
		Urgency:       models.UrgencyMedium,
		Status:        models.TicketStatusOpen,
		CustomerName:  "Customer",
		CustomerPhone: "555-0100",
		CustomerEmail: "customer@example.com",
		EmployeeID:    employee.ID,
	}
	for _, m := range mutate {
		m(ticket)
	}
	require.NoError(t, db.Omit("Employee", "AssignedTo", "Comments").Create(ticket).Error)
	return ticket
}

func CreateAsset(t testing.TB, db *gorm.DB, serial string, mutate ...func(*models.Asset)) *models.Asset {
	t.Helper()

	today := models.DateOf(time.Now())
	asset := &models.Asset{
		DeviceType:     "Laptop",
		Brand:          "Dell",
		SerialNumber:   serial,
		PurchaseDate:   datatypes.Date(today.AddDate(-1, 0, 0)),
		WarrantyExpiry: datatypes.Date(today.AddDate(1, 0, 0)),
		Status:         models.AssetStatusAvailable,
	}
	for _, m := range mutate {
		m(asset)
	}
	require.NoError(t, db.Omit("AssignedTo").Create(asset).Error)
	return asset
}
