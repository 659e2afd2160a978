package services

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/repository"
	"github.com/yukikurage/it-helpdesk/internal/testutil"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newReportService(t *testing.T) (*ReportService, *gorm.DB) {
	db := testutil.NewDB(t)
	return NewReportService(repository.NewTicketRepository(db), repository.NewAssetRepository(db)), db
}

func TestWriteTicketsCSV(t *testing.T) {
	service, db := newReportService(t)
	employee := testutil.CreateUser(t, db, "tess")
	admin := testutil.CreateStaff(t, db, "uma")

	created := time.Date(2024, 2, 29, 14, 5, 0, 0, time.UTC)
	testutil.CreateTicket(t, db, employee, "Long one", func(tk *models.Ticket) {
		tk.Description = strings.Repeat("é", 250)
		tk.CreatedAt = created
		tk.Status = models.TicketStatusInProgress
		tk.AssignedToID = &admin.ID
	})
	testutil.CreateTicket(t, db, employee, "Short, with comma", func(tk *models.Ticket) {
		tk.CreatedAt = created.Add(time.Hour)
	})

	var buf bytes.Buffer
	n, err := service.WriteTicketsCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, ExportHeader, records[0])

	// newest first
	assert.Equal(t, "Short, with comma", records[1][1])
	assert.Equal(t, "Unassigned", records[1][10])

	long := records[2]
	assert.Equal(t, "tess", long[6])
	assert.Equal(t, "Hardware", long[7])
	assert.Equal(t, "Medium", long[8])
	assert.Equal(t, "In Progress", long[9])
	assert.Equal(t, "uma", long[10])
	assert.Equal(t, "2024-02-29 14:05", long[11])
	assert.Equal(t, 100, utf8.RuneCountInString(long[12]))

	for _, record := range records[1:] {
		assert.LessOrEqual(t, utf8.RuneCountInString(record[12]), 100)
	}
}

func TestAdminStats_RecentActivity(t *testing.T) {
	service, db := newReportService(t)
	fixed := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return fixed }

	employee := testutil.CreateUser(t, db, "vic")
	testutil.CreateTicket(t, db, employee, "old", func(tk *models.Ticket) { tk.CreatedAt = fixed.AddDate(0, 0, -8) })
	testutil.CreateTicket(t, db, employee, "new", func(tk *models.Ticket) {
		tk.CreatedAt = fixed.AddDate(0, 0, -2)
		tk.Category = models.CategorySoftware
		tk.Urgency = models.UrgencyHigh
	})

	stats, err := service.AdminStats()
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(2), stats.Open)
	assert.Equal(t, int64(2), stats.Unassigned)
	assert.Equal(t, int64(1), stats.HighUrgency)
	assert.Equal(t, int64(1), stats.RecentTickets)
	assert.Len(t, stats.Categories, 2)
}

func TestEmployeeAndProfileStats(t *testing.T) {
	service, db := newReportService(t)
	employee := testutil.CreateUser(t, db, "wes")
	other := testutil.CreateUser(t, db, "xan")

	testutil.CreateTicket(t, db, employee, "a", func(tk *models.Ticket) { tk.Status = models.TicketStatusClosed })
	testutil.CreateTicket(t, db, employee, "b", func(tk *models.Ticket) { tk.Urgency = models.UrgencyHigh })
	testutil.CreateTicket(t, db, other, "c")
	testutil.CreateAsset(t, db, "W-1", func(a *models.Asset) { a.AssignedToID = &employee.ID })

	stats, err := service.EmployeeStats(employee.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalTickets)
	assert.Equal(t, int64(1), stats.Open)
	assert.Equal(t, int64(1), stats.Closed)
	assert.Equal(t, int64(1), stats.HighUrgency)
	assert.Equal(t, int64(1), stats.TotalAssets)

	profile, err := service.ProfileStats(employee.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), profile.TotalTickets)
	assert.Equal(t, int64(1), profile.TotalAssets)
}

func TestAssetStats_WarrantyWindow(t *testing.T) {
	service, db := newReportService(t)
	today := models.DateOf(time.Now())
	service.now = func() time.Time { return today.Add(15 * time.Hour) }

	testutil.CreateAsset(t, db, "E-0", func(a *models.Asset) { a.WarrantyExpiry = datatypes.Date(today) })
	testutil.CreateAsset(t, db, "E-30", func(a *models.Asset) { a.WarrantyExpiry = datatypes.Date(today.AddDate(0, 0, 30)) })
	testutil.CreateAsset(t, db, "E-31", func(a *models.Asset) { a.WarrantyExpiry = datatypes.Date(today.AddDate(0, 0, 31)) })
	testutil.CreateAsset(t, db, "E-past", func(a *models.Asset) {
		a.WarrantyExpiry = datatypes.Date(today.AddDate(0, 0, -1))
		a.Status = models.AssetStatusInUse
	})

	stats, err := service.AssetStats(3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Total)
	assert.Equal(t, int64(2), stats.WarrantyExpiringSoon)
	assert.Equal(t, int64(3), stats.Available)
	assert.Equal(t, int64(1), stats.InUse)
	assert.Zero(t, stats.UnderRepair)
}
