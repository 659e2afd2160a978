package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/yukikurage/it-helpdesk/internal/constants"
	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/repository"
)

// ExportHeader is the first row of the ticket export.
var ExportHeader = []string{
	"ID", "Title", "Customer Name", "Customer Email", "Customer Phone", "Customer Alternate Phone",
	"Employee", "Category", "Urgency", "Status",
	"Assigned To", "Created At", "Description",
}

// ReportService computes dashboard statistics and exports. Every call
// queries the store afresh.
type ReportService struct {
	ticketRepo repository.TicketRepository
	assetRepo  repository.AssetRepository
	now        func() time.Time
}

func NewReportService(ticketRepo repository.TicketRepository, assetRepo repository.AssetRepository) *ReportService {
	return &ReportService{
		ticketRepo: ticketRepo,
		assetRepo:  assetRepo,
		now:        time.Now,
	}
}

type EmployeeStats struct {
	TotalTickets int64
	Open         int64
	InProgress   int64
	Resolved     int64
	Closed       int64
	HighUrgency  int64
	TotalAssets  int64
}

type AdminStats struct {
	Total       int64
	Open        int64
	InProgress  int64
	Resolved    int64
	Closed      int64
	HighUrgency int64
	Unassigned  int64
	Categories  []repository.CategoryCount
	// RecentTickets counts tickets raised in the last week
	RecentTickets int64
}

type AssetStats struct {
	Total                int64
	InUse                int64
	Available            int64
	UnderRepair          int64
	WarrantyExpiringSoon int64
}

type ProfileStats struct {
	TotalTickets int64
	TotalAssets  int64
}

func (s *ReportService) EmployeeStats(userID uint64) (*EmployeeStats, error) {
	stats, err := s.ticketRepo.Stats(&userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute ticket stats: %w", err)
	}
	assets, err := s.assetRepo.CountByAssignee(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count assets: %w", err)
	}

	return &EmployeeStats{
		TotalTickets: stats.Total,
		Open:         stats.ByStatus[models.TicketStatusOpen],
		InProgress:   stats.ByStatus[models.TicketStatusInProgress],
		Resolved:     stats.ByStatus[models.TicketStatusResolved],
		Closed:       stats.ByStatus[models.TicketStatusClosed],
		HighUrgency:  stats.HighUrgencyActive,
		TotalAssets:  assets,
	}, nil
}

func (s *ReportService) AdminStats() (*AdminStats, error) {
	stats, err := s.ticketRepo.Stats(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to compute ticket stats: %w", err)
	}
	categories, err := s.ticketRepo.CategoryBreakdown()
	if err != nil {
		return nil, fmt.Errorf("failed to compute category breakdown: %w", err)
	}
	since := s.now().AddDate(0, 0, -constants.RecentActivityDays)
	recent, err := s.ticketRepo.CountCreatedSince(since)
	if err != nil {
		return nil, fmt.Errorf("failed to count recent tickets: %w", err)
	}

	return &AdminStats{
		Total:         stats.Total,
		Open:          stats.ByStatus[models.TicketStatusOpen],
		InProgress:    stats.ByStatus[models.TicketStatusInProgress],
		Resolved:      stats.ByStatus[models.TicketStatusResolved],
		Closed:        stats.ByStatus[models.TicketStatusClosed],
		HighUrgency:   stats.HighUrgencyActive,
		Unassigned:    stats.UnassignedActive,
		Categories:    categories,
		RecentTickets: recent,
	}, nil
}

// AssetStats reports the filtered listing's total next to global per-status
// counts and the number of warranties ending within the warning window.
func (s *ReportService) AssetStats(filteredTotal int64) (*AssetStats, error) {
	byStatus, err := s.assetRepo.CountByStatus()
	if err != nil {
		return nil, fmt.Errorf("failed to count assets: %w", err)
	}

	today := models.DateOf(s.now())
	expiring, err := s.assetRepo.CountWarrantyExpiringBetween(today, today.AddDate(0, 0, constants.WarrantyWarningDays))
	if err != nil {
		return nil, fmt.Errorf("failed to count expiring warranties: %w", err)
	}

	return &AssetStats{
		Total:                filteredTotal,
		InUse:                byStatus[models.AssetStatusInUse],
		Available:            byStatus[models.AssetStatusAvailable],
		UnderRepair:          byStatus[models.AssetStatusUnderRepair],
		WarrantyExpiringSoon: expiring,
	}, nil
}

func (s *ReportService) ProfileStats(userID uint64) (*ProfileStats, error) {
	tickets, err := s.ticketRepo.CountByEmployee(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count tickets: %w", err)
	}
	assets, err := s.assetRepo.CountByAssignee(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count assets: %w", err)
	}
	return &ProfileStats{TotalTickets: tickets, TotalAssets: assets}, nil
}

// WriteTicketsCSV writes the header and one row per ticket, unfiltered and in
// default order. It returns the number of ticket rows written.
func (s *ReportService) WriteTicketsCSV(w io.Writer) (int, error) {
	tickets, err := s.ticketRepo.ListAll()
	if err != nil {
		return 0, fmt.Errorf("failed to load tickets: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(ExportHeader); err != nil {
		return 0, err
	}

	for _, t := range tickets {
		assignedTo := unassignedName
		if t.AssignedTo != nil {
			assignedTo = t.AssignedTo.Username
		}

		record := []string{
			strconv.FormatUint(t.ID, 10),
			t.Title,
			t.CustomerName,
			t.CustomerEmail,
			t.CustomerPhone,
			t.CustomerAlternatePhone,
			t.Employee.Username,
			t.Category.Display(),
			t.Urgency.Display(),
			t.Status.Display(),
			assignedTo,
			t.CreatedAt.Format(constants.ExportTimeLayout),
			truncateRunes(t.Description, constants.ExportDescriptionMax),
		}
		if err := writer.Write(record); err != nil {
			return 0, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, err
	}
	return len(tickets), nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
