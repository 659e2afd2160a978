package repository

import (
	"time"

	"github.com/yukikurage/it-helpdesk/internal/database"
	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	ticketOrder  = "tickets.created_at DESC, tickets.id DESC"
	commentOrder = "ticket_comments.created_at ASC, ticket_comments.id ASC"

	// correlated lookup so the creator's username can sit in a LOWER(...) LIKE
	ticketCreatorUsername = "(SELECT users.username FROM users WHERE users.id = tickets.employee_id)"
)

// GormTicketRepository is a GORM implementation of TicketRepository
type GormTicketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new TicketRepository
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &GormTicketRepository{db: db}
}

func (r *GormTicketRepository) Create(ticket *models.Ticket) error {
	return r.db.Omit(clause.Associations).Create(ticket).Error
}

// FindByID finds a ticket by ID with optional preloading
func (r *GormTicketRepository) FindByID(id uint64, preload ...string) (*models.Ticket, error) {
	var ticket models.Ticket
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.First(&ticket, id).Error; err != nil {
		return nil, err
	}

	return &ticket, nil
}

func (r *GormTicketRepository) filtered(filter TicketFilter) *gorm.DB {
	query := r.db.Model(&models.Ticket{})

	if filter.EmployeeID != nil {
		query = query.Where("tickets.employee_id = ?", *filter.EmployeeID)
	}
	if filter.Status != "" {
		query = query.Where("tickets.status = ?", filter.Status)
	}
	if filter.Category != "" {
		query = query.Where("tickets.category = ?", filter.Category)
	}
	if filter.Urgency != "" {
		query = query.Where("tickets.urgency = ?", filter.Urgency)
	}

	columns := []string{"tickets.title", "tickets.description"}
	if filter.SearchCreator {
		columns = append(columns, ticketCreatorUsername)
	}
	return query.Scopes(database.Search(filter.Search, columns...))
}

// List retrieves tickets with filtering and pagination
func (r *GormTicketRepository) List(filter TicketFilter, page, pageSize int) ([]models.Ticket, utils.Page, error) {
	var total int64
	if err := r.filtered(filter).Count(&total).Error; err != nil {
		return nil, utils.Page{}, err
	}

	p := utils.NewPage(page, pageSize, total)
	if total == 0 {
		return []models.Ticket{}, p, nil
	}

	var tickets []models.Ticket
	err := r.filtered(filter).
		Preload("Employee").
		Preload("AssignedTo").
		Order(ticketOrder).
		Scopes(database.Paginate(p)).
		Find(&tickets).Error
	if err != nil {
		return nil, utils.Page{}, err
	}

	return tickets, p, nil
}

func (r *GormTicketRepository) ListAll() ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.Preload("Employee").Preload("AssignedTo").Order(ticketOrder).Find(&tickets).Error
	return tickets, err
}

func (r *GormTicketRepository) Recent(employeeID uint64, limit int) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.Where("employee_id = ?", employeeID).
		Order(ticketOrder).
		Limit(limit).
		Find(&tickets).Error
	return tickets, err
}

// UpdateWithAudit saves the ticket's own columns and appends comments in one
// transaction; either both land or neither does.
func (r *GormTicketRepository) UpdateWithAudit(ticket *models.Ticket, comments []models.TicketComment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(ticket).Error; err != nil {
			return err
		}

		if len(comments) == 0 {
			return nil
		}
		return tx.Omit(clause.Associations).Create(&comments).Error
	})
}

func (r *GormTicketRepository) AddComment(comment *models.TicketComment) error {
	return r.db.Omit(clause.Associations).Create(comment).Error
}

func (r *GormTicketRepository) ListComments(ticketID uint64) ([]models.TicketComment, error) {
	var comments []models.TicketComment
	err := r.db.Preload("User").
		Where("ticket_id = ?", ticketID).
		Order(commentOrder).
		Find(&comments).Error
	return comments, err
}

func (r *GormTicketRepository) Stats(employeeID *uint64) (*TicketStats, error) {
	scoped := func() *gorm.DB {
		q := r.db.Model(&models.Ticket{})
		if employeeID != nil {
			q = q.Where("employee_id = ?", *employeeID)
		}
		return q
	}

	type statusCount struct {
		Status models.TicketStatus
		Count  int64
	}
	var rows []statusCount
	if err := scoped().Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := &TicketStats{ByStatus: make(map[models.TicketStatus]int64, len(models.TicketStatusChoices))}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Count
		stats.Total += row.Count
	}

	if err := scoped().
		Where("urgency = ? AND status IN ?", models.UrgencyHigh, models.ActiveTicketStatuses).
		Count(&stats.HighUrgencyActive).Error; err != nil {
		return nil, err
	}

	if err := scoped().
		Where("assigned_to_id IS NULL AND status IN ?", models.ActiveTicketStatuses).
		Count(&stats.UnassignedActive).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *GormTicketRepository) CategoryBreakdown() ([]CategoryCount, error) {
	var rows []CategoryCount
	err := r.db.Model(&models.Ticket{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("count DESC, category ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *GormTicketRepository) CountCreatedSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Ticket{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

func (r *GormTicketRepository) CountByEmployee(employeeID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Ticket{}).Where("employee_id = ?", employeeID).Count(&count).Error
	return count, err
}
