package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/it-helpdesk/internal/auth"
	"github.com/yukikurage/it-helpdesk/internal/constants"
	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/repository"
	"github.com/yukikurage/it-helpdesk/internal/utils"
	"github.com/yukikurage/it-helpdesk/pkg/metrics"
	"gorm.io/gorm"
)

const unassignedName = "Unassigned"

// TicketService handles ticket business logic
type TicketService struct {
	ticketRepo repository.TicketRepository
	userRepo   repository.UserRepository
}

// NewTicketService creates a new TicketService
func NewTicketService(ticketRepo repository.TicketRepository, userRepo repository.UserRepository) *TicketService {
	return &TicketService{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
	}
}

// CreateTicketInput represents input for raising a ticket
type CreateTicketInput struct {
	EmployeeID             uint64
	Title                  string
	Category               models.TicketCategory
	Description            string
	Urgency                models.TicketUrgency
	CustomerName           string
	CustomerPhone          string
	CustomerEmail          string
	CustomerAlternatePhone string
	// Screenshot is the stored path relative to the media root, if any
	Screenshot string
}

// UpdateTicketInput is an administrator's triage submission
type UpdateTicketInput struct {
	TicketID        uint64
	ActorID         uint64
	Status          models.TicketStatus
	Urgency         models.TicketUrgency
	ResolutionNotes string
	AssignedToID    *uint64
}

// AdminTicketFilter holds the admin dashboard query
type AdminTicketFilter struct {
	Status   models.TicketStatus
	Category models.TicketCategory
	Urgency  models.TicketUrgency
	Search   string
}

// CreateTicket stores a new ticket. It always starts open.
func (s *TicketService) CreateTicket(input CreateTicketInput) (*models.Ticket, error) {
	ticket := &models.Ticket{
		Title:                  input.Title,
		Category:               input.Category,
		Description:            input.Description,
		Urgency:                input.Urgency,
		Status:                 models.TicketStatusOpen,
		CustomerName:           input.CustomerName,
		CustomerPhone:          input.CustomerPhone,
		CustomerEmail:          input.CustomerEmail,
		CustomerAlternatePhone: input.CustomerAlternatePhone,
		Screenshot:             input.Screenshot,
		EmployeeID:             input.EmployeeID,
	}

	if err := s.ticketRepo.Create(ticket); err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	metrics.TicketsCreated.WithLabelValues(string(ticket.Category), string(ticket.Urgency)).Inc()
	return ticket, nil
}

// GetTicket loads a ticket with its creator and assignee.
func (s *TicketService) GetTicket(id uint64) (*models.Ticket, error) {
	ticket, err := s.ticketRepo.FindByID(id, "Employee", "AssignedTo")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}
	return ticket, nil
}

// CanView reports whether viewer may open the ticket: its creator or any administrator.
func (s *TicketService) CanView(viewer *models.User, ticket *models.Ticket) bool {
	if viewer == nil || ticket == nil {
		return false
	}
	return auth.IsAdmin(viewer) || ticket.EmployeeID == viewer.ID
}

// GetTicketForViewer combines GetTicket and CanView.
func (s *TicketService) GetTicketForViewer(id uint64, viewer *models.User) (*models.Ticket, error) {
	ticket, err := s.GetTicket(id)
	if err != nil {
		return nil, err
	}
	if !s.CanView(viewer, ticket) {
		return nil, ErrTicketAccessDenied
	}
	return ticket, nil
}

// AddComment appends a manual comment; ticket fields are untouched.
func (s *TicketService) AddComment(ticketID, userID uint64, text string) (*models.TicketComment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrCommentRequired
	}

	comment := &models.TicketComment{
		TicketID: ticketID,
		UserID:   userID,
		Comment:  text,
	}
	if err := s.ticketRepo.AddComment(comment); err != nil {
		return nil, fmt.Errorf("failed to add comment: %w", err)
	}
	return comment, nil
}

func (s *TicketService) ListComments(ticketID uint64) ([]models.TicketComment, error) {
	comments, err := s.ticketRepo.ListComments(ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// UpdateTicket applies an administrator's triage form and records what
// changed as comments authored by the administrator, in one transaction.
func (s *TicketService) UpdateTicket(input UpdateTicketInput) (*models.Ticket, []models.TicketComment, error) {
	ticket, err := s.GetTicket(input.TicketID)
	if err != nil {
		return nil, nil, err
	}

	var assignee *models.User
	if input.AssignedToID != nil {
		assignee, err = s.userRepo.FindByID(*input.AssignedToID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, ErrAssigneeNotFound
			}
			return nil, nil, fmt.Errorf("failed to find assignee: %w", err)
		}
	}

	comments := BuildAuditComments(ticket, input.Status, assignee, input.ActorID)
	statusChanged := ticket.Status != input.Status

	ticket.Status = input.Status
	ticket.Urgency = input.Urgency
	ticket.ResolutionNotes = input.ResolutionNotes
	ticket.AssignedToID = input.AssignedToID
	ticket.AssignedTo = assignee

	if err := s.ticketRepo.UpdateWithAudit(ticket, comments); err != nil {
		return nil, nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	if statusChanged {
		metrics.TicketAuditComments.WithLabelValues("status").Inc()
	}
	if len(comments) == 2 || (len(comments) == 1 && !statusChanged) {
		metrics.TicketAuditComments.WithLabelValues("assignment").Inc()
	}

	return ticket, comments, nil
}

// BuildAuditComments compares the stored ticket with the submitted status and
// assignee. It yields at most two comments: status first, then assignment.
// ticket.AssignedTo must be loaded when the ticket has an assignee.
func BuildAuditComments(ticket *models.Ticket, newStatus models.TicketStatus, newAssignee *models.User, actorID uint64) []models.TicketComment {
	var comments []models.TicketComment

	if ticket.Status != newStatus {
		comments = append(comments, models.TicketComment{
			TicketID: ticket.ID,
			UserID:   actorID,
			Comment:  fmt.Sprintf("Status changed from %s to %s", ticket.Status.Display(), newStatus.Display()),
		})
	}

	if assigneeID(ticket.AssignedTo, ticket.AssignedToID) != assigneeID(newAssignee, nil) {
		comments = append(comments, models.TicketComment{
			TicketID: ticket.ID,
			UserID:   actorID,
			Comment:  fmt.Sprintf("Ticket reassigned from %s to %s", assigneeName(ticket.AssignedTo), assigneeName(newAssignee)),
		})
	}

	return comments
}

func assigneeID(user *models.User, fallback *uint64) uint64 {
	if user != nil {
		return user.ID
	}
	if fallback != nil {
		return *fallback
	}
	return 0
}

func assigneeName(user *models.User) string {
	if user == nil {
		return unassignedName
	}
	return user.DisplayName()
}

// ListEmployeeTickets pages through the employee's own tickets.
func (s *TicketService) ListEmployeeTickets(employeeID uint64, search string, page int) ([]models.Ticket, utils.Page, error) {
	tickets, p, err := s.ticketRepo.List(repository.TicketFilter{
		EmployeeID: &employeeID,
		Search:     search,
	}, page, constants.EmployeeTicketPageSize)
	if err != nil {
		return nil, utils.Page{}, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, p, nil
}

// ListAdminTickets pages through all tickets for the admin dashboard.
func (s *TicketService) ListAdminTickets(filter AdminTicketFilter, page int) ([]models.Ticket, utils.Page, error) {
	tickets, p, err := s.ticketRepo.List(repository.TicketFilter{
		Status:        filter.Status,
		Category:      filter.Category,
		Urgency:       filter.Urgency,
		Search:        filter.Search,
		SearchCreator: true,
	}, page, constants.AdminTicketPageSize)
	if err != nil {
		return nil, utils.Page{}, fmt.Errorf("failed to list tickets: %w", err)
	}
	return tickets, p, nil
}

func (s *TicketService) RecentTickets(employeeID uint64) ([]models.Ticket, error) {
	tickets, err := s.ticketRepo.Recent(employeeID, constants.RecentTicketLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent tickets: %w", err)
	}
	return tickets, nil
}
