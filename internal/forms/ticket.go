package forms

import (
	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/services"
)

// TicketForm is what an employee submits to raise a ticket. Status is not
// settable here; the screenshot is read separately from the multipart body.
type TicketForm struct {
	Title                  string `form:"title" binding:"required,max=200"`
	Category               string `form:"category" binding:"required,oneof=hardware software network other"`
	Description            string `form:"description" binding:"required"`
	Urgency                string `form:"urgency" binding:"required,oneof=low medium high"`
	CustomerName           string `form:"customer_name" binding:"required,max=200"`
	CustomerPhone          string `form:"customer_phone" binding:"required,max=20"`
	CustomerEmail          string `form:"customer_email" binding:"required,email,max=254"`
	CustomerAlternatePhone string `form:"customer_alternate_phone" binding:"max=20"`
}

func NewTicketForm() *TicketForm {
	return &TicketForm{
		Category: string(models.CategoryHardware),
		Urgency:  string(models.UrgencyMedium),
	}
}

func (f *TicketForm) ToInput(employeeID uint64, screenshot string) services.CreateTicketInput {
	return services.CreateTicketInput{
		EmployeeID:             employeeID,
		Title:                  f.Title,
		Category:               models.TicketCategory(f.Category),
		Description:            f.Description,
		Urgency:                models.TicketUrgency(f.Urgency),
		CustomerName:           f.CustomerName,
		CustomerPhone:          f.CustomerPhone,
		CustomerEmail:          f.CustomerEmail,
		CustomerAlternatePhone: f.CustomerAlternatePhone,
		Screenshot:             screenshot,
	}
}

// TicketUpdateForm is the administrator triage form.
type TicketUpdateForm struct {
	Status          string `form:"status" binding:"required,oneof=open in_progress resolved closed"`
	Urgency         string `form:"urgency" binding:"required,oneof=low medium high"`
	ResolutionNotes string `form:"resolution_notes"`
	AssignedTo      string `form:"assigned_to" binding:"omitempty,pk"`
}

// NewTicketUpdateForm prefills the form from the stored ticket.
func NewTicketUpdateForm(ticket *models.Ticket) *TicketUpdateForm {
	return &TicketUpdateForm{
		Status:          string(ticket.Status),
		Urgency:         string(ticket.Urgency),
		ResolutionNotes: ticket.ResolutionNotes,
		AssignedTo:      formatID(ticket.AssignedToID),
	}
}

func (f *TicketUpdateForm) ToInput(ticketID, actorID uint64) services.UpdateTicketInput {
	return services.UpdateTicketInput{
		TicketID:        ticketID,
		ActorID:         actorID,
		Status:          models.TicketStatus(f.Status),
		Urgency:         models.TicketUrgency(f.Urgency),
		ResolutionNotes: f.ResolutionNotes,
		AssignedToID:    optionalID(f.AssignedTo),
	}
}

type TicketCommentForm struct {
	Comment string `form:"comment" binding:"required"`
}
