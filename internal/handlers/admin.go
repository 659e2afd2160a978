package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/it-helpdesk/internal/constants"
	apierrors "github.com/yukikurage/it-helpdesk/internal/errors"
	"github.com/yukikurage/it-helpdesk/internal/forms"
	"github.com/yukikurage/it-helpdesk/internal/middleware"
	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/services"
	"github.com/yukikurage/it-helpdesk/internal/utils"
	"github.com/yukikurage/it-helpdesk/internal/web"
	"github.com/yukikurage/it-helpdesk/pkg/logger"
)

// AdminTicketHandler serves ticket triage for IT administrators.
type AdminTicketHandler struct {
	ticketService *services.TicketService
	authService   *services.AuthService
	reportService *services.ReportService
}

func NewAdminTicketHandler(ticketService *services.TicketService, authService *services.AuthService, reportService *services.ReportService) *AdminTicketHandler {
	return &AdminTicketHandler{
		ticketService: ticketService,
		authService:   authService,
		reportService: reportService,
	}
}

// Dashboard lists every ticket with filters, search and statistics.
func (h *AdminTicketHandler) Dashboard(c *gin.Context) {
	filter := services.AdminTicketFilter{
		Status:   models.TicketStatus(c.Query("status")),
		Category: models.TicketCategory(c.Query("category")),
		Urgency:  models.TicketUrgency(c.Query("urgency")),
		Search:   strings.TrimSpace(c.Query("search")),
	}

	tickets, page, err := h.ticketService.ListAdminTickets(filter, utils.GetPageNumber(c))
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}
	stats, err := h.reportService.AdminStats()
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}

	web.Render(c, http.StatusOK, "admin_dashboard.html", gin.H{
		"Tickets": tickets,
		"Pager":   web.NewPager(page, c.Request.URL.Query()),
		"Filter": gin.H{
			"Status":   string(filter.Status),
			"Category": string(filter.Category),
			"Urgency":  string(filter.Urgency),
			"Search":   filter.Search,
		},
		"Stats": stats,
	})
}

// EditPage shows the triage form prefilled from the ticket.
func (h *AdminTicketHandler) EditPage(c *gin.Context) {
	ticket, ok := h.ticket(c)
	if !ok {
		return
	}
	h.renderEdit(c, ticket, forms.NewTicketUpdateForm(ticket), &forms.TicketCommentForm{}, nil)
}

// Update either adds a manual comment (when the submit carries add_comment)
// or applies the triage form with audit comments.
func (h *AdminTicketHandler) Update(c *gin.Context) {
	ticket, ok := h.ticket(c)
	if !ok {
		return
	}
	user := middleware.CurrentUser(c)

	if _, addComment := c.GetPostForm("add_comment"); addComment {
		form := &forms.TicketCommentForm{}
		if errs := forms.Bind(c, form); errs != nil {
			h.renderEdit(c, ticket, forms.NewTicketUpdateForm(ticket), form, errs)
			return
		}
		if _, err := h.ticketService.AddComment(ticket.ID, user.ID, form.Comment); err != nil {
			if errors.Is(err, services.ErrCommentRequired) {
				errs := forms.Errors{}
				errs.Add("comment", forms.MsgRequired)
				h.renderEdit(c, ticket, forms.NewTicketUpdateForm(ticket), form, errs)
				return
			}
			apierrors.InternalError(c, err)
			return
		}
		web.AddFlash(c, web.FlashSuccess, "Comment added successfully!")
		c.Redirect(http.StatusFound, c.Request.URL.Path)
		return
	}

	form := &forms.TicketUpdateForm{}
	if errs := forms.Bind(c, form); errs != nil {
		h.renderEdit(c, ticket, form, &forms.TicketCommentForm{}, errs)
		return
	}

	_, comments, err := h.ticketService.UpdateTicket(form.ToInput(ticket.ID, user.ID))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAssigneeNotFound):
			errs := forms.Errors{}
			errs.Add("assigned_to", forms.MsgInvalidChoice)
			h.renderEdit(c, ticket, form, &forms.TicketCommentForm{}, errs)
		case errors.Is(err, services.ErrTicketNotFound):
			apierrors.NotFound(c)
		default:
			apierrors.InternalError(c, err)
		}
		return
	}
	logger.Infof("ticket %d updated by %s (%d audit comments)", ticket.ID, user.Username, len(comments))

	web.AddFlash(c, web.FlashSuccess, "Ticket updated successfully!")
	c.Redirect(http.StatusFound, constants.AdminDashboardPath)
}

// Export downloads every ticket as CSV.
func (h *AdminTicketHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	rows, err := h.reportService.WriteTicketsCSV(&buf)
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}
	logger.Infof("exported %d tickets", rows)

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", constants.ExportFileName))
	c.Data(http.StatusOK, "text/csv", buf.Bytes())
}

func (h *AdminTicketHandler) ticket(c *gin.Context) (*models.Ticket, bool) {
	id, ok := pathID(c)
	if !ok {
		return nil, false
	}
	ticket, err := h.ticketService.GetTicket(id)
	if err != nil {
		if errors.Is(err, services.ErrTicketNotFound) {
			apierrors.NotFound(c)
		} else {
			apierrors.InternalError(c, err)
		}
		return nil, false
	}
	return ticket, true
}

func (h *AdminTicketHandler) renderEdit(c *gin.Context, ticket *models.Ticket, form *forms.TicketUpdateForm, commentForm *forms.TicketCommentForm, errs forms.Errors) {
	comments, err := h.ticketService.ListComments(ticket.ID)
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}
	users, err := h.authService.ListAssignableUsers()
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}

	data := gin.H{
		"Ticket":      ticket,
		"Comments":    comments,
		"Users":       users,
		"Form":        form,
		"CommentForm": commentForm,
	}
	if errs != nil {
		data["Errors"] = errs
	}
	web.Render(c, http.StatusOK, "admin_ticket_edit.html", data)
}
