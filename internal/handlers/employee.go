package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
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
)

// EmployeeHandler serves the pages every signed-in user has: their own
// tickets, ticket detail and profile.
type EmployeeHandler struct {
	ticketService *services.TicketService
	assetService  *services.AssetService
	reportService *services.ReportService
	mediaRoot     string
}

func NewEmployeeHandler(ticketService *services.TicketService, assetService *services.AssetService, reportService *services.ReportService, mediaRoot string) *EmployeeHandler {
	return &EmployeeHandler{
		ticketService: ticketService,
		assetService:  assetService,
		reportService: reportService,
		mediaRoot:     mediaRoot,
	}
}

// Dashboard lists the user's tickets (searchable, paginated) with their
// statistics and assigned assets.
func (h *EmployeeHandler) Dashboard(c *gin.Context) {
	user := middleware.CurrentUser(c)
	search := strings.TrimSpace(c.Query("search"))

	tickets, page, err := h.ticketService.ListEmployeeTickets(user.ID, search, utils.GetPageNumber(c))
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}
	stats, err := h.reportService.EmployeeStats(user.ID)
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}
	recent, err := h.ticketService.RecentTickets(user.ID)
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}
	assets, err := h.assetService.AssignedTo(user.ID)
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}

	web.Render(c, http.StatusOK, "employee_dashboard.html", gin.H{
		"Tickets":       tickets,
		"Pager":         web.NewPager(page, c.Request.URL.Query()),
		"Search":        search,
		"Stats":         stats,
		"RecentTickets": recent,
		"Assets":        assets,
	})
}

// NewTicketPage shows an empty ticket form.
func (h *EmployeeHandler) NewTicketPage(c *gin.Context) {
	web.Render(c, http.StatusOK, "raise_ticket.html", gin.H{
		"Form": forms.NewTicketForm(),
	})
}

// CreateTicket raises a ticket for the current user.
func (h *EmployeeHandler) CreateTicket(c *gin.Context) {
	user := middleware.CurrentUser(c)
	form := &forms.TicketForm{}

	errs := forms.Bind(c, form)
	if errs == nil {
		errs = forms.Errors{}
	}

	file, err := screenshotUpload(c)
	if err != nil {
		if !errors.Is(err, errNotAnImage) {
			apierrors.InternalError(c, err)
			return
		}
		errs.Add("screenshot", forms.MsgInvalidImage)
	}

	if errs.Any() {
		web.Render(c, http.StatusOK, "raise_ticket.html", gin.H{
			"Form":   form,
			"Errors": errs,
		})
		return
	}

	var screenshot string
	if file != nil {
		screenshot, err = saveScreenshot(c, h.mediaRoot, file)
		if err != nil {
			apierrors.InternalError(c, err)
			return
		}
	}

	if _, err := h.ticketService.CreateTicket(form.ToInput(user.ID, screenshot)); err != nil {
		apierrors.InternalError(c, err)
		return
	}

	web.AddFlash(c, web.FlashSuccess, "Ticket created successfully!")
	c.Redirect(http.StatusFound, constants.EmployeeDashboardPath)
}

// TicketDetail shows a ticket with its comments to its creator or an admin.
func (h *EmployeeHandler) TicketDetail(c *gin.Context) {
	h.renderTicketDetail(c, &forms.TicketCommentForm{}, nil)
}

// AddComment posts a manual comment from the ticket detail page.
func (h *EmployeeHandler) AddComment(c *gin.Context) {
	ticket, ok := h.viewableTicket(c)
	if !ok {
		return
	}

	form := &forms.TicketCommentForm{}
	if errs := forms.Bind(c, form); errs != nil {
		h.renderTicketDetail(c, form, errs)
		return
	}

	user := middleware.CurrentUser(c)
	if _, err := h.ticketService.AddComment(ticket.ID, user.ID, form.Comment); err != nil {
		if errors.Is(err, services.ErrCommentRequired) {
			errs := forms.Errors{}
			errs.Add("comment", forms.MsgRequired)
			h.renderTicketDetail(c, form, errs)
			return
		}
		apierrors.InternalError(c, err)
		return
	}

	web.AddFlash(c, web.FlashSuccess, "Comment added successfully!")
	c.Redirect(http.StatusFound, c.Request.URL.Path)
}

func (h *EmployeeHandler) renderTicketDetail(c *gin.Context, form *forms.TicketCommentForm, errs forms.Errors) {
	ticket, ok := h.viewableTicket(c)
	if !ok {
		return
	}
	comments, err := h.ticketService.ListComments(ticket.ID)
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}

	data := gin.H{
		"Ticket":      ticket,
		"Comments":    comments,
		"CommentForm": form,
	}
	if errs != nil {
		data["Errors"] = errs
	}
	web.Render(c, http.StatusOK, "ticket_detail.html", data)
}

func (h *EmployeeHandler) viewableTicket(c *gin.Context) (*models.Ticket, bool) {
	id, ok := pathID(c)
	if !ok {
		return nil, false
	}

	ticket, err := h.ticketService.GetTicketForViewer(id, middleware.CurrentUser(c))
	switch {
	case err == nil:
		return ticket, true
	case errors.Is(err, services.ErrTicketNotFound):
		apierrors.NotFound(c)
	case errors.Is(err, services.ErrTicketAccessDenied):
		apierrors.Forbidden(c, apierrors.MsgTicketAccess, constants.EmployeeDashboardPath)
	default:
		apierrors.InternalError(c, err)
	}
	return nil, false
}

// Profile shows the current user's account and counts.
func (h *EmployeeHandler) Profile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	stats, err := h.reportService.ProfileStats(user.ID)
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}
	web.Render(c, http.StatusOK, "user_profile.html", gin.H{
		"Stats": stats,
	})
}

// ServeMedia streams an uploaded file from the media root.
func (h *EmployeeHandler) ServeMedia(c *gin.Context) {
	rel := filepath.Clean("/" + c.Param("filepath"))
	full := filepath.Join(h.mediaRoot, rel)

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		apierrors.NotFound(c)
		return
	}
	c.File(full)
}
