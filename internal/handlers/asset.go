package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/it-helpdesk/internal/constants"
	apierrors "github.com/yukikurage/it-helpdesk/internal/errors"
	"github.com/yukikurage/it-helpdesk/internal/forms"
	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/services"
	"github.com/yukikurage/it-helpdesk/internal/utils"
	"github.com/yukikurage/it-helpdesk/internal/web"
)

type AssetHandler struct {
	assetService  *services.AssetService
	authService   *services.AuthService
	reportService *services.ReportService
}

func NewAssetHandler(assetService *services.AssetService, authService *services.AuthService, reportService *services.ReportService) *AssetHandler {
	return &AssetHandler{
		assetService:  assetService,
		authService:   authService,
		reportService: reportService,
	}
}

// List shows the inventory with a status filter and search.
func (h *AssetHandler) List(c *gin.Context) {
	status := c.Query("status")
	search := strings.TrimSpace(c.Query("search"))

	assets, page, err := h.assetService.List(models.AssetStatus(status), search, utils.GetPageNumber(c))
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}
	stats, err := h.reportService.AssetStats(page.Total)
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}

	web.Render(c, http.StatusOK, "asset_list.html", gin.H{
		"Assets": assets,
		"Pager":  web.NewPager(page, c.Request.URL.Query()),
		"Status": status,
		"Search": search,
		"Stats":  stats,
	})
}

func (h *AssetHandler) AddPage(c *gin.Context) {
	h.renderForm(c, "asset_add.html", gin.H{"Form": forms.NewAssetForm()}, nil)
}

// Add registers a new asset.
func (h *AssetHandler) Add(c *gin.Context) {
	form := &forms.AssetForm{}
	if errs := forms.Bind(c, form); errs != nil {
		h.renderForm(c, "asset_add.html", gin.H{"Form": form}, errs)
		return
	}

	if _, err := h.assetService.Create(form.ToInput()); err != nil {
		if errs := assetFormErrors(err); errs != nil {
			h.renderForm(c, "asset_add.html", gin.H{"Form": form}, errs)
			return
		}
		apierrors.InternalError(c, err)
		return
	}

	web.AddFlash(c, web.FlashSuccess, "Asset added successfully!")
	c.Redirect(http.StatusFound, constants.AssetListPath)
}

// EditPage shows the assign-only form.
func (h *AssetHandler) EditPage(c *gin.Context) {
	asset, ok := h.asset(c)
	if !ok {
		return
	}
	h.renderForm(c, "asset_edit.html", gin.H{
		"Asset": asset,
		"Form":  forms.NewAssetAssignForm(asset),
	}, nil)
}

// Edit changes the assignee and status of an asset.
func (h *AssetHandler) Edit(c *gin.Context) {
	asset, ok := h.asset(c)
	if !ok {
		return
	}

	form := &forms.AssetAssignForm{}
	if errs := forms.Bind(c, form); errs != nil {
		h.renderForm(c, "asset_edit.html", gin.H{"Asset": asset, "Form": form}, errs)
		return
	}

	if _, err := h.assetService.Assign(form.ToInput(asset.ID)); err != nil {
		if errs := assetFormErrors(err); errs != nil {
			h.renderForm(c, "asset_edit.html", gin.H{"Asset": asset, "Form": form}, errs)
			return
		}
		if errors.Is(err, services.ErrAssetNotFound) {
			apierrors.NotFound(c)
			return
		}
		apierrors.InternalError(c, err)
		return
	}

	web.AddFlash(c, web.FlashSuccess, "Asset updated successfully!")
	c.Redirect(http.StatusFound, constants.AssetListPath)
}

func (h *AssetHandler) asset(c *gin.Context) (*models.Asset, bool) {
	id, ok := pathID(c)
	if !ok {
		return nil, false
	}
	asset, err := h.assetService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			apierrors.NotFound(c)
		} else {
			apierrors.InternalError(c, err)
		}
		return nil, false
	}
	return asset, true
}

func (h *AssetHandler) renderForm(c *gin.Context, page string, data gin.H, errs forms.Errors) {
	users, err := h.authService.ListAssignableUsers()
	if err != nil {
		apierrors.InternalError(c, err)
		return
	}
	data["Users"] = users
	if errs != nil {
		data["Errors"] = errs
	}
	web.Render(c, http.StatusOK, page, data)
}

// assetFormErrors maps service rejections onto form fields; nil means the
// error is not a validation problem.
func assetFormErrors(err error) forms.Errors {
	errs := forms.Errors{}
	switch {
	case errors.Is(err, services.ErrDuplicateSerial):
		errs.Add("serial_number", forms.MsgDuplicateSerial)
	case errors.Is(err, services.ErrAssigneeNotFound):
		errs.Add("assigned_to", forms.MsgInvalidChoice)
	default:
		return nil
	}
	return errs
}
