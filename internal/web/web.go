// Package web holds the embedded HTML templates and static files and renders
// pages for gin.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/yukikurage/it-helpdesk/internal/auth"
	"github.com/yukikurage/it-helpdesk/internal/constants"
	"github.com/yukikurage/it-helpdesk/internal/forms"
	"github.com/yukikurage/it-helpdesk/internal/models"
	"github.com/yukikurage/it-helpdesk/internal/utils"
	"gorm.io/datatypes"
)

//go:embed templates static
var files embed.FS

const layoutName = "layout"

// Renderer keeps one template set per page: the layout and partials plus
// the page's own blocks. It implements gin's render.HTMLRender.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses every embedded page.
func NewRenderer() (*Renderer, error) {
	base, err := template.New(layoutName).Funcs(Funcs()).ParseFS(files,
		"templates/layout.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	pages, err := fs.Glob(files, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		tmpl, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := tmpl.ParseFS(files, page); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", page, err)
		}
		r.templates[path.Base(page)] = tmpl
	}
	return r, nil
}

// Instance implements render.HTMLRender.
func (r *Renderer) Instance(name string, data any) render.Render {
	return render.HTML{
		Template: r.templates[name],
		Name:     layoutName,
		Data:     data,
	}
}

// Has reports whether a page template exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// StaticFS serves the embedded static directory.
func StaticFS() http.FileSystem {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		return http.FS(files)
	}
	return http.FS(sub)
}

// Render writes a page with the data every page expects: the current user,
// the admin flag, pending flash messages and a (possibly empty) error map.
func Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	var user *models.User
	if v, ok := c.Get(constants.ContextKeyCurrentUser); ok {
		user, _ = v.(*models.User)
	}
	data["CurrentUser"] = user
	data["IsAdmin"] = auth.IsAdmin(user)
	data["Flashes"] = PopFlashes(c)
	if _, ok := data["Errors"]; !ok {
		data["Errors"] = forms.Errors{}
	}

	c.HTML(status, name, data)
}

// Pager links between pages of a listing while keeping the other query
// parameters (filters, search).
type Pager struct {
	Page  utils.Page
	Query url.Values
}

func NewPager(page utils.Page, query url.Values) Pager {
	kept := url.Values{}
	for k, v := range query {
		if k != "page" {
			kept[k] = v
		}
	}
	return Pager{Page: page, Query: kept}
}

func (p Pager) URL(number int) string {
	q := url.Values{}
	for k, v := range p.Query {
		q[k] = v
	}
	q.Set("page", strconv.Itoa(number))
	return "?" + q.Encode()
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006")
		},
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("Jan 2, 2006 15:04")
		},
		"dateValue": func(d datatypes.Date) string {
			return time.Time(d).Format(forms.DateLayout)
		},
		"warrantyDays": func(a models.Asset) int {
			return a.DaysUntilWarrantyExpiry(time.Now())
		},
		"warrantyExpired": func(a models.Asset) bool {
			return a.IsWarrantyExpired(time.Now())
		},
		"idValue": func(id *uint64) string {
			if id == nil {
				return ""
			}
			return strconv.FormatUint(*id, 10)
		},
		"uid": func(id uint64) string {
			return strconv.FormatUint(id, 10)
		},
		"linebreaks": func(s string) template.HTML {
			escaped := template.HTMLEscapeString(s)
			return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
		},
		"mediaURL": func(p string) string {
			return "/media/" + strings.TrimPrefix(p, "/")
		},
		"categoryChoices": func() []models.Choice { return models.TicketCategoryChoices },
		"urgencyChoices":  func() []models.Choice { return models.TicketUrgencyChoices },
		"statusChoices":   func() []models.Choice { return models.TicketStatusChoices },
		"assetStatusChoices": func() []models.Choice {
			return models.AssetStatusChoices
		},
	}
}
