package handler

import (
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/KOFI-GYIMAH/github-activity/internal/models"
	"github.com/KOFI-GYIMAH/github-activity/internal/service"
	"github.com/KOFI-GYIMAH/github-activity/pkg/errors"
	"github.com/KOFI-GYIMAH/github-activity/pkg/logger"
	"github.com/gorilla/mux"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("index.html").Funcs(template.FuncMap{
	"heatLevel": heatLevel,
}).ParseFS(templateFS, "templates/index.html"))

type pageData struct {
	State  models.ViewState
	Views  Views
	View   string
	Notice string
}

// * PageHandler serves the single-page dashboard and its form posts
type PageHandler struct {
	controller *service.Controller
}

func NewPageHandler(controller *service.Controller) *PageHandler {
	return &PageHandler{controller: controller}
}

func (h *PageHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.index).Methods("GET")
	r.HandleFunc("/search", h.search).Methods("POST")
	r.HandleFunc("/select", h.selectRepository).Methods("POST")
}

func (h *PageHandler) index(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, r.URL.Query().Get("view"), "")
}

func (h *PageHandler) search(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := detached(r)
	defer cancel()

	view := r.FormValue("view")
	err := h.controller.Search(ctx, r.FormValue("username"))
	if errors.HasReference(err, errors.RefValidation) {
		h.render(w, http.StatusBadRequest, view, validationNotice(err))
		return
	}

	// other failures are part of the state and shown on the page
	redirectHome(w, r, view)
}

func (h *PageHandler) selectRepository(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := detached(r)
	defer cancel()

	view := r.FormValue("view")
	err := h.controller.Select(ctx, r.FormValue("name"))
	if errors.HasReference(err, errors.RefValidation) {
		h.render(w, http.StatusBadRequest, view, validationNotice(err))
		return
	}

	redirectHome(w, r, view)
}

func (h *PageHandler) render(w http.ResponseWriter, status int, view, notice string) {
	state := h.controller.State()

	switch view {
	case "weekly", "monthly", "yearly":
	default:
		view = "weekly"
	}

	data := pageData{
		State:  state,
		Views:  buildViews(state),
		View:   view,
		Notice: notice,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, data); err != nil {
		logger.Error("Failed to render page: %v", err)
	}
}

func validationNotice(err error) string {
	var appErr *errors.ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Title
	}
	return err.Error()
}

func redirectHome(w http.ResponseWriter, r *http.Request, view string) {
	target := "/"
	if view != "" {
		target += "?view=" + url.QueryEscape(view)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// * heatLevel buckets an intensity into one of five heat-map shades
func heatLevel(intensity float64) int {
	switch {
	case intensity <= 0:
		return 0
	case intensity < 0.25:
		return 1
	case intensity < 0.5:
		return 2
	case intensity < 0.75:
		return 3
	default:
		return 4
	}
}
