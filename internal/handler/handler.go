package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/KOFI-GYIMAH/github-activity/internal/activity"
	"github.com/KOFI-GYIMAH/github-activity/internal/service"
	"github.com/KOFI-GYIMAH/github-activity/pkg/errors"
	"github.com/KOFI-GYIMAH/github-activity/pkg/logger"
	"github.com/gorilla/mux"
)

// * Searches and selections outlive the request that started them, bounded by actionTimeout
const actionTimeout = 2 * time.Minute

type DashboardHandler struct {
	controller *service.Controller
	hub        *Hub
}

func NewDashboardHandler(controller *service.Controller, hub *Hub) *DashboardHandler {
	return &DashboardHandler{
		controller: controller,
		hub:        hub,
	}
}

func (h *DashboardHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/state", h.getState).Methods("GET")
	r.HandleFunc("/search", h.search).Methods("POST")
	r.HandleFunc("/selection", h.selectRepository).Methods("POST")
	r.HandleFunc("/views/{granularity}", h.getView).Methods("GET")
	r.HandleFunc("/summary", h.getSummary).Methods("GET")
	if h.hub != nil {
		r.HandleFunc("/ws", h.hub.ServeWS).Methods("GET")
	}
}

func writeSuccess(w http.ResponseWriter, data interface{}, message ...string) {
	resp := APIResponse{
		Status: "success",
		Data:   data,
	}
	if len(message) > 0 {
		resp.Message = message[0]
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func detached(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(r.Context()), actionTimeout)
}

func invalidBody(err error) error {
	return errors.New(
		errors.RefValidation,
		"Invalid request",
		"The request body is not valid JSON",
		err,
		errors.LevelError,
	)
}

// getState godoc
// @Summary Get dashboard state
// @Description Current status, repositories, selection and commit activity
// @Tags Dashboard
// @Produce json
// @Success 200 {object} models.ViewState
// @Router /state [get]
func (h *DashboardHandler) getState(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, h.controller.State())
}

// search godoc
// @Summary Search a GitHub user
// @Description Loads the user's repositories, selects the first one and loads its commit activity
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body SearchRequest true "GitHub username"
// @Success 200 {object} models.ViewState
// @Failure 400 {object} errors.HTTPErrorResponse "Empty username"
// @Failure 404 {object} errors.HTTPErrorResponse "User not found"
// @Failure 429 {object} errors.HTTPErrorResponse "Rate limited"
// @Failure 502 {object} errors.HTTPErrorResponse "GitHub API error"
// @Router /search [post]
func (h *DashboardHandler) search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteHTTPError(w, invalidBody(err))
		return
	}

	ctx, cancel := detached(r)
	defer cancel()

	if err := h.controller.Search(ctx, req.Username); err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	state := h.controller.State()
	logger.Info("Searched %s, %d repositories", state.Username, len(state.Repositories))
	writeSuccess(w, state, "Successfully loaded repositories")
}

// selectRepository godoc
// @Summary Select a repository
// @Description Loads commit activity of another repository of the searched user
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param request body SelectRequest true "Repository name"
// @Success 200 {object} models.ViewState
// @Failure 400 {object} errors.HTTPErrorResponse "Unknown repository"
// @Failure 502 {object} errors.HTTPErrorResponse "GitHub API error"
// @Router /selection [post]
func (h *DashboardHandler) selectRepository(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteHTTPError(w, invalidBody(err))
		return
	}

	ctx, cancel := detached(r)
	defer cancel()

	if err := h.controller.Select(ctx, req.Name); err != nil {
		errors.WriteHTTPError(w, err)
		return
	}

	writeSuccess(w, h.controller.State(), "Successfully loaded commit activity")
}

// getView godoc
// @Summary Get a chart
// @Description Weekly or monthly bars, or the yearly heat map, of the selected repository
// @Tags Views
// @Produce json
// @Param granularity path string true "weekly, monthly or yearly"
// @Success 200 {object} activity.View
// @Failure 404 {object} errors.HTTPErrorResponse "Unknown granularity"
// @Router /views/{granularity} [get]
func (h *DashboardHandler) getView(w http.ResponseWriter, r *http.Request) {
	granularity := mux.Vars(r)["granularity"]
	series := h.controller.State().Activity

	switch granularity {
	case "weekly":
		writeSuccess(w, activity.WeeklyView(series))
	case "monthly":
		writeSuccess(w, activity.MonthlyView(series))
	case "yearly":
		writeSuccess(w, activity.YearlyView(series))
	default:
		errors.WriteHTTPError(w, errors.New(
			errors.RefValidation,
			"Unknown view",
			fmt.Sprintf("%q is not one of weekly, monthly, yearly", granularity),
			nil,
			errors.LevelError,
		).WithStatus(http.StatusNotFound))
	}
}

// getSummary godoc
// @Summary Get activity summary
// @Description Totals and busiest week/weekday of the selected repository
// @Tags Views
// @Produce json
// @Success 200 {object} activity.Summary
// @Router /summary [get]
func (h *DashboardHandler) getSummary(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, activity.Summarize(h.controller.State().Activity))
}
