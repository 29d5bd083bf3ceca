package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"tripfront/internal/dto"
	"tripfront/internal/models"
	"tripfront/internal/service"
	"tripfront/internal/store"
	"tripfront/internal/utils"
	"tripfront/internal/web"
)

// TripsHandler manages trip-related endpoints
type TripsHandler struct {
	trips       *service.TripService
	commitments *service.CommitmentService
	renderer    *web.Renderer
	flash       *utils.FlashStore
	now         func() time.Time
}

// NewTripsHandler creates a new TripsHandler
func NewTripsHandler(trips *service.TripService, commitments *service.CommitmentService, renderer *web.Renderer, flash *utils.FlashStore) *TripsHandler {
	return &TripsHandler{trips: trips, commitments: commitments, renderer: renderer, flash: flash, now: time.Now}
}

// tripPageData maps a trip and its summary onto the detail page view model.
func tripPageData(trip *models.Trip, summary *service.TripSummary, flashes []string, now time.Time) dto.TripPageData {
	percent := 0
	if trip.GoalAmount > 0 {
		percent = int(summary.TotalCommitted / trip.GoalAmount * 100)
		if percent > 100 {
			percent = 100
		}
		if percent < 0 {
			percent = 0
		}
	}

	views := make([]dto.CommitmentView, 0, len(summary.Commitments))
	for _, c := range summary.Commitments {
		views = append(views, dto.CommitmentView{
			Name:        c.Name,
			Amount:      c.Amount,
			CommittedAt: utils.FormatDate(c.CreatedAt),
		})
	}

	return dto.TripPageData{
		Name:            trip.Name,
		Code:            trip.Code,
		GoalAmount:      trip.GoalAmount,
		MaxParticipants: trip.MaxParticipants,
		Details:         trip.Details,
		Deadline:        utils.FormatDate(trip.Deadline),
		CreatedAt:       utils.FormatTimestamp(trip.CreatedAt),
		DeadlinePassed:  now.After(trip.Deadline.AddDate(0, 0, 1)),
		TotalCommitted:  summary.TotalCommitted,
		GoalPercent:     percent,
		NumParticipants: summary.NumParticipants,
		Commitments:     views,
		Flashes:         flashes,
	}
}

// Create dispatches by HTTP method for /create
func (h *TripsHandler) Create(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.renderer.Render(w, http.StatusOK, "create_trip.html", dto.PageData{
			Flashes: h.flash.Pop(w, r),
		})
	case http.MethodPost:
		h.createTrip(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TripsHandler) createTrip(w http.ResponseWriter, r *http.Request) {
	actorID, ok := utils.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	details := strings.TrimSpace(r.FormValue("details"))
	if name == "" || details == "" {
		http.Error(w, "name and details are required", http.StatusBadRequest)
		return
	}

	goalAmount, err := strconv.ParseFloat(r.FormValue("goal_amount"), 64)
	if err != nil || goalAmount <= 0 {
		http.Error(w, "goal_amount must be a positive number", http.StatusBadRequest)
		return
	}
	maxParticipants, err := strconv.Atoi(r.FormValue("max_participants"))
	if err != nil || maxParticipants <= 0 {
		http.Error(w, "max_participants must be a positive integer", http.StatusBadRequest)
		return
	}
	deadline, err := utils.ParseDate(r.FormValue("deadline"))
	if err != nil {
		http.Error(w, "deadline must be a date (YYYY-MM-DD)", http.StatusBadRequest)
		return
	}

	trip, err := h.trips.Create(r.Context(), service.CreateTripInput{
		Name:            name,
		GoalAmount:      goalAmount,
		MaxParticipants: maxParticipants,
		Details:         details,
		Deadline:        deadline,
	}, actorID)
	if err != nil {
		log.Printf("create trip: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/trip/"+trip.Code, http.StatusSeeOther)
}

// Join dispatches by HTTP method for /join
func (h *TripsHandler) Join(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.renderer.Render(w, http.StatusOK, "join.html", dto.PageData{
			Flashes: h.flash.Pop(w, r),
		})
	case http.MethodPost:
		h.joinTrip(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *TripsHandler) joinTrip(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	code := strings.TrimSpace(r.FormValue("code"))
	_, err := h.trips.FindByCode(r.Context(), code)
	switch {
	case err == nil:
		http.Redirect(w, r, "/trip/"+code, http.StatusSeeOther)
	case errors.Is(err, store.ErrNotFound):
		// Soft rejection: redisplay the form with a message, HTTP 200.
		h.renderer.Render(w, http.StatusOK, "join.html", dto.PageData{
			Flashes: []string{"Invalid trip code"},
		})
	default:
		log.Printf("join trip: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// Detail handles GET /trip/{code}
func (h *TripsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	code := strings.TrimPrefix(r.URL.Path, "/trip/")
	trip, err := h.trips.FindByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Printf("trip detail: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	summary, err := h.commitments.Summarize(r.Context(), trip.ID)
	if err != nil {
		log.Printf("trip summary: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.renderer.Render(w, http.StatusOK, "view_trip.html", tripPageData(trip, summary, h.flash.Pop(w, r), h.now()))
}

// Commit handles POST /commit/{code}
func (h *TripsHandler) Commit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	actorID, ok := utils.ActorFromContext(r.Context())
	if !ok {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	code := strings.TrimPrefix(r.URL.Path, "/commit/")
	trip, err := h.trips.FindByCode(r.Context(), code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Printf("commit lookup: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}
	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if err != nil {
		http.Error(w, "amount must be a number", http.StatusBadRequest)
		return
	}

	_, outcome, err := h.commitments.Commit(r.Context(), trip, name, amount, actorID)
	if err != nil {
		log.Printf("commit: %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	switch outcome {
	case service.OutcomeCreated:
		h.flash.Add(w, r, fmt.Sprintf("Added new contribution from %s!", name))
	case service.OutcomeUpdated:
		h.flash.Add(w, r, fmt.Sprintf("Updated contribution for %s!", name))
	case service.OutcomeTripFull:
		h.flash.Add(w, r, "Trip is already full")
	}

	http.Redirect(w, r, "/trip/"+trip.Code, http.StatusSeeOther)
}
