package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/familyhub/family-hub/internal/checklist"
	"github.com/familyhub/family-hub/internal/domain"
	"github.com/gorilla/mux"
)

const lunchFetchError = "Failed to fetch lunch menu"

type loginRequest struct {
	PIN string `json:"pin"`
}

type loginResponse struct {
	Token      string `json:"token"`
	FamilyName string `json:"familyName"`
}

type lunchResponse struct {
	FamilyMenuSessions domain.RawMenuFeed `json:"FamilyMenuSessions"`
}

type menuResponse struct {
	Menu      domain.WeekMenu `json:"menu"`
	FetchedAt *time.Time      `json:"fetchedAt,omitempty"`
}

type weatherResponse struct {
	City      string    `json:"city"`
	Temp      int       `json:"temp"`
	Min       int       `json:"min"`
	Max       int       `json:"max"`
	Condition string    `json:"condition"`
	Clothing  string    `json:"clothing"`
	FetchedAt time.Time `json:"fetchedAt"`
}

type addItemRequest struct {
	Text       string `json:"text"`
	AssignedTo string `json:"assignedTo"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.deps.State.CheckReadiness(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	token, err := s.deps.Auth.Login(req.PIN)
	if err != nil {
		s.logger.Warn("login rejected", "remote", r.RemoteAddr)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid PIN"})
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{Token: token, FamilyName: s.deps.Auth.FamilyName()})
}

// handleLunch resolves the tenant and fetches the live week feed on every
// request. Failures collapse to a single opaque message; the detail goes to
// the log.
func (s *Server) handleLunch(w http.ResponseWriter, r *http.Request) {
	feed, err := s.deps.Menu.GetWeeklyMenu(r.Context(), s.deps.Identifier)
	if err != nil {
		s.logger.Error("lunch menu fetch failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": lunchFetchError})
		return
	}
	writeJSON(w, http.StatusOK, lunchResponse{FamilyMenuSessions: feed})
}

func (s *Server) handleMenu(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.deps.State.WeekMenu()
	if !ok {
		writeJSON(w, http.StatusOK, menuResponse{Menu: domain.WeekMenu{}})
		return
	}
	writeJSON(w, http.StatusOK, menuResponse{Menu: snap.Menu, FetchedAt: &snap.FetchedAt})
}

func (s *Server) handleWeather(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.deps.State.Weather()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "weather unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, weatherResponse{
		City:      s.deps.CityName,
		Temp:      snap.Report.Temp,
		Min:       snap.Report.Min,
		Max:       snap.Report.Max,
		Condition: snap.Report.Condition,
		Clothing:  snap.Report.Clothing,
		FetchedAt: snap.FetchedAt,
	})
}

func (s *Server) handleSchedule(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"kids": s.deps.Kids})
}

// handleRefresh kicks off a fetch cycle without waiting for it. The
// sequence guard in the refresher makes concurrent triggers safe.
func (s *Server) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()
		s.deps.Trigger.Refresh(ctx)
	}()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh started"})
}

func (s *Server) handleChecklistList(store *checklist.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"items": store.List()})
	}
}

func (s *Server) handleChecklistAdd(store *checklist.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		item, err := store.Add(req.Text, req.AssignedTo)
		if err != nil {
			if errors.Is(err, checklist.ErrEmptyText) {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text is required"})
				return
			}
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not add item"})
			return
		}
		writeJSON(w, http.StatusCreated, item)
	}
}

func (s *Server) handleChecklistToggle(store *checklist.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		item, ok := store.Toggle(id)
		if !ok {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func (s *Server) handleChecklistDelete(store *checklist.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := mux.Vars(r)["id"]
		if !store.Delete(id) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "item not found"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
