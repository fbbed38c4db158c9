package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ecoledger/ecoledger/internal/app/engine"
	"github.com/ecoledger/ecoledger/internal/domain"
)

// ─── Ledger API ─────────────────────────────────────────────────────────────
//
// POST /api/ledger/record   — record a footprint-reduction event
// GET  /api/ledger/summary  — time-windowed totals
// GET  /api/ledger/history  — ledger entries, newest first
// GET  /api/streak          — consecutive-day streak
// GET  /api/achievements    — badge catalog with unlock state
// GET  /api/leaderboard     — ranked comparison view
// GET  /api/summary         — full dashboard snapshot
// GET  /api/notifications   — pending notification queue
// POST /api/notifications/{id}/shown — mark a notification displayed

// recordRequest is the body of POST /api/ledger/record.
type recordRequest struct {
	CurrentTonnes  float64  `json:"current_tonnes"`
	PreviousTonnes *float64 `json:"previous_tonnes"` // null = establish baseline
	Date           string   `json:"date"`            // optional, defaults to today
	Message        string   `json:"message"`
	Silent         bool     `json:"silent"`
}

func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	var req recordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Date == "" {
		req.Date = domain.Day(time.Now())
	}

	totals, err := s.engine.RecordReduction(r.Context(), engine.Reduction{
		CurrentTonnes:  req.CurrentTonnes,
		PreviousTonnes: req.PreviousTonnes,
		Date:           req.Date,
		Message:        req.Message,
		Silent:         req.Silent,
	})
	switch {
	case errors.Is(err, domain.ErrUnrealisticSavings):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case errors.Is(err, domain.ErrInvalidDate):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"totals":  totals,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"totals": s.engine.Summary(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	history := s.engine.History()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"history": history,
		"count":   len(history),
	})
}

func (s *Server) handleStreak(w http.ResponseWriter, r *http.Request) {
	streak := s.engine.Streak()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"streak_days":      streak.StreakDays,
		"longest_days":     streak.LongestDays,
		"last_earned_date": streak.LastEarnedDate,
	})
}

func (s *Server) handleAchievements(w http.ResponseWriter, r *http.Request) {
	views := s.engine.Achievements()

	unlocked := 0
	for _, v := range views {
		if v.Unlocked {
			unlocked++
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"achievements":   views,
		"unlocked_count": unlocked,
		"total_count":    len(views),
	})
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"leaders": s.engine.Leaderboard(r.Context()),
	})
}

// handleDashboard returns a full dashboard snapshot in one call.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	streak := s.engine.Streak()

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"totals": s.engine.Summary(),
		"streak": map[string]interface{}{
			"streak_days":  streak.StreakDays,
			"longest_days": streak.LongestDays,
		},
		"achievements": s.engine.Achievements(),
		"leaderboard":  s.engine.Leaderboard(r.Context()),
	})
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	pending, err := s.db.PendingNotifications(20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"notifications": pending,
	})
}

func (s *Server) handleNotificationShown(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid notification id")
		return
	}
	if err := s.db.MarkNotificationShown(id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeError(w, http.StatusNotFound, "notification not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
	})
}
