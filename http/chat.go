package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/fwojciec/sitechat"
	"github.com/go-chi/chi/v5"
)

type sendMessageRequest struct {
	UserID    string `json:"userId"`
	WebsiteID string `json:"websiteId"`
	Question  string `json:"question"`
}

type sendMessageResponse struct {
	ID             string    `json:"id"`
	Answer         string    `json:"answer"`
	ResponseTimeMs int64     `json:"responseTimeMs"`
	RelevanceScore float64   `json:"relevanceScore"`
	Degraded       bool      `json:"degraded"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request) {
	var req sendMessageRequest
	if err := decodeBody(r, &req); err != nil {
		s.Error(w, r, err)
		return
	}

	record, err := s.ChatService.SendMessage(r.Context(), req.UserID, req.WebsiteID, req.Question)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sendMessageResponse{
		ID:             record.ID,
		Answer:         record.Answer,
		ResponseTimeMs: record.ResponseTimeMs,
		RelevanceScore: record.RelevanceScore,
		Degraded:       record.Degraded,
		CreatedAt:      record.CreatedAt,
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := intParam(q.Get("page"), "page")
	if err != nil {
		s.Error(w, r, err)
		return
	}
	limit, err := intParam(q.Get("limit"), "limit")
	if err != nil {
		s.Error(w, r, err)
		return
	}

	result, err := s.ChatService.ListDialogue(r.Context(), chi.URLParam(r, "userId"), q.Get("websiteId"), page, limit)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type deleteMessageRequest struct {
	UserID string `json:"userId"`
}

func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	var req deleteMessageRequest
	if err := decodeBody(r, &req); err != nil {
		s.Error(w, r, err)
		return
	}

	if err := s.ChatService.DeleteDialogue(r.Context(), chi.URLParam(r, "id"), req.UserID); err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

// intParam parses an optional positive query parameter. Zero means unset.
func intParam(v, name string) (int, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, sitechat.Errorf(sitechat.EINVALID, "%s must be a positive integer", name)
	}
	return n, nil
}
