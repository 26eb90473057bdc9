package http

import (
	"net/http"

	"github.com/fwojciec/sitechat"
	"github.com/go-chi/chi/v5"
)

type crawlAccepted struct {
	Status sitechat.CrawlStatus `json:"status"`
}

func (s *Server) handleCrawl(w http.ResponseWriter, r *http.Request) {
	if err := s.CrawlService.Start(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, crawlAccepted{Status: sitechat.CrawlCrawling})
}

func (s *Server) handleRecrawl(w http.ResponseWriter, r *http.Request) {
	if err := s.CrawlService.StartRecrawl(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, crawlAccepted{Status: sitechat.CrawlCrawling})
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.CrawlService.Stop(r.Context(), id); err != nil {
		s.Error(w, r, err)
		return
	}
	report, err := s.CrawlService.Status(r.Context(), id)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	report, err := s.CrawlService.Status(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.Error(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
