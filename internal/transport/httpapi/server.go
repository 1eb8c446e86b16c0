// Package httpapi exposes the digest to the presentation layer as a small
// JSON API. Reads are cheap snapshots; the refresh endpoint re-runs the
// whole pipeline in the background because serial image generation can take
// minutes.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sandevgo/kommissar/internal/service/digest"
	"github.com/sandevgo/kommissar/pkg/log"
)

type Server struct {
	digest *digest.Service
	addr   string
	srv    *http.Server

	// baseCtx carries the process logger and lifetime into background
	// refreshes started from handlers.
	baseCtx context.Context
}

func NewServer(addr string, service *digest.Service) *Server {
	return &Server{
		digest: service,
		addr:   addr,
	}
}

func (s *Server) Start(ctx context.Context) error {
	s.baseCtx = ctx
	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           s.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.FromCtx(ctx).Info().Str("addr", s.addr).Msg("http api listening")
	if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

func (s *Server) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/digest", s.handleDigest)
	mux.HandleFunc("POST /api/digest/refresh", s.handleRefresh)
	mux.HandleFunc("POST /api/digest/events/{index}/image", s.handleRetryImage)
	mux.HandleFunc("GET /api/digest/events/{index}/share", s.handleShare)
	return mux
}

func (s *Server) handleDigest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.digest.Snapshot())
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := s.baseCtx
	if ctx == nil {
		ctx = r.Context()
	}
	now := time.Now()
	go func() {
		if err := s.digest.Refresh(ctx, int(now.Month()), now.Day()); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msg("refresh failed")
		}
	}()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "refreshing"})
}

func (s *Server) handleRetryImage(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event index")
		return
	}
	state, err := s.digest.RetryImage(r.Context(), index)
	if errors.Is(err, digest.ErrBatchReplaced) {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleShare(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event index")
		return
	}
	text, err := s.digest.ShareText(index)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"text": text})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
