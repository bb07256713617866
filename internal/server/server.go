// Package server exposes the submission entry point over HTTP. It is thin
// request/response plumbing around the pipeline: form decoding, validation
// and the two fixed candidate-facing outcome sentences.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/ikodinhi/interview-scheduler/internal/pipeline"
)

// unavailableMessage is shown when the pipeline itself could not run.
// Internal error text never reaches the candidate.
const unavailableMessage = "The scheduling service is temporarily unavailable. Please try again later."

// Processor runs one submission to completion.
type Processor interface {
	Process(ctx context.Context, sub pipeline.Submission) (*pipeline.Result, error)
}

// Server hosts the submission endpoint.
type Server struct {
	echo      *echo.Echo
	processor Processor
	loc       *time.Location
	logger    *zap.Logger
}

// New creates the HTTP server. The location is the single configured zone
// used as the anchor for relative date resolution.
func New(processor Processor, loc *time.Location, logger *zap.Logger) *Server {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	s := &Server{echo: e, processor: processor, loc: loc, logger: logger}

	e.POST("/submit", s.handleSubmit)
	e.GET("/healthz", s.handleHealthz)

	return s
}

// Start listens on the given address until the server is shut down.
func (s *Server) Start(addr string) error {
	s.logger.Info("listening for candidate submissions", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) handleSubmit(c echo.Context) error {
	candidateEmail := strings.TrimSpace(c.FormValue("candidate_email"))
	responseText := strings.TrimSpace(c.FormValue("candidate_response"))

	if candidateEmail == "" || responseText == "" {
		return c.String(http.StatusBadRequest, "candidate_email and candidate_response are required")
	}

	sub := pipeline.Submission{
		ID:             uuid.NewString(),
		CandidateEmail: candidateEmail,
		Text:           responseText,
		Now:            time.Now().In(s.loc),
	}

	result, err := s.processor.Process(c.Request().Context(), sub)
	if err != nil {
		s.logger.Error("processing submission failed",
			zap.String("submission_id", sub.ID),
			zap.Error(err),
		)
		return c.String(http.StatusBadGateway, unavailableMessage)
	}

	failed := 0
	for _, delivery := range result.Deliveries {
		if delivery.Failed() {
			failed++
		}
	}
	if failed > 0 {
		s.logger.Warn("submission completed with failed deliveries",
			zap.String("submission_id", sub.ID),
			zap.Int("failed_deliveries", failed),
		)
	}

	return c.String(http.StatusOK, result.Message)
}

func (s *Server) handleHealthz(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}
