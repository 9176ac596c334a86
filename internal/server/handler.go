package server

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/ai-tool-advisor/internal/ai"
	"github.com/spigell/ai-tool-advisor/internal/archetype"
	"github.com/spigell/ai-tool-advisor/internal/catalog"
	"github.com/spigell/ai-tool-advisor/internal/feedback"
	"github.com/spigell/ai-tool-advisor/internal/logger"
	"github.com/spigell/ai-tool-advisor/internal/recommend"
	"github.com/spigell/ai-tool-advisor/internal/scoring"
	"github.com/spigell/ai-tool-advisor/internal/server/middleware"
	"github.com/spigell/ai-tool-advisor/internal/server/respond"
	"github.com/spigell/ai-tool-advisor/internal/survey"
)

const defaultFeedbackLimit = 50

// Handler serves the questionnaire controller over JSON.
type Handler struct {
	engine    *recommend.Engine
	sessions  survey.Store
	explainer ai.Explainer
	feedback  feedback.Store
	logger    *zap.Logger
}

func NewHandler(deps Deps) *Handler {
	h := &Handler{
		engine:    deps.Engine,
		sessions:  deps.Sessions,
		explainer: deps.Explainer,
		feedback:  deps.Feedback,
		logger:    logger.WithFields(deps.Logger),
	}
	if h.engine == nil {
		h.engine = recommend.NewEngine(catalog.New())
	}
	if h.sessions == nil {
		h.sessions = survey.NewMemoryStore()
	}
	if h.explainer == nil {
		h.explainer = ai.Disabled{}
	}
	return h
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/questions", h.questions)

	rg.POST("/survey/start", h.start)
	rg.POST("/survey/answer", h.answer)
	rg.POST("/survey/back", h.back)
	rg.POST("/survey/reset", h.reset)

	rg.POST("/recommendations", h.recommendations)
	rg.POST("/explanations", h.explain)

	rg.GET("/tools", h.tools)
	rg.GET("/tools/categories", h.categories)
	rg.GET("/tools/difficulties", h.difficulties)
	rg.GET("/criteria", h.criteria)

	rg.POST("/feedback", h.createFeedback)
	rg.GET("/feedback", h.listFeedback)
}

type sessionRequest struct {
	Session string `json:"session" binding:"required"`
}

type answerRequest struct {
	Session string   `json:"session" binding:"required"`
	Values  []string `json:"values"`
}

type feedbackRequest struct {
	Session string `json:"session"`
	Tool    string `json:"tool"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type sessionView struct {
	Session  *survey.Session  `json:"session"`
	Question *survey.Question `json:"question,omitempty"`
	Default  []string         `json:"default,omitempty"`
	Answered int              `json:"answered"`
	Total    int              `json:"total"`
}

func viewOf(s *survey.Session) sessionView {
	answered, total := s.Progress()
	view := sessionView{Session: s, Answered: answered, Total: total}
	if q, ok := s.Current(); ok {
		view.Question = &q
		view.Default = s.Default()
	}
	return view
}

func (h *Handler) questions(c *gin.Context) {
	respond.OK(c, gin.H{"questions": survey.Questions()})
}

func (h *Handler) start(c *gin.Context) {
	s := survey.NewSession()
	if err := h.sessions.Save(c.Request.Context(), s); err != nil {
		h.fail(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, viewOf(s))
}

func (h *Handler) answer(c *gin.Context) {
	var req answerRequest
	if !bind(c, &req) {
		return
	}

	s, ok := h.session(c, req.Session)
	if !ok {
		return
	}
	if err := s.Answer(req.Values...); err != nil {
		h.fail(c, err)
		return
	}
	if err := h.sessions.Save(c.Request.Context(), s); err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, viewOf(s))
}

func (h *Handler) back(c *gin.Context) {
	var req sessionRequest
	if !bind(c, &req) {
		return
	}

	s, ok := h.session(c, req.Session)
	if !ok {
		return
	}
	s.Back()
	if err := h.sessions.Save(c.Request.Context(), s); err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, viewOf(s))
}

func (h *Handler) reset(c *gin.Context) {
	var req sessionRequest
	if !bind(c, &req) {
		return
	}

	s, ok := h.session(c, req.Session)
	if !ok {
		return
	}
	s.Reset()
	if err := h.sessions.Save(c.Request.Context(), s); err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, viewOf(s))
}

type recommendationView struct {
	Session string `json:"session"`
	*recommend.Result
}

func (h *Handler) recommendations(c *gin.Context) {
	var req sessionRequest
	if !bind(c, &req) {
		return
	}

	s, ok := h.session(c, req.Session)
	if !ok {
		return
	}
	result, err := h.engine.Recommend(s)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, recommendationView{Session: s.ID, Result: result})
}

func (h *Handler) explain(c *gin.Context) {
	var req sessionRequest
	if !bind(c, &req) {
		return
	}

	s, ok := h.session(c, req.Session)
	if !ok {
		return
	}
	result, err := h.engine.Recommend(s)
	if err != nil {
		h.fail(c, err)
		return
	}

	tools := make([]*catalog.Tool, 0, len(result.Tools))
	for _, ranked := range result.Tools {
		tools = append(tools, ranked.Tool)
	}

	text, err := h.explainer.Explain(c.Request.Context(), ai.Request{
		SessionID: s.ID,
		Responses: s.Responses,
		Archetype: result.Archetype,
		Tools:     tools,
	})
	if err != nil {
		if errors.Is(err, ai.ErrExplainerDisabled) {
			h.fail(c, err)
			return
		}
		logger.WithSession(h.logger, s.ID, string(result.Archetype)).
			Warn("explanation failed", zap.String(logger.FieldRequest, middleware.RequestIDFromContext(c)), zap.Error(err))
		respond.Error(c, http.StatusBadGateway, "explanation_failed", "explanation could not be generated", nil)
		return
	}

	respond.OK(c, gin.H{
		"session":     s.ID,
		"archetype":   result.Archetype,
		"tools":       result.Names(),
		"explanation": text,
	})
}

func (h *Handler) tools(c *gin.Context) {
	cat := h.engine.Catalog()

	if name, ok := c.GetQuery("name"); ok {
		tool := cat.FindBestMatch(name)
		if tool == nil {
			respond.Error(c, http.StatusNotFound, "tool_not_found", "no tool matches "+strconv.Quote(name), nil)
			return
		}
		respond.OK(c, tool)
		return
	}

	var difficulties []catalog.Difficulty
	if raw := c.Query("difficulty"); strings.TrimSpace(raw) != "" {
		for _, value := range strings.Split(raw, ",") {
			d, known := catalog.LookupDifficulty(value)
			if !known {
				respond.Error(c, http.StatusBadRequest, "invalid_difficulty",
					"difficulty must be one of low, medium, hard, unset", map[string]any{"difficulty": value})
				return
			}
			difficulties = append(difficulties, d)
		}
	}

	tools := cat.Filter(c.Query("category"), difficulties...)
	respond.OK(c, gin.H{"tools": tools, "count": len(tools)})
}

func (h *Handler) categories(c *gin.Context) {
	respond.OK(c, gin.H{"categories": h.engine.Catalog().Categories()})
}

func (h *Handler) difficulties(c *gin.Context) {
	counts := make(map[string]int)
	for d, n := range h.engine.Catalog().Difficulties() {
		counts[d.String()] = n
	}
	respond.OK(c, gin.H{"difficulties": counts})
}

func (h *Handler) criteria(c *gin.Context) {
	respond.OK(c, gin.H{"criteria": scoring.Describe(h.engine.Criteria())})
}

func (h *Handler) createFeedback(c *gin.Context) {
	if h.feedback == nil {
		respond.Error(c, http.StatusServiceUnavailable, "feedback_disabled", "feedback is not configured", nil)
		return
	}

	var req feedbackRequest
	if !bind(c, &req) {
		return
	}

	record := feedback.Record{
		SessionID: strings.TrimSpace(req.Session),
		Tool:      req.Tool,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if tool := h.engine.Catalog().FindExact(req.Tool); tool != nil {
		record.Tool = tool.Name
	}
	if record.SessionID != "" {
		s, ok := h.session(c, record.SessionID)
		if !ok {
			return
		}
		record.Survey = s.Responses
		if s.Complete {
			record.Archetype = string(archetype.Classify(s.Responses))
		}
	}

	if err := record.Validate(); err != nil {
		h.fail(c, err)
		return
	}
	record = record.Normalize()
	if err := h.feedback.Append(c.Request.Context(), record); err != nil {
		h.fail(c, err)
		return
	}

	respond.JSON(c, http.StatusCreated, record)
}

func (h *Handler) listFeedback(c *gin.Context) {
	if h.feedback == nil {
		respond.Error(c, http.StatusServiceUnavailable, "feedback_disabled", "feedback is not configured", nil)
		return
	}

	limit := defaultFeedbackLimit
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respond.Error(c, http.StatusBadRequest, "invalid_limit", "limit must be a non-negative integer", nil)
			return
		}
		limit = n
	}

	records, err := h.feedback.List(c.Request.Context(), limit)
	if err != nil {
		h.fail(c, err)
		return
	}
	respond.OK(c, gin.H{"feedback": records, "count": len(records)})
}

func (h *Handler) session(c *gin.Context, id string) (*survey.Session, bool) {
	s, err := h.sessions.Get(c.Request.Context(), strings.TrimSpace(id))
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return s, true
}

func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid request body", err.Error())
		return false
	}
	return true
}

// fail maps domain errors onto statuses.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, survey.ErrSessionNotFound):
		respond.Error(c, http.StatusNotFound, "session_not_found", "session not found", nil)
	case errors.Is(err, survey.ErrIncomplete):
		respond.Error(c, http.StatusConflict, "survey_incomplete", "answer every question first", nil)
	case errors.Is(err, survey.ErrAlreadyComplete):
		respond.Error(c, http.StatusConflict, "survey_complete", err.Error(), nil)
	case errors.Is(err, survey.ErrUnknownOption),
		errors.Is(err, survey.ErrNoSelection),
		errors.Is(err, survey.ErrSingleAnswer):
		respond.Error(c, http.StatusBadRequest, "invalid_answer", err.Error(), nil)
	case errors.Is(err, feedback.ErrInvalidRating), errors.Is(err, feedback.ErrToolRequired):
		respond.Error(c, http.StatusBadRequest, "invalid_feedback", err.Error(), nil)
	case errors.Is(err, ai.ErrExplainerDisabled):
		respond.Error(c, http.StatusServiceUnavailable, "explainer_disabled", "explanations are turned off", nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		respond.Error(c, http.StatusRequestTimeout, "timeout", "request canceled", nil)
	default:
		h.logger.Error("request failed",
			zap.String(logger.FieldRequest, middleware.RequestIDFromContext(c)),
			zap.Error(err),
		)
		respond.Error(c, http.StatusInternalServerError, "internal", "internal error", nil)
	}
}
