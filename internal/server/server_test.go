package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/ai-tool-advisor/internal/ai"
	"github.com/spigell/ai-tool-advisor/internal/catalog"
	"github.com/spigell/ai-tool-advisor/internal/feedback"
	"github.com/spigell/ai-tool-advisor/internal/recommend"
	"github.com/spigell/ai-tool-advisor/internal/scoring"
	"github.com/spigell/ai-tool-advisor/internal/server/middleware"
	"github.com/spigell/ai-tool-advisor/internal/server/respond"
	"github.com/spigell/ai-tool-advisor/internal/survey"
)

type stubExplainer struct {
	text string
	err  error
	got  ai.Request
}

func (s *stubExplainer) Explain(_ context.Context, req ai.Request) (string, error) {
	s.got = req
	return s.text, s.err
}

func testCatalog() *catalog.Catalog {
	return catalog.New(
		&catalog.Tool{Name: "Research Pro", Category: "Research", Difficulty: catalog.DifficultyHard},
		&catalog.Tool{Name: "Code Buddy", Category: "App Builders & Coding", Difficulty: catalog.DifficultyLow},
	)
}

func newTestRouter(t *testing.T, mutate func(*Deps)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	deps := Deps{
		Engine:   recommend.NewEngine(testCatalog()),
		Sessions: survey.NewMemoryStore(),
		Feedback: feedback.NewMemoryStore(),
	}
	if mutate != nil {
		mutate(&deps)
	}
	return NewRouter(deps)
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[respond.ErrorResponse](t, w).Error.Code
}

func startSession(t *testing.T, r http.Handler) string {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/v1/survey/start", nil)
	require.Equal(t, http.StatusCreated, w.Code)
	view := decode[sessionView](t, w)
	require.NotNil(t, view.Session)
	require.NotNil(t, view.Question)
	assert.Equal(t, survey.KeyKnowledge, view.Question.Key)
	return view.Session.ID
}

func answer(t *testing.T, r http.Handler, id string, values ...string) sessionView {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/v1/survey/answer", gin.H{"session": id, "values": values})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode[sessionView](t, w)
}

func completeSurvey(t *testing.T, r http.Handler) string {
	t.Helper()
	id := startSession(t, r)
	answer(t, r, id, survey.KnowledgeNone)
	answer(t, r, id, survey.JobDeveloper)
	answer(t, r, id, survey.InterestCode)
	answer(t, r, id)
	view := answer(t, r, id, survey.DifficultyFeatures)
	require.True(t, view.Session.Complete)
	return id
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodGet, "/healthz", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestQuestions(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodGet, "/api/v1/questions", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode[struct {
		Questions []survey.Question `json:"questions"`
	}](t, w)
	require.Len(t, body.Questions, 5)
	assert.Equal(t, survey.KeyDifficulty, body.Questions[4].Key)
	assert.True(t, body.Questions[2].Multi)
}

func TestSurveyFlowAndRecommendations(t *testing.T) {
	r := newTestRouter(t, nil)
	id := startSession(t, r)

	view := answer(t, r, id, survey.KnowledgeNone)
	assert.Equal(t, 1, view.Answered)
	assert.Equal(t, 5, view.Total)
	assert.Equal(t, survey.KeyJob, view.Question.Key)

	w := do(t, r, http.MethodPost, "/api/v1/survey/back", gin.H{"session": id})
	require.Equal(t, http.StatusOK, w.Code)
	back := decode[sessionView](t, w)
	assert.Equal(t, 0, back.Session.Page)
	assert.Equal(t, []string{survey.KnowledgeNone}, back.Default)

	answer(t, r, id, survey.KnowledgeNone)
	answer(t, r, id, survey.JobDeveloper)
	answer(t, r, id, survey.InterestCode)
	answer(t, r, id)
	done := answer(t, r, id, survey.DifficultyFeatures)
	assert.True(t, done.Session.Complete)
	assert.Nil(t, done.Question)

	w = do(t, r, http.MethodPost, "/api/v1/recommendations", gin.H{"session": id})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decode[struct {
		Session   string `json:"session"`
		Archetype string `json:"archetype"`
		Tools     []struct {
			Tool  catalog.Tool `json:"tool"`
			Score int          `json:"score"`
		} `json:"tools"`
	}](t, w)
	assert.Equal(t, id, body.Session)
	assert.Equal(t, "BeginnerExplorer", body.Archetype)
	require.Len(t, body.Tools, 2)
	assert.Equal(t, "Code Buddy", body.Tools[0].Tool.Name)
	assert.Greater(t, body.Tools[0].Score, body.Tools[1].Score)
}

func TestSurveyErrors(t *testing.T) {
	r := newTestRouter(t, nil)
	id := startSession(t, r)

	w := do(t, r, http.MethodPost, "/api/v1/recommendations", gin.H{"session": id})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "survey_incomplete", errorCode(t, w))

	w = do(t, r, http.MethodPost, "/api/v1/survey/answer", gin.H{"session": id, "values": []string{"nonsense"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_answer", errorCode(t, w))

	w = do(t, r, http.MethodPost, "/api/v1/survey/answer", gin.H{"session": id})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_answer", errorCode(t, w))

	w = do(t, r, http.MethodPost, "/api/v1/survey/answer", gin.H{"session": "missing", "values": []string{survey.KnowledgeNone}})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "session_not_found", errorCode(t, w))

	w = do(t, r, http.MethodPost, "/api/v1/survey/back", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", errorCode(t, w))

	done := completeSurvey(t, r)
	w = do(t, r, http.MethodPost, "/api/v1/survey/answer", gin.H{"session": done, "values": []string{survey.KnowledgeNone}})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "survey_complete", errorCode(t, w))
}

func TestExplanations(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		r := newTestRouter(t, nil)
		id := completeSurvey(t, r)

		w := do(t, r, http.MethodPost, "/api/v1/explanations", gin.H{"session": id})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "explainer_disabled", errorCode(t, w))
	})

	t.Run("generated", func(t *testing.T) {
		stub := &stubExplainer{text: "Code Buddy부터 시작해 보세요."}
		r := newTestRouter(t, func(d *Deps) { d.Explainer = stub })
		id := completeSurvey(t, r)

		w := do(t, r, http.MethodPost, "/api/v1/explanations", gin.H{"session": id})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		body := decode[struct {
			Explanation string   `json:"explanation"`
			Tools       []string `json:"tools"`
		}](t, w)
		assert.Equal(t, stub.text, body.Explanation)
		assert.Equal(t, []string{"Code Buddy", "Research Pro"}, body.Tools)
		assert.Equal(t, id, stub.got.SessionID)
		assert.Equal(t, []string{"Code Buddy", "Research Pro"}, stub.got.ToolNames())
	})

	t.Run("generator failure", func(t *testing.T) {
		stub := &stubExplainer{err: errors.New("quota exhausted")}
		r := newTestRouter(t, func(d *Deps) { d.Explainer = stub })
		id := completeSurvey(t, r)

		w := do(t, r, http.MethodPost, "/api/v1/explanations", gin.H{"session": id})
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.Equal(t, "explanation_failed", errorCode(t, w))
	})
}

func TestTools(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(t, r, http.MethodGet, "/api/v1/tools", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Tools []catalog.Tool `json:"tools"`
		Count int            `json:"count"`
	}](t, w)
	assert.Equal(t, 2, list.Count)

	w = do(t, r, http.MethodGet, "/api/v1/tools?category=research", nil)
	require.Equal(t, http.StatusOK, w.Code)
	filtered := decode[struct {
		Count int `json:"count"`
	}](t, w)
	assert.Equal(t, 1, filtered.Count)

	for _, tc := range []struct {
		query string
		want  []string
	}{
		{query: "difficulty=low", want: []string{"Code Buddy"}},
		{query: "difficulty=Hard,low", want: []string{"Research Pro", "Code Buddy"}},
		{query: "difficulty=unset", want: nil},
		{query: "difficulty=low&category=research", want: nil},
		{query: "difficulty=&category=research", want: []string{"Research Pro"}},
	} {
		w = do(t, r, http.MethodGet, "/api/v1/tools?"+tc.query, nil)
		require.Equal(t, http.StatusOK, w.Code, tc.query)
		got := decode[struct {
			Tools []catalog.Tool `json:"tools"`
		}](t, w)
		var names []string
		for _, tool := range got.Tools {
			names = append(names, tool.Name)
		}
		assert.Equal(t, tc.want, names, tc.query)
	}

	w = do(t, r, http.MethodGet, "/api/v1/tools?difficulty=low,extreme", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_difficulty", errorCode(t, w))

	w = do(t, r, http.MethodGet, "/api/v1/tools/difficulties", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"difficulties":{"hard":1,"low":1}}`, w.Body.String())

	w = do(t, r, http.MethodGet, "/api/v1/tools?name=code", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Code Buddy", decode[catalog.Tool](t, w).Name)

	w = do(t, r, http.MethodGet, "/api/v1/tools?name=midjourney", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "tool_not_found", errorCode(t, w))

	w = do(t, r, http.MethodGet, "/api/v1/tools/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"categories":["Research","App Builders & Coding"]}`, w.Body.String())
}

func TestSurveyReset(t *testing.T) {
	sessions := survey.NewMemoryStore()
	r := newTestRouter(t, func(d *Deps) { d.Sessions = sessions })
	id := completeSurvey(t, r)

	w := do(t, r, http.MethodPost, "/api/v1/survey/reset", gin.H{"session": id})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	view := decode[sessionView](t, w)
	require.NotNil(t, view.Question)
	assert.Equal(t, id, view.Session.ID)
	assert.False(t, view.Session.Complete)
	assert.Equal(t, survey.KeyKnowledge, view.Question.Key)
	assert.Zero(t, view.Answered)
	assert.Empty(t, view.Default)

	stored, err := sessions.Get(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, stored.Complete)
	assert.Empty(t, stored.Responses)

	w = do(t, r, http.MethodPost, "/api/v1/recommendations", gin.H{"session": id})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "survey_incomplete", errorCode(t, w))

	answer(t, r, id, survey.KnowledgeExpert)

	w = do(t, r, http.MethodPost, "/api/v1/survey/reset", gin.H{"session": "missing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "session_not_found", errorCode(t, w))
}

func TestCriteria(t *testing.T) {
	r := newTestRouter(t, func(d *Deps) {
		d.Engine = recommend.NewEngine(testCatalog(), recommend.WithCriteria(func() []scoring.Criterion {
			criteria := scoring.Default()
			scoring.DisableByName(criteria, "description_bonus", "disabled in config")
			return criteria
		}))
	})

	w := do(t, r, http.MethodGet, "/api/v1/criteria", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Criteria []scoring.Status `json:"criteria"`
	}](t, w)
	require.Len(t, list.Criteria, 6)

	for _, status := range list.Criteria {
		if status.Name == "description_bonus" {
			assert.False(t, status.Enabled)
			assert.Equal(t, "disabled in config", status.Reason)
			continue
		}
		assert.True(t, status.Enabled, status.Name)
		assert.NotEmpty(t, status.Details, status.Name)
	}
}

func TestFeedback(t *testing.T) {
	store := feedback.NewMemoryStore()
	r := newTestRouter(t, func(d *Deps) { d.Feedback = store })
	id := completeSurvey(t, r)

	w := do(t, r, http.MethodPost, "/api/v1/feedback", gin.H{"session": id, "tool": "code buddy", "rating": 5, "comment": " great "})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[feedback.Record](t, w)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Code Buddy", created.Tool)
	assert.Equal(t, "great", created.Comment)
	assert.Equal(t, "BeginnerExplorer", created.Archetype)
	assert.Equal(t, survey.JobDeveloper, created.Survey.Job())

	w = do(t, r, http.MethodPost, "/api/v1/feedback", gin.H{"tool": "Research Pro", "rating": 2})
	require.Equal(t, http.StatusCreated, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/feedback", gin.H{"tool": "Code Buddy", "rating": 9})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_feedback", errorCode(t, w))

	w = do(t, r, http.MethodPost, "/api/v1/feedback", gin.H{"rating": 3})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/feedback", gin.H{"session": "missing", "tool": "Code Buddy", "rating": 3})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/feedback?limit=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	listed := decode[struct {
		Feedback []feedback.Record `json:"feedback"`
		Count    int               `json:"count"`
	}](t, w)
	require.Equal(t, 1, listed.Count)
	assert.Equal(t, "Research Pro", listed.Feedback[0].Tool)

	w = do(t, r, http.MethodGet, "/api/v1/feedback?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_limit", errorCode(t, w))
}

func TestFeedbackDisabled(t *testing.T) {
	r := newTestRouter(t, func(d *Deps) { d.Feedback = nil })

	w := do(t, r, http.MethodGet, "/api/v1/feedback", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "feedback_disabled", errorCode(t, w))
}

func TestRequestIDAndRecovery(t *testing.T) {
	r := newTestRouter(t, nil)
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(middleware.RequestIDHeader))

	w = do(t, r, http.MethodGet, "/healthz", nil)
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	w = do(t, r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal", errorCode(t, w))
}
