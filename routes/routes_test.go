package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"bac_exam_platform/catalog"
	"bac_exam_platform/client"
	"bac_exam_platform/middleware"
	"bac_exam_platform/platform"
	"bac_exam_platform/session"

	"github.com/gin-gonic/gin"
)

// fakeAPI fakes the exam API and counts the requests per route.
type fakeAPI struct {
	mu   sync.Mutex
	hits map[string]int
}

func (f *fakeAPI) count(route string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[route]
}

func upstream(t *testing.T) (*httptest.Server, *fakeAPI) {
	t.Helper()
	fake := &fakeAPI{hits: map[string]int{}}
	reply := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(body))
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /exams/book/dernier-jour", reply(`[
		{"id": 5, "bookId": "dernier-jour", "title": "Bac 2022", "year": "2022", "region": "Rabat"},
		{"id": 6, "bookId": "dernier-jour", "title": "Bac 2022 rattrapage", "year": "2022", "region": "Fès"}
	]`))
	mux.HandleFunc("GET /exams/5", reply(`{"id": 5, "bookId": "dernier-jour", "title": "Bac 2022", "year": "2022"}`))
	mux.HandleFunc("GET /questions/exam/{id}", reply(`{"questions": [
		{"id": 1, "type": "multiple_choice_single", "order": 1, "points": 2,
		 "options": [{"id": "a", "text": "Hugo"}, {"id": "b", "text": "Zola"}], "answer": "a"}
	]}`))
	mux.HandleFunc("GET /essay-questions/exam/{id}", reply(`{"questions": [
		{"id": 21, "type": "essay_introduction", "order": 2, "points": 2, "question": "Complétez l'introduction",
		 "answer": "SECRET-MODEL-ANSWER",
		 "dragDropWords": {"template": "[0] puis [1]", "words": ["zeta", "alpha"]}}
	]}`))
	mux.HandleFunc("GET /chapters/book/dernier-jour", reply(`[
		{"id": 3, "bookId": "dernier-jour", "chapterNumber": 1, "title": "Bicêtre"}
	]`))
	mux.HandleFunc("GET /qcm/chapter/3/count", reply(`{"chapterId": 3, "count": 2}`))
	mux.HandleFunc("GET /qcm/chapter/3", reply(`[
		{"id": 11, "chapterId": 3, "question": "Qui parle ?", "correctAnswer": "a",
		 "options": [{"id": "a", "text": "Le condamné"}, {"id": "b", "text": "Le prêtre"}]},
		{"id": 12, "chapterId": 3, "question": "Où ?", "correctAnswer": "b",
		 "options": [{"id": "a", "text": "Paris"}, {"id": "b", "text": "Bicêtre"}]}
	]`))
	mux.HandleFunc("POST /questions", reply(`{"id": 30, "examId": 5, "type": "text", "question": "Qui ?"}`))
	mux.HandleFunc("DELETE /questions/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /auth/admin/login", reply(`{"token": "admin-token", "user": {"id": 1, "name": "Admin", "role": "admin"}}`))
	mux.HandleFunc("GET /users", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "Token expired"}`))
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, route := mux.Handler(r)
		fake.mu.Lock()
		fake.hits[route]++
		fake.mu.Unlock()
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, fake
}

type app struct {
	t      *testing.T
	router *gin.Engine
	token  string
	api    *fakeAPI
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv, fake := upstream(t)
	api := client.New(srv.URL, 5*time.Second, 5*time.Second)
	store := session.NewMemoryStore()

	r := gin.New()
	r.Use(middleware.Recovery())
	SetupRoutes(r, Dependencies{
		Tokens:   middleware.NewTokenService(middleware.NewMemoryRefreshStore(), []byte("test-secret")),
		Store:    store,
		Sessions: session.NewHolder(store, api),
		API:      api,
		Catalog:  catalog.New(api, catalog.NewMemoryCache(time.Minute)),
		Registry: platform.NewRegistry(time.Hour),
	})

	a := &app{t: t, router: r, api: fake}
	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	a.call(http.MethodPost, "/visitors", nil, http.StatusCreated, &tokens)
	if tokens.AccessToken == "" {
		t.Fatal("no access token issued")
	}
	a.token = tokens.AccessToken
	return a
}

// call performs a request and decodes the response into out when given.
func (a *app) call(method, path string, body any, want int, out any) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			a.t.Fatal(err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	if w.Code != want {
		a.t.Fatalf("%s %s: status %d, want %d: %s", method, path, w.Code, want, w.Body.String())
	}
	if out != nil {
		if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
			a.t.Fatalf("%s %s: decoding %s: %v", method, path, w.Body.String(), err)
		}
	}
}

type view struct {
	State struct {
		View      string `json:"view"`
		BookID    string `json:"bookId"`
		Transient struct {
			Error string `json:"error"`
		} `json:"transient"`
	} `json:"state"`
	Title  string          `json:"title"`
	Items  json.RawMessage `json:"items"`
	Locked []bool          `json:"locked"`
	Slide  *struct {
		Index    int `json:"index"`
		Question *struct {
			ID     int64  `json:"id"`
			Answer string `json:"answer"`
		} `json:"question"`
	} `json:"slide"`
	QCM *struct {
		ShowResults bool `json:"showResults"`
		Result      *struct {
			Score int `json:"score"`
			Total int `json:"total"`
		} `json:"result"`
	} `json:"qcm"`
}

func TestHealth(t *testing.T) {
	a := newApp(t)
	var body map[string]string
	a.call(http.MethodGet, "/health", nil, http.StatusOK, &body)
	if body["status"] != "healthy" {
		t.Errorf("health = %v", body)
	}
}

func TestVisitorTokenRequired(t *testing.T) {
	a := newApp(t)
	a.token = ""
	a.call(http.MethodGet, "/api/view", nil, http.StatusUnauthorized, nil)
}

func TestExamFlow(t *testing.T) {
	a := newApp(t)

	var v view
	a.call(http.MethodGet, "/api/view", nil, http.StatusOK, &v)
	if v.State.View != "books" || v.Title != "Bibliothèque" {
		t.Fatalf("initial view = %+v", v.State)
	}

	a.call(http.MethodPost, "/api/events", gin.H{"kind": "select-book", "bookId": "inconnu"}, http.StatusNotFound, nil)

	a.call(http.MethodPost, "/api/events", gin.H{"kind": "select-book", "bookId": "dernier-jour"}, http.StatusOK, &v)
	if v.State.View != "book-content" {
		t.Fatalf("view = %q, want book-content", v.State.View)
	}

	a.call(http.MethodPost, "/api/events", gin.H{"kind": "open-content", "content": "exams"}, http.StatusOK, &v)
	if v.State.View != "years" {
		t.Fatalf("view = %q, want years", v.State.View)
	}

	a.call(http.MethodPost, "/api/events", gin.H{"kind": "select-year", "year": "2022"}, http.StatusOK, &v)
	if v.State.View != "exams" || len(v.Locked) != 2 || v.Locked[0] || !v.Locked[1] {
		t.Fatalf("exams view = %+v locked=%v", v.State, v.Locked)
	}

	var locked struct {
		Error   string `json:"error"`
		Overlay struct {
			Kind string `json:"kind"`
		} `json:"overlay"`
	}
	a.call(http.MethodPost, "/api/events", gin.H{"kind": "select-exam", "examId": 6, "index": 1}, http.StatusForbidden, &locked)
	if locked.Overlay.Kind != "exam" {
		t.Errorf("overlay kind = %q, want exam", locked.Overlay.Kind)
	}
	// The position comes from the listed exams, not from the request.
	locked.Overlay.Kind = ""
	a.call(http.MethodPost, "/api/events", gin.H{"kind": "select-exam", "examId": 6, "index": 0}, http.StatusForbidden, &locked)
	if locked.Overlay.Kind != "exam" {
		t.Errorf("overlay kind = %q, want exam", locked.Overlay.Kind)
	}
	a.call(http.MethodPost, "/api/events", gin.H{"kind": "select-exam", "examId": 99, "index": 0}, http.StatusNotFound, nil)

	a.call(http.MethodPost, "/api/events", gin.H{"kind": "select-exam", "examId": 5, "index": 0}, http.StatusOK, &v)
	if v.State.View != "exam" || v.Slide == nil || v.Slide.Index != 0 {
		t.Fatalf("exam view = %+v", v)
	}
	if v.Title != "Bac 2022 - Le Dernier Jour d'un Condamné" {
		t.Errorf("title = %q", v.Title)
	}

	var slide struct {
		Index    int `json:"index"`
		Question *struct {
			ID     int64  `json:"id"`
			Answer string `json:"answer"`
		} `json:"question"`
	}
	a.call(http.MethodPost, "/api/exam/next", nil, http.StatusOK, &slide)
	a.call(http.MethodPost, "/api/exam/next", nil, http.StatusOK, &slide)
	if slide.Index != 2 || slide.Question == nil || slide.Question.ID != 1 {
		t.Fatalf("slide = %+v", slide)
	}
	if slide.Question.Answer != "" {
		t.Error("expected answer sent before reveal")
	}

	a.call(http.MethodPut, "/api/exam/answers/1", "b", http.StatusOK, nil)
	var check struct {
		IsCorrect bool `json:"isCorrect"`
	}
	a.call(http.MethodPost, "/api/exam/answers/1/check", nil, http.StatusOK, &check)
	if check.IsCorrect {
		t.Error("wrong option graded correct")
	}

	a.call(http.MethodPut, "/api/exam/answers/1", "a", http.StatusOK, nil)
	a.call(http.MethodPost, "/api/exam/answers/1/check", nil, http.StatusOK, &check)
	if !check.IsCorrect {
		t.Error("right option graded wrong")
	}

	a.call(http.MethodPost, "/api/exam/answers/1/reveal", nil, http.StatusOK, &slide)
	if slide.Question.Answer != "a" {
		t.Errorf("revealed answer = %q", slide.Question.Answer)
	}
	a.call(http.MethodPut, "/api/exam/answers/1", "b", http.StatusConflict, nil)
	a.call(http.MethodPost, "/api/exam/answers/99/check", nil, http.StatusNotFound, nil)

	a.call(http.MethodPost, "/api/events", gin.H{"kind": "back-to-exams"}, http.StatusOK, &v)
	a.call(http.MethodGet, "/api/exam/slide", nil, http.StatusConflict, nil)
}

func TestQCMFlow(t *testing.T) {
	a := newApp(t)

	var v view
	a.call(http.MethodPost, "/api/events", gin.H{"kind": "select-book", "bookId": "dernier-jour"}, http.StatusOK, &v)
	a.call(http.MethodPost, "/api/events", gin.H{"kind": "open-content", "content": "qcm"}, http.StatusOK, &v)
	if v.State.View != "qcm-chapters" {
		t.Fatalf("view = %q", v.State.View)
	}
	var chapters []struct {
		ID       int64 `json:"id"`
		QCMCount int   `json:"qcmCount"`
	}
	if err := json.Unmarshal(v.Items, &chapters); err != nil {
		t.Fatal(err)
	}
	if len(chapters) != 1 || chapters[0].ID != 3 {
		t.Fatalf("qcm chapters = %+v", chapters)
	}

	a.call(http.MethodPost, "/api/events", gin.H{"kind": "select-qcm-chapter", "chapterId": 99, "index": 0}, http.StatusNotFound, nil)
	a.call(http.MethodPost, "/api/events", gin.H{"kind": "select-qcm-chapter", "chapterId": 3, "index": 5}, http.StatusOK, &v)
	if v.State.View != "qcm-viewer" || v.QCM == nil || v.QCM.ShowResults {
		t.Fatalf("qcm view = %+v", v)
	}

	a.call(http.MethodPut, "/api/qcm/answers/11", gin.H{"option": "a"}, http.StatusOK, nil)
	a.call(http.MethodPut, "/api/qcm/answers/11", gin.H{"option": "z"}, http.StatusBadRequest, nil)
	a.call(http.MethodPost, "/api/qcm/submit", nil, http.StatusBadRequest, nil)

	a.call(http.MethodPut, "/api/qcm/answers/12", gin.H{"option": "a"}, http.StatusOK, nil)
	var qv struct {
		ShowResults bool `json:"showResults"`
		Result      *struct {
			Score int `json:"score"`
			Total int `json:"total"`
		} `json:"result"`
	}
	a.call(http.MethodPost, "/api/qcm/submit", nil, http.StatusOK, &qv)
	if !qv.ShowResults || qv.Result == nil || qv.Result.Score != 1 || qv.Result.Total != 2 {
		t.Fatalf("submitted quiz = %+v", qv)
	}
	a.call(http.MethodPut, "/api/qcm/answers/12", gin.H{"option": "b"}, http.StatusConflict, nil)

	a.call(http.MethodPost, "/api/qcm/reset", nil, http.StatusOK, &qv)
	if qv.ShowResults {
		t.Error("reset kept the results")
	}
}

func TestAdminSessionClearedOnUnauthorized(t *testing.T) {
	a := newApp(t)

	a.call(http.MethodGet, "/api/admin/users", nil, http.StatusUnauthorized, nil)

	a.call(http.MethodPost, "/api/auth/admin/login", gin.H{"email": "admin@bac.ma", "password": "secret"}, http.StatusOK, nil)

	var s map[string]json.RawMessage
	a.call(http.MethodGet, "/api/auth/session", nil, http.StatusOK, &s)
	if string(s["admin"]) == "null" {
		t.Fatal("admin session not stored")
	}
	if string(s["student"]) != "null" {
		t.Errorf("student session = %s", s["student"])
	}

	a.call(http.MethodGet, "/api/admin/users", nil, http.StatusUnauthorized, nil)

	a.call(http.MethodGet, "/api/auth/session", nil, http.StatusOK, &s)
	if string(s["admin"]) != "null" {
		t.Errorf("admin session kept after 401: %s", s["admin"])
	}
}

func TestRegisterValidation(t *testing.T) {
	a := newApp(t)

	var resp struct {
		Fields map[string]string `json:"fields"`
	}
	a.call(http.MethodPost, "/api/auth/register", gin.H{"email": "pas-un-email"}, http.StatusBadRequest, &resp)
	if resp.Fields["email"] == "" || resp.Fields["fullName"] == "" {
		t.Errorf("fields = %v", resp.Fields)
	}
}

func TestEssayPracticeHidesAnswers(t *testing.T) {
	a := newApp(t)

	var v view
	a.call(http.MethodPost, "/api/events", gin.H{"kind": "select-book", "bookId": "dernier-jour"}, http.StatusOK, &v)
	a.call(http.MethodPost, "/api/events", gin.H{"kind": "open-content", "content": "essay"}, http.StatusOK, &v)
	if v.State.View != "essay-practice" {
		t.Fatalf("view = %q", v.State.View)
	}

	var groups []struct {
		ExamID int64 `json:"examId"`
		Essays []struct {
			Answer        string `json:"answer"`
			DragDropWords *struct {
				Words []string `json:"words"`
			} `json:"dragDropWords"`
		} `json:"essays"`
	}
	if err := json.Unmarshal(v.Items, &groups); err != nil {
		t.Fatal(err)
	}
	if len(groups) != 2 || len(v.Locked) != 2 || v.Locked[0] || !v.Locked[1] {
		t.Fatalf("groups = %+v locked = %v", groups, v.Locked)
	}

	open := groups[0].Essays
	if len(open) != 1 {
		t.Fatalf("free group essays = %+v", open)
	}
	if open[0].Answer != "" {
		t.Errorf("model answer sent: %q", open[0].Answer)
	}
	if open[0].DragDropWords == nil || len(open[0].DragDropWords.Words) != 2 ||
		open[0].DragDropWords.Words[0] != "alpha" || open[0].DragDropWords.Words[1] != "zeta" {
		t.Errorf("word bank = %+v", open[0].DragDropWords)
	}
	if len(groups[1].Essays) != 0 {
		t.Errorf("locked group sent %d essays", len(groups[1].Essays))
	}
}

func TestAdminQuestions(t *testing.T) {
	a := newApp(t)

	var v view
	a.call(http.MethodPost, "/api/events", gin.H{"kind": "select-book", "bookId": "dernier-jour"}, http.StatusOK, &v)
	a.call(http.MethodPost, "/api/events", gin.H{"kind": "open-content", "content": "exams"}, http.StatusOK, &v)
	const listRoute = "GET /exams/book/dernier-jour"
	fetched := a.api.count(listRoute)
	a.call(http.MethodGet, "/api/view", nil, http.StatusOK, &v)
	if n := a.api.count(listRoute); n != fetched || n == 0 {
		t.Fatalf("exam list fetched %d times, want %d from cache", n, fetched)
	}

	a.call(http.MethodPost, "/api/auth/admin/login", gin.H{"email": "admin@bac.ma", "password": "secret"}, http.StatusOK, nil)

	var draft struct {
		ExamID int64 `json:"examId"`
		Points int   `json:"points"`
	}
	a.call(http.MethodPost, "/api/admin/questions/import", gin.H{"id": 4, "examId": 9, "type": "text", "question": "Qui ?"}, http.StatusOK, &draft)
	if draft.ExamID != 0 || draft.Points != 1 {
		t.Errorf("draft = %+v", draft)
	}
	a.call(http.MethodPost, "/api/admin/questions/import", gin.H{"type": "essay_subject", "question": "x"}, http.StatusBadRequest, nil)

	a.call(http.MethodPost, "/api/admin/questions", gin.H{"type": "text", "question": "Qui ?"}, http.StatusBadRequest, nil)
	if n := a.api.count("POST /questions"); n != 0 {
		t.Fatalf("invalid question forwarded %d times", n)
	}

	var saved struct {
		ID int64 `json:"id"`
	}
	a.call(http.MethodPost, "/api/admin/questions", gin.H{"examId": 5, "type": "text", "question": "Qui ?"}, http.StatusCreated, &saved)
	if saved.ID != 30 {
		t.Errorf("saved = %+v", saved)
	}

	a.call(http.MethodGet, "/api/view", nil, http.StatusOK, &v)
	if n := a.api.count(listRoute); n != fetched+1 {
		t.Errorf("exam list fetched %d times after a question was added, want %d", n, fetched+1)
	}

	a.call(http.MethodDelete, "/api/admin/questions/30?examId=5", nil, http.StatusNoContent, nil)
	a.call(http.MethodGet, "/api/view", nil, http.StatusOK, &v)
	if n := a.api.count(listRoute); n != fetched+2 {
		t.Errorf("exam list fetched %d times after a question was removed, want %d", n, fetched+2)
	}
}
