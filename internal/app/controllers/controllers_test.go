package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/canvasstudy/internal/app/models/dto"
	"github.com/yigit/canvasstudy/internal/app/services"
	"github.com/yigit/canvasstudy/internal/domain"
	"github.com/yigit/canvasstudy/internal/middleware"
	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.RegisterValidators(); err != nil {
		panic(err)
	}
}

type fakeCanvasService struct {
	gotCreds  domain.Credentials
	gotCourse string
	err       error
}

func (f *fakeCanvasService) Validate(_ context.Context, creds domain.Credentials) (*domain.User, error) {
	f.gotCreds = creds
	if err := creds.Check(); err != nil {
		return nil, apperrors.NewConfigurationError("%s", err.Error())
	}
	if f.err != nil {
		return nil, f.err
	}
	return &domain.User{ID: 7, Name: "Ada"}, nil
}

func (f *fakeCanvasService) Permissions(_ context.Context, creds domain.Credentials, courseID string) (*domain.PermissionReport, error) {
	f.gotCreds, f.gotCourse = creds, courseID
	if err := creds.Check(); err != nil {
		return nil, apperrors.NewConfigurationError("%s", err.Error())
	}
	return &domain.PermissionReport{
		Authenticated: true,
		CourseID:      courseID,
		Checks: []domain.PermissionCheck{
			{Scope: "Authentication", OK: true},
			{Scope: "Files", ErrorType: "permission_denied", Status: 403},
		},
		Recommendations: []domain.Recommendation{{Priority: "high", Issue: "Files access forbidden"}},
	}, f.err
}

func (f *fakeCanvasService) Courses(_ context.Context, creds domain.Credentials) ([]domain.Course, error) {
	f.gotCreds = creds
	return []domain.Course{{ID: 1, Name: "Biology", Code: "BIO101"}}, f.err
}

func (f *fakeCanvasService) Files(_ context.Context, creds domain.Credentials, courseID string) ([]domain.FileRecord, error) {
	f.gotCreds, f.gotCourse = creds, courseID
	return []domain.FileRecord{{ID: "11", Name: "lecture.pdf"}}, f.err
}

func (f *fakeCanvasService) Assignments(_ context.Context, creds domain.Credentials, courseID string) ([]domain.Assignment, error) {
	f.gotCreds, f.gotCourse = creds, courseID
	return []domain.Assignment{{ID: 3, Name: "Essay"}}, f.err
}

func (f *fakeCanvasService) Modules(_ context.Context, creds domain.Credentials, courseID string) ([]domain.Module, error) {
	f.gotCreds, f.gotCourse = creds, courseID
	return []domain.Module{{ID: 4, Name: "Week 1"}}, f.err
}

type fakeExtractionService struct {
	outcomes []services.BatchOutcome
	local    *domain.ExtractedText
	err      error
}

func (f *fakeExtractionService) ExtractRemote(_ context.Context, _ domain.Credentials, fileID string) (*services.ExtractionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.ExtractionResult{
		Text:   &domain.ExtractedText{SourceFileID: fileID, Filename: "notes.txt", Text: "hello", MimeType: "text/plain", ExtractionMethod: "utf8"},
		Cached: true,
	}, nil
}

func (f *fakeExtractionService) ExtractBatch(_ context.Context, _ domain.Credentials, _ []string) ([]services.BatchOutcome, error) {
	return f.outcomes, f.err
}

func (f *fakeExtractionService) ExtractLocal(_ context.Context, _ string) (*domain.ExtractedText, error) {
	return f.local, f.err
}

func (f *fakeExtractionService) ExtractVideo(_ context.Context, videoURL string) (*services.ExtractionResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.ExtractionResult{Text: &domain.ExtractedText{Filename: videoURL, Text: "transcript", MimeType: "text/x-youtube-url"}}, nil
}

func (f *fakeExtractionService) DownloadToLocal(_ context.Context, _ domain.Credentials, fileID, course string) (*domain.FileRecord, bool, error) {
	if f.err != nil {
		return nil, false, f.err
	}
	return &domain.FileRecord{ID: fileID, Name: "a.pdf", Course: course}, true, nil
}

func (f *fakeExtractionService) ListDownloaded(context.Context) ([]domain.FileRecord, error) {
	return []domain.FileRecord{}, f.err
}

type fakeStudyService struct {
	gotNotes dto.GenerateNotesRequest
	err      error
}

func (f *fakeStudyService) GenerateNotes(_ context.Context, req dto.GenerateNotesRequest) (*dto.NotesResponse, error) {
	f.gotNotes = req
	if f.err != nil {
		return nil, f.err
	}
	return &dto.NotesResponse{Success: true, Notes: "# Summary", Metadata: dto.GenerationMetadata{Model: "m"}}, nil
}

func (f *fakeStudyService) AnswerQuestion(_ context.Context, req dto.AnswerQuestionRequest) (*dto.AnswerResponse, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, apperrors.NewValidationError("question is required")
	}
	return &dto.AnswerResponse{Success: true, Answer: "42"}, f.err
}

type fakeNoteService struct {
	gotQuery dto.NoteListQuery
	cleared  int64
}

func (f *fakeNoteService) List(_ context.Context, query dto.NoteListQuery) (*dto.NoteListResponse, error) {
	f.gotQuery = query
	return &dto.NoteListResponse{Success: true, Notes: []domain.GeneratedNote{}}, nil
}

func (f *fakeNoteService) Save(_ context.Context, req dto.CreateNoteRequest) (*domain.GeneratedNote, error) {
	return &domain.GeneratedNote{ID: "n1", FileName: req.FileName, Content: req.Content}, nil
}

func (f *fakeNoteService) Clear(context.Context) (int64, error) {
	return f.cleared, nil
}

func newRouter(register func(r *gin.Engine)) *gin.Engine {
	r := gin.New()
	r.Use(middleware.TraceMiddleware(), middleware.CanvasCredentials())
	register(r)
	return r
}

func do(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func TestCanvasControllerValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		body      string
		headers   map[string]string
		status    int
		errorType string
	}{
		{"body credentials", `{"baseUrl":"https://canvas.test/","apiToken":"tok"}`, nil, 200, ""},
		{"header credentials", `{}`, map[string]string{"Authorization": "Bearer tok", middleware.BaseURLHeader: "https://canvas.test"}, 200, ""},
		{"missing token", `{"baseUrl":"https://canvas.test"}`, nil, 400, "configuration"},
		{"malformed url", `{"baseUrl":"not a url","apiToken":"tok"}`, nil, 400, "configuration"},
		{"empty body", ``, nil, 400, "validation"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &fakeCanvasService{}
			cc := NewCanvasController(svc)
			r := newRouter(func(r *gin.Engine) { r.POST("/validate", cc.Validate) })

			w := do(r, http.MethodPost, "/validate", tt.body, tt.headers)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if tt.status == 200 {
				var resp dto.ValidateResponse
				decode(t, w, &resp)
				if !resp.Success || resp.User.Name != "Ada" {
					t.Fatalf("unexpected response %+v", resp)
				}
				if svc.gotCreds.BaseURL != "https://canvas.test" || svc.gotCreds.APIToken != "tok" {
					t.Fatalf("credentials = %+v", svc.gotCreds)
				}
				return
			}
			var resp dto.ErrorResponse
			decode(t, w, &resp)
			if resp.Success || resp.ErrorType != tt.errorType {
				t.Fatalf("error response = %+v, want type %s", resp, tt.errorType)
			}
		})
	}
}

func TestCanvasControllerListings(t *testing.T) {
	t.Parallel()

	svc := &fakeCanvasService{}
	cc := NewCanvasController(svc)
	r := newRouter(func(r *gin.Engine) {
		r.GET("/courses", cc.GetCourses)
		r.GET("/files", cc.GetFiles)
		r.POST("/assignments", cc.GetAssignments)
		r.POST("/modules", cc.GetModules)
	})

	w := do(r, http.MethodGet, "/courses?baseUrl=https://canvas.test&apiToken=tok", "", nil)
	var courses dto.CoursesResponse
	decode(t, w, &courses)
	if w.Code != 200 || len(courses.Courses) != 1 || courses.Courses[0].Code != "BIO101" {
		t.Fatalf("courses: %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/files?baseUrl=https://canvas.test&apiToken=tok", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("files without courseId: status = %d", w.Code)
	}

	w = do(r, http.MethodGet, "/files?courseId=12", "", map[string]string{
		"Authorization":          "Bearer tok",
		middleware.BaseURLHeader: "https://canvas.test",
	})
	if w.Code != 200 || svc.gotCourse != "12" {
		t.Fatalf("files: %d course=%q", w.Code, svc.gotCourse)
	}

	for _, path := range []string{"/assignments", "/modules"} {
		w = do(r, http.MethodPost, path, `{"baseUrl":"https://canvas.test","apiToken":"tok","courseId":"99"}`, nil)
		var data map[string]interface{}
		decode(t, w, &data)
		if w.Code != 200 || data["success"] != true || svc.gotCourse != "99" {
			t.Fatalf("%s: %d %s", path, w.Code, w.Body.String())
		}
		if items, ok := data["data"].([]interface{}); !ok || len(items) != 1 {
			t.Fatalf("%s: data = %v", path, data["data"])
		}
	}
}

func TestCanvasControllerPermissions(t *testing.T) {
	t.Parallel()

	svc := &fakeCanvasService{}
	cc := NewCanvasController(svc)
	r := newRouter(func(r *gin.Engine) { r.POST("/validate/permissions", cc.ValidatePermissions) })

	w := do(r, http.MethodPost, "/validate/permissions", `{"courseId":"7"}`, map[string]string{
		"X-Canvas-Base-Url": "https://canvas.test",
		"Authorization":     "Bearer tok",
	})
	var resp dto.PermissionsResponse
	decode(t, w, &resp)
	if w.Code != 200 || !resp.Success || !resp.Report.Authenticated || len(resp.Report.Checks) != 2 {
		t.Fatalf("got %d %+v", w.Code, resp)
	}
	if svc.gotCourse != "7" || svc.gotCreds.APIToken != "tok" {
		t.Fatalf("service called with %+v course %q", svc.gotCreds, svc.gotCourse)
	}
	if !strings.Contains(w.Body.String(), `"errorType":"permission_denied"`) {
		t.Fatalf("check fields not serialized: %s", w.Body.String())
	}

	w = do(r, http.MethodPost, "/validate/permissions", `{"baseUrl":"https://canvas.test"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing token: status = %d", w.Code)
	}
}

func TestCanvasControllerPropagatesServiceErrors(t *testing.T) {
	t.Parallel()

	svc := &fakeCanvasService{err: apperrors.NewPermissionError("Files")}
	cc := NewCanvasController(svc)
	r := newRouter(func(r *gin.Engine) { r.GET("/courses", cc.GetCourses) })

	w := do(r, http.MethodGet, "/courses?baseUrl=https://canvas.test&apiToken=tok", "", nil)
	var resp dto.ErrorResponse
	decode(t, w, &resp)
	if w.Code != http.StatusForbidden || resp.ErrorType != "permission_denied" {
		t.Fatalf("got %d %+v", w.Code, resp)
	}
}

func TestExtractionControllerExtractText(t *testing.T) {
	t.Parallel()

	ec := NewExtractionController(&fakeExtractionService{})
	r := newRouter(func(r *gin.Engine) { r.POST("/extract-text", ec.ExtractText) })

	w := do(r, http.MethodPost, "/extract-text", `{"baseUrl":"https://canvas.test","apiToken":"tok","fileId":"5"}`, nil)
	var resp dto.ExtractTextResponse
	decode(t, w, &resp)
	if w.Code != 200 || resp.Text != "hello" || resp.ContentType != "text/plain" || !resp.Cached {
		t.Fatalf("got %d %+v", w.Code, resp)
	}

	w = do(r, http.MethodPost, "/extract-text", `{"baseUrl":"https://canvas.test","apiToken":"tok"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing fileId: status = %d", w.Code)
	}
}

func TestExtractionControllerExtractTextErrors(t *testing.T) {
	t.Parallel()

	ec := NewExtractionController(&fakeExtractionService{err: apperrors.NewUnsupportedFormatError("video/mp4")})
	r := newRouter(func(r *gin.Engine) { r.POST("/extract-text", ec.ExtractText) })

	w := do(r, http.MethodPost, "/extract-text", `{"baseUrl":"https://canvas.test","apiToken":"tok","fileId":"5"}`, nil)
	var resp dto.ErrorResponse
	decode(t, w, &resp)
	if w.Code != http.StatusUnsupportedMediaType || resp.ErrorType != "unsupported_format" || resp.Suggestion == "" {
		t.Fatalf("got %d %+v", w.Code, resp)
	}
}

func TestExtractionControllerBatch(t *testing.T) {
	t.Parallel()

	svc := &fakeExtractionService{outcomes: []services.BatchOutcome{
		{FileID: "1", Result: &services.ExtractionResult{Text: &domain.ExtractedText{Filename: "a.txt", MimeType: "text/plain", Text: "alpha"}}},
		{FileID: "2", Err: apperrors.NewNoTextError("scan.pdf")},
		{FileID: "3", Err: errors.New("boom")},
	}}
	ec := NewExtractionController(svc)
	r := newRouter(func(r *gin.Engine) { r.POST("/extract-text/batch", ec.ExtractBatch) })

	w := do(r, http.MethodPost, "/extract-text/batch", `{"baseUrl":"https://canvas.test","apiToken":"tok","fileIds":["1","2","3"]}`, nil)
	var resp dto.BatchExtractResponse
	decode(t, w, &resp)
	if w.Code != 200 || !resp.Success || resp.Succeeded != 1 || resp.Failed != 2 || len(resp.Results) != 3 {
		t.Fatalf("got %d %+v", w.Code, resp)
	}
	if got := resp.Results[0]; !got.Success || got.FileID != "1" || got.Text != "alpha" {
		t.Fatalf("first result = %+v", got)
	}
	if got := resp.Results[1]; got.Success || got.ErrorType != "no_extractable_text" || got.Suggestion == "" {
		t.Fatalf("second result = %+v", got)
	}
	if got := resp.Results[2]; got.Success || got.ErrorType != "unknown" || strings.Contains(got.Error, "boom") {
		t.Fatalf("third result = %+v", got)
	}

	w = do(r, http.MethodPost, "/extract-text/batch", `{"baseUrl":"https://canvas.test","apiToken":"tok","fileIds":[]}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty batch: status = %d", w.Code)
	}
}

func TestExtractionControllerLocalFiles(t *testing.T) {
	t.Parallel()

	svc := &fakeExtractionService{local: &domain.ExtractedText{Filename: "b.md", Text: "# b", MimeType: "text/markdown"}}
	ec := NewExtractionController(svc)
	r := newRouter(func(r *gin.Engine) {
		r.GET("/files/downloaded", ec.ListDownloaded)
		r.POST("/files/download", ec.DownloadFile)
		r.POST("/extract-text/local", ec.ExtractLocal)
	})

	w := do(r, http.MethodGet, "/files/downloaded", "", nil)
	if w.Code != 200 || !strings.Contains(w.Body.String(), `"files":[]`) {
		t.Fatalf("downloaded: %d %s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodPost, "/extract-text/local", `{"fileId":"not-hex"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad local id: status = %d", w.Code)
	}

	w = do(r, http.MethodPost, "/extract-text/local", `{"fileId":"0123456789abcdef0123456789abcdef"}`, nil)
	var text dto.ExtractTextResponse
	decode(t, w, &text)
	if w.Code != 200 || text.Text != "# b" || text.Cached {
		t.Fatalf("local extract: %d %+v", w.Code, text)
	}

	w = do(r, http.MethodPost, "/files/download", `{"baseUrl":"https://canvas.test","apiToken":"tok","fileId":"8","courseName":"Bio"}`, nil)
	var dl dto.DownloadResponse
	decode(t, w, &dl)
	if w.Code != 200 || !dl.Skipped || dl.File.Course != "Bio" {
		t.Fatalf("download: %d %+v", w.Code, dl)
	}
}

func TestExtractionControllerVideo(t *testing.T) {
	t.Parallel()

	ec := NewExtractionController(&fakeExtractionService{})
	r := newRouter(func(r *gin.Engine) { r.POST("/extract-text/youtube", ec.ExtractVideo) })

	w := do(r, http.MethodPost, "/extract-text/youtube", `{"url":"https://youtu.be/dQw4w9WgXcQ"}`, nil)
	var resp dto.ExtractTextResponse
	decode(t, w, &resp)
	if w.Code != 200 || resp.Text != "transcript" || resp.ContentType != "text/x-youtube-url" {
		t.Fatalf("got %d %+v", w.Code, resp)
	}

	w = do(r, http.MethodPost, "/extract-text/youtube", `{"url":"https://vimeo.com/42"}`, nil)
	var bad dto.ErrorResponse
	decode(t, w, &bad)
	if w.Code != http.StatusBadRequest || !strings.Contains(bad.Error, "YouTube") {
		t.Fatalf("non-YouTube URL: %d %+v", w.Code, bad)
	}

	ec = NewExtractionController(&fakeExtractionService{err: apperrors.NewUnsupportedSubFormatError("text/x-youtube-url", "worker not configured")})
	r = newRouter(func(r *gin.Engine) { r.POST("/extract-text/youtube", ec.ExtractVideo) })
	w = do(r, http.MethodPost, "/extract-text/youtube", `{"url":"https://youtu.be/dQw4w9WgXcQ"}`, nil)
	if w.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("missing worker: status = %d", w.Code)
	}
}

func TestStudyController(t *testing.T) {
	t.Parallel()

	svc := &fakeStudyService{}
	sc := NewStudyController(svc)
	r := newRouter(func(r *gin.Engine) {
		r.POST("/ai/generate-notes", sc.GenerateNotes)
		r.POST("/ai/answer-question", sc.AnswerQuestion)
	})

	w := do(r, http.MethodPost, "/ai/generate-notes", `{"text":"cells","filename":"bio.pdf","courseTitle":"Biology","save":true}`, nil)
	var notes dto.NotesResponse
	decode(t, w, &notes)
	if w.Code != 200 || notes.Notes != "# Summary" {
		t.Fatalf("notes: %d %+v", w.Code, notes)
	}
	if svc.gotNotes.Filename != "bio.pdf" || svc.gotNotes.CourseTitle != "Biology" || !svc.gotNotes.Save {
		t.Fatalf("request = %+v", svc.gotNotes)
	}

	w = do(r, http.MethodPost, "/ai/answer-question", `{"question":"   "}`, nil)
	var errResp dto.ErrorResponse
	decode(t, w, &errResp)
	if w.Code != http.StatusBadRequest || errResp.ErrorType != "validation" {
		t.Fatalf("blank question: %d %+v", w.Code, errResp)
	}

	w = do(r, http.MethodPost, "/ai/answer-question", `{"question":"why?"}`, nil)
	if w.Code != 200 || !strings.Contains(w.Body.String(), `"answer":"42"`) {
		t.Fatalf("answer: %d %s", w.Code, w.Body.String())
	}
}

func TestStudyControllerRateLimited(t *testing.T) {
	t.Parallel()

	sc := NewStudyController(&fakeStudyService{err: apperrors.NewGenerationError(429, nil, "rate limited")})
	r := newRouter(func(r *gin.Engine) { r.POST("/ai/generate-notes", sc.GenerateNotes) })

	w := do(r, http.MethodPost, "/ai/generate-notes", `{"text":"cells"}`, nil)
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestNoteController(t *testing.T) {
	t.Parallel()

	svc := &fakeNoteService{cleared: 3}
	nc := NewNoteController(svc)
	r := newRouter(func(r *gin.Engine) {
		r.GET("/notes", nc.ListNotes)
		r.POST("/notes", nc.CreateNote)
		r.DELETE("/notes", nc.ClearNotes)
	})

	w := do(r, http.MethodGet, "/notes?courseId=5&page=2&size=500", "", nil)
	if w.Code != 200 {
		t.Fatalf("list: %d", w.Code)
	}
	if svc.gotQuery.CourseID != "5" || svc.gotQuery.Page != 2 || svc.gotQuery.Size != 10 {
		t.Fatalf("query = %+v", svc.gotQuery)
	}

	w = do(r, http.MethodPost, "/notes", `{"fileName":"a.pdf"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("create without content: %d", w.Code)
	}

	w = do(r, http.MethodPost, "/notes", `{"fileName":"a.pdf","content":"# Summary\nx"}`, nil)
	var created dto.NoteResponse
	decode(t, w, &created)
	if w.Code != http.StatusCreated || created.Note.ID != "n1" {
		t.Fatalf("create: %d %+v", w.Code, created)
	}

	w = do(r, http.MethodDelete, "/notes", "", nil)
	var cleared dto.ClearNotesResponse
	decode(t, w, &cleared)
	if w.Code != 200 || cleared.Deleted != 3 {
		t.Fatalf("clear: %d %+v", w.Code, cleared)
	}
}

func TestHealthController(t *testing.T) {
	t.Parallel()

	hc := NewHealthController(map[string]HealthCheck{
		"llm":      func(context.Context) error { return nil },
		"database": nil,
		"cache":    func(context.Context) error { return errors.New("refused") },
	})
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	hc.now = func() time.Time { return fixed }

	r := newRouter(func(r *gin.Engine) { r.GET("/health", hc.Health) })
	w := do(r, http.MethodGet, "/health", "", nil)

	var resp dto.HealthResponse
	decode(t, w, &resp)
	if w.Code != 200 || resp.Status != "OK" || !resp.Timestamp.Equal(fixed) {
		t.Fatalf("got %d %+v", w.Code, resp)
	}
	want := map[string]string{"llm": "up", "database": "disabled", "cache": "down"}
	for name, state := range want {
		if resp.Services[name] != state {
			t.Fatalf("services[%s] = %q, want %q", name, resp.Services[name], state)
		}
	}
}
