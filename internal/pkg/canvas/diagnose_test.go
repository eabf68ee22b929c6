package canvas

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/yigit/canvasstudy/internal/domain"
	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
)

// scopeServer answers each path with a fixed status and records the paths hit.
type scopeServer struct {
	mu     sync.Mutex
	seen   []string
	status map[string]int
	body   map[string]string
}

func (s *scopeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.seen = append(s.seen, r.URL.Path)
	s.mu.Unlock()

	if r.URL.Query().Get("per_page") != "1" {
		w.WriteHeader(http.StatusTeapot)
		return
	}
	status, ok := s.status[r.URL.Path]
	if !ok {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if body, ok := s.body[r.URL.Path]; ok {
		fmt.Fprint(w, body)
		return
	}
	fmt.Fprint(w, "[]")
}

func (s *scopeServer) hits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

func TestDiagnosePermissionsMixedAccess(t *testing.T) {
	t.Parallel()

	fake := &scopeServer{
		status: map[string]int{
			"/api/v1/courses/7/files":       http.StatusForbidden,
			"/api/v1/courses/7/users":       http.StatusForbidden,
			"/api/v1/courses/7/enrollments": http.StatusInternalServerError,
		},
		body: map[string]string{
			"/api/v1/courses/7/files":       `{"status":"unauthorized","errors":[{"message":"user not authorized to perform that action"}]}`,
			"/api/v1/courses/7/enrollments": `stack trace with internal hostnames`,
		},
	}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	report, err := newTestClient(t, srv, Options{}).DiagnosePermissions(context.Background(), " 7 ")
	if err != nil {
		t.Fatalf("DiagnosePermissions: %v", err)
	}
	if !report.Authenticated || report.CourseID != "7" {
		t.Fatalf("unexpected report header %+v", report)
	}

	wantScopes := []string{ScopeAuthentication, ScopeUserProfile, ScopeCourses, ScopeFiles, ScopeAssignments, ScopeModules, ScopeUsers, ScopeEnrollments}
	if len(report.Checks) != len(wantScopes) {
		t.Fatalf("got %d checks, want %d: %+v", len(report.Checks), len(wantScopes), report.Checks)
	}
	for i, scope := range wantScopes {
		if report.Checks[i].Scope != scope {
			t.Fatalf("check %d scope = %q, want %q", i, report.Checks[i].Scope, scope)
		}
	}
	if fake.hits() != len(wantScopes) {
		t.Fatalf("expected one request per scope, got %d", fake.hits())
	}

	tests := []struct {
		scope     string
		ok        bool
		errorType apperrors.Kind
		status    int
	}{
		{ScopeAuthentication, true, "", 0},
		{ScopeUserProfile, true, "", 0},
		{ScopeCourses, true, "", 0},
		{ScopeFiles, false, apperrors.KindPermission, http.StatusForbidden},
		{ScopeAssignments, true, "", 0},
		{ScopeModules, true, "", 0},
		{ScopeUsers, false, apperrors.KindPermission, http.StatusForbidden},
		{ScopeEnrollments, false, apperrors.KindUnknown, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		check, ok := report.Check(tt.scope)
		if !ok {
			t.Fatalf("missing check for %s", tt.scope)
		}
		if check.OK != tt.ok || check.ErrorType != string(tt.errorType) || check.Status != tt.status {
			t.Fatalf("%s: got %+v", tt.scope, check)
		}
		if !tt.ok && check.Suggestion == "" {
			t.Fatalf("%s: failed check without suggestion", tt.scope)
		}
	}

	enrollments, _ := report.Check(ScopeEnrollments)
	if strings.Contains(enrollments.Error, "hostnames") || !strings.Contains(enrollments.Error, "500") {
		t.Fatalf("unknown failure should report only the status, got %q", enrollments.Error)
	}
	files, _ := report.Check(ScopeFiles)
	if !strings.Contains(files.Error, ScopeFiles) || !strings.Contains(files.Suggestion, "web interface") {
		t.Fatalf("files check = %+v", files)
	}

	assertIssues(t, report, "Files access forbidden", "Partial access - files restricted")
}

func TestDiagnosePermissionsStopsOnRejectedToken(t *testing.T) {
	t.Parallel()

	fake := &scopeServer{status: map[string]int{"/api/v1/users/self": http.StatusUnauthorized}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	report, err := newTestClient(t, srv, Options{}).DiagnosePermissions(context.Background(), "7")
	if err != nil {
		t.Fatalf("DiagnosePermissions: %v", err)
	}
	if report.Authenticated || len(report.Checks) != 1 || fake.hits() != 1 {
		t.Fatalf("expected a single failed authentication check, got %+v after %d requests", report, fake.hits())
	}
	if report.Checks[0].ErrorType != string(apperrors.KindAuthentication) || report.Checks[0].Status != http.StatusUnauthorized {
		t.Fatalf("auth check = %+v", report.Checks[0])
	}
	assertIssues(t, report, "Authentication failed")
	if report.Recommendations[0].Priority != "critical" || len(report.Recommendations[0].Steps) == 0 {
		t.Fatalf("recommendation = %+v", report.Recommendations[0])
	}
}

func TestDiagnosePermissionsWithoutCourse(t *testing.T) {
	t.Parallel()

	fake := &scopeServer{status: map[string]int{"/api/v1/courses": http.StatusForbidden}}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	report, err := newTestClient(t, srv, Options{}).DiagnosePermissions(context.Background(), "")
	if err != nil {
		t.Fatalf("DiagnosePermissions: %v", err)
	}
	if len(report.Checks) != 3 || fake.hits() != 3 {
		t.Fatalf("expected account-level checks only, got %+v", report.Checks)
	}
	if report.Failed(ScopeFiles) {
		t.Fatalf("files were never checked")
	}
	assertIssues(t, report, "Courses access failed")
}

func TestDiagnosePermissionsCancelled(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(&scopeServer{})
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newTestClient(t, srv, Options{}).DiagnosePermissions(ctx, "7")
	if apperrors.KindOf(err) != apperrors.KindTimeout {
		t.Fatalf("expected timeout error, got %v", err)
	}
}

func assertIssues(t *testing.T, report *domain.PermissionReport, want ...string) {
	t.Helper()
	got := make([]string, 0, len(report.Recommendations))
	for _, rec := range report.Recommendations {
		got = append(got, rec.Issue)
	}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("recommendations = %v, want %v", got, want)
	}
}
