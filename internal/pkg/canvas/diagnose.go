package canvas

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/yigit/canvasstudy/internal/domain"
	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
	"github.com/yigit/canvasstudy/internal/pkg/logger"
)

const diagnoseConcurrency = 4

const approvedIntegrations = "Go to Canvas > Account > Settings > Approved Integrations"

type permissionTarget struct {
	scope    string
	path     string
	resource string
	id       string
}

// DiagnosePermissions reads one item from every API area the app uses and
// reports which ones the token may access. Course areas are checked only
// when courseID is set. A rejected token stops the run after the first check.
func (c *Client) DiagnosePermissions(ctx context.Context, courseID string) (*domain.PermissionReport, error) {
	courseID = strings.TrimSpace(courseID)
	report := &domain.PermissionReport{CourseID: courseID}

	auth := c.checkScope(ctx, permissionTarget{scope: ScopeAuthentication, path: "/api/v1/users/self", resource: "user", id: "self"})
	report.Checks = append(report.Checks, auth)
	report.Authenticated = auth.OK

	if auth.ErrorType != string(apperrors.KindAuthentication) {
		targets := []permissionTarget{
			{scope: ScopeUserProfile, path: "/api/v1/users/self/profile", resource: "user", id: "self"},
			{scope: ScopeCourses, path: "/api/v1/courses", resource: "courses"},
		}
		if courseID != "" {
			base := "/api/v1/courses/" + url.PathEscape(courseID)
			for _, t := range []struct{ scope, suffix string }{
				{ScopeFiles, "/files"},
				{ScopeAssignments, "/assignments"},
				{ScopeModules, "/modules"},
				{ScopeUsers, "/users"},
				{ScopeEnrollments, "/enrollments"},
			} {
				targets = append(targets, permissionTarget{scope: t.scope, path: base + t.suffix, resource: "course", id: courseID})
			}
		}

		checks := make([]domain.PermissionCheck, len(targets))
		var g errgroup.Group
		g.SetLimit(diagnoseConcurrency)
		for i, t := range targets {
			i, t := i, t
			g.Go(func() error {
				checks[i] = c.checkScope(ctx, t)
				return nil
			})
		}
		_ = g.Wait()
		report.Checks = append(report.Checks, checks...)
	}

	if err := ctx.Err(); err != nil {
		return nil, apperrors.NewTimeoutError(err, "permission diagnosis cancelled")
	}

	report.Recommendations = recommend(report)

	failed := 0
	for _, check := range report.Checks {
		if !check.OK {
			failed++
		}
	}
	logger.FromContext(ctx).Info().
		Bool("authenticated", report.Authenticated).
		Int("checks", len(report.Checks)).
		Int("failed", failed).
		Msg("Canvas permission diagnosis finished")
	return report, nil
}

func (c *Client) checkScope(ctx context.Context, t permissionTarget) domain.PermissionCheck {
	query := url.Values{}
	query.Set("per_page", "1")
	r := request{path: t.path, query: query, scope: t.scope, resource: t.resource, id: t.id}

	check := domain.PermissionCheck{Scope: t.scope, Endpoint: t.path}
	if _, _, err := c.do(ctx, c.endpoint(r), r); err != nil {
		kind := apperrors.KindOf(err)
		check.ErrorType = string(kind)
		check.Status, check.Error = checkFailure(err, kind)
		check.Suggestion = scopeSuggestion(t.scope, kind)
		return check
	}
	check.OK = true
	return check
}

// checkFailure hides raw Canvas bodies behind unclassified failures.
func checkFailure(err error, kind apperrors.Kind) (int, string) {
	if kind != apperrors.KindUnknown {
		return apperrors.StatusOf(err), err.Error()
	}
	if appErr, ok := apperrors.As(err); ok && appErr.Status > 0 {
		return appErr.Status, fmt.Sprintf("Canvas returned status %d", appErr.Status)
	}
	return 0, "Canvas could not be reached"
}

func scopeSuggestion(scope string, kind apperrors.Kind) string {
	switch kind {
	case apperrors.KindAuthentication:
		return "Generate a new API token and check the Canvas URL."
	case apperrors.KindPermission:
		if scope == ScopeFiles {
			return "Student tokens are often barred from the Files API. Ask your Canvas administrator or download files from the web interface."
		}
		return fmt.Sprintf("Enable %s access on the token or ask your Canvas administrator.", strings.ToLower(scope))
	case apperrors.KindNotFound:
		return "Check the course id and that you are enrolled in the course."
	case apperrors.KindTimeout:
		return "Canvas did not answer in time. Try again later."
	default:
		return "Canvas failed to answer this request. Try again later."
	}
}

func recommend(report *domain.PermissionReport) []domain.Recommendation {
	recs := []domain.Recommendation{}
	filesFailed := report.Failed(ScopeFiles)

	if !report.Authenticated {
		recs = append(recs, domain.Recommendation{
			Priority: "critical",
			Issue:    "Authentication failed",
			Solution: "Check your API token and Canvas URL. The token must be valid and not expired.",
			Steps: []string{
				approvedIntegrations,
				"Generate a new API token",
				"Verify the Canvas URL, e.g. https://your-school.instructure.com",
			},
		})
	}
	if filesFailed {
		recs = append(recs, domain.Recommendation{
			Priority: "high",
			Issue:    "Files access forbidden",
			Solution: "Your API token lacks the permissions needed to read course files.",
			Steps: []string{
				approvedIntegrations,
				"Open your token or create a new one with file and course access",
				"If you cannot change token scopes, contact your Canvas administrator",
			},
		})
	}
	if report.Failed(ScopeCourses) {
		recs = append(recs, domain.Recommendation{
			Priority: "high",
			Issue:    "Courses access failed",
			Solution: "Your API token cannot read course information.",
			Steps: []string{
				"Verify you are enrolled in courses",
				"Check whether your institution restricts API access",
				"Contact your Canvas administrator for API permissions",
			},
		})
	}
	if report.Authenticated && filesFailed {
		recs = append(recs, domain.Recommendation{
			Priority: "medium",
			Issue:    "Partial access - files restricted",
			Solution: "You can read basic Canvas data but not files. This is common for student accounts.",
			Steps: []string{
				"Verify you can open the course files in the browser",
				"Some institutions restrict file access via the API for students",
				"Use the Canvas web interface to download files, then extract them with POST /extract-text/local",
			},
		})
	}
	return recs
}
