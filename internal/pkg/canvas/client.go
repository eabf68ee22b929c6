package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yigit/canvasstudy/internal/domain"
	"github.com/yigit/canvasstudy/internal/pkg/apperrors"
	"github.com/yigit/canvasstudy/internal/pkg/logger"
)

// Scope names reported in permission errors.
const (
	ScopeCourses     = "Courses"
	ScopeFiles       = "Files"
	ScopeAssignments = "Assignments"
	ScopeModules     = "Modules"
	ScopeUserProfile = "User profile"
	ScopeUsers       = "Users"
	ScopeEnrollments = "Enrollments"
	// ScopeAuthentication is the token check itself.
	ScopeAuthentication = "Authentication"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultPerPage  = 100
	defaultMaxPages = 50
	defaultMaxBytes = 50 << 20
	maxErrorBody    = 64 << 10
)

// Options tune a Client. Zero values fall back to defaults.
type Options struct {
	HTTPClient       *http.Client
	Timeout          time.Duration
	PerPage          int
	MaxPages         int
	MaxDownloadBytes int64
}

// Client talks to the Canvas REST API on behalf of one set of credentials.
type Client struct {
	creds    domain.Credentials
	http     *http.Client
	timeout  time.Duration
	perPage  int
	maxPages int
	maxBytes int64
}

// request describes one Canvas read for error translation.
type request struct {
	path     string
	query    url.Values
	scope    string
	resource string
	id       string
}

// NewClient validates the credentials and builds a Client.
func NewClient(creds domain.Credentials, opts Options) (*Client, error) {
	creds = creds.Normalize()
	if err := creds.Check(); err != nil {
		return nil, apperrors.NewConfigurationError("%s", err.Error())
	}

	c := &Client{
		creds:    creds,
		http:     opts.HTTPClient,
		timeout:  opts.Timeout,
		perPage:  opts.PerPage,
		maxPages: opts.MaxPages,
		maxBytes: opts.MaxDownloadBytes,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.perPage <= 0 {
		c.perPage = defaultPerPage
	}
	if c.maxPages <= 0 {
		c.maxPages = defaultMaxPages
	}
	if c.maxBytes <= 0 {
		c.maxBytes = defaultMaxBytes
	}
	return c, nil
}

// BaseURL returns the normalized Canvas base URL.
func (c *Client) BaseURL() string {
	return c.creds.BaseURL
}

// ValidateCredentials returns the profile the token belongs to.
func (c *Client) ValidateCredentials(ctx context.Context) (*domain.User, error) {
	var u canvasUser
	err := c.getJSON(ctx, request{
		path:     "/api/v1/users/self",
		scope:    ScopeUserProfile,
		resource: "user",
		id:       "self",
	}, &u)
	if err != nil {
		return nil, err
	}
	user := u.toDomain()
	return &user, nil
}

// ListCourses returns the user's active courses.
func (c *Client) ListCourses(ctx context.Context) ([]domain.Course, error) {
	query := url.Values{}
	query.Set("enrollment_state", "active")
	query.Add("include[]", "term")

	var raw []canvasCourse
	err := c.getPaged(ctx, request{
		path:     "/api/v1/courses",
		query:    query,
		scope:    ScopeCourses,
		resource: "courses",
	}, func(page []byte) error {
		var batch []canvasCourse
		if err := json.Unmarshal(page, &batch); err != nil {
			return err
		}
		raw = append(raw, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	courses := make([]domain.Course, 0, len(raw))
	for _, rc := range raw {
		courses = append(courses, rc.toDomain())
	}
	return courses, nil
}

// ListFiles returns the files of a course.
func (c *Client) ListFiles(ctx context.Context, courseID string) ([]domain.FileRecord, error) {
	if err := requireID("courseId", courseID); err != nil {
		return nil, err
	}

	var raw []canvasFile
	err := c.getPaged(ctx, request{
		path:     "/api/v1/courses/" + url.PathEscape(courseID) + "/files",
		scope:    ScopeFiles,
		resource: "course",
		id:       courseID,
	}, func(page []byte) error {
		var batch []canvasFile
		if err := json.Unmarshal(page, &batch); err != nil {
			return err
		}
		raw = append(raw, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	files := make([]domain.FileRecord, 0, len(raw))
	for _, rf := range raw {
		files = append(files, rf.toDomain(courseID))
	}
	return files, nil
}

// ListAssignments returns the assignments of a course.
func (c *Client) ListAssignments(ctx context.Context, courseID string) ([]domain.Assignment, error) {
	if err := requireID("courseId", courseID); err != nil {
		return nil, err
	}

	var raw []canvasAssignment
	err := c.getPaged(ctx, request{
		path:     "/api/v1/courses/" + url.PathEscape(courseID) + "/assignments",
		scope:    ScopeAssignments,
		resource: "course",
		id:       courseID,
	}, func(page []byte) error {
		var batch []canvasAssignment
		if err := json.Unmarshal(page, &batch); err != nil {
			return err
		}
		raw = append(raw, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Assignment, 0, len(raw))
	for _, ra := range raw {
		out = append(out, ra.toDomain())
	}
	return out, nil
}

// ListModules returns the modules of a course with their items.
func (c *Client) ListModules(ctx context.Context, courseID string) ([]domain.Module, error) {
	if err := requireID("courseId", courseID); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Add("include[]", "items")

	var raw []canvasModule
	err := c.getPaged(ctx, request{
		path:     "/api/v1/courses/" + url.PathEscape(courseID) + "/modules",
		query:    query,
		scope:    ScopeModules,
		resource: "course",
		id:       courseID,
	}, func(page []byte) error {
		var batch []canvasModule
		if err := json.Unmarshal(page, &batch); err != nil {
			return err
		}
		raw = append(raw, batch...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make([]domain.Module, 0, len(raw))
	for _, rm := range raw {
		out = append(out, rm.toDomain())
	}
	return out, nil
}

// GetFile returns the metadata of one file, including its download URL.
func (c *Client) GetFile(ctx context.Context, fileID string) (*domain.FileRecord, error) {
	if err := requireID("fileId", fileID); err != nil {
		return nil, err
	}

	var rf canvasFile
	err := c.getJSON(ctx, request{
		path:     "/api/v1/files/" + url.PathEscape(fileID),
		scope:    ScopeFiles,
		resource: "file",
		id:       fileID,
	}, &rf)
	if err != nil {
		return nil, err
	}
	record := rf.toDomain("")
	return &record, nil
}

// Download fetches a file body with bearer auth.
func (c *Client) Download(ctx context.Context, fileURL string) ([]byte, error) {
	if strings.TrimSpace(fileURL) == "" {
		return nil, apperrors.NewDownloadError(0, "file has no download URL")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, apperrors.NewDownloadError(0, "invalid download URL: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.creds.APIToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, transportError(err, "download")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil, apperrors.NewDownloadError(resp.StatusCode, "download failed with status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, transportError(err, "download")
	}
	if int64(len(data)) > c.maxBytes {
		return nil, apperrors.NewDownloadError(http.StatusRequestEntityTooLarge,
			"file exceeds the %d byte download limit", c.maxBytes)
	}
	return data, nil
}

func (c *Client) getJSON(ctx context.Context, r request, out interface{}) error {
	body, _, err := c.do(ctx, c.endpoint(r), r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewUnknownError(http.StatusBadGateway, err, "unexpected %s response from Canvas", r.scope)
	}
	return nil
}

// getPaged follows rel="next" links until exhausted or maxPages is hit.
func (c *Client) getPaged(ctx context.Context, r request, onPage func([]byte) error) error {
	if r.query == nil {
		r.query = url.Values{}
	}
	r.query.Set("per_page", fmt.Sprint(c.perPage))

	next := c.endpoint(r)
	for page := 0; next != ""; page++ {
		if page >= c.maxPages {
			logger.Warn().Str("scope", r.scope).Int("maxPages", c.maxPages).Msg("Canvas pagination limit reached, truncating")
			break
		}
		body, header, err := c.do(ctx, next, r)
		if err != nil {
			return err
		}
		if err := onPage(body); err != nil {
			return apperrors.NewUnknownError(http.StatusBadGateway, err, "unexpected %s response from Canvas", r.scope)
		}
		next = c.sameHost(nextLink(header.Get("Link")))
	}
	return nil
}

func (c *Client) do(ctx context.Context, endpoint string, r request) ([]byte, http.Header, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, nil, apperrors.NewConfigurationError("invalid Canvas URL: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.creds.APIToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, transportError(err, r.scope)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, nil, translateStatus(resp.StatusCode, body, r)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, transportError(err, r.scope)
	}
	return body, resp.Header, nil
}

func (c *Client) endpoint(r request) string {
	endpoint := c.creds.BaseURL + r.path
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}
	return endpoint
}

// sameHost drops pagination links that would send the token elsewhere.
func (c *Client) sameHost(link string) string {
	if link == "" {
		return ""
	}
	next, err := url.Parse(link)
	if err != nil {
		return ""
	}
	base, err := url.Parse(c.creds.BaseURL)
	if err != nil || !strings.EqualFold(next.Host, base.Host) {
		logger.Warn().Str("link", link).Msg("Ignoring Canvas pagination link to a foreign host")
		return ""
	}
	return link
}

// translateStatus maps a non-2xx Canvas response to the error taxonomy.
func translateStatus(status int, body []byte, r request) error {
	lower := strings.ToLower(string(body))
	switch {
	case status == http.StatusUnauthorized:
		return apperrors.NewAuthenticationError("Canvas API token is invalid or expired")
	case status == http.StatusForbidden,
		strings.Contains(lower, "forbidden"),
		strings.Contains(lower, "insufficient permissions"):
		return apperrors.NewPermissionError(r.scope)
	case status == http.StatusNotFound, strings.Contains(lower, "not found"):
		return apperrors.NewNotFoundError(r.resource, r.id)
	default:
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(status)
		}
		return apperrors.NewUnknownError(status, nil, "Canvas error (%d): %s", status, msg)
	}
}

func transportError(err error, what string) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return apperrors.NewTimeoutError(err, "Canvas %s request timed out", what)
	}
	return apperrors.NewUnknownError(0, err, "Canvas %s request failed: %v", what, err)
}

func requireID(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return apperrors.NewValidationError("%s is required", name)
	}
	return nil
}

// nextLink extracts the rel="next" target of an RFC 8288 Link header.
func nextLink(header string) string {
	for _, part := range strings.Split(header, ",") {
		segments := strings.Split(part, ";")
		if len(segments) < 2 {
			continue
		}
		target := strings.TrimSpace(segments[0])
		if !strings.HasPrefix(target, "<") || !strings.HasSuffix(target, ">") {
			continue
		}
		for _, param := range segments[1:] {
			param = strings.TrimSpace(param)
			if strings.EqualFold(param, `rel="next"`) || strings.EqualFold(param, "rel=next") {
				return target[1 : len(target)-1]
			}
		}
	}
	return ""
}
