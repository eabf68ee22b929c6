package domain

// PermissionCheck is the outcome of one read against a Canvas API area.
type PermissionCheck struct {
	Scope      string `json:"scope"`
	Endpoint   string `json:"endpoint"`
	OK         bool   `json:"ok"`
	Status     int    `json:"status,omitempty"`
	ErrorType  string `json:"errorType,omitempty"`
	Error      string `json:"error,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Recommendation is a remediation for a failed group of checks.
type Recommendation struct {
	Priority string   `json:"priority"`
	Issue    string   `json:"issue"`
	Solution string   `json:"solution"`
	Steps    []string `json:"steps"`
}

// PermissionReport lists which Canvas areas a token can read.
type PermissionReport struct {
	Authenticated   bool              `json:"authenticated"`
	CourseID        string            `json:"courseId,omitempty"`
	Checks          []PermissionCheck `json:"checks"`
	Recommendations []Recommendation  `json:"recommendations"`
}

// Check returns the check for scope, if it ran.
func (r *PermissionReport) Check(scope string) (PermissionCheck, bool) {
	for _, c := range r.Checks {
		if c.Scope == scope {
			return c, true
		}
	}
	return PermissionCheck{}, false
}

// Failed reports whether the check for scope ran and failed.
func (r *PermissionReport) Failed(scope string) bool {
	c, ok := r.Check(scope)
	return ok && !c.OK
}
