package linkml

import (
	"github.com/kaptinlin/go-i18n"
)

// Severity classifies an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a single validation finding, carrying enough information to be
// a stable, testable string and to locate the offending value.
type Issue struct {
	Severity  Severity       `json:"severity"`
	Path      string         `json:"path"`
	Message   string         `json:"message"`
	Validator string         `json:"validator"`
	Rule      string         `json:"rule,omitempty"`
	code      string
	params    map[string]any
}

// Localize renders the issue's message through localizer, falling back to
// the stable English message when localizer is nil or the code is unknown.
func (i *Issue) Localize(localizer *i18n.Localizer) string {
	if localizer == nil || i.code == "" {
		return i.Message
	}
	return localizer.Get(i.code, i18n.Vars(i.params))
}

// Stats summarizes a Report's issues by severity.
type Stats struct {
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`
	InfoCount    int `json:"info_count"`
}

// Report is the structured outcome of a validation call.
// Issues preserve visitation order: slot order within an element, element
// order within a collection.
type Report struct {
	Valid     bool    `json:"valid"`
	Issues    []Issue `json:"issues"`
	Stats     Stats   `json:"stats"`
	SchemaID  string  `json:"schema_id,omitempty"`
	Timestamp string  `json:"timestamp,omitempty"`
	Cancelled bool    `json:"cancelled,omitempty"`
	Truncated bool    `json:"truncated,omitempty"`
}

// newReport returns an empty, valid report.
func newReport() *Report {
	return &Report{Valid: true}
}

// addIssue appends an issue and updates validity/stats, returning whether
// the caller may keep adding issues. The call that fills the maxIssues
// cap (0 means unlimited) marks the report Truncated and returns false,
// so truncation is observable even though callers stop issuing on the
// first false.
func (r *Report) addIssue(issue Issue, maxIssues int) bool {
	if maxIssues > 0 && len(r.Issues) >= maxIssues {
		r.Truncated = true
		return false
	}
	r.Issues = append(r.Issues, issue)
	switch issue.Severity {
	case SeverityError:
		r.Valid = false
		r.Stats.ErrorCount++
	case SeverityWarning:
		r.Stats.WarningCount++
	default:
		r.Stats.InfoCount++
	}
	if maxIssues > 0 && len(r.Issues) >= maxIssues {
		r.Truncated = true
		return false
	}
	return true
}

// newIssue builds an Error-severity Issue from a validator name, path,
// message template, and substitution params.
func newIssue(validator, code, path, message string, params map[string]any) Issue {
	return Issue{
		Severity:  SeverityError,
		Path:      path,
		Message:   replace(message, params),
		Validator: validator,
		code:      code,
		params:    params,
	}
}
