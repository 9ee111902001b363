package config

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced to the user but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Pipeline. Path is a dotted
// path into the config (e.g. "storage.dsn").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be returned as one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue is an error.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidatePipeline performs static checks over p without mutating it.
// Callers decide whether warnings are fatal.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "job",
			Message:  "job is empty; metrics will be labeled with a default job name",
		})
	}
	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateTransform(p.Transform)...)
	issues = append(issues, validateStorage(p.Storage)...)
	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue
	if strings.TrimSpace(s.Path) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.path",
			Message:  "source.path must not be empty",
		})
	}
	if s.Comma != "" {
		r, _ := utf8.DecodeRuneInString(s.Comma)
		if utf8.RuneCountInString(s.Comma) != 1 || r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.comma",
				Message:  fmt.Sprintf("invalid delimiter %q; want a single character other than quote or newline", s.Comma),
			})
		}
	}
	return issues
}

func validateTransform(t Transform) []Issue {
	switch t.Profile {
	case ProfileBasic, ProfilePlus, ProfileSQLite, ProfileStrict:
		return nil
	case "":
		return []Issue{{
			Severity: SeverityError,
			Path:     "transform.profile",
			Message:  "transform.profile must not be empty",
		}}
	default:
		return []Issue{{
			Severity: SeverityError,
			Path:     "transform.profile",
			Message: fmt.Sprintf("unknown profile %q; want one of %s, %s, %s, %s",
				t.Profile, ProfileBasic, ProfilePlus, ProfileSQLite, ProfileStrict),
		}}
	}
}

func validateStorage(s Storage) []Issue {
	var issues []Issue

	known := map[string]struct{}{
		"":         {},
		"csv":      {},
		"sqlite":   {},
		"postgres": {},
		"mssql":    {},
		"mysql":    {},
		"mongo":    {},
	}
	if _, ok := known[s.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", s.Kind),
		})
	}
	if strings.TrimSpace(s.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.dsn",
			Message:  "storage.dsn must not be empty",
		})
	}
	if s.Kind != "csv" && strings.TrimSpace(s.Table) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.table",
			Message:  fmt.Sprintf("storage.table is empty; %q will be used", DefaultTable),
		})
	}
	return issues
}
