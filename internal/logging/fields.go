// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError = "error"
	FieldPath  = "path"
	FieldFiles = "files"

	// Pipeline fields.
	FieldPass     = "pass"
	FieldRule     = "rule"
	FieldCount    = "count"
	FieldDuration = "duration"
	FieldURL      = "url"

	// Configuration fields.
	FieldConfig  = "config"
	FieldJobs    = "jobs"
	FieldWarning = "warning"

	// Statistics fields.
	FieldFilesChecked    = "files_checked"
	FieldFilesWithIssues = "files_with_issues"
	FieldIssuesTotal     = "issues_total"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
	FieldGo      = "go"
)
