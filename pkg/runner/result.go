package runner

import "github.com/yaklabco/checkmark/pkg/issue"

// FileOutcome is the result of checking one file.
type FileOutcome struct {
	// Path is the file path that was checked.
	Path string

	// Issues are in pass order. Nil when Error is set.
	Issues []issue.Issue

	// Error is set if the file could not be checked.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesChecked is the number of files checked without error.
	FilesChecked int

	// FilesErrored is the number of files whose check failed.
	FilesErrored int

	// FilesWithIssues is the number of files with at least one issue.
	FilesWithIssues int

	// IssuesTotal is the total number of issues across all files.
	IssuesTotal int

	IssuesByCategory map[issue.Category]int
	IssuesBySeverity map[issue.Severity]int
}

// Result is the overall runner result.
type Result struct {
	// Files are in discovery order.
	Files []FileOutcome

	Stats Stats
}

// HasIssues reports whether any issues were found.
func (r *Result) HasIssues() bool {
	if r == nil {
		return false
	}
	return r.Stats.IssuesTotal > 0
}

// HasErrors reports whether any file failed to check.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// Issues returns every issue of the run in file order.
func (r *Result) Issues() []issue.Issue {
	if r == nil {
		return nil
	}
	all := make([]issue.Issue, 0, r.Stats.IssuesTotal)
	for _, f := range r.Files {
		all = append(all, f.Issues...)
	}
	return all
}

func newStats() Stats {
	return Stats{
		IssuesByCategory: make(map[issue.Category]int),
		IssuesBySeverity: make(map[issue.Severity]int),
	}
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesChecked++
	if len(outcome.Issues) == 0 {
		return
	}

	r.Stats.FilesWithIssues++
	r.Stats.IssuesTotal += len(outcome.Issues)
	for _, i := range outcome.Issues {
		r.Stats.IssuesByCategory[i.Category]++
		r.Stats.IssuesBySeverity[i.Severity]++
	}
}
