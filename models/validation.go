// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Severity is the level of a validation issue.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warn"
	SeverityInfo  Severity = "info"
)

// IssueLocation points at the paragraph and character span of an issue.
type IssueLocation struct {
	Paragraph *int    `json:"paragraph,omitempty" yaml:"paragraph,omitempty"`
	Span      *[2]int `json:"span,omitempty" yaml:"span,omitempty"`
}

// ValidationIssue is one structural problem reported by the validator.
type ValidationIssue struct {
	Severity Severity       `json:"severity" yaml:"severity"`
	Code     string         `json:"code" yaml:"code"`
	Title    string         `json:"title,omitempty" yaml:"title,omitempty"`
	Message  string         `json:"message,omitempty" yaml:"message,omitempty"`
	Location *IssueLocation `json:"location,omitempty" yaml:"location,omitempty"`
	Hint     string         `json:"hint,omitempty" yaml:"hint,omitempty"`
	Excerpt  string         `json:"excerpt,omitempty" yaml:"excerpt,omitempty"`
	Params   map[string]any `json:"params,omitempty" yaml:"params,omitempty"`
}

// IssuesShape tells which wire shape the issues field arrived in.
type IssuesShape int

const (
	IssuesAbsent IssuesShape = iota
	IssuesList
	IssuesWrapped
)

// ErrUnexpectedIssuesShape is returned when the issues field is neither an
// array nor an object wrapping one.
var ErrUnexpectedIssuesShape = errors.New("unexpected issues shape")

// ValidationIssues is the polymorphic issues field of a validator response:
// either a direct array or {"issues": [...]}.
type ValidationIssues struct {
	Shape   IssuesShape
	List    []ValidationIssue
	Wrapped struct {
		Issues []ValidationIssue `json:"issues"`
	}
}

// UnmarshalJSON implements [json.Unmarshaler].
func (v *ValidationIssues) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*v = ValidationIssues{Shape: IssuesAbsent}
		return nil
	}

	switch trimmed[0] {
	case '[':
		var list []ValidationIssue
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return fmt.Errorf("decode issues list: %w", err)
		}
		*v = ValidationIssues{Shape: IssuesList, List: list}
		return nil
	case '{':
		out := ValidationIssues{Shape: IssuesWrapped}
		if err := json.Unmarshal(trimmed, &out.Wrapped); err != nil {
			return fmt.Errorf("decode wrapped issues: %w", err)
		}
		*v = out
		return nil
	default:
		return ErrUnexpectedIssuesShape
	}
}

// Issues returns the issues regardless of the wire shape.
func (v ValidationIssues) Issues() []ValidationIssue {
	switch v.Shape {
	case IssuesList:
		return v.List
	case IssuesWrapped:
		return v.Wrapped.Issues
	default:
		return nil
	}
}

// ValidationResponse is the raw response body of the validate-document call.
type ValidationResponse struct {
	OK       bool             `json:"ok"`
	Filename string           `json:"filename"`
	Issues   ValidationIssues `json:"issues"`
	Summary  json.RawMessage  `json:"summary,omitempty"`
}

// ValidationStats counts issues by severity.
type ValidationStats struct {
	Total    int `json:"total" yaml:"total"`
	Errors   int `json:"errors" yaml:"errors"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Info     int `json:"info" yaml:"info"`
}

// ValidationResult is the canonical internal form of a validator response.
type ValidationResult struct {
	OK       bool
	Filename string
	Issues   []ValidationIssue
	Summary  json.RawMessage
	Stats    ValidationStats
}

// Normalize converts the response into a [ValidationResult]. Issues is never
// nil in the result.
func (r ValidationResponse) Normalize() ValidationResult {
	issues := r.Issues.Issues()
	if issues == nil {
		issues = []ValidationIssue{}
	}

	return ValidationResult{
		OK:       r.OK,
		Filename: r.Filename,
		Issues:   issues,
		Summary:  r.Summary,
		Stats:    CountIssues(issues),
	}
}

// CountIssues tallies issues by severity.
func CountIssues(issues []ValidationIssue) ValidationStats {
	stats := ValidationStats{Total: len(issues)}
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityError:
			stats.Errors++
		case SeverityWarn:
			stats.Warnings++
		case SeverityInfo:
			stats.Info++
		}
	}
	return stats
}
