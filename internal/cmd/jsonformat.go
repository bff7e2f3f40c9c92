package cmd

import (
	"encoding/json"
	"fmt"

	"issues-lite/internal/issuestorage"
)

// IssueJSON is the JSON output format for show. It carries the body.
type IssueJSON struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Created  string `json:"created"`
	Updated  string `json:"updated"`
	File     string `json:"file"`
	Body     string `json:"body"`
}

// IssueListJSON is the JSON output format for list, status and create.
type IssueListJSON struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Status   string `json:"status"`
	Priority string `json:"priority"`
	Created  string `json:"created"`
	Updated  string `json:"updated"`
	File     string `json:"file"`
}

// MessageJSON carries a not-found or validation message in JSON mode.
type MessageJSON struct {
	Message string `json:"message"`
}

// ToIssueJSON converts an Issue to IssueJSON.
func ToIssueJSON(issue *issuestorage.Issue) IssueJSON {
	return IssueJSON{
		ID:       issue.ID,
		Title:    issue.Title,
		Status:   string(issue.Status),
		Priority: issue.Priority,
		Created:  issue.Created,
		Updated:  issue.Updated,
		File:     issue.File,
		Body:     issue.Body,
	}
}

// ToIssueListJSON converts an Issue to IssueListJSON.
func ToIssueListJSON(issue *issuestorage.Issue) IssueListJSON {
	return IssueListJSON{
		ID:       issue.ID,
		Title:    issue.Title,
		Status:   string(issue.Status),
		Priority: issue.Priority,
		Created:  issue.Created,
		Updated:  issue.Updated,
		File:     issue.File,
	}
}

func writeJSONMessage(app *App, msg string) error {
	return json.NewEncoder(app.Out).Encode(MessageJSON{Message: msg})
}

// report prints a user-facing outcome that is not an error: the command still
// succeeds.
func report(app *App, msg string) error {
	if app.JSON {
		return writeJSONMessage(app, msg)
	}
	fmt.Fprintln(app.Out, msg)
	return nil
}
