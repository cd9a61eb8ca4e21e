package mcp

import (
	"context"
	"fmt"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for common assistant sessions.
func RegisterPrompts(srv *mcp.Server, _ ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("priority_review").
		Description("Review task priorities, act on overdue work and apply suggested priority changes.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Priority Review", `Help me review my priorities. Please:

1. Read execassist://tasks/priorities for the current ranking and recommendations
2. Read execassist://tasks/overdue for anything past due
3. Call task.advise to see where urgency disagrees with the stored priority

Then:
- Name the three tasks I should do first and why, using the factor breakdown
- For each advisor suggestion, ask me whether to apply it
- Flag tasks in the Defer band that could be cancelled with task.cancel`), nil
		})

	srv.Prompt("schedule_meeting").
		Description("Find a time for a meeting and record it once confirmed.").
		Argument("title", "Meeting title", true).
		Argument("duration", "Length in minutes", true).
		Argument("attendees", "Comma separated attendee emails", true).
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			title := args["title"]
			if title == "" {
				title = "[meeting title]"
			}
			return userPrompt("Meeting Scheduling", fmt.Sprintf(`I need to schedule "%s" (%s minutes) with %s.

1. Call meeting.validate with these details and report any problems
2. Call meeting.suggest and show the top three suggestions with their reasons and conflicts
3. Recommend the best slot; mention when it is marked optimal
4. After I confirm, call meeting.record with the chosen start and end`,
				title, args["duration"], args["attendees"])), nil
		})

	return nil
}

func userPrompt(description, text string) *mcp.PromptResult {
	return &mcp.PromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role: string(mcp.RoleUser),
				Content: mcp.TextContent{
					Type: "text",
					Text: text,
				},
			},
		},
	}
}
