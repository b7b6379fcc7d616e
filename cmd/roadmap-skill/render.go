package main

import (
	"fmt"
	"strings"

	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerRowStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	cellStyle      = lipgloss.NewStyle()
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	archivedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func renderProjectTable(projects []roadmap.ProjectSummary) string {
	if len(projects) == 0 {
		return "No projects found."
	}
	rows := make([][]string, len(projects))
	for i, p := range projects {
		rows[i] = []string{
			p.Project.ID,
			p.Project.Name,
			string(p.Project.ProjectType),
			renderProjectStatus(p.Project.Status),
			fmt.Sprint(p.TaskCount),
			shortDate(p.Project.UpdatedAt),
		}
	}
	return renderTable([]string{"ID", "Name", "Type", "Status", "Tasks", "Updated"}, rows)
}

func renderProjectStatus(s roadmap.ProjectStatus) string {
	switch s {
	case roadmap.ProjectCompleted:
		return doneStyle.Render(string(s))
	case roadmap.ProjectArchived:
		return archivedStyle.Render(string(s))
	default:
		return string(s)
	}
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("8"))).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerRowStyle
			}
			return cellStyle
		})
	return t.Render()
}

// shortDate trims an RFC 3339 timestamp to its date.
func shortDate(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// projectMarkdown renders the progress report, tags and open tasks of doc.
func projectMarkdown(doc *roadmap.ProjectData, p roadmap.Progress) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", doc.Project.Name)
	if doc.Project.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", doc.Project.Description)
	}

	fmt.Fprintf(&sb, "- **ID:** `%s`\n", doc.Project.ID)
	fmt.Fprintf(&sb, "- **Type:** %s\n", doc.Project.ProjectType)
	fmt.Fprintf(&sb, "- **Status:** %s\n", doc.Project.Status)
	fmt.Fprintf(&sb, "- **Dates:** %s to %s", p.Dates.StartDate, p.Dates.TargetDate)
	if p.Dates.DaysRemaining != nil {
		fmt.Fprintf(&sb, " (%d days remaining)", *p.Dates.DaysRemaining)
	}
	sb.WriteString("\n\n")

	sb.WriteString("## Progress\n\n")
	tp := p.TaskProgress
	fmt.Fprintf(&sb, "%d%% complete: %d of %d tasks done.\n\n", tp.CompletionPercentage, tp.Done, tp.Total)
	sb.WriteString("| todo | in-progress | review | done |\n|---|---|---|---|\n")
	fmt.Fprintf(&sb, "| %d | %d | %d | %d |\n\n", tp.Todo, tp.InProgress, tp.Review, tp.Done)
	if p.MilestoneProgress.Total > 0 {
		fmt.Fprintf(&sb, "Milestones: %d of %d completed.\n\n", p.MilestoneProgress.Completed, p.MilestoneProgress.Total)
	}
	if p.OverdueTasks.Count > 0 {
		fmt.Fprintf(&sb, "**%d overdue:**\n\n", p.OverdueTasks.Count)
		for _, t := range p.OverdueTasks.Tasks {
			fmt.Fprintf(&sb, "- %s (due %s)\n", t.Title, t.DueDate)
		}
		sb.WriteString("\n")
	}

	if len(doc.Tags) > 0 {
		sb.WriteString("## Tags\n\n")
		for _, tag := range doc.Tags {
			fmt.Fprintf(&sb, "- **%s** %s\n", tag.Name, tag.Color)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Open tasks\n\n")
	open := 0
	for _, t := range doc.Tasks {
		if t.Status == roadmap.StatusDone {
			continue
		}
		open++
		fmt.Fprintf(&sb, "- [%s] **%s** _%s_", t.Status, t.Title, t.Priority)
		if t.DueDate != nil {
			fmt.Fprintf(&sb, " due %s", *t.DueDate)
		}
		if t.Assignee != nil {
			fmt.Fprintf(&sb, " @%s", *t.Assignee)
		}
		sb.WriteString("\n")
	}
	if open == 0 {
		sb.WriteString("Nothing open.\n")
	}
	return sb.String()
}

func renderMarkdown(content string) (string, error) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(content)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
