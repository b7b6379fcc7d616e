package roadmap

import (
	"math"
	"time"
)

// StatusCounts tallies tasks per status.
type StatusCounts struct {
	Total      int `json:"total"`
	Todo       int `json:"todo"`
	InProgress int `json:"inProgress"`
	Review     int `json:"review"`
	Done       int `json:"done"`
}

// CountStatuses tallies tasks per status.
func CountStatuses(tasks []Task) StatusCounts {
	c := StatusCounts{Total: len(tasks)}
	for _, t := range tasks {
		switch t.Status {
		case StatusTodo:
			c.Todo++
		case StatusInProgress:
			c.InProgress++
		case StatusReview:
			c.Review++
		case StatusDone:
			c.Done++
		}
	}
	return c
}

// OverdueTask is the compact view of a task past its due date.
type OverdueTask struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	DueDate string     `json:"dueDate"`
	Status  TaskStatus `json:"status"`
}

// Progress is the statistics report for one project.
type Progress struct {
	ProjectID     string        `json:"projectId"`
	ProjectName   string        `json:"projectName"`
	ProjectStatus ProjectStatus `json:"projectStatus"`
	Dates         struct {
		StartDate     string `json:"startDate"`
		TargetDate    string `json:"targetDate"`
		DaysRemaining *int   `json:"daysRemaining"`
	} `json:"dates"`
	TaskProgress struct {
		StatusCounts
		CompletionPercentage int `json:"completionPercentage"`
	} `json:"taskProgress"`
	MilestoneProgress struct {
		Total      int `json:"total"`
		Completed  int `json:"completed"`
		Percentage int `json:"percentage"`
	} `json:"milestoneProgress"`
	OverdueTasks struct {
		Count int           `json:"count"`
		Tasks []OverdueTask `json:"tasks"`
	} `json:"overdueTasks"`
	PriorityBreakdown map[TaskPriority]int `json:"priorityBreakdown"`
	LastUpdated       string               `json:"lastUpdated"`
}

// ComputeProgress builds the progress report of doc as of now.
func ComputeProgress(doc *ProjectData, now time.Time) Progress {
	var p Progress
	p.ProjectID = doc.Project.ID
	p.ProjectName = doc.Project.Name
	p.ProjectStatus = doc.Project.Status
	p.LastUpdated = doc.Project.UpdatedAt

	p.Dates.StartDate = doc.Project.StartDate
	p.Dates.TargetDate = doc.Project.TargetDate
	p.Dates.DaysRemaining = daysRemaining(doc.Project.TargetDate, now)

	p.TaskProgress.StatusCounts = CountStatuses(doc.Tasks)
	p.TaskProgress.CompletionPercentage = percent(p.TaskProgress.Done, p.TaskProgress.Total)

	p.MilestoneProgress.Total = len(doc.Milestones)
	for _, m := range doc.Milestones {
		if m.CompletedAt != nil {
			p.MilestoneProgress.Completed++
		}
	}
	p.MilestoneProgress.Percentage = percent(p.MilestoneProgress.Completed, p.MilestoneProgress.Total)

	p.PriorityBreakdown = make(map[TaskPriority]int, len(TaskPriorities))
	for _, prio := range TaskPriorities {
		p.PriorityBreakdown[prio] = 0
	}
	nowStamp := now.UTC().Format(TimestampLayout)
	p.OverdueTasks.Tasks = []OverdueTask{}
	for _, t := range doc.Tasks {
		p.PriorityBreakdown[t.Priority]++
		if t.DueDate != nil && *t.DueDate < nowStamp && t.Status != StatusDone {
			p.OverdueTasks.Tasks = append(p.OverdueTasks.Tasks, OverdueTask{
				ID: t.ID, Title: t.Title, DueDate: *t.DueDate, Status: t.Status,
			})
		}
	}
	p.OverdueTasks.Count = len(p.OverdueTasks.Tasks)
	return p
}

func percent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// daysRemaining rounds up the days until targetDate; nil once it has passed
// or when the date does not parse.
func daysRemaining(targetDate string, now time.Time) *int {
	target, err := time.Parse("2006-01-02", targetDate)
	if err != nil {
		t, ok := parseTimestamp(targetDate)
		if !ok {
			return nil
		}
		target = t
	}
	days := int(math.Ceil(target.Sub(now).Hours() / 24))
	if days <= 0 {
		return nil
	}
	return &days
}
