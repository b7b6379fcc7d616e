package tools

import (
	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
	"github.com/mark3labs/mcp-go/mcp"
)

// requiredString returns a non-empty string argument or a VALIDATION_ERROR.
func requiredString(req mcp.CallToolRequest, key string) (string, error) {
	v, _ := req.GetArguments()[key].(string)
	if v == "" {
		return "", roadmap.Validationf("%s is required", key)
	}
	return v, nil
}

// optionalString returns a pointer to a string argument, or nil if absent.
func optionalString(req mcp.CallToolRequest, key string) *string {
	v, ok := req.GetArguments()[key].(string)
	if !ok {
		return nil
	}
	return &v
}

// nullableString distinguishes an absent argument from an explicit null.
// It returns (value, present).
func nullableString(req mcp.CallToolRequest, key string) (*string, bool) {
	raw, present := req.GetArguments()[key]
	if !present {
		return nil, false
	}
	if v, ok := raw.(string); ok {
		return &v, true
	}
	return nil, raw == nil
}

// stringSliceArg extracts a list of strings. ok is false when the argument
// is absent; non-string items are ignored.
func stringSliceArg(req mcp.CallToolRequest, key string) (values []string, ok bool) {
	raw, present := req.GetArguments()[key]
	if !present || raw == nil {
		return nil, false
	}
	switch items := raw.(type) {
	case []string:
		return items, true
	case []any:
		values = make([]string, 0, len(items))
		for _, item := range items {
			if s, isString := item.(string); isString {
				values = append(values, s)
			}
		}
		return values, true
	}
	return nil, false
}

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// boolArg extracts a boolean argument from a tool request.
func boolArg(req mcp.CallToolRequest, key string, defaultVal bool) bool {
	v, ok := req.GetArguments()[key].(bool)
	if !ok {
		return defaultVal
	}
	return v
}

// searchFilters reads the shared task filter arguments.
func searchFilters(req mcp.CallToolRequest) roadmap.SearchFilters {
	tags, _ := stringSliceArg(req, "tags")
	return roadmap.SearchFilters{
		ProjectID:        req.GetString("projectId", ""),
		Status:           roadmap.TaskStatus(req.GetString("status", "")),
		Priority:         roadmap.TaskPriority(req.GetString("priority", "")),
		Tags:             tags,
		Assignee:         req.GetString("assignee", ""),
		DueBefore:        req.GetString("dueBefore", ""),
		DueAfter:         req.GetString("dueAfter", ""),
		SearchText:       req.GetString("searchText", ""),
		IncludeCompleted: boolArg(req, "includeCompleted", false),
	}
}

// validateFilters checks enum and date filters before scanning.
func validateFilters(f roadmap.SearchFilters) error {
	if f.Status != "" {
		if err := roadmap.ValidateTaskStatus(f.Status); err != nil {
			return err
		}
	}
	if f.Priority != "" {
		if err := roadmap.ValidateTaskPriority(f.Priority); err != nil {
			return err
		}
	}
	if f.DueBefore != "" {
		if err := roadmap.ValidateDate("dueBefore", f.DueBefore); err != nil {
			return err
		}
	}
	if f.DueAfter != "" {
		return roadmap.ValidateDate("dueAfter", f.DueAfter)
	}
	return nil
}

var (
	projectTypes   = []string{string(roadmap.TypeRoadmap), string(roadmap.TypeSkillTree), string(roadmap.TypeKanban)}
	projectStatus  = []string{string(roadmap.ProjectActive), string(roadmap.ProjectCompleted), string(roadmap.ProjectArchived)}
	taskStatuses   = []string{string(roadmap.StatusTodo), string(roadmap.StatusInProgress), string(roadmap.StatusReview), string(roadmap.StatusDone)}
	taskPriorities = []string{string(roadmap.PriorityLow), string(roadmap.PriorityMedium), string(roadmap.PriorityHigh), string(roadmap.PriorityCritical)}
)
