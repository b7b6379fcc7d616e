package roadmap

import "strings"

// --- Task status transitions ---
//
// Every status may move to every other status. The only coupled field is
// completedAt, which tracks whether the task is done.

// setStatus moves a task to next and keeps completedAt consistent with it.
// Entering done stamps now, leaving done clears it, and any other change
// leaves it as it was.
func setStatus(t *Task, next TaskStatus, now string) {
	prev := t.Status
	t.Status = next

	switch {
	case next == StatusDone && (prev != StatusDone || t.CompletedAt == nil):
		stamp := now
		t.CompletedAt = &stamp
	case next != StatusDone && prev == StatusDone:
		t.CompletedAt = nil
	}
}

// --- Tag sets ---

// tagSet indexes tag IDs for membership checks.
type tagSet map[string]struct{}

func newTagSet(ids []string) tagSet {
	s := make(tagSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s tagSet) has(id string) bool {
	_, ok := s[id]
	return ok
}

// projectTagSet is the set of tag IDs defined in a project.
func projectTagSet(doc *ProjectData) tagSet {
	s := make(tagSet, len(doc.Tags))
	for _, tag := range doc.Tags {
		s[tag.ID] = struct{}{}
	}
	return s
}

// uniqueTags drops duplicates while keeping first-seen order.
func uniqueTags(ids []string) []string {
	seen := make(tagSet, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen.has(id) {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// unionTags returns current plus any of extra not already present.
func unionTags(current, extra []string) []string {
	return uniqueTags(append(append([]string{}, current...), extra...))
}

// subtractTags returns current without any ID in remove.
func subtractTags(current, remove []string) []string {
	drop := newTagSet(remove)
	out := make([]string, 0, len(current))
	for _, id := range current {
		if !drop.has(id) {
			out = append(out, id)
		}
	}
	return out
}

// checkTagRefs fails with VALIDATION_ERROR naming every ID in ids that is
// not defined in the project.
func checkTagRefs(doc *ProjectData, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	known := projectTagSet(doc)
	var invalid []string
	for _, id := range uniqueTags(ids) {
		if !known.has(id) {
			invalid = append(invalid, id)
		}
	}
	if len(invalid) > 0 {
		return Validationf("Invalid tag IDs for project '%s': %s", doc.Project.ID, strings.Join(invalid, ", "))
	}
	return nil
}
