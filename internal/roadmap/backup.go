package roadmap

import (
	"encoding/json"
	"fmt"
)

// Backup is the full export of every project document.
type Backup struct {
	Version    int            `json:"version"`
	ExportedAt string         `json:"exportedAt"`
	Projects   []*ProjectData `json:"projects"`
}

// ImportError describes one document that could not be imported.
type ImportError struct {
	ProjectID string `json:"projectId"`
	Message   string `json:"message"`
}

// ImportResult summarizes an import.
type ImportResult struct {
	Success  bool          `json:"success"`
	Imported int           `json:"imported"`
	Skipped  int           `json:"skipped"`
	Errors   []ImportError `json:"errors,omitempty"`
}

// Export collects every readable project into a Backup.
func (r *Repository) Export() (*Backup, error) {
	docs, err := r.All()
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []*ProjectData{}
	}
	return &Backup{
		Version:    SchemaVersion,
		ExportedAt: timestamp(),
		Projects:   docs,
	}, nil
}

// ParseBackup decodes and checks the envelope of a backup file.
func ParseBackup(data []byte) (*Backup, error) {
	var raw struct {
		Version  *int            `json:"version"`
		Projects json.RawMessage `json:"projects"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, Validationf("Invalid backup file: %v", err)
	}
	if raw.Version == nil {
		return nil, Validationf("Invalid backup file: missing version")
	}
	if *raw.Version != SchemaVersion {
		return nil, Validationf("Unsupported backup version %d", *raw.Version)
	}

	var projects []*ProjectData
	if raw.Projects == nil {
		return nil, Validationf("Invalid backup file: projects must be an array")
	}
	if err := json.Unmarshal(raw.Projects, &projects); err != nil || projects == nil {
		return nil, Validationf("Invalid backup file: projects must be an array")
	}
	return &Backup{Version: *raw.Version, Projects: projects}, nil
}

// Import writes every document of b. Existing projects are kept unless
// overwrite is set. Bad entries are reported and do not stop the import.
func (r *Repository) Import(b *Backup, overwrite bool) (*ImportResult, error) {
	if b == nil || b.Version != SchemaVersion {
		return nil, Validationf("Unsupported backup version")
	}

	result := &ImportResult{Success: true}
	for i, doc := range b.Projects {
		if doc == nil || doc.Project.ID == "" {
			result.Skipped++
			result.Errors = append(result.Errors, ImportError{
				Message: fmt.Sprintf("project at index %d has no id", i),
			})
			continue
		}
		id := doc.Project.ID
		if err := ValidateID(id); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, ImportError{ProjectID: id, Message: err.Error()})
			continue
		}

		if !overwrite {
			existing, err := r.store.Read(id)
			if err == nil && existing != nil {
				result.Skipped++
				continue
			}
		}

		doc.Version = SchemaVersion
		if err := r.put(doc); err != nil {
			result.Errors = append(result.Errors, ImportError{ProjectID: id, Message: err.Error()})
			continue
		}
		result.Imported++
	}
	return result, nil
}
