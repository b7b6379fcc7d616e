// Package templates provides project templates used to bootstrap new
// projects with a predefined set of tags and tasks.
//
// Built-in templates are embedded in the binary. Users can add or override
// templates by dropping .yaml, .yml or .json files into the templates
// directory; the file name without extension is the template key.
package templates

import (
	"embed"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/HendryAvila/roadmap-skill/internal/roadmap"
	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaultFS embed.FS

var extensions = []string{".yaml", ".yml", ".json"}

// Template describes a project to create.
type Template struct {
	Name        string              `yaml:"name" json:"name"`
	Description string              `yaml:"description" json:"description"`
	ProjectType roadmap.ProjectType `yaml:"projectType" json:"projectType"`
	Tasks       []TaskTemplate      `yaml:"tasks" json:"tasks"`
	Tags        []TagTemplate       `yaml:"tags" json:"tags"`
}

// TaskTemplate is a task referencing tags by name.
type TaskTemplate struct {
	Title          string               `yaml:"title" json:"title"`
	Description    string               `yaml:"description" json:"description"`
	Priority       roadmap.TaskPriority `yaml:"priority" json:"priority"`
	Tags           []string             `yaml:"tags" json:"tags"`
	EstimatedHours *float64             `yaml:"estimatedHours,omitempty" json:"estimatedHours,omitempty"`
}

// TagTemplate is a tag to create with the project.
type TagTemplate struct {
	Name  string `yaml:"name" json:"name"`
	Color string `yaml:"color" json:"color"`
}

// Summary is the listing view of a template.
type Summary struct {
	Name        string              `json:"name"`
	DisplayName string              `json:"displayName"`
	Description string              `json:"description"`
	ProjectType roadmap.ProjectType `json:"projectType"`
	TaskCount   int                 `json:"taskCount"`
	TagCount    int                 `json:"tagCount"`
}

// Library resolves templates from the embedded set and a user directory.
type Library struct {
	dir string
}

// NewLibrary creates a Library. dir may be empty or missing.
func NewLibrary(dir string) *Library {
	return &Library{dir: dir}
}

// List returns every loadable template sorted by key. Files that fail to
// parse are logged and skipped.
func (l *Library) List() ([]Summary, error) {
	keys := make(map[string]bool)

	embedded, err := fs.ReadDir(defaultFS, "defaults")
	if err != nil {
		return nil, fmt.Errorf("reading embedded templates: %w", err)
	}
	for _, e := range embedded {
		if key, ok := templateKey(e.Name()); ok {
			keys[key] = true
		}
	}

	if l.dir != "" {
		entries, err := os.ReadDir(l.dir)
		if err != nil && !os.IsNotExist(err) {
			log.Printf("WARNING: reading templates directory %s: %v", l.dir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if key, ok := templateKey(e.Name()); ok {
				keys[key] = true
			}
		}
	}

	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)

	result := make([]Summary, 0, len(names))
	for _, name := range names {
		tpl, err := l.Get(name)
		if err != nil {
			log.Printf("WARNING: skipping template %s: %v", name, err)
			continue
		}
		result = append(result, Summary{
			Name:        name,
			DisplayName: tpl.Name,
			Description: tpl.Description,
			ProjectType: tpl.ProjectType,
			TaskCount:   len(tpl.Tasks),
			TagCount:    len(tpl.Tags),
		})
	}
	return result, nil
}

// Get loads a template by key. The user directory wins over embedded
// templates. A missing template is a NOT_FOUND error.
func (l *Library) Get(name string) (*Template, error) {
	key := name
	if k, ok := templateKey(name); ok {
		key = k
	}
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return nil, roadmap.Validationf("invalid template name '%s'", name)
	}

	if l.dir != "" {
		for _, ext := range extensions {
			data, err := os.ReadFile(filepath.Join(l.dir, key+ext))
			if err == nil {
				return parse(key, data)
			}
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading template %s: %w", key, err)
			}
		}
	}

	data, err := defaultFS.ReadFile("defaults/" + key + ".yaml")
	if err == nil {
		return parse(key, data)
	}
	return nil, roadmap.NotFoundf("Template '%s' not found", name)
}

func parse(key string, data []byte) (*Template, error) {
	var tpl Template
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return nil, roadmap.Validationf("template '%s' is malformed: %v", key, err)
	}
	if tpl.Name == "" {
		tpl.Name = key
	}
	if err := roadmap.ValidateProjectType(tpl.ProjectType); err != nil {
		return nil, roadmap.Validationf("template '%s': %s", key, err.Error())
	}
	return &tpl, nil
}

// templateKey strips a supported extension from a file name.
func templateKey(file string) (string, bool) {
	for _, ext := range extensions {
		if strings.HasSuffix(file, ext) {
			return strings.TrimSuffix(file, ext), true
		}
	}
	return "", false
}
