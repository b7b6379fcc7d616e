package roadmap

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ProjectsDir is the subdirectory of the data dir holding project documents.
const ProjectsDir = "projects"

// Store persists one ProjectData document per project ID.
// Abstracted so the repository can run on files or SQL.
type Store interface {
	// Read returns (nil, nil) when no document exists for id.
	Read(id string) (*ProjectData, error)
	// Write overwrites the whole document keyed by data.Project.ID.
	Write(data *ProjectData) error
	// Delete reports false when the document did not exist.
	Delete(id string) (bool, error)
	// ListAll returns every readable document. Corrupt entries are skipped.
	ListAll() ([]*ProjectData, error)
}

// FileStore implements Store with one JSON file per project.
type FileStore struct {
	dir string
}

// NewFileStore creates a filesystem-backed store rooted at dir.
// The directory is created on first write.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Dir returns the directory holding the project files.
func (fs *FileStore) Dir() string {
	return fs.dir
}

// ValidateID rejects IDs that cannot safely be used as a storage key.
func ValidateID(id string) error {
	if id == "" || id == "." || strings.Contains(id, "..") || strings.ContainsAny(id, `/\`) {
		return Validationf("invalid project ID '%s'", id)
	}
	return nil
}

func (fs *FileStore) path(id string) string {
	return filepath.Join(fs.dir, id+".json")
}

// Read loads a project document.
func (fs *FileStore) Read(id string) (*ProjectData, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fs.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading project %q: %w", id, err)
	}

	var doc ProjectData
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing project %q: %w", id, err)
	}
	doc.Normalize()
	return &doc, nil
}

// Write replaces a project document atomically (temp file + rename).
func (fs *FileStore) Write(doc *ProjectData) error {
	if err := ValidateID(doc.Project.ID); err != nil {
		return err
	}
	doc.Normalize()

	if err := os.MkdirAll(fs.dir, 0o755); err != nil {
		return fmt.Errorf("creating projects directory: %w", err)
	}
	return atomicWriteJSON(fs.path(doc.Project.ID), doc)
}

// Delete removes a project document.
func (fs *FileStore) Delete(id string) (bool, error) {
	if err := ValidateID(id); err != nil {
		return false, err
	}
	if err := os.Remove(fs.path(id)); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("deleting project %q: %w", id, err)
	}
	return true, nil
}

// ListAll reads every *.json document in the directory, in file name order.
func (fs *FileStore) ListAll() ([]*ProjectData, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading projects directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var result []*ProjectData
	for _, name := range names {
		doc, err := fs.Read(strings.TrimSuffix(name, ".json"))
		if err != nil || doc == nil {
			log.Printf("WARNING: skipping unreadable project file %s: %v", name, err)
			continue
		}
		result = append(result, doc)
	}
	return result, nil
}

// atomicWriteJSON writes v to a temp file next to path, syncs it and
// renames it over path so readers never observe a partial document.
func atomicWriteJSON(path string, v any) error {
	var suffix [6]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return fmt.Errorf("generating temp suffix: %w", err)
	}
	tmp := path + ".tmp." + hex.EncodeToString(suffix[:])

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("syncing %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("renaming %s: %w", filepath.Base(path), err)
	}
	return nil
}
