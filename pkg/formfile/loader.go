// Package formfile loads and saves form definitions as YAML or JSON
// documents, picking the codec from the file extension.
package formfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/AdityaMittal31/FirstWork/pkg/forms"
	"github.com/AdityaMittal31/FirstWork/pkg/validation"
)

// Load reads a form definition from the source. Every question must pass
// definition validation; a malformed definition is a load error, not a
// silently-dropped question.
func Load(src Source) (forms.Form, error) {
	if src == nil {
		return forms.Form{}, errors.New("formfile: source is required")
	}

	raw, err := read(src)
	if err != nil {
		return forms.Form{}, err
	}

	var form forms.Form
	switch codec(src.Location()) {
	case "yaml":
		if err := yaml.Unmarshal(raw, &form); err != nil {
			return forms.Form{}, fmt.Errorf("formfile: decode yaml %q: %w", src.Location(), err)
		}
	case "json":
		if err := json.Unmarshal(raw, &form); err != nil {
			return forms.Form{}, fmt.Errorf("formfile: decode json %q: %w", src.Location(), err)
		}
	default:
		return forms.Form{}, fmt.Errorf("formfile: unsupported extension for %q", src.Location())
	}

	for i, q := range form.Questions {
		if result := validation.ValidateDefinition(q); !result.Valid {
			return forms.Form{}, fmt.Errorf("formfile: question %d (%q): %s", i+1, q.ID, result.Reason)
		}
	}
	return form, nil
}

// Save writes the form definition to path, choosing YAML or JSON from the
// extension.
func Save(form forms.Form, path string) error {
	var (
		raw []byte
		err error
	)
	switch codec(path) {
	case "yaml":
		raw, err = yaml.Marshal(form)
	case "json":
		raw, err = json.MarshalIndent(form, "", "  ")
	default:
		return fmt.Errorf("formfile: unsupported extension for %q", path)
	}
	if err != nil {
		return fmt.Errorf("formfile: encode %q: %w", path, err)
	}

	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("formfile: write %q: %w", path, err)
	}
	return nil
}

func read(src Source) ([]byte, error) {
	switch s := src.(type) {
	case fileSource:
		raw, err := os.ReadFile(s.path)
		if err != nil {
			return nil, fmt.Errorf("formfile: read %q: %w", s.path, err)
		}
		return raw, nil
	case fsSource:
		raw, err := fs.ReadFile(s.fsys, s.name)
		if err != nil {
			return nil, fmt.Errorf("formfile: read %q: %w", s.name, err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("formfile: unsupported source kind %q", src.Kind())
	}
}

func codec(location string) string {
	switch strings.ToLower(filepath.Ext(location)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	default:
		return ""
	}
}
