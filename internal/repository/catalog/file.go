package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/formsearch/internal/domain"
	"github.com/kailas-cloud/formsearch/internal/domain/form"
)

// LoadFile reads and validates a catalog seed file. The format follows the
// extension: .json, or .yaml/.yml.
func LoadFile(path string) ([]form.Form, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	forms, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return forms, nil
}

// Parse decodes a catalog document in the format named by ext and validates every form.
func Parse(data []byte, ext string) ([]form.Form, error) {
	var doc document
	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", ext)
	}

	forms := make([]form.Form, 0, len(doc.Forms))
	for i, row := range doc.Forms {
		f, err := form.New(row.attrs())
		if err != nil {
			return nil, fmt.Errorf("form %d (%s): %w: %w", i, row.Code, domain.ErrInvalidForm, err)
		}
		forms = append(forms, f)
	}
	if _, err := form.NewCatalog(forms); err != nil {
		return nil, err
	}
	return forms, nil
}
