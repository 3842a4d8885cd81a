package course

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Descriptor kinds, named after their schema file.
const (
	DescriptorCourse  = "course"
	DescriptorLevel   = "level"
	DescriptorTopics  = "topics"
	DescriptorTopic   = "topic"
	DescriptorAuthors = "authors"
)

// Schemas holds the compiled descriptor schemas.
type Schemas struct {
	byKind map[string]*gojsonschema.Schema
}

// LoadSchemas compiles the embedded descriptor schemas.
func LoadSchemas() (*Schemas, error) {
	s := &Schemas{byKind: make(map[string]*gojsonschema.Schema)}
	for _, kind := range []string{DescriptorCourse, DescriptorLevel, DescriptorTopics, DescriptorTopic, DescriptorAuthors} {
		data, err := schemaFS.ReadFile("schemas/" + kind + ".json")
		if err != nil {
			return nil, err
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			return nil, fmt.Errorf("compiling %s schema: %w", kind, err)
		}
		s.byKind[kind] = schema
	}
	return s, nil
}

// DescriptorKind classifies a JSON file by its place in the content tree.
// It returns "" for files no schema applies to.
func DescriptorKind(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return ""
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	switch {
	case len(parts) == 1 && parts[0] == "authors.json":
		return DescriptorAuthors
	case len(parts) == 3 && parts[0] == "courses" && parts[2] == "index.json":
		return DescriptorCourse
	case len(parts) == 3 && parts[0] == "courses" && strings.HasSuffix(parts[2], ".json"):
		return DescriptorLevel
	case len(parts) == 4 && parts[0] == "courses" && parts[2] == "topics" && parts[3] == "index.json":
		return DescriptorTopics
	case len(parts) == 5 && parts[0] == "courses" && parts[2] == "topics" && parts[4] == "index.json":
		return DescriptorTopic
	}
	return ""
}

// Validate checks one descriptor document against the schema for kind.
func (s *Schemas) Validate(kind string, data []byte) ([]string, error) {
	schema, ok := s.byKind[kind]
	if !ok {
		return nil, fmt.Errorf("no schema for descriptor kind %q", kind)
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, err
	}
	if res.Valid() {
		return nil, nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, fmt.Sprintf("%s: %s", e.Field(), e.Description()))
	}
	sort.Strings(msgs)
	return msgs, nil
}

// jsonFiles lists every .json file below root in lexical order.
func jsonFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".json") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// CheckJSON reports files that are not valid JSON and, when schemas is not
// nil, descriptors that do not match their schema.
func CheckJSON(root string, schemas *Schemas) ([]Violation, error) {
	files, err := jsonFiles(root)
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	var out []Violation
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if !json.Valid(data) {
			var v any
			cause := json.Unmarshal(data, &v)
			out = append(out, Violation{
				Check:   NameJSONSyntax,
				Path:    path,
				Message: fmt.Sprintf("file is not valid json, cause: %v", cause),
			})
			continue
		}
		if schemas == nil {
			continue
		}
		kind := DescriptorKind(root, path)
		if kind == "" {
			continue
		}
		msgs, err := schemas.Validate(kind, data)
		if err != nil {
			return nil, fmt.Errorf("validating %s: %w", path, err)
		}
		for _, m := range msgs {
			out = append(out, Violation{Check: NameJSONSchema, Path: path, Message: kind + " descriptor: " + m})
		}
	}
	return out, nil
}
