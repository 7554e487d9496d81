package resumes

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume.schema.json
var schemaJSON []byte

var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	schemaErr      error
)

// Schema returns the JSON Schema describing ResumeData.
func Schema() json.RawMessage {
	out := make([]byte, len(schemaJSON))
	copy(out, schemaJSON)
	return out
}

func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return compiledSchema, schemaErr
}

// ValidateJSON checks raw against the résumé schema.
func ValidateJSON(raw []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return fmt.Errorf("load resume schema: %w", err)
	}
	res, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResume, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidResume, strings.Join(msgs, "; "))
}

// DecodeResumeData validates raw and decodes it.
func DecodeResumeData(raw []byte) (ResumeData, error) {
	if err := ValidateJSON(raw); err != nil {
		return ResumeData{}, err
	}
	var data ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		return ResumeData{}, fmt.Errorf("%w: %v", ErrInvalidResume, err)
	}
	return data, nil
}
