package wizard

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/looker-open-source/create-looker-extension/pkg/models"
)

//go:embed schema/answers.schema.json
var answersSchema []byte

// maxAnswersFileSize bounds the answers file read.
const maxAnswersFileSize = 1 << 20

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// getSchema compiles the embedded answers schema once.
func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(answersSchema))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal answers schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("answers.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add answers schema: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("answers.schema.json")
		if compileErr != nil {
			compileErr = fmt.Errorf("compile answers schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// LoadAnswersFile reads a YAML (or JSON) answers file.
func LoadAnswersFile(path string) (map[models.Key]any, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read answers file: %w", err)
	}
	if info.Size() > maxAnswersFileSize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrInvalidAnswersFile, path, maxAnswersFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read answers file: %w", err)
	}
	return ParseAnswers(data)
}

// ParseAnswers decodes answers keyed by question key and validates them
// against the embedded schema.
func ParseAnswers(data []byte) (map[models.Key]any, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAnswersFile, err)
	}
	if raw == nil {
		raw = map[string]any{}
	}

	schema, err := getSchema()
	if err != nil {
		return nil, err
	}

	// Round-trip through JSON so the validator sees JSON-native types.
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAnswersFile, err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAnswersFile, err)
	}
	if err := schema.Validate(inst); err != nil {
		var ve *jsonschema.ValidationError
		if errors.As(err, &ve) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidAnswersFile, strings.Join(validationIssues(ve), "; "))
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidAnswersFile, err)
	}

	values := make(map[models.Key]any, len(raw))
	for k, v := range raw {
		values[models.Key(k)] = v
	}
	return values, nil
}

// validationIssues flattens the leaf errors of a validation tree.
func validationIssues(ve *jsonschema.ValidationError) []string {
	var issues []string
	var walk func(*jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			loc := "/" + strings.Join(e.InstanceLocation, "/")
			msg := e.Error()
			if e.ErrorKind != nil {
				msg = e.ErrorKind.LocalizedString(printer)
			}
			issues = append(issues, loc+": "+msg)
			return
		}
		for _, c := range e.Causes {
			walk(c)
		}
	}
	walk(ve)
	return issues
}
