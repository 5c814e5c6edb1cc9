package pages

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/krancour/yuadmin/sdk/api"
	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// ErrValidation represents a form that failed local validation. No request
// was sent to the backend.
type ErrValidation struct {
	// Message is the operator facing summary.
	Message string `json:"message"`
	// Reasons lists each individual schema violation.
	Reasons []string `json:"reasons,omitempty"`
}

func (e *ErrValidation) Error() string {
	if len(e.Reasons) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Reasons, "; "))
}

var (
	accessorySchemaLoader = gojsonschema.NewGoLoader(
		map[string]interface{}{
			"$schema":  "http://json-schema.org/draft-07/schema#",
			"type":     "object",
			"required": []string{"name", "type", "value", "src"},
			"properties": map[string]interface{}{
				"name": map[string]interface{}{
					"type":      "string",
					"minLength": 1,
				},
				"type": map[string]interface{}{
					"type": "string",
					"enum": api.AccessoryTypes,
				},
				"value": map[string]interface{}{
					"type": "integer",
				},
				"src": map[string]interface{}{
					"type":      "string",
					"minLength": 1,
				},
			},
		},
	)

	taskSchemaLoader = gojsonschema.NewStringLoader(`{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["userId", "title"],
		"properties": {
			"userId": {"type": "string", "minLength": 1},
			"title": {"type": "string", "pattern": "\\S"},
			"description": {"type": "string"},
			"completed": {"type": "boolean"},
			"verified": {"type": "boolean"}
		}
	}`)

	presetMessageSchemaLoader = gojsonschema.NewStringLoader(`{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["message"],
		"properties": {
			"message": {"type": "string", "minLength": 1}
		}
	}`)

	userSchemaLoader = gojsonschema.NewStringLoader(`{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"properties": {
			"username": {"type": "string"},
			"code": {"type": "string"},
			"email": {"type": "string"},
			"points": {"type": "integer"}
		}
	}`)
)

// validate checks form against the schema behind schemaLoader. A violation
// is returned as an *ErrValidation carrying message.
func validate(
	schemaLoader gojsonschema.JSONLoader,
	form interface{},
	message string,
) error {
	formBytes, err := json.Marshal(form)
	if err != nil {
		return errors.Wrap(err, "error marshaling form")
	}
	validationResult, err := gojsonschema.Validate(
		schemaLoader,
		gojsonschema.NewBytesLoader(formBytes),
	)
	if err != nil {
		return errors.Wrap(err, "error validating form")
	}
	if !validationResult.Valid() {
		reasons := make([]string, len(validationResult.Errors()))
		for i, verr := range validationResult.Errors() {
			reasons[i] = verr.String()
		}
		return &ErrValidation{
			Message: message,
			Reasons: reasons,
		}
	}
	return nil
}

// invalid returns the Notification for a form that failed validation.
func invalid(err error) Notification {
	if verr, ok := errors.Cause(err).(*ErrValidation); ok {
		return Notification{
			Severity: SeverityError,
			Message:  verr.Message,
		}
	}
	return failed(err, "Erro ao validar o formulário.")
}
