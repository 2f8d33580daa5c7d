package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"rosapi/internal/model"
)

var errEmptyROS = errors.New("ros content is empty")

// checkContent parses the ROS JSON and applies the struct rules on model.ROSContent.
// The wrapper's schemaVersion is used when the document does not carry one.
func (s *rosService) checkContent(w *model.ROSWrapper) error {
	if strings.TrimSpace(w.ROS) == "" {
		return errEmptyROS
	}

	var content model.ROSContent
	if err := json.Unmarshal([]byte(w.ROS), &content); err != nil {
		return fmt.Errorf("not valid JSON: %w", err)
	}
	if content.SchemaVersion == "" {
		content.SchemaVersion = w.SchemaVersion
	}

	err := s.validate.Struct(content)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Namespace(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
