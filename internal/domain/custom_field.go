package domain

import (
	"strings"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/task-tracker/pkg/util"
)

// CustomFieldType enumerates the value types a project-defined field can
// hold.
type CustomFieldType string

const (
	FieldTypeText     CustomFieldType = "TEXT"
	FieldTypeNumber   CustomFieldType = "NUMBER"
	FieldTypeDate     CustomFieldType = "DATE"
	FieldTypeBoolean  CustomFieldType = "BOOLEAN"
	FieldTypeSelect   CustomFieldType = "SELECT"
	FieldTypeMulti    CustomFieldType = "MULTI_SELECT"
	FieldTypeUserLink CustomFieldType = "USER"
)

// CustomFieldDefinition is a project-scoped field schema. Options holds the
// choices for select types as a JSON array.
type CustomFieldDefinition struct {
	ID         uuid.UUID
	ProjectID  uuid.UUID
	Name       string
	FieldType  CustomFieldType
	IsRequired bool
	Options    string
	Order      int
	Audit
}

// NewCustomFieldDefinition creates a field schema for the given project.
func NewCustomFieldDefinition(project *Project, name string, fieldType CustomFieldType, isRequired bool, options string, order int, createdBy uuid.UUID) (*CustomFieldDefinition, error) {
	if strings.TrimSpace(name) == "" {
		return nil, apperrors.NewValidationError("custom field name cannot be empty", nil)
	}
	if len(name) > 100 {
		return nil, apperrors.NewValidationError("custom field name cannot exceed 100 characters", nil)
	}
	if (fieldType == FieldTypeSelect || fieldType == FieldTypeMulti) && strings.TrimSpace(options) == "" {
		return nil, apperrors.NewValidationError("select fields require at least one option", nil)
	}

	field := &CustomFieldDefinition{
		ID:         uuid.New(),
		ProjectID:  project.ID,
		Name:       strings.TrimSpace(name),
		FieldType:  fieldType,
		IsRequired: isRequired,
		Options:    options,
		Order:      order,
	}
	field.SetCreated(createdBy)
	return field, nil
}

// Update changes mutable field attributes. The value type is immutable once
// created.
func (f *CustomFieldDefinition) Update(name string, isRequired bool, options string, order int, updatedBy uuid.UUID) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError("custom field name cannot be empty", nil)
	}
	if len(name) > 100 {
		return apperrors.NewValidationError("custom field name cannot exceed 100 characters", nil)
	}

	f.Name = strings.TrimSpace(name)
	f.IsRequired = isRequired
	f.Options = options
	f.Order = order
	f.SetUpdated(updatedBy)
	return nil
}
