package bitable

import (
	"encoding/json"
	"strconv"
)

// Fields maps a field name to its value. Values are passed through to the
// server without interpretation.
type Fields map[string]any

// FieldType identifies the kind of a Bitable field.
type FieldType int

// Field types understood by Bitable.
const (
	FieldTypeText         FieldType = 1
	FieldTypeNumber       FieldType = 2
	FieldTypeSingleSelect FieldType = 3
	FieldTypeMultiSelect  FieldType = 4
	FieldTypeDateTime     FieldType = 5
	FieldTypeCheckbox     FieldType = 7
	FieldTypeUser         FieldType = 11
	FieldTypePhoneNumber  FieldType = 13
	FieldTypeURL          FieldType = 15
	FieldTypeAttachment   FieldType = 17
	FieldTypeLink         FieldType = 18
	FieldTypeFormula      FieldType = 20
	FieldTypeCreatedTime  FieldType = 1001
	FieldTypeModifiedTime FieldType = 1002
	FieldTypeCreatedUser  FieldType = 1003
	FieldTypeModifiedUser FieldType = 1004
	FieldTypeAutoNumber   FieldType = 1005
)

var fieldTypeNames = map[FieldType]string{
	FieldTypeText:         "text",
	FieldTypeNumber:       "number",
	FieldTypeSingleSelect: "single_select",
	FieldTypeMultiSelect:  "multi_select",
	FieldTypeDateTime:     "date_time",
	FieldTypeCheckbox:     "checkbox",
	FieldTypeUser:         "user",
	FieldTypePhoneNumber:  "phone_number",
	FieldTypeURL:          "url",
	FieldTypeAttachment:   "attachment",
	FieldTypeLink:         "link",
	FieldTypeFormula:      "formula",
	FieldTypeCreatedTime:  "created_time",
	FieldTypeModifiedTime: "modified_time",
	FieldTypeCreatedUser:  "created_user",
	FieldTypeModifiedUser: "modified_user",
	FieldTypeAutoNumber:   "auto_number",
}

// String returns the symbolic name, or the number for unknown types.
func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}

	return strconv.Itoa(int(t))
}

// ParseFieldType accepts either a symbolic name or a number.
func ParseFieldType(value string) (FieldType, bool) {
	for fieldType, name := range fieldTypeNames {
		if name == value {
			return fieldType, true
		}
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, false
	}

	return FieldType(n), true
}

// Table represents a table inside a Bitable app.
type Table struct {
	TableID  string `json:"table_id"           yaml:"table_id"`
	Revision int    `json:"revision,omitempty" yaml:"revision,omitempty"`
	Name     string `json:"name"               yaml:"name"`
}

// Field represents a column definition.
type Field struct {
	FieldID     string          `json:"field_id"              yaml:"field_id"`
	FieldName   string          `json:"field_name"            yaml:"field_name"`
	Type        FieldType       `json:"type"                  yaml:"type"`
	Property    map[string]any  `json:"property,omitempty"    yaml:"property,omitempty"`
	IsPrimary   bool            `json:"is_primary,omitempty"  yaml:"is_primary,omitempty"`
	Description json.RawMessage `json:"description,omitempty" yaml:"-"`
}

// Record represents a row.
type Record struct {
	RecordID string `json:"record_id,omitempty" yaml:"record_id,omitempty"`
	Fields   Fields `json:"fields"              yaml:"fields"`
}

// ListOptions carries the pagination query parameters of list endpoints.
type ListOptions struct {
	PageSize  int
	PageToken string
}

// ListResponse represents one page of a list endpoint.
type ListResponse[T any] struct {
	Items     []T    `json:"items"                yaml:"items"`
	HasMore   bool   `json:"has_more"             yaml:"has_more"`
	PageToken string `json:"page_token,omitempty" yaml:"page_token,omitempty"`
	Total     int    `json:"total,omitempty"      yaml:"total,omitempty"`
}

// TableCreateRequest is the body of a table create call.
type TableCreateRequest struct {
	Table TableSpec `json:"table"`
}

// TableSpec names a table to create.
type TableSpec struct {
	Name string `json:"name"`
}

// FieldCreateRequest describes a field to create. Property holds type
// specific settings such as select options or the linked table.
type FieldCreateRequest struct {
	FieldName string         `json:"field_name"`
	Type      FieldType      `json:"type"`
	Property  map[string]any `json:"property,omitempty"`
}
