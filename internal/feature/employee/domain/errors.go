// Package domain defines domain-level errors for the employee feature.
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrEmployeeNotFound indicates that no employee exists with the given id.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrNIPAlreadyExists is returned by storage when the nip unique constraint
	// rejects a write.
	ErrNIPAlreadyExists = errors.New("nip already exists")
)

// Caller-facing messages for denied operations.
const (
	MsgViewForbidden   = "Anda tidak memiliki akses untuk melihat data pegawai."
	MsgCreateForbidden = "Anda tidak memiliki akses untuk menambah data pegawai."
	MsgEditForbidden   = "Anda tidak memiliki akses untuk mengedit data pegawai."
	MsgDeleteForbidden = "Anda tidak memiliki akses untuk menghapus data pegawai."
)

// MsgNIPTaken is the field message for a duplicate nip.
const MsgNIPTaken = "NIP sudah terdaftar untuk pegawai lain."

// ValidationError holds field-keyed, human readable messages.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns an empty ValidationError ready for Add.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// Add appends msg to field.
func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

// Has reports whether field already has a message.
func (e *ValidationError) Has(field string) bool {
	return len(e.Fields[field]) > 0
}

// Empty reports whether no field failed.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// First returns the first message in field order, or "".
func (e *ValidationError) First() string {
	keys := e.keys()
	if len(keys) == 0 {
		return ""
	}
	return e.Fields[keys[0]][0]
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, k := range e.keys() {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e.Fields[k], " ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) keys() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
