package internal

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady is returned by store mutations before Load has completed.
	ErrNotReady = errors.New("session store not loaded")
	// ErrAlreadyLoaded is returned when Load is called a second time.
	ErrAlreadyLoaded = errors.New("session store already loaded")
	// ErrEmptyMessage marks a send with no text and no attachments; nothing was changed.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrSessionNotFound is returned by lookups for an unknown session id.
	ErrSessionNotFound = errors.New("session not found")
	// ErrAttachmentNotAllowed is returned for files outside the picker's MIME filter.
	ErrAttachmentNotAllowed = errors.New("attachment type not allowed")
)

// APIError represents a non-2xx answer from the chat backend
type APIError struct {
	Op     string // "history", "send", "upload", "profile"
	Status int
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("api error [%s]: status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("api error [%s]: status %d: %s", e.Op, e.Status, e.Body)
}

// UploadError represents a failed attachment upload
type UploadError struct {
	Name string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload error %s: %v", e.Name, e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}

// PreferenceError represents errors reading or writing local preferences
type PreferenceError struct {
	Key string
	Op  string // "get", "set", "delete"
	Err error
}

func (e *PreferenceError) Error() string {
	return fmt.Sprintf("preference error: %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *PreferenceError) Unwrap() error {
	return e.Err
}

// ConfigError represents an invalid configuration value
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error [%s]: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ExportError represents errors during export
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
