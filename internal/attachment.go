package internal

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultAttachmentType is used when a file's type cannot be determined
const DefaultAttachmentType = "application/octet-stream"

// AttachmentKind groups MIME types for rendering
type AttachmentKind string

const (
	KindImage AttachmentKind = "image"
	KindPDF   AttachmentKind = "pdf"
	KindText  AttachmentKind = "text"
	KindOther AttachmentKind = "file"
)

// allowedAttachmentTypes mirrors the document picker filter
var allowedAttachmentTypes = []string{"image/*", "application/pdf", "text/*"}

// AttachmentFromPath builds an attachment descriptor for a local file.
// The MIME type is sniffed from the content.
func AttachmentFromPath(path string) (Attachment, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to resolve attachment path: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Attachment{}, fmt.Errorf("failed to stat attachment: %w", err)
	}
	if info.IsDir() {
		return Attachment{}, fmt.Errorf("attachment %s is a directory", path)
	}

	mt, err := mimetype.DetectFile(abs)
	contentType := DefaultAttachmentType
	if err == nil && mt != nil {
		contentType = mt.String()
	} else {
		LogDebug("MIME detection failed for %s: %v", abs, err)
	}

	return Attachment{
		Name: filepath.Base(abs),
		Type: contentType,
		URI:  abs,
	}, nil
}

// AllowedAttachment reports whether the MIME type passes the picker filter
func AllowedAttachment(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	for _, pattern := range allowedAttachmentTypes {
		if strings.HasSuffix(pattern, "/*") {
			if strings.HasPrefix(mediaType, strings.TrimSuffix(pattern, "*")) {
				return true
			}
			continue
		}
		if mediaType == pattern {
			return true
		}
	}
	return false
}

// PickAttachments resolves paths into attachments, rejecting types outside the filter
func PickAttachments(paths []string) ([]Attachment, error) {
	attachments := make([]Attachment, 0, len(paths))
	for _, p := range paths {
		a, err := AttachmentFromPath(p)
		if err != nil {
			return nil, err
		}
		if !AllowedAttachment(a.Type) {
			return nil, fmt.Errorf("%s (%s): %w", a.Name, a.Type, ErrAttachmentNotAllowed)
		}
		attachments = append(attachments, a)
	}
	return attachments, nil
}

// Kind classifies the attachment for display
func (a Attachment) Kind() AttachmentKind {
	mediaType, _, err := mime.ParseMediaType(a.Type)
	if err != nil {
		mediaType = a.Type
	}
	switch {
	case strings.HasPrefix(mediaType, "image/"):
		return KindImage
	case mediaType == "application/pdf":
		return KindPDF
	case strings.HasPrefix(mediaType, "text/"):
		return KindText
	default:
		return KindOther
	}
}
