package internal

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/mosje-chat/testutil"
)

func TestAttachmentFromPath(t *testing.T) {
	dir := testutil.CreateTempDir(t)

	tests := []struct {
		name     string
		file     string
		content  []byte
		wantType string
	}{
		{name: "png image", file: "photo.bin", content: testutil.PNGHeader, wantType: "image/png"},
		{name: "plain text", file: "notes.txt", content: []byte("hello world\n"), wantType: "text/plain"},
		{name: "pdf", file: "doc.pdf", content: []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"), wantType: "application/pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := testutil.WriteAttachment(t, dir, tt.file, tt.content)
			a, err := AttachmentFromPath(path)
			if err != nil {
				t.Fatalf("AttachmentFromPath() error = %v", err)
			}
			if a.Name != tt.file {
				t.Errorf("Name = %q, want %q", a.Name, tt.file)
			}
			if !strings.HasPrefix(a.Type, tt.wantType) {
				t.Errorf("Type = %q, want prefix %q", a.Type, tt.wantType)
			}
			if !filepath.IsAbs(a.URI) {
				t.Errorf("URI = %q, want an absolute path", a.URI)
			}
		})
	}
}

func TestAttachmentFromPath_Errors(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	if _, err := AttachmentFromPath(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := AttachmentFromPath(dir); err == nil {
		t.Error("directory should fail")
	}
}

func TestAllowedAttachment(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"image/png", true},
		{"image/jpeg", true},
		{"application/pdf", true},
		{"text/plain; charset=utf-8", true},
		{"application/zip", false},
		{"application/octet-stream", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			if got := AllowedAttachment(tt.contentType); got != tt.want {
				t.Errorf("AllowedAttachment(%q) = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}

func TestPickAttachments(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	img := testutil.WriteAttachment(t, dir, "a.png", testutil.PNGHeader)
	txt := testutil.WriteAttachment(t, dir, "b.txt", []byte("text body\n"))
	zip := testutil.WriteAttachment(t, dir, "c.zip", []byte("PK\x03\x04\x14\x00\x00\x00\x00\x00"))

	got, err := PickAttachments([]string{img, txt})
	if err != nil {
		t.Fatalf("PickAttachments() error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "a.png" || got[1].Name != "b.txt" {
		t.Errorf("PickAttachments() = %+v", got)
	}

	if _, err := PickAttachments([]string{img, zip}); !errors.Is(err, ErrAttachmentNotAllowed) {
		t.Errorf("PickAttachments(zip) error = %v, want ErrAttachmentNotAllowed", err)
	}
}

func TestAttachmentKind(t *testing.T) {
	tests := []struct {
		contentType string
		want        AttachmentKind
	}{
		{"image/gif", KindImage},
		{"application/pdf", KindPDF},
		{"text/markdown; charset=utf-8", KindText},
		{"application/zip", KindOther},
		{"", KindOther},
	}
	for _, tt := range tests {
		if got := (Attachment{Type: tt.contentType}).Kind(); got != tt.want {
			t.Errorf("Kind(%q) = %s, want %s", tt.contentType, got, tt.want)
		}
	}
}
