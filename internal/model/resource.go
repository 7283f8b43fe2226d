package model

import (
	"strings"
	"time"
)

// ResourceType classifies a resource by its original MIME type.
type ResourceType string

const (
	ResourceDocument ResourceType = "document"
	ResourceImage    ResourceType = "image"
	ResourceOther    ResourceType = "other"
)

// Resource is an uploaded file stored inline as an encoded text blob.
type Resource struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Type        ResourceType `json:"type"`
	Description string       `json:"description,omitempty"`
	// Content holds the file payload as a self-describing data URI.
	Content   string    `json:"content"`
	Size      int64     `json:"size"`
	Mimetype  string    `json:"mimetype"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Resource) EntityID() string { return r.ID }

func (r *Resource) Stamp(id string, createdAt time.Time) {
	r.ID = id
	r.CreatedAt = createdAt
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = createdAt
	}
}

// TypeFromMIME derives the resource classification from a MIME string.
// Images map to ResourceImage, text and common document formats to
// ResourceDocument, anything unrecognized to ResourceOther.
func TypeFromMIME(mimetype string) ResourceType {
	mt := strings.ToLower(strings.TrimSpace(mimetype))
	if i := strings.IndexByte(mt, ';'); i >= 0 {
		mt = strings.TrimSpace(mt[:i])
	}
	switch {
	case strings.HasPrefix(mt, "image/"):
		return ResourceImage
	case strings.HasPrefix(mt, "text/"):
		return ResourceDocument
	case mt == "application/pdf",
		mt == "application/rtf",
		mt == "application/msword",
		mt == "application/vnd.ms-excel",
		mt == "application/vnd.ms-powerpoint",
		strings.HasPrefix(mt, "application/vnd.openxmlformats-officedocument."),
		strings.HasPrefix(mt, "application/vnd.oasis.opendocument."):
		return ResourceDocument
	default:
		return ResourceOther
	}
}

// NormalizeTags trims every tag, drops blanks and removes duplicates of the
// same trimmed value, preserving first-seen order. Case is preserved.
func NormalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// ResourcePatch is a partial resource update. Nil fields are left untouched;
// a non-nil Tags slice replaces the stored tag set.
type ResourcePatch struct {
	Name        *string       `json:"name,omitempty"`
	Description *string       `json:"description,omitempty"`
	Content     *string       `json:"content,omitempty"`
	Size        *int64        `json:"size,omitempty"`
	Mimetype    *string       `json:"mimetype,omitempty"`
	Type        *ResourceType `json:"type,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
	UpdatedAt   *time.Time    `json:"updatedAt,omitempty"`
}

// Apply merges the set fields over r.
func (p ResourcePatch) Apply(r *Resource) {
	if p.Name != nil {
		r.Name = *p.Name
	}
	if p.Description != nil {
		r.Description = *p.Description
	}
	if p.Content != nil {
		r.Content = *p.Content
	}
	if p.Size != nil {
		r.Size = *p.Size
	}
	if p.Mimetype != nil {
		r.Mimetype = *p.Mimetype
	}
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Tags != nil {
		r.Tags = p.Tags
	}
	if p.UpdatedAt != nil {
		r.UpdatedAt = *p.UpdatedAt
	}
}
