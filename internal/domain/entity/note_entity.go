package entity

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/multitenant-notes/pkg/validation"
)

const (
	TitleMaxLength   = 200
	ContentMaxLength = 50000
)

var (
	titleRule   = "required,max=" + strconv.Itoa(TitleMaxLength)
	contentRule = "required,max=" + strconv.Itoa(ContentMaxLength)
)

// ValidationError reports a note field that violates its constraint.
type ValidationError struct {
	Field      string
	Constraint string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Constraint
}

// Note belongs to one tenant for its whole life. ID and TenantSlug never change;
// updates touch Title, Content and UpdatedAt only.
type Note struct {
	ID         string
	Title      string
	Content    string
	TenantSlug string
	AuthorID   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewNote validates the trimmed title and content and builds a note with a fresh id.
func NewNote(tenantSlug, authorID, title, content string, now time.Time) (*Note, error) {
	t, err := NormalizeTitle(title)
	if err != nil {
		return nil, err
	}
	c, err := NormalizeContent(content)
	if err != nil {
		return nil, err
	}
	return &Note{
		ID:         uuid.NewString(),
		Title:      t,
		Content:    c,
		TenantSlug: tenantSlug,
		AuthorID:   authorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// NormalizeTitle trims surrounding whitespace and checks the title bounds.
func NormalizeTitle(title string) (string, error) {
	return normalize("title", title, titleRule)
}

// NormalizeContent trims surrounding whitespace and checks the content bounds.
func NormalizeContent(content string) (string, error) {
	return normalize("content", content, contentRule)
}

func normalize(field, value, rule string) (string, error) {
	v := strings.TrimSpace(value)
	if reason := validation.Var(v, rule); reason != "" {
		return "", &ValidationError{Field: field, Constraint: reason}
	}
	return v, nil
}

// Apply validates every provided field before changing anything, then updates
// them and moves UpdatedAt forward. A nil field is left as is.
func (n *Note) Apply(title, content *string, now time.Time) error {
	newTitle, newContent := n.Title, n.Content
	if title != nil {
		t, err := NormalizeTitle(*title)
		if err != nil {
			return err
		}
		newTitle = t
	}
	if content != nil {
		c, err := NormalizeContent(*content)
		if err != nil {
			return err
		}
		newContent = c
	}
	n.Title = newTitle
	n.Content = newContent
	if !now.After(n.UpdatedAt) {
		now = n.UpdatedAt.Add(time.Nanosecond)
	}
	n.UpdatedAt = now
	return nil
}
