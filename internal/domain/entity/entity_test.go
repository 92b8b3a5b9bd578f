package entity

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC)

func TestNewNote_TrimsAndStamps(t *testing.T) {
	n, err := NewNote("acme", "user-1", "  Title  ", "\n body \t", t0)
	require.NoError(t, err)

	assert.NotEmpty(t, n.ID)
	assert.Equal(t, "Title", n.Title)
	assert.Equal(t, "body", n.Content)
	assert.Equal(t, "acme", n.TenantSlug)
	assert.Equal(t, "user-1", n.AuthorID)
	assert.Equal(t, t0, n.CreatedAt)
	assert.Equal(t, n.CreatedAt, n.UpdatedAt)
}

func TestNewNote_UniqueIDs(t *testing.T) {
	a, err := NewNote("acme", "u", "a", "a", t0)
	require.NoError(t, err)
	b, err := NewNote("acme", "u", "b", "b", t0)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewNote_Validation(t *testing.T) {
	cases := []struct {
		name    string
		title   string
		content string
		field   string
	}{
		{"empty title", "", "body", "title"},
		{"blank title", "   ", "body", "title"},
		{"long title", strings.Repeat("x", TitleMaxLength+1), "body", "title"},
		{"empty content", "title", "", "content"},
		{"blank content", "title", "\n\t ", "content"},
		{"long content", "title", strings.Repeat("x", ContentMaxLength+1), "content"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewNote("acme", "u", tc.title, tc.content, t0)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, tc.field, verr.Field)
			assert.NotEmpty(t, verr.Constraint)
		})
	}
}

func TestNewNote_BoundsInclusive(t *testing.T) {
	_, err := NewNote("acme", "u", strings.Repeat("x", TitleMaxLength), strings.Repeat("y", ContentMaxLength), t0)
	assert.NoError(t, err)

	// trimming happens before the length check
	_, err = NewNote("acme", "u", " "+strings.Repeat("x", TitleMaxLength)+" ", "c", t0)
	assert.NoError(t, err)
}

func TestNoteApply(t *testing.T) {
	n, err := NewNote("acme", "u", "old", "old body", t0)
	require.NoError(t, err)
	id, created := n.ID, n.CreatedAt

	title := " new "
	require.NoError(t, n.Apply(&title, nil, t0.Add(time.Minute)))
	assert.Equal(t, "new", n.Title)
	assert.Equal(t, "old body", n.Content)
	assert.Equal(t, t0.Add(time.Minute), n.UpdatedAt)
	assert.Equal(t, created, n.CreatedAt)
	assert.Equal(t, id, n.ID)
}

func TestNoteApply_RejectsBeforeMutating(t *testing.T) {
	n, err := NewNote("acme", "u", "old", "old body", t0)
	require.NoError(t, err)

	title, content := "fine", ""
	err = n.Apply(&title, &content, t0.Add(time.Minute))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "content", verr.Field)
	assert.Equal(t, "old", n.Title)
	assert.Equal(t, t0, n.UpdatedAt)
}

func TestNoteApply_UpdatedAtMovesForward(t *testing.T) {
	n, err := NewNote("acme", "u", "t", "c", t0)
	require.NoError(t, err)

	require.NoError(t, n.Apply(nil, nil, t0))
	assert.True(t, n.UpdatedAt.After(n.CreatedAt))
}

func TestTenantUpgrade(t *testing.T) {
	tn := NewFreeTenant("acme", "Acme", t0)
	assert.Equal(t, PlanFree, tn.Plan)
	assert.Equal(t, FreeNoteLimit, tn.NoteLimit)
	assert.False(t, tn.IsUnlimited())

	require.True(t, tn.UpgradeToPro(t0.Add(time.Hour)))
	assert.Equal(t, PlanPro, tn.Plan)
	assert.Equal(t, Unlimited, tn.NoteLimit)
	assert.True(t, tn.IsUnlimited())
	require.NotNil(t, tn.UpgradedAt)
	assert.Equal(t, t0.Add(time.Hour), *tn.UpgradedAt)

	assert.False(t, tn.UpgradeToPro(t0.Add(2*time.Hour)))
	assert.Equal(t, t0.Add(time.Hour), *tn.UpgradedAt)
}

func TestParseRoleAndPlan(t *testing.T) {
	r, err := ParseRole("Admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)
	_, err = ParseRole("admin")
	assert.Error(t, err)

	p, err := ParsePlan("pro")
	require.NoError(t, err)
	assert.Equal(t, PlanPro, p)
	_, err = ParsePlan("enterprise")
	assert.Error(t, err)
}
