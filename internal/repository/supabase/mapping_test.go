package supabase

import (
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
)

func TestParseTimestamp(t *testing.T) {
	testCases := []struct {
		name  string
		input *string
		want  time.Time
	}{
		{
			name:  "rfc3339",
			input: lo.ToPtr("2024-01-05T10:30:00Z"),
			want:  time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 with offset",
			input: lo.ToPtr("2024-01-05T10:30:00+05:30"),
			want:  time.Date(2024, 1, 5, 5, 0, 0, 0, time.UTC),
		},
		{
			name:  "date only",
			input: lo.ToPtr("2024-01-05"),
			want:  time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "missing",
			input: nil,
			want:  time.Time{},
		},
		{
			name:  "malformed",
			input: lo.ToPtr("05/01/2024"),
			want:  time.Time{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, parseTimestamp(tc.input).Equal(tc.want))
		})
	}
}

func TestMembershipRowToDomain(t *testing.T) {
	row := membershipRow{
		ID:          "membership_1",
		MemberID:    lo.ToPtr("member_1"),
		PackageName: lo.ToPtr("Gold"),
		Status:      lo.ToPtr("active"),
		Price:       lo.ToPtr(49.99),
		TenantID:    "tenant_1",
		CreatedAt:   lo.ToPtr("2024-01-05T10:30:00Z"),
	}

	m := row.toDomain()
	assert.Equal(t, "membership_1", m.ID)
	assert.Equal(t, "Gold", m.PackageName)
	assert.Equal(t, "active", m.MembershipStatus)
	assert.Equal(t, "49.99", m.Price.String())
	assert.Equal(t, "tenant_1", m.TenantID)
	assert.False(t, m.CreatedAt.IsZero())
}

func TestMembershipRowToDomainNullColumns(t *testing.T) {
	row := membershipRow{ID: "membership_1", TenantID: "tenant_1"}

	m := row.toDomain()
	assert.Empty(t, m.PackageName)
	assert.Empty(t, m.MembershipStatus)
	assert.True(t, m.Price.IsZero())
	assert.True(t, m.CreatedAt.IsZero())

	// Normalization fills the sentinel labels before aggregation
	n := m.Normalized()
	assert.Equal(t, "Unknown", n.PackageName)
	assert.Equal(t, "Unknown", n.MembershipStatus)
}

func TestParseContentRangeTotal(t *testing.T) {
	total, err := parseContentRangeTotal("0-24/137")
	assert.NoError(t, err)
	assert.Equal(t, 137, total)

	total, err = parseContentRangeTotal("*/0")
	assert.NoError(t, err)
	assert.Equal(t, 0, total)

	_, err = parseContentRangeTotal("garbage")
	assert.Error(t, err)
}
