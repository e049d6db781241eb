package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEduEmail(t *testing.T) {
	cases := []struct {
		email string
		valid bool
	}{
		{"JWilliams@SmartUni.edu", true},
		{"m.kool@smart-uni.edu", true},
		{"student@dept.smartuni.edu", true},
		{"student@smartuni.com", false},
		{"student@smartuni.edu.com", false},
		{"not-an-email", false},
		{"@smartuni.edu", false},
		{"", false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.valid, ValidEduEmail(tc.email), tc.email)
	}
}

func TestResourceCheckoutLifecycle(t *testing.T) {
	r := Resource{ID: "B001", Name: "Advanced Java Programming", Type: "Book", Status: ResourceAvailable}

	assert.False(t, r.IsCheckedOut())

	r.CheckOut("S1001")
	assert.True(t, r.IsCheckedOut())
	assert.Equal(t, "Checked Out to S1001", r.Status)
	assert.Equal(t, "S1001", r.CheckedOutBy)

	r.Return()
	assert.False(t, r.IsCheckedOut())
	assert.Equal(t, ResourceAvailable, r.Status)
	assert.Empty(t, r.CheckedOutBy)

	// Returning an available resource stays a no-op.
	r.Return()
	assert.Equal(t, ResourceAvailable, r.Status)
}
