package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyHighPriorityTypes(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	for _, inquiryType := range []string{"quote", "enquiry", "consultation"} {
		c := &Contact{InquiryType: inquiryType}
		c.Classify(now)

		assert.Equal(t, PriorityHigh, c.Priority, "type %s", inquiryType)
		assert.Equal(t, now.Add(24*time.Hour), c.FollowUpDate, "type %s", inquiryType)
	}
}

func TestClassifyDefaultPriority(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	for _, inquiryType := range []string{"general", "samples", ""} {
		c := &Contact{InquiryType: inquiryType}
		c.Classify(now)

		assert.Equal(t, PriorityMedium, c.Priority, "type %s", inquiryType)
		assert.Equal(t, now.Add(48*time.Hour), c.FollowUpDate, "type %s", inquiryType)
	}
}

func TestClassifyKeepsExistingFollowUp(t *testing.T) {
	now := time.Now()
	existing := now.Add(72 * time.Hour)
	c := &Contact{InquiryType: "quote", FollowUpDate: existing}
	c.Classify(now)

	assert.Equal(t, existing, c.FollowUpDate)
	assert.Equal(t, PriorityHigh, c.Priority)
}

func TestValidInquiryType(t *testing.T) {
	for _, inquiryType := range InquiryTypes {
		assert.True(t, ValidInquiryType(inquiryType))
	}
	assert.False(t, ValidInquiryType("complaint"))
	assert.False(t, ValidInquiryType(""))
}
