package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	MeetingType string `json:"meetingType" validate:"notblank,max=30"`
	InputType   *int   `json:"inputType" validate:"required,min=0,max=2"`
}

func intPtr(v int) *int { return &v }

func TestValidate_Messages(t *testing.T) {
	v := New()

	tests := []struct {
		name    string
		input   sample
		wantMsg string
	}{
		{"blank meeting type", sample{MeetingType: "   ", InputType: intPtr(0)}, "meetingType is required"},
		{"long meeting type", sample{MeetingType: strings.Repeat("a", 31), InputType: intPtr(0)}, "meetingType must be 30 characters or less"},
		{"missing input type", sample{MeetingType: "standup"}, "inputType is required"},
		{"input type out of range", sample{MeetingType: "standup", InputType: intPtr(3)}, "inputType is invalid"},
		{"negative input type", sample{MeetingType: "standup", InputType: intPtr(-1)}, "inputType is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantMsg, Message(err))
		})
	}
}

func TestValidate_Accepts(t *testing.T) {
	v := New()

	assert.NoError(t, v.Validate(sample{MeetingType: strings.Repeat("a", 30), InputType: intPtr(0)}))
	assert.NoError(t, v.Validate(sample{MeetingType: "retro", InputType: intPtr(2)}))
}

func TestMessage_NonValidationError(t *testing.T) {
	assert.Equal(t, "plain", Message(errors.New("plain")))
}
