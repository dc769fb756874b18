package collaboration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func approval(approved bool) *ApprovalResponse {
	return &ApprovalResponse{IsApproved: approved}
}

func TestResolveApproval(t *testing.T) {
	tests := []struct {
		name      string
		required  int
		responses []*ApprovalResponse
		want      ApprovalStatus
	}{
		{
			name:      "no responses stays pending",
			required:  2,
			responses: nil,
			want:      ApprovalPending,
		},
		{
			name:      "below quorum stays pending",
			required:  2,
			responses: []*ApprovalResponse{approval(true)},
			want:      ApprovalPending,
		},
		{
			name:      "quorum reached approves",
			required:  2,
			responses: []*ApprovalResponse{approval(true), approval(true)},
			want:      ApprovalApproved,
		},
		{
			name:      "single rejection rejects",
			required:  2,
			responses: []*ApprovalResponse{approval(true), approval(false)},
			want:      ApprovalRejected,
		},
		{
			name:      "quorum wins over a rejection",
			required:  1,
			responses: []*ApprovalResponse{approval(true), approval(false)},
			want:      ApprovalApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveApproval(tt.required, tt.responses))
		})
	}
}

func TestClampRequiredApprovers(t *testing.T) {
	assert.Equal(t, 2, clampRequiredApprovers(2, 3))
	assert.Equal(t, 3, clampRequiredApprovers(5, 3))
	assert.Equal(t, 1, clampRequiredApprovers(0, 3))
	assert.Equal(t, 1, clampRequiredApprovers(-1, 3))
}

func TestIsApprover(t *testing.T) {
	ids := []int64{3, 7, 12}
	assert.True(t, isApprover(ids, 7))
	assert.False(t, isApprover(ids, 8))
	assert.False(t, isApprover(nil, 1))
}

func TestValidateVoteOptions(t *testing.T) {
	options := []string{"PostgreSQL", "MySQL", "SQLite"}

	tests := []struct {
		name     string
		selected []string
		want     bool
	}{
		{"single known option", []string{"MySQL"}, true},
		{"multiple known options", []string{"PostgreSQL", "SQLite"}, true},
		{"unknown option", []string{"MongoDB"}, false},
		{"mixed known and unknown", []string{"MySQL", "MongoDB"}, false},
		{"empty selection", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validateVoteOptions(options, tt.selected))
		})
	}
}

func TestTallyVotes(t *testing.T) {
	votes := []*DecisionVote{
		{SelectedOptions: []string{"A"}},
		{SelectedOptions: []string{"A", "B"}},
		{SelectedOptions: []string{"B"}},
	}

	counts := tallyVotes(votes)
	assert.Equal(t, map[string]int{"A": 2, "B": 2}, counts)
	assert.Empty(t, tallyVotes(nil))
}
