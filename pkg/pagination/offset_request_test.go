package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffsetRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		ceiling int
		wantErr bool
	}{
		{name: "default size", size: DefaultBatchSize, ceiling: MaxResultWindow},
		{name: "size equal to ceiling", size: MaxResultWindow, ceiling: MaxResultWindow},
		{name: "zero size", size: 0, ceiling: MaxResultWindow, wantErr: true},
		{name: "negative size", size: -5, ceiling: MaxResultWindow, wantErr: true},
		{name: "size above ceiling", size: MaxResultWindow + 1, ceiling: MaxResultWindow, wantErr: true},
		{name: "zero ceiling", size: 10, ceiling: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewOffsetRequest(tt.size).Validate(tt.ceiling)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOffsetRequest_Walk(t *testing.T) {
	r := NewOffsetRequest(4000)
	var froms []int
	for r.Fits(MaxResultWindow) {
		froms = append(froms, r.From)
		r = r.Next()
	}

	assert.Equal(t, []int{0, 4000}, froms)
	assert.Equal(t, 8000, r.From)
	assert.False(t, r.Fits(MaxResultWindow))
}

func TestOffsetRequest_FitsAtBoundary(t *testing.T) {
	assert.True(t, OffsetRequest{From: 9_000, Size: 1_000}.Fits(MaxResultWindow))
	assert.False(t, OffsetRequest{From: 9_001, Size: 1_000}.Fits(MaxResultWindow))
}
