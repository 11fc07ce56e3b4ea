package cartline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampQuantity(t *testing.T) {
	tests := []struct {
		name string
		in   int
		want int
	}{
		{name: "below minimum", in: 0, want: 1},
		{name: "negative", in: -3, want: 1},
		{name: "minimum", in: 1, want: 1},
		{name: "in range", in: 3, want: 3},
		{name: "maximum", in: 5, want: 5},
		{name: "above maximum", in: 9, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampQuantity(tt.in))
		})
	}
}
