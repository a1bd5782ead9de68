package schemaops

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSchemaName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"\t\n", ""},
		{"public", "public"},
		{"  sales ", "sales"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, NormalizeSchemaName(tc.in))
	}
}
