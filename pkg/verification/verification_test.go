package verification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCodeFormat(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateCode()
		assert.Len(t, code, CodeLength)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit %q", code, r)
		}
	}
}

func TestGenerateCodeVaries(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		seen[GenerateCode()] = struct{}{}
	}
	assert.Greater(t, len(seen), 1, "50 draws produced a single code")
}
