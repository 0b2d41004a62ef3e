package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeParamsHash(t *testing.T) {
	a := ComputeParamsHash(map[string]interface{}{"strategy": "gsr", "seed": int64(7), "deck": 52})
	b := ComputeParamsHash(map[string]interface{}{"deck": 52, "seed": int64(7), "strategy": "gsr"})
	c := ComputeParamsHash(map[string]interface{}{"deck": 52, "seed": int64(8), "strategy": "gsr"})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a.String(), 64)
	assert.Len(t, a.Short(), 12)
	assert.False(t, a.IsEmpty())
	assert.True(t, Hash("").IsEmpty())
}
