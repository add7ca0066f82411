package ecs_test

import (
	"fmt"
	"testing"

	"github.com/plus3/worldkit/ecs"
	"github.com/stretchr/testify/assert"
)

func TestEntityEncoding(t *testing.T) {
	index := uint32(67890)
	generation := uint32(12345)

	e := ecs.NewEntity(index, generation)

	assert.Equal(t, index, e.Index())
	assert.Equal(t, generation, e.Generation())
}

func TestEntityEncodingEdgeCases(t *testing.T) {
	tests := []struct {
		index      uint32
		generation uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x9ABCDEF0, 0x12345678},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("index=%d,generation=%d", tt.index, tt.generation), func(t *testing.T) {
			e := ecs.NewEntity(tt.index, tt.generation)
			assert.Equal(t, tt.index, e.Index())
			assert.Equal(t, tt.generation, e.Generation())
		})
	}
}

func TestEntityEqualityNeedsBothParts(t *testing.T) {
	a := ecs.NewEntity(5, 0)
	b := ecs.NewEntity(5, 1)

	// Same slot, different generation: distinct handles.
	assert.NotEqual(t, a, b)
	assert.Equal(t, a.Index(), b.Index())
}

func TestEntityString(t *testing.T) {
	e := ecs.NewEntity(7, 3)
	assert.Equal(t, "e7v3", e.String())
}
