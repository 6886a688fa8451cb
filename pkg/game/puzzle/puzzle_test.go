package puzzle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_SparseLookup(t *testing.T) {
	r, err := NewRegistry(
		Descriptor{Index: 14, Title: "b", New: Plain()},
		Descriptor{Index: 1, Title: "a", Answer: "JACUZZI", New: Plain("x")},
	)
	require.NoError(t, err)

	_, ok := r.Lookup(13)
	assert.False(t, ok, "gap index must not be registered")

	d, ok := r.Lookup(1)
	require.True(t, ok)
	assert.Equal(t, "JACUZZI", d.Answer)
	assert.Equal(t, []int{1, 14}, r.Indices())
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_Rejects(t *testing.T) {
	tests := []struct {
		name string
		ds   []Descriptor
	}{
		{"duplicate", []Descriptor{{Index: 1, New: Plain()}, {Index: 1, New: Plain()}}},
		{"short answer", []Descriptor{{Index: 1, Answer: "ABC", New: Plain()}}},
		{"lowercase answer", []Descriptor{{Index: 1, Answer: "jacuzzi", New: Plain()}}},
		{"digit answer", []Descriptor{{Index: 1, Answer: "JACUZZ1", New: Plain()}}},
		{"no factory", []Descriptor{{Index: 1}}},
		{"negative", []Descriptor{{Index: -1, New: Plain()}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.ds...)
			assert.Error(t, err)
		})
	}
}

func TestPlain_FreshScenePerActivation(t *testing.T) {
	f := Plain("line")
	s1 := f().Init(nil)
	s1.Lines[0] = "changed"
	s2 := f().Init(nil)
	assert.Equal(t, "line", s2.Lines[0])
}
