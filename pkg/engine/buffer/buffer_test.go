package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(t *testing.T, b *Buffer, word string) {
	t.Helper()
	for _, r := range word {
		require.NoError(t, b.SetRune(b.FirstBlank(), r))
	}
}

func TestNew_IsBlank(t *testing.T) {
	b := New()
	assert.Equal(t, "_______", b.Read())
	assert.True(t, b.Empty())
	assert.False(t, b.Full())
}

func TestFirstBlank_AfterClearAndFill(t *testing.T) {
	b := New()
	fill(t, b, "JACUZZI")
	assert.Equal(t, Size, b.FirstBlank())
	assert.True(t, b.Full())

	b.Clear()
	assert.Equal(t, 0, b.FirstBlank())
	assert.True(t, b.Empty())
}

func TestSet_IsIdempotentAndIsolated(t *testing.T) {
	b := New()
	fill(t, b, "ABC")
	before := b.Read()

	require.NoError(t, b.Set(5, "Q"))
	once := b.Read()
	require.NoError(t, b.Set(5, "Q"))
	assert.Equal(t, once, b.Read(), "Set(5, Q) twice should equal Set once")

	for i := 0; i < Size; i++ {
		if i == 5 {
			continue
		}
		assert.Equal(t, rune(before[i]), b.At(i), "slot %d changed", i)
	}
}

func TestSet_RejectsBadWrites(t *testing.T) {
	cases := []struct {
		name  string
		pos   int
		value string
		want  error
	}{
		{"negative position", -1, "A", ErrPosition},
		{"position past end", Size, "A", ErrPosition},
		{"two characters", 0, "AB", ErrValue},
		{"empty value", 0, "", ErrValue},
		{"lowercase", 0, "a", ErrValue},
		{"digit", 0, "7", ErrValue},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := New()
			fill(t, b, "XY")
			before := b.Read()
			err := b.Set(tc.pos, tc.value)
			require.ErrorIs(t, err, tc.want)
			assert.Equal(t, before, b.Read(), "failed write must not mutate")
		})
	}
}

func TestSet_BlankDeletesAtSlot(t *testing.T) {
	b := New()
	fill(t, b, "CAT")
	require.NoError(t, b.Set(b.FirstBlank()-1, string(Blank)))
	assert.Equal(t, "CA_____", b.Read())
	assert.Equal(t, 2, b.FirstBlank())
}

func TestCountAndLetters(t *testing.T) {
	b := New()
	fill(t, b, "ZZI")
	assert.Equal(t, 2, b.Count('Z'))
	assert.Equal(t, 0, b.Count('Q'))
	assert.Equal(t, "ZZI", b.Letters())
}
