package progress

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"secretcode/pkg/engine/storage"
)

func TestLoad_AbsentIsDefault(t *testing.T) {
	s, err := Load(context.Background(), storage.NewMemory(0), nil)
	require.NoError(t, err)
	assert.Equal(t, Record{}, s.Record())
}

func TestLoad_MalformedIsDefault(t *testing.T) {
	blobs := map[string]string{
		"not json":       `{"completed": [1, 2`,
		"missing field":  `{"hard_mode": 0}`,
		"wrong length":   `{"completed": [1, 0, 0]}`,
		"non number":     `{"completed": [1,0,0,0,0,0,0,0,0,0,0,0,0,0,"x"]}`,
		"fraction":       `{"completed": [1,0,0,0,0,0,0,0,0,0,0,0,0,0,0.5]}`,
		"completed null": `{"completed": null}`,
	}
	for name, blob := range blobs {
		t.Run(name, func(t *testing.T) {
			kv := storage.NewMemory(0)
			require.NoError(t, kv.Put(context.Background(), Key, []byte(blob)))
			s, err := Load(context.Background(), kv, nil)
			require.NoError(t, err)
			assert.Equal(t, Record{}, s.Record())
		})
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory(0)
	s, err := Load(ctx, kv, nil)
	require.NoError(t, err)

	require.NoError(t, s.MarkSolved(ctx, 1))
	require.NoError(t, s.Penalize(ctx, 5))
	require.NoError(t, s.Penalize(ctx, 5))
	require.NoError(t, s.Penalize(ctx, 14))

	again, err := Load(ctx, kv, nil)
	require.NoError(t, err)
	if diff := cmp.Diff(s.Record(), again.Record()); diff != "" {
		t.Errorf("record after reload mismatch (-saved +loaded):\n%s", diff)
	}
	assert.Equal(t, -2, again.Get(5))
	assert.True(t, again.Solved(1))
}

func TestSave_PreservesOtherSettings(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory(0)
	blob := `{"hard_mode":1,"completed":[0,0,0,0,0,0,0,0,0,0,0,0,0,0,0]}`
	require.NoError(t, kv.Put(ctx, Key, []byte(blob)))

	s, err := Load(ctx, kv, nil)
	require.NoError(t, err)
	require.NoError(t, s.MarkSolved(ctx, 3))

	raw, err := kv.Get(ctx, Key)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gjson.GetBytes(raw, "hard_mode").Int())
	assert.Equal(t, int64(1), gjson.GetBytes(raw, "completed.3").Int())
}

func TestSave_FailureKeepsInMemoryRecord(t *testing.T) {
	ctx := context.Background()
	s, err := Load(ctx, storage.NewMemory(1), nil)
	require.NoError(t, err)

	err = s.Penalize(ctx, 2)
	require.ErrorIs(t, err, storage.ErrQuotaExceeded)
	assert.Equal(t, -1, s.Get(2))
}

func TestHintUnlocked_Threshold(t *testing.T) {
	ctx := context.Background()
	s, err := Load(ctx, storage.NewMemory(0), nil)
	require.NoError(t, err)

	for i := 0; i > HintThreshold+1; i-- {
		require.NoError(t, s.Penalize(ctx, 4))
	}
	require.Equal(t, HintThreshold+1, s.Get(4))
	assert.False(t, s.HintUnlocked(4), "one above threshold keeps the hint hidden")

	require.NoError(t, s.Penalize(ctx, 4))
	assert.True(t, s.HintUnlocked(4), "reaching threshold shows the hint")
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory(0)
	s, err := Load(ctx, kv, nil)
	require.NoError(t, err)
	require.NoError(t, s.MarkSolved(ctx, 1))
	require.NoError(t, s.Reset(ctx))

	again, err := Load(ctx, kv, nil)
	require.NoError(t, err)
	assert.Equal(t, Record{}, again.Record())
}

func TestOutOfRangeSlots(t *testing.T) {
	s, err := Load(context.Background(), storage.NewMemory(0), nil)
	require.NoError(t, err)
	assert.Error(t, s.MarkSolved(context.Background(), Slots))
	assert.Error(t, s.Penalize(context.Background(), -1))
	assert.Zero(t, s.Get(99))
	assert.False(t, s.Solved(-1))
}

func TestAllSolved(t *testing.T) {
	ctx := context.Background()
	s, err := Load(ctx, storage.NewMemory(0), nil)
	require.NoError(t, err)
	assert.False(t, s.AllSolved(nil))
	require.NoError(t, s.MarkSolved(ctx, 1))
	assert.True(t, s.AllSolved([]int{1}))
	assert.False(t, s.AllSolved([]int{1, 2}))
}
