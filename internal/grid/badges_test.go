package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func badgeKeys(badges []Badge) []string {
	keys := make([]string, 0, len(badges))
	for _, b := range badges {
		keys = append(keys, b.Key)
	}
	return keys
}

func TestUnlockedBadges(t *testing.T) {
	e := NewEngine(Config{})

	assert.Empty(t, e.UnlockedBadges(0))
	assert.Empty(t, e.UnlockedBadges(4))
	assert.Equal(t, []string{"explorer"}, badgeKeys(e.UnlockedBadges(5)))
	assert.Equal(t, []string{"explorer", "adventurer", "conqueror"}, badgeKeys(e.UnlockedBadges(49)))
	assert.Equal(t, []string{"explorer", "adventurer", "conqueror", "nomad"}, badgeKeys(e.UnlockedBadges(500)))
}

func TestUnlockedBadges_Monotonic(t *testing.T) {
	e := NewEngine(Config{})

	for n := 0; n < 60; n++ {
		lower := badgeKeys(e.UnlockedBadges(n))
		higher := badgeKeys(e.UnlockedBadges(n + 1))
		assert.Subset(t, higher, lower, "unlocked(%d) must include unlocked(%d)", n+1, n)
	}
}

func TestUnlockedBadges_UnsortedConfig(t *testing.T) {
	e := NewEngine(Config{Badges: []Badge{
		{Key: "big", Threshold: 10},
		{Key: "small", Threshold: 2},
	}})

	assert.Equal(t, []string{"small", "big"}, badgeKeys(e.Badges()))
	assert.Equal(t, []string{"small"}, badgeKeys(e.UnlockedBadges(3)))
}

func TestNextBadge(t *testing.T) {
	e := NewEngine(Config{})

	next, ok := e.NextBadge(0)
	require.True(t, ok)
	assert.Equal(t, "explorer", next.Key)
	assert.Equal(t, 0, next.Progress)
	assert.Equal(t, 5, next.Remaining)

	next, ok = e.NextBadge(12)
	require.True(t, ok)
	assert.Equal(t, "conqueror", next.Key)
	assert.Equal(t, 8, next.Remaining)

	_, ok = e.NextBadge(50)
	assert.False(t, ok, "no badge after the top of the ladder")
}

func TestDetectUnlock(t *testing.T) {
	e := NewEngine(Config{})

	tests := []struct {
		name     string
		old, new int
		wantOK   bool
		wantKind UnlockKind
		wantKey  string
	}{
		{name: "no change", old: 3, new: 3},
		{name: "decrease", old: 6, new: 4},
		{name: "plain cell", old: 0, new: 1, wantOK: true, wantKind: UnlockCell},
		{name: "badge crossed", old: 4, new: 5, wantOK: true, wantKind: UnlockBadge, wantKey: "explorer"},
		{name: "badge wins over cell", old: 9, new: 10, wantOK: true, wantKind: UnlockBadge, wantKey: "adventurer"},
		{name: "lowest of several crossings", old: 0, new: 25, wantOK: true, wantKind: UnlockBadge, wantKey: "explorer"},
		{name: "past the ladder", old: 60, new: 61, wantOK: true, wantKind: UnlockCell},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, ok := e.DetectUnlock(tt.old, tt.new)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantKind, u.Kind)
			if tt.wantKind == UnlockBadge {
				require.NotNil(t, u.Badge)
				assert.Equal(t, tt.wantKey, u.Badge.Key)
				assert.Equal(t, u.Badge.Points, u.Points)
			} else {
				assert.Nil(t, u.Badge)
				assert.Equal(t, DefaultPointsPerCell, u.Points)
			}
		})
	}
}
