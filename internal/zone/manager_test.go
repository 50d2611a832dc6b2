package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/encounters/internal/config"
	"github.com/udisondev/encounters/internal/model"
)

func TestManager_Load(t *testing.T) {
	t.Parallel()

	m := NewManager()
	err := m.Load([]config.ZoneDef{
		{ID: "pvp", Name: "Arena", Center: config.Vector{X: 100, Z: 100}, Radius: 50},
		{ID: "safe", Name: "Outpost", Center: config.Vector{X: -1000, Z: 600}, Radius: 120},
		{ID: "broken", Radius: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, []string{"pvp", "safe"}, m.ZoneIDs())

	loc, ok := m.ZoneLocation("safe")
	require.True(t, ok)
	assert.Equal(t, model.NewLocation(-1000, 0, 600), loc)
	assert.InDelta(t, 120, m.ZoneRadius("safe"), 1e-9)

	_, ok = m.ZoneLocation("broken")
	assert.False(t, ok)
	assert.Zero(t, m.ZoneRadius("nope"))
}

func TestManager_LoadRejectsDuplicatesAndBlankIDs(t *testing.T) {
	t.Parallel()

	err := NewManager().Load([]config.ZoneDef{
		{ID: "a", Radius: 1},
		{ID: "a", Radius: 2},
	})
	require.Error(t, err)

	err = NewManager().Load([]config.ZoneDef{{Name: "nameless", Radius: 1}})
	require.Error(t, err)
}

func TestManager_ZonesAt(t *testing.T) {
	t.Parallel()

	m := NewManager()
	// зона пересекает границы нескольких ячеек сетки, в том числе отрицательных
	require.NoError(t, m.Add(New("big", "Big", model.NewLocation(0, 0, 0), 700)))
	require.NoError(t, m.Add(New("small", "Small", model.NewLocation(10, 0, 10), 5)))

	tests := []struct {
		name string
		p    model.Location
		want []string
	}{
		{"both", model.NewLocation(12, 500, 12), []string{"big", "small"}},
		{"negative cell", model.NewLocation(-600, 0, -300), []string{"big"}},
		{"edge", model.NewLocation(700, 0, 0), []string{"big"}},
		{"outside", model.NewLocation(600, 0, 600), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, z := range m.ZonesAt(tt.p) {
				got = append(got, z.ID())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
