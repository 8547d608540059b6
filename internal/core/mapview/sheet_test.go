package mapview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weathermap.app/internal/core/geo"
	"weathermap.app/internal/core/weather"
)

func snapshotFor(id string) *weather.Snapshot {
	return &weather.Snapshot{Place: geo.Place{ID: id, DisplayName: id}}
}

func TestSheet_ShowFansOut(t *testing.T) {
	sheet := NewSheet()
	a, cancelA := sheet.Subscribe()
	b, cancelB := sheet.Subscribe()
	defer cancelA()
	defer cancelB()

	s := snapshotFor("node/1")
	sheet.Show(s)

	assert.Same(t, s, <-a)
	assert.Same(t, s, <-b)
	assert.Same(t, s, sheet.Current())
}

func TestSheet_SlowSubscriberDoesNotBlock(t *testing.T) {
	sheet := NewSheet()
	updates, cancel := sheet.Subscribe()
	defer cancel()

	for i := 0; i < sheetBuffer*2; i++ {
		sheet.Show(snapshotFor("node/1"))
	}

	assert.Len(t, updates, sheetBuffer)
}

func TestSheet_Unsubscribe(t *testing.T) {
	sheet := NewSheet()
	updates, cancel := sheet.Subscribe()
	require.Equal(t, 1, sheet.Subscribers())

	cancel()
	cancel()

	_, open := <-updates
	assert.False(t, open)
	assert.Equal(t, 0, sheet.Subscribers())
}

func TestSheet_Close(t *testing.T) {
	sheet := NewSheet()
	updates, _ := sheet.Subscribe()

	sheet.Close()
	sheet.Show(snapshotFor("node/1"))

	_, open := <-updates
	assert.False(t, open)
	assert.Nil(t, sheet.Current())

	late, _ := sheet.Subscribe()
	_, open = <-late
	assert.False(t, open)
}

func TestSheet_IgnoresNil(t *testing.T) {
	sheet := NewSheet()
	sheet.Show(nil)
	assert.Nil(t, sheet.Current())
}
