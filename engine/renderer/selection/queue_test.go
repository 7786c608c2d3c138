package selection

import (
	"reflect"
	"testing"

	"github.com/spaghettifunk/vkpick/engine/renderer/metadata"
)

func TestFindQueueFamilies(t *testing.T) {
	tests := []struct {
		name     string
		families []metadata.QueueFamilyProperties
		present  map[uint32]bool
		graphics metadata.Optional[uint32]
		presentI metadata.Optional[uint32]
		queried  []uint32
	}{
		{
			name:     "no families",
			families: nil,
			graphics: metadata.None[uint32](),
			presentI: metadata.None[uint32](),
			queried:  nil,
		},
		{
			name:     "single family does both",
			families: []metadata.QueueFamilyProperties{graphicsFamily, transferFamily},
			present:  map[uint32]bool{0: true},
			graphics: metadata.Some[uint32](0),
			presentI: metadata.Some[uint32](0),
			queried:  []uint32{0},
		},
		{
			name:     "separate present family",
			families: []metadata.QueueFamilyProperties{graphicsFamily, transferFamily, transferFamily},
			present:  map[uint32]bool{2: true},
			graphics: metadata.Some[uint32](0),
			presentI: metadata.Some[uint32](2),
			queried:  []uint32{0, 1, 2},
		},
		{
			// graphics keeps being overwritten until presentation turns up
			name:     "later graphics family overwrites earlier one",
			families: []metadata.QueueFamilyProperties{graphicsFamily, graphicsFamily, graphicsFamily},
			present:  map[uint32]bool{1: true, 2: true},
			graphics: metadata.Some[uint32](1),
			presentI: metadata.Some[uint32](1),
			queried:  []uint32{0, 1},
		},
		{
			name:     "no graphics family",
			families: []metadata.QueueFamilyProperties{transferFamily, transferFamily},
			present:  map[uint32]bool{0: true},
			graphics: metadata.None[uint32](),
			presentI: metadata.Some[uint32](0),
			queried:  []uint32{0, 1},
		},
		{
			name:     "no present family",
			families: []metadata.QueueFamilyProperties{graphicsFamily, transferFamily},
			graphics: metadata.Some[uint32](0),
			presentI: metadata.None[uint32](),
			queried:  []uint32{0, 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &fakeDevice{families: tt.families, present: tt.present}
			got := FindQueueFamilies(d)
			if got.Graphics != tt.graphics {
				t.Errorf("graphics: expected %s, got %s", tt.graphics, got.Graphics)
			}
			if got.Present != tt.presentI {
				t.Errorf("present: expected %s, got %s", tt.presentI, got.Present)
			}
			if !reflect.DeepEqual(d.supportQueries, tt.queried) {
				t.Errorf("presentation queries: expected %v, got %v", tt.queried, d.supportQueries)
			}
		})
	}
}

func TestFindQueueFamiliesPresentQueryFailure(t *testing.T) {
	d := suitableDevice("broken")
	d.presentErr = errQueryFailed

	got := FindQueueFamilies(d)
	if got.Present.IsSet() {
		t.Errorf("expected no present family when the query fails, got %s", got.Present)
	}
	if !got.Graphics.IsSet() {
		t.Error("expected graphics family to still resolve")
	}
}

func TestFindQueueFamiliesIndexInRange(t *testing.T) {
	for count := 0; count < 8; count++ {
		families := make([]metadata.QueueFamilyProperties, count)
		present := map[uint32]bool{}
		for i := range families {
			if i%3 == 2 {
				families[i] = graphicsFamily
			} else {
				families[i] = transferFamily
			}
			present[uint32(i)] = i%2 == 1
		}

		got := FindQueueFamilies(&fakeDevice{families: families, present: present})
		if g, ok := got.Graphics.Get(); ok && g >= uint32(count) {
			t.Errorf("count %d: graphics index %d out of range", count, g)
		}
		if p, ok := got.Present.Get(); ok && p >= uint32(count) {
			t.Errorf("count %d: present index %d out of range", count, p)
		}
	}
}
