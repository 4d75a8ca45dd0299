package tzlookup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatLong_LookupZoneName(t *testing.T) {
	lookup := New()

	assert.Equal(t, "Europe/Paris", lookup.LookupZoneName(48.8566, 2.3522))
	assert.Equal(t, "Asia/Tokyo", lookup.LookupZoneName(35.6762, 139.6503))
}
