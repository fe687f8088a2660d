package build

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"build-optimizer/internal/item"
	"build-optimizer/internal/stat"
)

func TestFromIntN(t *testing.T) {
	assert.Equal(t, "JI", fromIntN(1234, 2))
	assert.Equal(t, "000", fromIntN(0, 3))
	assert.Equal(t, "--", fromIntN(4095, 2))
	// only the low bits survive
	assert.Equal(t, "00", fromIntN(4096, 2))
}

func TestEncodeBuild(t *testing.T) {
	ids := [Slots]int{256, 267, 268, 264, 10004, 10005, 10006, 10007}
	got := EncodeBuild(ids, 106, 206, stat.Point{})
	assert.Equal(t, "8_04004B04C0482SK2SL2SM2SN03E00000000001g", got)
}

func TestShareIDs(t *testing.T) {
	c := Combination{}
	for i, id := range []int{10004, 10005, 256, 267, 268, 264, 10006, 10007} {
		c[i] = &item.Apparel{ID: id}
	}
	assert.Equal(t, [Slots]int{256, 267, 268, 264, 10004, 10005, 10006, 10007}, c.ShareIDs())
}
