package h264

import (
	"github.com/hwpipe/vabridge/va"
)

// Zigzag scan orders of section 8.5.6: position i of the bitstream
// list lands at raster index zigzag[i].
var zigzag4x4 = [16]int{
	0, 1, 4, 8, 5, 2, 3, 6,
	9, 12, 13, 10, 7, 11, 14, 15,
}

var zigzag8x8 = [64]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

func rasterFromZigzag4x4(dst *[16]uint8, src [16]uint8) {
	for i, v := range src {
		dst[zigzag4x4[i]] = v
	}
}

func rasterFromZigzag8x8(dst *[64]uint8, src [64]uint8) {
	for i, v := range src {
		dst[zigzag8x8[i]] = v
	}
}

// BuildIQMatrix converts the active scaling lists from bitstream
// zigzag order to the raster order the driver expects. All six 4x4
// lists are always converted; of the 8x8 lists only the luma pair
// applies unless the stream codes 4:4:4 chroma.
func BuildIQMatrix(pps *PPS) *va.IQMatrixBufferH264 {
	iq := &va.IQMatrixBufferH264{}

	for i := range pps.ScalingLists4x4 {
		rasterFromZigzag4x4(&iq.ScalingList4x4[i], pps.ScalingLists4x4[i])
	}

	n := 2
	if pps.SPS.ChromaFormatIDC == Chroma444 {
		n = 6
	}
	for i := 0; i < n; i++ {
		rasterFromZigzag8x8(&iq.ScalingList8x8[i], pps.ScalingLists8x8[i])
	}

	return iq
}
