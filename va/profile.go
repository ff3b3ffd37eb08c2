package va

// Profile identifies a hardware decode profile.
type Profile int32

// VA-API profile values, matching the driver ABI.
const (
	ProfileNone                    Profile = -1
	ProfileH264Main                Profile = 6
	ProfileH264High                Profile = 7
	ProfileH264ConstrainedBaseline Profile = 13
	ProfileH264MultiviewHigh       Profile = 15
	ProfileH264StereoHigh          Profile = 16
)

// String returns the human-readable string representation of a Profile.
func (p Profile) String() string {
	switch p {
	case ProfileNone:
		return "none"
	case ProfileH264Main:
		return "h264-main"
	case ProfileH264High:
		return "h264-high"
	case ProfileH264ConstrainedBaseline:
		return "h264-constrained-baseline"
	case ProfileH264MultiviewHigh:
		return "h264-multiview-high"
	case ProfileH264StereoHigh:
		return "h264-stereo-high"
	}
	return "unknown"
}

// RTFormat identifies a render-target surface format class.
type RTFormat uint32

// VA-API render-target format bits.
const (
	RTFormatNone     RTFormat = 0
	RTFormatYUV420   RTFormat = 0x00000001
	RTFormatYUV422   RTFormat = 0x00000002
	RTFormatYUV444   RTFormat = 0x00000004
	RTFormatYUV42010 RTFormat = 0x00000100
	RTFormatYUV42210 RTFormat = 0x00000200
	RTFormatYUV44410 RTFormat = 0x00000400
)

// String returns the human-readable string representation of an RTFormat.
func (rt RTFormat) String() string {
	switch rt {
	case RTFormatYUV420:
		return "yuv420"
	case RTFormatYUV422:
		return "yuv422"
	case RTFormatYUV444:
		return "yuv444"
	case RTFormatYUV42010:
		return "yuv420p10"
	case RTFormatYUV42210:
		return "yuv422p10"
	case RTFormatYUV44410:
		return "yuv444p10"
	}
	return "none"
}
