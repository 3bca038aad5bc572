package config

import (
	"fmt"
	"strings"
)

// Codec identifies one of the swept video codecs.
type Codec string

const (
	CodecAV1  Codec = "av1"
	CodecH265 Codec = "h265"
	CodecVVC  Codec = "vvc"
)

// CodecValues returns all supported codecs in display order.
func CodecValues() []Codec {
	return []Codec{CodecAV1, CodecH265, CodecVVC}
}

// ParseCodec parses a string into a Codec.
func ParseCodec(s string) (Codec, error) {
	switch strings.ToLower(s) {
	case "av1":
		return CodecAV1, nil
	case "h265", "hevc":
		return CodecH265, nil
	case "vvc", "h266":
		return CodecVVC, nil
	default:
		return "", fmt.Errorf("%w: '%s', valid options: av1, h265, vvc", ErrUnknownCodec, s)
	}
}

// String returns the string representation of the codec.
func (c Codec) String() string {
	return string(c)
}

// EncoderLib returns the ffmpeg encoder library for codecs encoded in-process
// by ffmpeg. VVC returns empty: it is encoded by the external vvencapp binary.
func (c Codec) EncoderLib() string {
	switch c {
	case CodecAV1:
		return "libaom-av1"
	case CodecH265:
		return "libx265"
	default:
		return ""
	}
}

// Container returns the output file extension for the codec.
func (c Codec) Container() string {
	switch c {
	case CodecAV1:
		return ".mkv"
	case CodecH265:
		return ".mp4"
	case CodecVVC:
		return ".vvc"
	default:
		return ""
	}
}

// ParamTag returns the filename tag for the codec's quality parameter.
// The tag follows each encoder's own vocabulary; metadata is always carried on
// the Job, never recovered from these names.
func (c Codec) ParamTag() string {
	if c == CodecVVC {
		return "crf"
	}
	return "qp"
}

// MaxQualityParam returns the upper bound of the codec's quality knob.
func (c Codec) MaxQualityParam() int {
	switch c {
	case CodecH265:
		return MaxQPH265
	default:
		return MaxQPAV1
	}
}

// DefaultQualityParams returns the swept quality parameters for a resolution
// when no explicit override is configured. Fresh slices are returned so callers
// cannot mutate the defaults.
func (c Codec) DefaultQualityParams(resolutionName string) []int {
	if c == CodecVVC {
		return []int{18, 24, 30, 36}
	}
	if strings.EqualFold(resolutionName, "360p") {
		return []int{24, 30}
	}
	return []int{24, 30, 36}
}
