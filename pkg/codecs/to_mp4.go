package codecs

import (
	"github.com/bluenviron/mediacommon/v2/pkg/formats/fmp4"
)

// ToMP4 converts a codec into its MP4 equivalent.
// It returns nil when the codec cannot be stored into MP4.
func ToMP4(c Codec) fmp4.Codec {
	switch c := c.(type) {
	case *H264:
		return &fmp4.CodecH264{
			SPS: c.SPS,
			PPS: c.PPS,
		}

	case *H265:
		return &fmp4.CodecH265{
			VPS: c.VPS,
			SPS: c.SPS,
			PPS: c.PPS,
		}

	case *MPEG4Audio:
		return &fmp4.CodecMPEG4Audio{
			Config: c.Config,
		}

	case *Opus:
		return &fmp4.CodecOpus{
			ChannelCount: c.ChannelCount,
		}
	}

	return nil
}
