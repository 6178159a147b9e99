package codecs

import (
	"github.com/bluenviron/mediacommon/v2/pkg/formats/mpegts"
)

// ToMPEGTS converts a codec into its MPEG-TS equivalent.
// It returns nil when the codec cannot be stored into MPEG-TS.
func ToMPEGTS(c Codec) mpegts.Codec {
	switch c := c.(type) {
	case *H264:
		return &mpegts.CodecH264{}

	case *H265:
		return &mpegts.CodecH265{}

	case *MPEG4Audio:
		return &mpegts.CodecMPEG4Audio{
			Config: c.Config,
		}

	case *Opus:
		return &mpegts.CodecOpus{
			ChannelCount: c.ChannelCount,
		}
	}

	return nil
}
