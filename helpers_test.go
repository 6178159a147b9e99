package gomuxlib

import (
	"github.com/bluenviron/mediacommon/v2/pkg/codecs/mpeg4audio"

	"github.com/bluenviron/gomuxlib/pkg/codecs"
)

var testSPS = []byte{ // 1920x1080 baseline
	0x67, 0x42, 0xc0, 0x28, 0xd9, 0x00, 0x78, 0x02,
	0x27, 0xe5, 0x84, 0x00, 0x00, 0x03, 0x00, 0x04,
	0x00, 0x00, 0x03, 0x00, 0xf0, 0x3c, 0x60, 0xc9, 0x20,
}

var testPPS = []byte{0x08, 0x06, 0x07, 0x08}

func testVideoTrack() *Track {
	return &Track{
		ID:        1,
		Kind:      TrackKindVideo,
		ClockRate: 90000,
		Codec: &codecs.H264{
			SPS: testSPS,
			PPS: testPPS,
		},
	}
}

func testAudioTrack() *Track {
	return &Track{
		ID:        2,
		Kind:      TrackKindAudio,
		ClockRate: 44100,
		Codec: &codecs.MPEG4Audio{
			Config: mpeg4audio.Config{
				Type:         2,
				SampleRate:   44100,
				ChannelCount: 2,
			},
		},
	}
}

func testSubtitleTrack() *Track {
	return &Track{
		ID:        3,
		Kind:      TrackKindSubtitle,
		ClockRate: 1000,
		Codec: &codecs.WebVTT{
			Language: "en",
		},
	}
}
