// Package codecs contains codec descriptors.
package codecs

import (
	"github.com/bluenviron/mediacommon/v2/pkg/codecs/mpeg4audio"
)

// Codec is a codec descriptor attached to a track.
type Codec interface {
	// IsVideo returns whether the codec is a video codec.
	IsVideo() bool

	isCodec()
}

// H264 is the H264 codec.
type H264 struct {
	SPS []byte
	PPS []byte
}

// IsVideo implements Codec.
func (*H264) IsVideo() bool {
	return true
}

func (*H264) isCodec() {}

// H265 is the H265 codec.
type H265 struct {
	VPS []byte
	SPS []byte
	PPS []byte
}

// IsVideo implements Codec.
func (*H265) IsVideo() bool {
	return true
}

func (*H265) isCodec() {}

// MPEG4Audio is the MPEG-4 Audio codec.
type MPEG4Audio struct {
	Config mpeg4audio.Config
}

// IsVideo implements Codec.
func (*MPEG4Audio) IsVideo() bool {
	return false
}

func (*MPEG4Audio) isCodec() {}

// Opus is the Opus codec.
type Opus struct {
	ChannelCount int
}

// IsVideo implements Codec.
func (*Opus) IsVideo() bool {
	return false
}

func (*Opus) isCodec() {}

// WebVTT is the WebVTT subtitle codec.
type WebVTT struct {
	Language string
}

// IsVideo implements Codec.
func (*WebVTT) IsVideo() bool {
	return false
}

func (*WebVTT) isCodec() {}
