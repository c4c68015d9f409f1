// SPDX-License-Identifier: EPL-2.0

package swarantara

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/ik5/swarantara/audio"
	"github.com/ik5/swarantara/formats/aiff"
	"github.com/ik5/swarantara/formats/mp3"
	"github.com/ik5/swarantara/formats/vorbis"
	"github.com/ik5/swarantara/formats/wav"
)

// Format names used by NewRegistry.
const (
	FormatWAV    = "wav"
	FormatAIFF   = "aiff"
	FormatVorbis = "ogg"
	FormatMP3    = "mp3"
)

// NewRegistry returns a registry with every bundled decoder. MP3 is
// registered last since its frame-sync check is the loosest.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(FormatWAV, wav.Decoder{})
	reg.Register(FormatAIFF, aiff.Decoder{})
	reg.Register(FormatVorbis, vorbis.Decoder{})
	reg.Register(FormatMP3, mp3.Decoder{})

	return reg
}

// Decode detects the format of r from its leading bytes and decodes it.
// The detected format name is returned alongside the source.
func Decode(reg *audio.Registry, r io.Reader) (audio.Source, string, error) {
	br := bufio.NewReader(r)

	header, err := br.Peek(audio.SniffLen)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("reading header: %w", err)
	}

	format, ok := reg.Detect(header)
	if !ok {
		return nil, "", fmt.Errorf("%w: header %q", ErrUnrecognizedFormat, header)
	}

	src, err := reg.Decode(format, br)
	if err != nil {
		return nil, format, err
	}

	return src, format, nil
}
