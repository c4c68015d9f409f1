// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

// ErrNotOggVorbis is returned when the stream is not Ogg-encapsulated Vorbis.
var ErrNotOggVorbis = errors.New("not an Ogg Vorbis stream")
