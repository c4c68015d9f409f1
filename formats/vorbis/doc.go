// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis recordings into an audio.Source using
// github.com/jfreymuth/oggvorbis. Ogg is the container most browsers and
// phone recorders emit, so it is the common input for file-based capture.
package vorbis
