// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes uncompressed AIFF recordings into an audio.Source
// using github.com/go-audio/aiff. Samples are normalized by the full scale of
// their bit depth, so -32768 at 16 bits maps to -1.
package aiff
