// SPDX-License-Identifier: EPL-2.0

// Package playback delivers synthesized speech: Player sends it to the
// speakers through github.com/ebitengine/oto/v3 and FileSink keeps it on
// disk together with the input recording and the texts.
package playback
