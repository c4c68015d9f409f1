// SPDX-License-Identifier: EPL-2.0

// Package capture provides the recorders behind the translator pipeline: a
// file-backed one that works everywhere and a PortAudio microphone that is
// compiled in with -tags portaudio.
package capture
