// SPDX-License-Identifier: EPL-2.0

package swarantara

import "errors"

// ErrUnrecognizedFormat is returned by Decode when no registered decoder
// claims the stream header.
var ErrUnrecognizedFormat = errors.New("unrecognized audio format")
