// SPDX-License-Identifier: EPL-2.0

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ik5/swarantara"
	"github.com/ik5/swarantara/formats/wav"
	"github.com/ik5/swarantara/utils"
)

func runEncode(args []string) error {
	fs := flag.NewFlagSet("encode", flag.ContinueOnError)
	rate := fs.Int("rate", 0, "output sample rate in Hz (0 keeps the input rate)")
	rounding := fs.String("rounding", utils.Truncate.String(), "quantization: truncate or nearest")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: swarantara encode [-rate hz] [-rounding mode] <input> <output.wav>")
		return errUsage
	}

	mode, err := utils.ParseRounding(*rounding)
	if err != nil {
		return err
	}

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("opening input: %w", err)
	}
	defer in.Close()

	src, format, err := swarantara.Decode(swarantara.NewRegistry(), in)
	if err != nil {
		return fmt.Errorf("%s: %w", fs.Arg(0), err)
	}

	out, err := swarantara.EncodeSource(src, *rate, wav.WithRounding(mode))
	if err != nil {
		return err
	}

	if err := os.WriteFile(fs.Arg(1), out, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	h, _ := wav.ParseHeader(out)
	fmt.Printf("%s -> %s: %d Hz, %d bytes of samples\n", format, fs.Arg(1), h.SampleRate, h.DataSize)
	return nil
}
