// SPDX-License-Identifier: EPL-2.0

package main

import (
	"flag"
	"fmt"

	"github.com/ik5/swarantara/internal/pipeline"
)

func runLanguages(args []string) error {
	fs := flag.NewFlagSet("languages", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	for _, l := range pipeline.Languages() {
		marker := ""
		switch l.Code {
		case pipeline.DefaultSourceLanguage:
			marker = " (default source)"
		case pipeline.DefaultTargetLanguage:
			marker = " (default target)"
		}
		fmt.Printf("%-3s %-10s %s%s\n", l.Code, l.Name, l.Native, marker)
	}
	return nil
}
