//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Demo namespaces targets that exercise the built CLI against sample data.
type Demo mg.Namespace

// Research walks the wizard for a sample topic and drafts a report.
func (Demo) Research() error {
	mg.Deps(Build)
	fmt.Println("[demo] Research wizard: topic, selection, summary.")
	return sh.RunV(binDir+"/"+binName, "research", "Quantum Computing",
		"--max-results", "4", "--delay", "200ms", "--select", "paper-2,paper-4", "--draft", "--load-delay", "0")
}

// Reports lists the sample catalog sorted by title.
func (Demo) Reports() error {
	mg.Deps(Build)
	fmt.Println("[demo] Report catalog sorted by title.")
	return sh.RunV(binDir+"/"+binName, "reports", "--sort", "title", "--load-delay", "0")
}
