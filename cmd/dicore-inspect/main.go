// Command dicore-inspect loads a JSON fixture of binding entries (a
// stand-in for what a compile-time code generator would emit), runs it
// through the normalization core, and browses the result — either
// interactively, via a bubbletea TUI, or as a plain-text dump when
// stdout isn't a terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
	"go.uber.org/zap"

	"github.com/bindgraph/dicore/alloc"
	"github.com/bindgraph/dicore/diag"
	"github.com/bindgraph/dicore/normalize"
)

func main() {
	var (
		fixturePath = flag.String("fixture", "", "path to a JSON binding fixture")
		noCompress  = flag.Bool("no-compress", false, "skip the compression stage (NormalizeWithoutCompression)")
		verbose     = flag.Bool("v", false, "enable debug logging to stderr")
	)
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "Usage: dicore-inspect -fixture <file.json> [-no-compress] [-v]")
		os.Exit(1)
	}

	if *verbose {
		logger, _ := zap.NewDevelopment()
		normalize.SetLogger(logger)
	}

	if err := run(*fixturePath, *noCompress); err != nil {
		var fatal *diag.FatalError
		if errors.As(err, &fatal) {
			fmt.Fprintln(os.Stderr, fatal.Error())
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(fixturePath string, noCompress bool) error {
	entries, exposed, topFunID, err := loadFixture(fixturePath)
	if err != nil {
		return err
	}

	allocDesc := alloc.NewDescriptor()
	var result normalize.Result
	if noCompress {
		result, err = normalize.NormalizeWithoutCompression(entries, allocDesc, topFunID)
	} else {
		result, err = normalize.Normalize(entries, allocDesc, topFunID, exposed)
	}
	if err != nil {
		return err
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		dumpPlain(result, allocDesc)
		return nil
	}

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	p := tea.NewProgram(newModel(result, width, height), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func dumpPlain(result normalize.Result, allocDesc *alloc.Descriptor) {
	fmt.Printf("bindings (%d):\n", len(result.BindingsVector))
	for _, e := range result.BindingsVector {
		fmt.Printf("  %s -> %s\n", e.TypeID, e.Kind)
	}

	fmt.Printf("\nmultibinding sets (%d):\n", len(result.Multibindings))
	for typeID, set := range result.Multibindings {
		fmt.Printf("  %s: %d contributions\n", typeID, len(set.Contributions))
	}

	fmt.Printf("\ncompressions applied (%d):\n", len(result.Undo))
	for c, info := range result.Undo {
		fmt.Printf("  %s collapsed into %s\n", c, info.ITypeID)
	}

	fmt.Printf("\nallocator reservations: %d\n", allocDesc.Len())
}
