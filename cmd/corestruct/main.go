// Command corestruct is a small driver that exercises bitset, text, and
// deque against a file or stdin, mirroring aretext's cmd/aretext in
// spirit (flag-parsed entry point, bare log package, no framework).
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/gocollect/corestruct/bitset"
	"github.com/gocollect/corestruct/deque"
	"github.com/gocollect/corestruct/text"
)

var logpath = flag.String("log", "", "log diagnostics to file instead of stderr")

func main() {
	flag.Usage = printUsage
	flag.Parse()

	if *logpath != "" {
		logFile, err := os.Create(*logpath)
		if err != nil {
			exitWithError(err)
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	path := flag.Arg(0)
	if err := run(path); err != nil {
		exitWithError(err)
	}
}

func printUsage() {
	f := flag.CommandLine.Output()
	fmt.Fprintf(f, "Usage: %s [options...] [path]\n", os.Args[0])
	fmt.Fprintf(f, "Reads path (or stdin if omitted) and reports BitSet, BigString, and RigidDeque statistics.\n")
	flag.PrintDefaults()
}

func run(path string) error {
	var r io.Reader = os.Stdin
	source := "stdin"
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
		source = path
	}

	log.Printf("reading %s", source)
	bs, err := text.NewBigStringFromReader(r)
	if err != nil {
		return err
	}
	log.Printf("built BigString: %d bytes", bs.Count(text.ViewUTF8))
	reportBigString(bs)
	reportLineStarts(bs)
	return nil
}

// reportBigString prints the text's size in each of the four Unicode
// views, the same four metrics spec.md's Summary carries.
func reportBigString(bs *text.BigString) {
	fmt.Printf("bytes (utf8):   %d\n", bs.Count(text.ViewUTF8))
	fmt.Printf("utf16 units:    %d\n", bs.Count(text.ViewUTF16))
	fmt.Printf("scalars:        %d\n", bs.Count(text.ViewScalars))
	fmt.Printf("characters:     %d\n", bs.Count(text.ViewCharacters))
}

// reportLineStarts walks the byte view collecting the UTF-8 offset of
// every line start into a BitSet, then reports line count via the
// BitSet's own member count — demonstrating BitSet as a sparse index
// over a BigString's byte offsets, and RigidDeque buffering the most
// recent line starts seen.
func reportLineStarts(bs *text.BigString) {
	starts := bitset.New()
	recent := deque.New[int](10)

	atLineStart := true
	offset := 0
	bs.UTF8().ForEach(func(b byte) bool {
		if atLineStart {
			starts.Insert(offset)
			if recent.IsFull() {
				recent.RemoveFirst()
			}
			recent.Append(offset)
		}
		atLineStart = b == '\n'
		offset++
		return true
	})

	log.Printf("indexed %d line starts", starts.Count())
	fmt.Printf("lines:          %d\n", starts.Count())
	fmt.Printf("last line starts (up to 10): ")
	for i := 0; i < recent.Len(); i++ {
		if i > 0 {
			fmt.Printf(", ")
		}
		fmt.Printf("%d", recent.At(i))
	}
	fmt.Println()
}

func exitWithError(err error) {
	fmt.Fprintf(os.Stderr, "%v\n", err)
	os.Exit(1)
}
