// investigate-scheme cross-checks a scheme file against a second,
// independent s-expression reader and reports where they disagree.
package main

import (
	"fmt"
	"os"

	"github.com/chewxy/sexp"

	"github.com/OpenTraceLab/OpenTraceElectron/pkg/electron"
	"github.com/OpenTraceLab/OpenTraceElectron/pkg/scheme"
	esexp "github.com/OpenTraceLab/OpenTraceElectron/pkg/sexp"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: investigate-scheme <file.esch>")
		os.Exit(1)
	}
	os.Exit(investigate(os.Args[1]))
}

func investigate(filename string) int {
	file, err := os.Open(filename)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	defer file.Close()

	info, _ := file.Stat()
	fmt.Printf("File size: %d bytes\n", info.Size())

	fmt.Println("\nReference reader (chewxy/sexp):")
	ref, err := sexp.Parse(file)
	refLeaves := -1
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
	} else {
		refLeaves = 0
		for _, s := range ref {
			if s.IsLeaf() {
				refLeaves++
			} else {
				refLeaves += s.LeafCount()
			}
		}
		fmt.Printf("  %d top-level expressions, %d leaves\n", len(ref), refLeaves)
	}

	if _, err := file.Seek(0, 0); err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	fmt.Println("\nScheme reader (pkg/sexp):")
	own, err := esexp.Parse(file)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return 1
	}
	ownLeaves := 0
	for _, s := range own {
		ownLeaves += leafCount(s)
	}
	fmt.Printf("  %d top-level expressions, %d leaves\n", len(own), ownLeaves)

	if refLeaves >= 0 && refLeaves != ownLeaves {
		// The reference reader splits quoted atoms on whitespace, so text
		// fields with spaces show up here as well.
		fmt.Printf("  Leaf counts differ by %d\n", ownLeaves-refLeaves)
	}

	fmt.Println("\nScheme decode:")
	t, err := scheme.ParseFile(filename)
	if err != nil {
		fmt.Printf("  Error: %v\n", err)
		return 1
	}
	primitives, points := 0, 0
	t.Walk(func(_ electron.NodeID, _ int, el *electron.Element) bool {
		primitives += el.Image.Len()
		points += len(el.Points)
		return true
	})
	fmt.Printf("  %d elements, %d primitives, %d wire points\n", t.Len(), primitives, points)
	return 0
}

func leafCount(s esexp.Sexp) int {
	if s.IsLeaf() {
		return 1
	}
	n := 0
	for _, item := range esexp.GetListItems(s) {
		n += leafCount(item)
	}
	return n
}
