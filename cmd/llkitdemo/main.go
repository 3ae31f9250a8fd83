// Command llkitdemo builds the package's example arithmetic grammar,
// analyzes it, and parses the file named on the command line against
// it, printing the resulting parse tree. It does not read stdin.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/llkit/llkit/grammar"
	"github.com/llkit/llkit/ll"
	"github.com/llkit/llkit/parser"
	"github.com/llkit/llkit/tokenizer"
)

func main() {
	k := 2
	caseInsensitive := false
	var filePath string

	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [--k=N] [--ci] <file.expr>\n", os.Args[0])
		os.Exit(1)
	}

	argIdx := 1
	for argIdx < len(os.Args) && strings.HasPrefix(os.Args[argIdx], "--") {
		switch {
		case strings.HasPrefix(os.Args[argIdx], "--k="):
			var n int
			if _, err := fmt.Sscanf(os.Args[argIdx], "--k=%d", &n); err == nil && n > 0 {
				k = n
			}
		case os.Args[argIdx] == "--ci":
			caseInsensitive = true
		}
		argIdx++
	}

	if argIdx >= len(os.Args) {
		fmt.Fprintf(os.Stderr, "Usage: %s [--k=N] [--ci] <file.expr>\n", os.Args[0])
		os.Exit(1)
	}
	filePath = os.Args[argIdx]

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	g := grammar.ExampleGrammar()
	if errs := g.Prepare(); len(errs) != 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		log.Fatal("grammar is not well-formed")
	}

	analysis, errs := ll.Analyze(g, k)
	if len(errs) != 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		log.Fatalf("grammar is not LL(%d)", k)
	}

	tz := tokenizer.NewTokenizer(f, g.Table, caseInsensitive)
	p, err := parser.NewParser(g, analysis, tz)
	if err != nil {
		log.Fatal(err)
	}

	tree, err := p.Parse()
	for _, e := range p.Errors() {
		fmt.Fprintln(os.Stderr, "recovered:", e)
	}
	if err != nil {
		log.Fatal(err)
	}

	printTree(os.Stdout, tree, 0)
}

func printTree(w io.Writer, n parser.ParseNode, depth int) {
	indent := strings.Repeat("  ", depth)
	switch v := n.(type) {
	case parser.TokenNode:
		fmt.Fprintf(w, "%s%s\n", indent, v.Tok)
	case *parser.ProductionNode:
		name := v.Name
		if name == "" {
			name = fmt.Sprintf("<group alt %d>", v.AltIndex)
		} else {
			name = fmt.Sprintf("%s (alt %d)", name, v.AltIndex)
		}
		fmt.Fprintf(w, "%s%s\n", indent, name)
		for _, c := range v.Children {
			printTree(w, c, depth+1)
		}
	default:
		fmt.Fprintf(w, "%s<unknown node>\n", indent)
	}
}
