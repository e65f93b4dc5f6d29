// Command gutensearch builds and queries a full-text search index over a
// corpus of Project Gutenberg books.
package main

import "github.com/wizenheimer/gutensearch/internal/cli"

func main() {
	cli.Execute()
}
