package main

import (
	"github.com/PauloHFS/blogicum/internal/cmd"
)

func main() {
	cmd.Execute()
}
