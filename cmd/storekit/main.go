package main

import "github.com/vietddude/storekit/internal/cli"

func main() {
	cli.Execute()
}
