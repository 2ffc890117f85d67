package main

import "github.com/metalingusman/immich-deduper/cmd"

func main() {
	cmd.Execute()
}
