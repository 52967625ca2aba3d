package main

import (
	"github.com/hhh7-yy/qingmusic-plugin/cmd"
)

func main() {
	cmd.Execute()
}
