package main

import "github.com/oshokin/clock-widget/cmd/clock-widget/cmd"

func main() {
	cmd.Execute()
}
