package main

import "github.com/oshokin/clock-widget/cmd/clockctl/cmd"

func main() {
	cmd.Execute()
}
