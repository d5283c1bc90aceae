package main

import "github.com/jsphweid/adaptune/cmd"

func main() {
	cmd.Execute()
}
