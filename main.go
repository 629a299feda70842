package main

import "github.com/ndtran/netdiag/cmd"

var execCmd = cmd.Execute

func main() {
	execCmd()
}
