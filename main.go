package main

import "university-registrar/cmd"

func main() {
	cmd.Execute()
}
