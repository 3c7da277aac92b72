package main

import "github.com/hr-pommala/sphuta-tms-freelancer/cmd"

func main() {
	cmd.Execute()
}
