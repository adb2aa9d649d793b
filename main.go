package main

import "github.com/ryan-gang/sendmail/cmd"

func main() {
	cmd.Execute()
}
