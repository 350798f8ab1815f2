/*
Copyright © 2026 Stefan Wendler
*/
package main

import "github.com/wendlers/sermon/cmd"

func main() {
	cmd.Execute()
}
