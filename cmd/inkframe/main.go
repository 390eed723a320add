package main

import "github.com/inkframe/inkframe/backend-go/cmd/inkframe/cmd"

func main() {
	cmd.Execute()
}
