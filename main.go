package main

import (
	"log"

	"github.com/ikodinhi/interview-scheduler/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
