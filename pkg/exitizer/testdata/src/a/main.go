package main

import (
	"log"
	"os"
	exit "os"
)

// A
type A struct{}

// Exit
func (a A) Exit() {}

// Exit
func Exit() {}

func main() {
	os.Exit(1) // want "os.Exit call"
	exit.Exit(2) // want "os.Exit call"
	log.Fatal("boom") // want "log.Fatal call"
	log.Fatalf("%s", "boom") // want "log.Fatalf call"
	Exit()
	a := A{}
	a.Exit()
	defer func() {
		os.Exit(3) // want "os.Exit call"
	}()
	log.Println("ok")
}

func helper() {
	os.Exit(1)
}
