// Package main is the entry point for the API explorer.
package main

func main() {
	Execute()
}
