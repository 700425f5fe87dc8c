package main

import "os"

func main() {
	if err := Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
