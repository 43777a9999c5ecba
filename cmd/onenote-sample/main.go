package main

import "github.com/deploymenttheory/go-onenote-page-client/version"

func main() {
	rootCmd.Version = version.GetVersion()
	Execute()
}
