// version.go
package version

// AppName holds the name of the application
var AppName = "go-onenote-page-client"

// Version holds the current version of the application
var Version = "0.1.0"

// GetAppName returns the name of the application
func GetAppName() string {
	return AppName
}

// GetVersion returns the current version of the application
func GetVersion() string {
	return Version
}

// GetUserAgentHeader returns the User-Agent string sent with every request.
func GetUserAgentHeader() string {
	return AppName + "/" + Version
}
