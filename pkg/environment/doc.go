// Package environment names the deployment environments the service runs in
// and normalises the APP_ENV value into one of them.
package environment
