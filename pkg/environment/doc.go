// Package environment names the deployment environments the logger and the
// demo server switch their defaults on.
package environment
