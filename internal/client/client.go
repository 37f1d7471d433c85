// Package client answers per-request questions about the visitor.
package client

import "strings"

var mobileMarkers = []string{
	"Mobile",
	"Android",
	"Silk/",
	"Kindle",
	"BlackBerry",
	"Opera Mini",
	"Opera Mobi",
}

// IsMobile reports whether the User-Agent looks like a phone or tablet.
func IsMobile(userAgent string) bool {
	if userAgent == "" {
		return false
	}
	for _, m := range mobileMarkers {
		if strings.Contains(userAgent, m) {
			return true
		}
	}
	return false
}
