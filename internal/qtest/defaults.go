package qtest

import (
	"regexp"
	"time"
)

const (
	defaultTimeout = 60 * time.Second

	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
	headerRequestID   = "X-Request-ID"
)

var (
	bearerTokenRegexp     = regexp.MustCompile(`Bearer.*`)
	setCookieHeaderRegexp = regexp.MustCompile(`Set-Cookie:.*`)
)
