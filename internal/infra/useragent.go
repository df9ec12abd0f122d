package infra

import (
	"fmt"
	"runtime"
)

// DefaultUserAgent identifies this tool honestly to the public API.
// It is a read-only market-data consumer; there is nothing to disguise.
var DefaultUserAgent = fmt.Sprintf("bookwatch/1.0 (%s; %s)", runtime.GOOS, runtime.GOARCH)
