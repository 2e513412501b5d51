package acervo

import _ "embed"

// Version is the release version of the portal.
//
//go:embed VERSION
var Version string
