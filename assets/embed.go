package assets

import (
	_ "embed"
)

// HelpText is the usage summary shown by the help window.
//
//go:embed help.txt
var HelpText string
