package consts

import "strings"

// devmode is overridden at build time via -ldflags "-X .../consts.devmode=true"
var devmode string = "false"

func IsDevMode() bool {
	return strings.ToLower(devmode) == "true"
}
