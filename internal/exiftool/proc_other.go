//go:build !windows

package exiftool

import "os/exec"

func hideWindow(*exec.Cmd) {}
