//go:build linux || darwin

package main

import (
	"context"
	"os"

	"golang.org/x/sys/unix"
)

// listenForKeyboard reads single key presses from the terminal until a key
// quits or ctx is done. Output processing stays on so log lines still end
// with a carriage return.
func listenForKeyboard(ctx context.Context, k *keyboard) {
	fd := int(os.Stdin.Fd())
	oldState, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return
	}

	newState := *oldState
	newState.Lflag &^= unix.ICANON | unix.ECHO
	newState.Cc[unix.VMIN] = 1
	newState.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlSetTermios, &newState); err != nil {
		return
	}
	defer unix.IoctlSetTermios(fd, ioctlSetTermios, oldState)

	readKeys(ctx, k, os.Stdin)
}
