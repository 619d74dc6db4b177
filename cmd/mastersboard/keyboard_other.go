//go:build !linux && !darwin

package main

import (
	"context"
	"os"
)

// listenForKeyboard reads keys from stdin. The terminal stays in line mode
// here, so each key takes effect after Enter.
func listenForKeyboard(ctx context.Context, k *keyboard) {
	readKeys(ctx, k, os.Stdin)
}
