//go:build !unix

package file

import "os"

// Directory locking relies on flock; elsewhere the directory is shared.
func lockDir(string) (*os.File, error) { return nil, nil }

func unlockDir(*os.File) error { return nil }
