package cmdflags

import "os"

func osGetenv(name string) string { return os.Getenv(name) }

func osSetenv(name, value string) error { return os.Setenv(name, value) }
