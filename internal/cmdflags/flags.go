package cmdflags

import (
	"github.com/urfave/cli/v2"
)

func Bind(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "bind",
		Usage:       "Address to bind the HTTP server to",
		Value:       *out,
		Destination: out,
	}
}

func Database(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "db",
		Aliases:     []string{"d"},
		Usage:       "Path to the sqlite database file",
		Value:       *out,
		Destination: out,
	}
}

// SecretEnvVar names the environment variable that holds a secret. The
// secret itself is never accepted as an argument value, so it cannot
// leak through shell history or process listings.
func SecretEnvVar(name, usage, defaultVar string, out *string) cli.Flag {
	if len(*out) == 0 {
		*out = defaultVar
	}
	return &cli.StringFlag{
		Name:        name,
		Usage:       usage,
		Value:       *out,
		Destination: out,
	}
}

// ReadSecret reads varname through getfn and clears it through setfn so
// the secret does not linger in the process environment. Both funcs
// default to the os package when nil.
func ReadSecret(varname string, getfn func(string) string, setfn func(string, string) error) string {
	if getfn == nil {
		getfn = osGetenv
	}
	if setfn == nil {
		setfn = osSetenv
	}
	val := getfn(varname)
	setfn(varname, "")
	return val
}
