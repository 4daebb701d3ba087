// Package cgi runs delegated programs producing the rest of a response.
package cgi

import (
	"io"
	"os"
	"os/exec"

	"github.com/pkg/errors"

	"github.com/olive-web/olive/config"
)

// filer is implemented by connections able to hand out their descriptor, e.g. *net.TCPConn.
// The program then writes into the connection directly, bypassing the server process.
type filer interface {
	File() (*os.File, error)
}

// Runner starts delegated programs. The environment overlay is built anew on every run
// and applied only to the child, the server's own environment is never touched.
type Runner struct {
	cfg config.CGI
}

func NewRunner(cfg config.CGI) Runner {
	return Runner{cfg: cfg}
}

// Env returns the environment the program is started with.
func (r Runner) Env(args string) []string {
	var env []string
	if r.cfg.InheritEnv {
		env = os.Environ()
	}

	// exec.Cmd keeps the last value of duplicated keys, so the overlay always wins
	return append(env, r.cfg.QueryEnv+"="+args)
}

// Run starts the program with no arguments except its own name and blocks until it
// exits. Its standard output is attached to out. A non-zero exit status is reported as
// *exec.ExitError, failing to start the program at all as any other error.
func (r Runner) Run(path, args string, out io.Writer) error {
	cmd := &exec.Cmd{
		Path:   path,
		Args:   []string{path},
		Env:    r.Env(args),
		Stdout: out,
		Stderr: os.Stderr,
	}

	if f, ok := out.(filer); ok {
		file, err := f.File()
		if err != nil {
			return errors.Wrap(err, "cgi: duplicate connection descriptor")
		}

		defer file.Close()
		cmd.Stdout = file
	}

	if err := cmd.Start(); err != nil {
		return errors.Wrapf(err, "cgi: start %s", path)
	}

	return cmd.Wait()
}

// IsExitError reports whether the program was started, but finished unsuccessfully.
func IsExitError(err error) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr)
}
