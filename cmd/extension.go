package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"github.com/sirupsen/logrus"
)

// Environment variables handed to extensions, read back by RegisterFlags.
const (
	EnvStore    = "ASSETS_STORE"
	EnvBackend  = "ASSETS_BACKEND"
	EnvJournal  = "ASSETS_JOURNAL"
	EnvSigner   = "ASSETS_SIGNER"
	EnvLogLevel = "ASSETS_LOG_LEVEL"
	EnvRoot     = "ASSETS_ROOT"
)

// extensionEnv is the environment passing the global flags to an extension.
func extensionEnv() []string {
	return []string{
		EnvStore + "=" + *storePath,
		EnvBackend + "=" + *backend,
		EnvJournal + "=" + *journalPath,
		EnvSigner + "=" + *signer,
		EnvLogLevel + "=" + *logLevel,
		EnvRoot + "=" + strconv.FormatBool(*asRoot),
	}
}

// RunExtension attempts to find and execute an external assetctl-<subcommand> binary.
// It returns (true, exitCode) if an extension was found and executed,
// and (false, 0) if no extension was found or executed.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "assetctl-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		logrus.WithFields(logrus.Fields{"module": "cmd", "extension": externalCmdName}).WithError(err).Debug("extension not found")
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv()...)

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}
	return true, 0
}
