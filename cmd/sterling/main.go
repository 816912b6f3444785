/*
Sterling starts an interactive tokenization console session.

It selects a starting language and then reads commands from stdin, printing
tokenization results and other command output to stdout until the "QUIT"
command is input.

Usage:

	sterling [flags]

The flags are:

	-version
		Give the current version of Sterling and then exit.

	-g/-lang [NAME]
		Start the session with the named language selected. Defaults to the
		null lexer, which gives the whole text a single default-styled token.

	-s/-languages [FILE]
		Load additional language lexers from the given SLD language definition
		or manifest file before the session starts.

	-d/--direct
	    Force reading directly from the console as opposed to using GNU readline
		based routines for reading command input even if launched in a tty with
		stdin and stdout.

Once a session has started, the user input will be parsed for console commands.
For an explanation of the commands, type "HELP" once in a session. To exit the
console, type "QUIT".
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dekarrin/sterling"
	"github.com/dekarrin/sterling/internal/sld"
	"github.com/dekarrin/sterling/internal/version"

	// register the tree-sitter backed languages
	_ "github.com/dekarrin/sterling/lexers/sitter"
)

const (

	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitSessionError indicates an unsuccessful program execution due to a
	// problem during the session.
	ExitSessionError

	// ExitInitError indicates an unsuccessful program execution due to an issue
	// initializing the console.
	ExitInitError
)

var (
	returnCode  int   = ExitSuccess
	flagVersion *bool = flag.Bool("version", false, "Gives the version info")
	startLang   string
	sldFile     string
	forceDirect bool
)

func init() {
	const (
		langUsage        = "the language to start the session with"
		sldUsage         = "an SLD language definition or manifest file to load lexers from"
		forceDirectUsage = "force reading directly from stdin instead of going through GNU readline where possible"
	)
	flag.StringVar(&startLang, "lang", "", langUsage)
	flag.StringVar(&startLang, "g", "", langUsage+" (shorthand)")
	flag.StringVar(&sldFile, "languages", "", sldUsage)
	flag.StringVar(&sldFile, "s", "", sldUsage+" (shorthand)")
	flag.BoolVar(&forceDirect, "direct", false, forceDirectUsage)
	flag.BoolVar(&forceDirect, "d", false, forceDirectUsage+" (shorthand)")
}

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			// we are panicking, make sure we dont lose the panic just because
			// we checked
			panic("unrecoverable panic occured")
		} else {
			os.Exit(returnCode)
		}
	}()

	flag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if sldFile != "" {
		if _, err := sld.RegisterPack(sldFile); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
			returnCode = ExitInitError
			return
		}
	}

	ses, initErr := sterling.NewSession(os.Stdin, os.Stdout, startLang, forceDirect)
	if initErr != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", initErr.Error())
		returnCode = ExitInitError
		return
	}
	defer ses.Close()

	err := ses.RunUntilQuit()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitSessionError
		return
	}
}
