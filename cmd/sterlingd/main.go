/*
Sterlingd starts a Sterling tokenization server and begins listening for new
connections.

Usage:

	sterlingd [flags]
	sterlingd [flags] -l [[ADDRESS]:PORT]

Once started, the Sterling server will listen for HTTP requests and respond to
them using REST protocol. By default, it will listen on localhost:8080. This can
be changed with the --listen/-l flag (or config via environment var). The flag
argument must be either a full address with port, such as "192.168.0.2:6001", or
just the IP address preceeded by a colon, such as ":6001".

If a JWT token secret is not given, one will be automatically generated and
seeded with the current system time. As a consequence, in this mode of operation
all tokens are rendered invalid as soon as the server shuts down. This is
suitable for testing, but must be given via either CLI flags or environment
variable if running in production.

The flags are:

	-v, --version
		Give the current version of the Sterling server and then exit.

	-l, --listen LISTEN_ADDRESS
		Listen on the given address. Must be in BIND_ADDRESS:PORT or :PORT
		format. If not given, will default to the value of environment variable
		STERLING_LISTEN_ADDRESS, and if that is not given, will default to
		localhost:8080.

	-s, --secret TOKEN_SECRET
		Use the provided secret for signing JWT tokens. If there are less than
		32 bytes in the secret, it will be repeated until it is. The maximum
		size is 64 bytes. If not given, will default to the value of environment
		variable STERLING_TOKEN_SECRET. If no secret is specified or an emty
		secret is given, a random secret will be automatically generated. Note
		that any tokens issued with a random secret will become invalid as soon
		as the server shuts down.

	--db DRIVER[:PARAMS]
		Use the given DB connection string. DRIVER must be one of the following:
		inmem, sqlite. inmem has no further params. sqlite needs the path to the
		data director such as sqlite:path/to/db_dir. If not given, will default
		to the value of environment variable STERLING_DATABASE. If no DB driver
		is specified or an empty is given, an in-memory database is
		automatically selected.

	--languages FILE
		Load additional language lexers from the given SLD language definition
		or manifest file before serving. If not given, will default to the
		value of environment variable STERLING_LANGUAGES. The built-in lexers
		are always available.
*/
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/dekarrin/sterling/internal/version"
	"github.com/dekarrin/sterling/server"
	"github.com/dekarrin/sterling/server/dao"
	"github.com/spf13/pflag"

	// register the tree-sitter backed languages
	_ "github.com/dekarrin/sterling/lexers/sitter"
)

const (
	EnvListen    = "STERLING_LISTEN_ADDRESS"
	EnvSecret    = "STERLING_TOKEN_SECRET"
	EnvDB        = "STERLING_DATABASE"
	EnvLanguages = "STERLING_LANGUAGES"
)

var (
	flagVersion   = pflag.BoolP("version", "v", false, "Give the current version of the Sterling server and then exit.")
	flagListen    = pflag.StringP("listen", "l", "", "Listen on the given address.")
	flagSecret    = pflag.StringP("secret", "s", "", "Use the given secret for token generation.")
	flagDB        = pflag.String("db", "", "Use the given DB connection string.")
	flagLanguages = pflag.String("languages", "", "Load language lexers from the given SLD file before serving.")
)

func main() {
	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s (Sterling v%s)\n", version.ServerCurrent, version.Current)
		return
	}

	args := pflag.Args()

	if len(args) > 0 {
		fmt.Fprintf(os.Stderr, "Too many arguments\nDo -h for help.\n")
		os.Exit(1)
	}

	// get address info
	port := 0
	addr := ""
	listenAddr := os.Getenv(EnvListen)
	if pflag.Lookup("listen").Changed {
		listenAddr = *flagListen
	}
	if listenAddr != "" {
		bindParts := strings.SplitN(listenAddr, ":", 2)
		if len(bindParts) != 2 {
			fmt.Fprintf(os.Stderr, "Listen address is not in ADDRESS:PORT or :PORT format.\nDo -h for help.\n")
			os.Exit(1)
		}

		var err error

		addr = bindParts[0]
		port, err = strconv.Atoi(bindParts[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "%q is not a valid port number.\nDo -h for help.\n", bindParts[1])
			os.Exit(1)
		}
	}

	// assemble a server config
	var cfg server.Config

	// look at db connection string
	dbConnStr := os.Getenv(EnvDB)
	if pflag.Lookup("db").Changed {
		dbConnStr = *flagDB
	}
	if dbConnStr != "" {
		var err error
		cfg.DB, err = server.ParseDBConnString(dbConnStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Not a valid DB string: %q: %s\nDo -h for help.\n", dbConnStr, err.Error())
			os.Exit(1)
		}
	}

	// language pack
	cfg.LanguagePackFile = os.Getenv(EnvLanguages)
	if pflag.Lookup("languages").Changed {
		cfg.LanguagePackFile = *flagLanguages
	}

	// get token secret
	var tokSecret []byte
	tokSecStr := os.Getenv(EnvSecret)
	if pflag.Lookup("secret").Changed {
		tokSecStr = *flagSecret
	}
	// was the secret given?
	if tokSecStr != "" {
		// if so, validate it
		tokSecret = []byte(tokSecStr)

		for len(tokSecret) < server.MinSecretSize {
			doubledTokSecret := make([]byte, len(tokSecret)*2)
			copy(doubledTokSecret, tokSecret)
			copy(doubledTokSecret[len(tokSecret):], tokSecret)
			tokSecret = doubledTokSecret
		}

		if len(tokSecret) > server.MaxSecretSize {
			// keys would be chopped at the max, so rather than the user
			// thinking they have more security by giving a longer key, refuse
			// to start.
			fmt.Fprintf(os.Stderr, "Token secret is %d bytes, but it must be <= %d bytes\nDo -h for help.\n", len(tokSecret), server.MaxSecretSize)
			os.Exit(1)
		}
	} else {
		// generate a new one

		// use all possible bytes if doing a generated secret
		tokSecret = make([]byte, server.MaxSecretSize)
		_, err := rand.Read(tokSecret)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Could not generate token secret: %s\n", err.Error())
			os.Exit(1)
		}

		// yell at the user bc they should know their secret might be bad
		log.Printf("WARN  Using generated token secret; all tokens issued will become invalid at shutdown")
	}
	cfg.TokenSecret = tokSecret

	// configuration complete, initialize the server
	sts, err := server.New(cfg)
	if err != nil {
		log.Fatalf("FATAL could not start server: %s", err.Error())
	}
	log.Printf("DEBUG Server initialized")

	// immediately create the admin user so we have someone we can log in as.
	_, err = sts.CreateUser(context.Background(), "admin", "password", "bogus@example.com", dao.Admin)
	if err != nil && !errors.Is(err, server.ErrAlreadyExists) {
		log.Printf("ERROR could not create initial admin user: %v", err)
		os.Exit(2)
	}
	if !errors.Is(err, server.ErrAlreadyExists) {
		log.Printf("INFO  Added initial admin user with password 'password'...")
	}

	// okay, now actually launch it
	log.Printf("INFO  Starting Sterling server %s...", version.ServerCurrent)
	sts.ServeForever(addr, port)
}
