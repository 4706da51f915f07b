// csrctl: perintah admin untuk backend CSR (migrasi, seed, admin, laporan).
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"

	"csr_backend/internals/configs"
)

func main() {
	configs.LoadEnv()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	for _, c := range commands {
		commander.Register(c, "")
	}

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
