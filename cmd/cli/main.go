package main

import (
	"fmt"
	"io"
	"os"

	"github.com/akeren/interest-waitlist/config"
	"github.com/akeren/interest-waitlist/internal/log"
)

type command struct {
	name  string
	usage string
	run   func(logger *log.Logger, args []string) error
}

var commands = []command{
	{"migrate", "migrate [up|down [-steps N]|version]   Apply, roll back or inspect database migrations", runMigrate},
	{"submissions", "submissions list [-limit N] [-offset N] List signups, newest first\n  submissions delete <id>                 Delete one signup", runSubmissions},
	{"admin-token", "admin-token [-subject S] [-ttl D]       Issue a bearer token for the /admin endpoints",
		func(_ *log.Logger, args []string) error { return runAdminToken(args) }},
	{"submit", "submit -name N -email E [-subscribed]   Submit the signup form to a running server", runSubmit},
	{"count", "count                                   Print the signup count from a running server", runCount},
}

func lookupCommand(name string) (command, bool) {
	for _, c := range commands {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func main() {
	logger := log.NewLoggerWithJSONOutput()
	config.InitializeEnvFile(logger)

	os.Exit(dispatch(logger, os.Args[1:], os.Stdout, os.Stderr))
}

// dispatch runs the named command and returns the process exit code.
func dispatch(logger *log.Logger, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		writeUsage(stderr)
		return 1
	}

	switch args[0] {
	case "help", "-h", "--help":
		writeUsage(stdout)
		return 0
	}

	cmd, ok := lookupCommand(args[0])
	if !ok {
		fmt.Fprintf(stderr, "unknown command: %s\n", args[0])
		writeUsage(stderr)
		return 1
	}

	if err := cmd.run(logger, args[1:]); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", cmd.name, err)
		return 1
	}
	return 0
}

func writeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: cli <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	for _, c := range commands {
		fmt.Fprintf(w, "  %s\n", c.usage)
	}
}
