package main

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	listFlag     = kingpin.Flag("list", "List suppressed warning codes and exit.").Short('l').Bool()
	removeFlag   = kingpin.Flag("remove", "Remove comma-separated codes from the suppression list.").Short('r').PlaceHolder("CODES").String()
	configFlag   = kingpin.Flag("config", "Load TOML configuration from this file.").PlaceHolder("FILE").String()
	debugFlag    = kingpin.Flag("debug", "Display messages for skipped paths, failed checkers, etc.").Short('d').Bool()
	deadlineFlag = kingpin.Flag("deadline", "Cancel a checker if it has not completed within this duration.").Default("0s").Duration()
	pathsArg     = kingpin.Arg("path", "Files or directories to check. Defaults to the current directory.").Strings()
)

func init() {
	kingpin.CommandLine.HelpFlag.Short('h')
}

func debug(format string, args ...interface{}) {
	if *debugFlag {
		fmt.Fprintf(os.Stderr, "DEBUG: "+format+"\n", args...)
	}
}

func warning(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "WARNING: "+format+"\n", args...)
}

func formatIgnored(registry *Registry) string {
	w := bytes.NewBuffer(nil)
	fmt.Fprintf(w, "\nThese are the warning codes that are being suppressed:\n\n")
	for _, code := range registry.Keys() {
		desc, _ := registry.Description(code)
		fmt.Fprintf(w, "  %s: %s\n", code, desc)
	}
	return w.String()
}

func formatCheckers(conf *Config) string {
	w := bytes.NewBuffer(nil)
	for _, checker := range checkersFromConfig(conf) {
		fmt.Fprintf(w, "  %s  (%s)\n        %s\n", checker.Name, checker.InstallFrom, checker.Command)
	}
	return w.String()
}

// applyRegistryFlags handles --list and --remove before any checks
// run. It returns the registry to check with, the exit status, and
// whether the program should terminate without running checks. --list
// takes priority over everything else.
func applyRegistryFlags(registry *Registry, list bool, remove string) (*Registry, int, bool) {
	if list {
		fmt.Print(formatIgnored(registry))
		return registry, 0, true
	}
	if remove != "" {
		codes := splitCodes(remove)
		removed, err := registry.Remove(codes)
		if err != nil {
			warning("%s", err)
			fmt.Print(formatIgnored(registry))
			return registry, 1, true
		}
		for _, code := range codes {
			fmt.Printf("removing %s from the suppression list\n", code)
		}
		registry = removed
	}
	return registry, 0, false
}

func main() {
	kingpin.CommandLine.Help = fmt.Sprintf(`Check Python sources with pylint and pycodestyle.

Without arguments checkpy checks every %s file under the current
directory. With arguments it checks the given files and directories;
non-matching paths are skipped. The exit status is the number of
failed checker invocations.

Checkers:

%s
Suppressed pycodestyle warnings (see --list and --remove):

%s`, sourceExt, formatCheckers(&Config{}), formatIgnored(defaultRegistry()))
	kingpin.Parse()

	conf, err := loadConfig(*configFlag)
	kingpin.FatalIfError(err, "failed to read configuration")
	if conf.Debug {
		*debugFlag = true
	}
	deadline := time.Duration(conf.Deadline)
	if *deadlineFlag != 0 {
		deadline = *deadlineFlag
	}

	registry, status, terminate := applyRegistryFlags(registryFromConfig(conf), *listFlag, *removeFlag)
	if terminate {
		os.Exit(status)
	}

	checkers := checkersFromConfig(conf)
	if err := checkSanity(checkers); err != nil {
		warning("%s", err)
		fmt.Print(installGuidance(checkers))
		os.Exit(1)
	}

	files := expandPaths(*pathsArg)
	os.Exit(runChecks(checkers, files, registry, deadline))
}
