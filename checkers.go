package main

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/shlex"
)

// A Checker is one of the external tools run against each collected
// file. Command is a template; {path}, {ignore} and {rcfile} are
// interpolated before execution.
type Checker struct {
	Name        string
	Command     string
	InstallFrom string
}

var checkerDefinitions = map[string]string{
	"pylint":      `pylint {rcfile} {path}`,
	"pycodestyle": `pycodestyle {ignore} --statistics {path}`,
}

// Checkers run in this order for each file.
var checkerOrder = []string{"pylint", "pycodestyle"}

var installMap = map[string]string{
	"pylint":      "https://pypi.org/project/pylint/",
	"pycodestyle": "https://pypi.org/project/pycodestyle/",
}

// Name of the pylint configuration passed via --rcfile when it exists
// next to the checkpy executable.
const rcfileName = "pylintrc"

func checkerFromName(name string, conf *Config) *Checker {
	command := checkerDefinitions[name]
	installFrom := installMap[name]
	if override, ok := conf.Checker[name]; ok {
		if override.Command != "" {
			command = override.Command
		}
		if override.InstallFrom != "" {
			installFrom = override.InstallFrom
		}
	}
	return &Checker{Name: name, Command: command, InstallFrom: installFrom}
}

func checkersFromConfig(conf *Config) []*Checker {
	out := []*Checker{}
	for _, name := range checkerOrder {
		out = append(out, checkerFromName(name, conf))
	}
	return out
}

type Vars map[string]string

func (v Vars) Copy() Vars {
	out := Vars{}
	for k, v := range v {
		out[k] = v
	}
	return out
}

// Replace interpolates {k} with the value of k, and {k=default} with
// default when k is non-empty, nothing otherwise.
func (v Vars) Replace(s string) string {
	for k, v := range v {
		prefix := regexp.MustCompile(fmt.Sprintf("{%s=([^}]*)}", k))
		if v != "" {
			s = prefix.ReplaceAllString(s, "$1")
		} else {
			s = prefix.ReplaceAllString(s, "")
		}
		s = strings.Replace(s, fmt.Sprintf("{%s}", k), v, -1)
	}
	return s
}

// interpolatedCommand renders the checker command for one file.
func (c *Checker) interpolatedCommand(path string, registry *Registry) string {
	vars := Vars{
		"path":   path,
		"ignore": "",
		"rcfile": "",
	}
	if registry.Len() > 0 {
		vars["ignore"] = "--ignore=" + registry.Joined()
	}
	if rc := findRCFile(); rc != "" {
		vars["rcfile"] = "--rcfile=" + rc
	}
	return strings.TrimSpace(vars.Replace(c.Command))
}

// findRCFile returns the path of the pylintrc next to the running
// executable, or "" when there is none.
func findRCFile() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	rc := filepath.Join(filepath.Dir(exe), rcfileName)
	if info, err := os.Stat(rc); err == nil && !info.IsDir() {
		return rc
	}
	return ""
}

// parseCommand splits an interpolated command and resolves the
// executable on PATH.
func parseCommand(command string) (string, []string, error) {
	args, err := shlex.Split(command)
	if err != nil {
		return "", nil, err
	}
	if len(args) == 0 {
		return "", nil, fmt.Errorf("invalid command %q", command)
	}
	exe, err := exec.LookPath(args[0])
	if err != nil {
		return "", nil, err
	}
	return exe, args[1:], nil
}

// executableName is the bare program a checker needs on PATH.
func (c *Checker) executableName() (string, error) {
	args, err := shlex.Split(c.Command)
	if err != nil || len(args) == 0 {
		return "", fmt.Errorf("invalid command %q for checker %s", c.Command, c.Name)
	}
	return args[0], nil
}

// checkSanity verifies every checker executable is resolvable before
// any file is touched.
func checkSanity(checkers []*Checker) error {
	for _, checker := range checkers {
		exe, err := checker.executableName()
		if err != nil {
			return err
		}
		if _, err := exec.LookPath(exe); err != nil {
			return fmt.Errorf("%s not found on PATH", exe)
		}
	}
	return nil
}

func installGuidance(checkers []*Checker) string {
	w := bytes.NewBuffer(nil)
	fmt.Fprintf(w, "\nOne or more checkers are not installed. Install them from:\n\n")
	for _, checker := range checkers {
		fmt.Fprintf(w, "  %s  (%s)\n", checker.Name, checker.InstallFrom)
	}
	fmt.Fprintf(w, `
or, on a Debian-like platform:

    sudo apt install pylint
    sudo apt install pycodestyle

and then run %s again.
`, os.Args[0])
	return w.String()
}
