// stepcheck validates assembly guide documents without opening a window.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/Faultbox/assembly-guide/internal/groups"
	"github.com/Faultbox/assembly-guide/internal/guide"
	"github.com/Faultbox/assembly-guide/internal/logger"
	"github.com/Faultbox/assembly-guide/internal/scene"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `stepcheck - assembly guide document checker

Usage:
  stepcheck <command> -scene <file> [-groups <file>] [-steps <file>] [args]

Commands:
  groups             List base and composite groups with their members
  resolve <name>     Print the meshes a group name resolves to
  steps              List steps and the meshes each one isolates

Documents may be YAML, JSON or TOML. Exit status is 1 on load errors and
on steps whose groups resolve to no meshes.

Examples:
  stepcheck groups -scene glider.yaml -groups groups.json
  stepcheck resolve -scene glider.yaml -groups groups.json Airframe
  stepcheck steps -scene glider.yaml -groups groups.json -steps steps.toml`)
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	command := args[0]
	switch command {
	case "groups", "resolve", "steps":
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", command)
		printUsage(stderr)
		return 1
	}

	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	fs.SetOutput(stderr)
	scenePath := fs.String("scene", "", "Scene manifest")
	groupsPath := fs.String("groups", "", "Group declaration document")
	stepsPath := fs.String("steps", "", "Step sequence document")
	debug := fs.Bool("debug", false, "Log resolution details to stderr")
	if err := fs.Parse(args[1:]); err != nil {
		return 1
	}
	if *scenePath == "" {
		fmt.Fprintln(stderr, "Error: -scene is required")
		return 1
	}
	if *debug {
		if err := logger.Init("debug", ""); err != nil {
			fmt.Fprintf(stderr, "Logger error: %v\n", err)
			return 1
		}
		defer logger.Sync()
	}

	o, err := guide.Open(guide.Paths{Scene: *scenePath, Groups: *groupsPath, Steps: *stepsPath},
		guide.DefaultOptions(), logger.Named("stepcheck"))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	switch command {
	case "groups":
		cfg := &groups.Config{}
		if *groupsPath != "" {
			// Already validated by Open.
			cfg, _ = groups.LoadConfig(*groupsPath)
		}
		cmdGroups(stdout, o.Resolver(), cfg)
	case "resolve":
		if fs.NArg() < 1 {
			fmt.Fprintln(stderr, "Usage: stepcheck resolve -scene <file> [-groups <file>] <name>")
			return 1
		}
		cmdResolve(stdout, o.Resolver(), fs.Arg(0))
	case "steps":
		if *stepsPath == "" {
			fmt.Fprintln(stderr, "Error: -steps is required")
			return 1
		}
		return cmdSteps(stdout, stderr, o)
	}
	return 0
}

func cmdGroups(w io.Writer, r *groups.Resolver, cfg *groups.Config) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tKIND\tMEMBERS")
	for _, name := range cfg.BaseNames {
		if g, ok := r.Base(name); ok {
			fmt.Fprintf(tw, "%s\tbase\t%s\n", name, meshNames(g.Members))
		}
	}
	for _, decl := range cfg.AssembledGroups {
		if g, ok := r.Composite(decl.Name); ok {
			fmt.Fprintf(tw, "%s\tcomposite\t%s\n", decl.Name, meshNames(g.Members))
		}
	}
	tw.Flush()
	printDiagnostics(w, r)
}

func cmdResolve(w io.Writer, r *groups.Resolver, name string) {
	for _, m := range r.Resolve(name) {
		fmt.Fprintln(w, m.Name)
	}
	printDiagnostics(w, r)
}

func cmdSteps(stdout, stderr io.Writer, o *guide.Orchestrator) int {
	seq := o.Steps()
	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tSTEP\tPOLICY\tGROUPS\tMESHES\tLABEL")
	for i := 0; i < seq.Len(); i++ {
		s := seq.At(i)
		n := len(o.Resolver().ResolveAll(s.InvolvedGroupNames))
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n", i+1, s.ID, s.VisibilityPolicy,
			strings.Join(s.InvolvedGroupNames, ","), n, s.Label)
	}
	tw.Flush()

	fmt.Fprintln(stdout)
	tw = tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tMESHES")
	for _, name := range seq.GroupNames() {
		fmt.Fprintf(tw, "%s\t%d\n", name, len(o.Resolver().Resolve(name)))
	}
	tw.Flush()
	printDiagnostics(stdout, o.Resolver())

	if empty := o.EmptySteps(); len(empty) > 0 {
		fmt.Fprintf(stderr, "Error: steps with no meshes: %s\n", strings.Join(empty, ", "))
		return 1
	}
	return 0
}

func printDiagnostics(w io.Writer, r *groups.Resolver) {
	diags := r.Diagnostics()
	if len(diags) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Diagnostics:")
	for _, d := range diags {
		fmt.Fprintf(w, "  %s\n", d)
	}
}

func meshNames(meshes []*scene.Mesh) string {
	if len(meshes) == 0 {
		return "-"
	}
	names := make([]string, len(meshes))
	for i, m := range meshes {
		names[i] = m.Name
	}
	return strings.Join(names, ", ")
}
