// Package flagx helps several independent flag sets share os.Args.
//
// Each configuration stage (JSON file lookup, command-line overrides) parses
// only the flags it owns, so unknown flags from other stages never abort it.
package flagx

import (
	"flag"
	"strings"
)

// FilterArgs keeps the flags listed in owned, together with their values,
// and drops everything else.
//
// Both "-f value" and "-f=value" forms are understood. A token following an
// owned flag is taken as its value unless it starts with "-".
func FilterArgs(args []string, owned []string) []string {
	known := make(map[string]struct{}, len(owned))
	for _, f := range owned {
		known[f] = struct{}{}
	}

	out := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, own := known[name]; own {
				out = append(out, arg)
			}
			continue
		}

		if _, own := known[arg]; !own {
			continue
		}
		out = append(out, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			out = append(out, args[i+1])
			i++
		}
	}

	return out
}

// ConfigFileFlag returns the path given with -c or -config, or "" when
// neither is present.
func ConfigFileFlag(args []string) string {
	var path string

	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.StringVar(&path, "config", "", "path to JSON config file")
	fs.StringVar(&path, "c", "", "path to JSON config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}
