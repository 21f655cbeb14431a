// Package flagx supports the two-pass flag parsing used by the config
// packages: the config file path flag is parsed first, in isolation, so the
// file can be loaded before the full flag set runs over the remaining
// arguments.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs keeps only the flags named in allowedFlags, together with their
// values. Both "-f value" and "-f=value" spellings are recognized; anything
// else is dropped. The result is never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, name := range allowedFlags {
		allowed[name] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if !strings.HasPrefix(arg, "-") {
			continue
		}

		if name, _, found := strings.Cut(arg, "="); found {
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, ok := allowed[arg]; !ok {
			continue
		}
		filtered = append(filtered, arg)

		// A following argument that is not itself a flag is this flag's value.
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			filtered = append(filtered, args[i])
		}
	}

	return filtered
}

// JsonConfigFlags extracts the config file path given via -c or -config,
// ignoring every other argument so it cannot trip over flags that have not
// been registered yet. Returns "" when neither flag is present.
func JsonConfigFlags() string {
	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	var config string
	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
