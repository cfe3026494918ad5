package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
)

// envFlags lists the flags that BIGCALC_ variables may set. The variable
// name derives from the first (long) name: "max-transform-log" is read from
// BIGCALC_MAX_TRANSFORM_LOG. Expressions and -i are command-line only.
var envFlags = [][]string{
	{"max-transform-log"},
	{"workers"},
	{"timeout"},
	{"file", "f"},
	{"output", "o"},
	{"log-level"},
	{"metrics-addr"},
	{"theme"},
	{"verbose", "v"},
	{"quiet", "q"},
	{"lenient"},
	{"prewarm"},
	{"no-color"},
}

// EnvName returns the environment variable read for a flag.
func EnvName(flagName string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(flagName, "-", "_"))
}

// applyEnvOverrides feeds environment values through the flag parsers for
// every listed flag not set on the command line, so that command-line
// values win over the environment and the environment over defaults.
//
// Values the flag rejects are skipped; the returned warnings name them.
func applyEnvOverrides(fs *flag.FlagSet) []string {
	explicit := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

	var warnings []string
next:
	for _, names := range envFlags {
		for _, name := range names {
			if explicit[name] {
				continue next
			}
		}
		key := EnvName(names[0])
		val, ok := os.LookupEnv(key)
		if !ok || val == "" {
			continue
		}
		if isBoolFlag(fs.Lookup(names[0])) {
			val = normalizeBool(val)
		}
		if err := fs.Set(names[0], val); err != nil {
			warnings = append(warnings, fmt.Sprintf("ignoring %s=%q: %v", key, val, err))
		}
	}
	return warnings
}

func isBoolFlag(f *flag.Flag) bool {
	if f == nil {
		return false
	}
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

// normalizeBool maps the yes/no spellings strconv.ParseBool lacks.
func normalizeBool(val string) string {
	switch strings.ToLower(val) {
	case "yes", "on":
		return "true"
	case "no", "off":
		return "false"
	}
	return val
}
