package app

import (
	"fmt"
	"io"

	"github.com/agbru/bigcalc/internal/digits"
	"github.com/agbru/bigcalc/internal/ntt"
	"github.com/agbru/bigcalc/internal/sysmon"
)

// Version is set at build time with -ldflags "-X .../internal/app.Version=...".
var Version = "dev"

// HasVersionFlag reports whether args request the version. It is checked
// before flag parsing so --version works alongside otherwise invalid flags.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--version", "-version", "-V":
			return true
		case "--":
			return false
		}
	}
	return false
}

// PrintVersion writes the version, the arithmetic parameters and the host
// environment to out.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "bigcalc %s\n", Version)
	fmt.Fprintf(out, "  radix %d (%d digits per slot), NTT modulus %d, primitive root %d\n",
		digits.Radix, digits.Width, uint64(ntt.Modulus), ntt.PrimitiveRoot)
	fmt.Fprintf(out, "  transform orders up to %d (default %d)\n", ntt.MaxSupportedLog, ntt.DefaultMaxLog)
	fmt.Fprintf(out, "  %s\n", sysmon.Sample())
}
