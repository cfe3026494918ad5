package app

import (
	"bytes"
	"context"
	"encoding/json"
	"math/bits"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/ntt"
)

// newTestApp builds an Application over a small table. Tests here are not
// parallel because Run sets the global theme and log level.
func newTestApp(t *testing.T, args []string, opts ...AppOption) (*Application, *bytes.Buffer) {
	t.Helper()
	table, err := ntt.NewTable(ntt.WithMaxLog(12))
	require.NoError(t, err)

	var errBuf bytes.Buffer
	opts = append([]AppOption{WithTable(table)}, opts...)
	a, err := New(append([]string{"bigcalc", "--no-color"}, args...), &errBuf, opts...)
	require.NoError(t, err)
	return a, &errBuf
}

func TestNew_Help(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"bigcalc", "--help"}, &errBuf)
	require.Error(t, err)
	require.True(t, IsHelpError(err))
	require.Contains(t, errBuf.String(), "Usage")
}

func TestNew_InvalidFlag(t *testing.T) {
	_, err := New([]string{"bigcalc", "--workers", "-3"}, &bytes.Buffer{})
	require.Error(t, err)
	require.False(t, IsHelpError(err))
}

func TestNew_AdaptiveDefaults(t *testing.T) {
	a, err := New([]string{"bigcalc"}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Positive(t, a.Config.MaxTransformLog)
	require.Positive(t, a.Config.Workers)
}

func TestRun_SingleExpression(t *testing.T) {
	a, _ := newTestApp(t, []string{"-e", "99999 + 1"})
	var out bytes.Buffer
	code := a.Run(context.Background(), &out)
	require.Equal(t, apperrors.ExitSuccess, code, out.String())
	require.Contains(t, out.String(), "99999 + 1 = 100000")
	require.Contains(t, out.String(), "Single expression")
}

func TestRun_Quiet(t *testing.T) {
	a, _ := newTestApp(t, []string{"-q", "999999999999", "*", "999999999999"})
	var out bytes.Buffer
	code := a.Run(context.Background(), &out)
	require.Equal(t, apperrors.ExitSuccess, code)
	require.Equal(t, "999999999998000000000001", strings.TrimSpace(out.String()))
}

func TestRun_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"negative difference", []string{"-e", "5 - 10"}, apperrors.ExitErrorArithmetic},
		{"malformed operand", []string{"-e", "12a45 + 1"}, apperrors.ExitErrorConfig},
		{"lenient operand", []string{"--lenient", "-e", "12a45 + 1"}, apperrors.ExitSuccess},
		{"first failure wins", []string{"-e", "5 - 10", "-e", "x + 1", "-e", "1 + 1"}, apperrors.ExitErrorArithmetic},
		{"no expressions", nil, apperrors.ExitErrorConfig},
		{"invalid log level", []string{"--log-level", "loud", "-e", "1 + 1"}, apperrors.ExitErrorConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestApp(t, tt.args)
			var out bytes.Buffer
			require.Equal(t, tt.want, a.Run(context.Background(), &out), out.String())
		})
	}
}

func TestRun_Canceled(t *testing.T) {
	a, _ := newTestApp(t, []string{"-e", "1 + 1"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out bytes.Buffer
	require.Equal(t, apperrors.ExitErrorCanceled, a.Run(ctx, &out))
}

func TestRun_InputFileAndOutput(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "results.txt")
	stdin := strings.NewReader("# batch\n12 * 34\n\n100000 - 1\n")

	a, _ := newTestApp(t, []string{"-f", "-", "-o", outPath}, WithInput(stdin))
	var out bytes.Buffer
	code := a.Run(context.Background(), &out)
	require.Equal(t, apperrors.ExitSuccess, code, out.String())
	require.Contains(t, out.String(), "2 of 2 expressions succeeded")
	require.Contains(t, out.String(), "Results saved to: "+outPath)

	saved, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.Contains(t, string(saved), "# Expressions: 2")
	require.Contains(t, string(saved), "408")
	require.Contains(t, string(saved), "99999")
}

func TestRun_MissingInputFile(t *testing.T) {
	a, _ := newTestApp(t, []string{"-f", filepath.Join(t.TempDir(), "absent.txt")})
	var out bytes.Buffer
	require.Equal(t, apperrors.ExitErrorConfig, a.Run(context.Background(), &out))
}

func TestRun_VerboseMemoryStats(t *testing.T) {
	m := metrics.NewMetrics()
	a, _ := newTestApp(t, []string{"-v", "--prewarm", "-e", "123456789012 * 987654321098"}, WithMetrics(m))
	var out bytes.Buffer
	require.Equal(t, apperrors.ExitSuccess, a.Run(context.Background(), &out), out.String())
	require.Contains(t, out.String(), "121932631136585886175176")
	require.Contains(t, out.String(), "Transform levels:")
}

func TestRun_REPL(t *testing.T) {
	in := strings.NewReader("1 + 1\nmul ans 21\nexit\n")
	a, _ := newTestApp(t, []string{"-i"}, WithInput(in))
	var out bytes.Buffer
	require.Equal(t, apperrors.ExitSuccess, a.Run(context.Background(), &out))
	require.Contains(t, out.String(), "= 2")
	require.Contains(t, out.String(), "= 42")
	require.Contains(t, out.String(), "Goodbye!")
}

func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	cases := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-e", "1 + 1", "-V"}, true},
		{[]string{"-version"}, true},
		{[]string{"-e", "1 + 1"}, false},
		{[]string{"--", "--version"}, false},
		{nil, false},
	}
	for _, c := range cases {
		require.Equal(t, c.want, HasVersionFlag(c.args), "%q", c.args)
	}
}

func TestPrintVersion(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	PrintVersion(&out)
	require.Contains(t, out.String(), "bigcalc "+Version)
	require.Contains(t, out.String(), "4179340454199820289")
	require.Contains(t, out.String(), "radix 100000")
}

func TestRun_REPLPreWarmIsModest(t *testing.T) {
	table, err := ntt.NewTable(ntt.WithMaxLog(20))
	require.NoError(t, err)
	a, _ := newTestApp(t, []string{"-i", "--prewarm"}, WithTable(table), WithInput(strings.NewReader("exit\n")))

	var out bytes.Buffer
	require.Equal(t, apperrors.ExitSuccess, a.Run(context.Background(), &out))
	want := bits.TrailingZeros(uint(ntt.ConvolutionSize(replWarmSlots, replWarmSlots)))
	require.Equal(t, want, bits.Len64(table.PopulatedLevels())-1)
	require.Less(t, want, table.MaxLog())
}

func TestNewLogger_JSONWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	newLogger(&buf, true).Info("transform table pre-warmed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "bigcalc", entry["component"])
}

func TestRun_VerboseLogsFailures(t *testing.T) {
	a, errBuf := newTestApp(t, []string{"-v", "-e", "5 - 10"})
	var out bytes.Buffer
	require.Equal(t, apperrors.ExitErrorArithmetic, a.Run(context.Background(), &out))
	require.Contains(t, errBuf.String(), `"message":"expression failed"`)
	require.Contains(t, errBuf.String(), `"exit_code":3`)
}
