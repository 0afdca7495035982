package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/solidscore/internal/reporter"
	"github.com/pthm/solidscore/internal/version"
)

const serviceSrc = `class OrderService
  def create(params)
    OrderRepository.new.save(params)
  end
end
`

const calculatorSrc = `class Calculator
  def add(a, b)
    a + b
  end
end
`

// execute runs the command tree with fresh flag values and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	for _, c := range append(RootCmd.Commands(), RootCmd) {
		reset := func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
		c.Flags().VisitAll(reset)
		c.PersistentFlags().VisitAll(reset)
	}

	var out, errOut bytes.Buffer
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&errOut)
	RootCmd.SetArgs(args)
	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		RootCmd.SetArgs(nil)
	})

	err := RootCmd.Execute()
	return out.String(), err
}

func projectDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "order_service.rb"), []byte(serviceSrc), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "calculator.rb"), []byte(calculatorSrc), 0o644))
	t.Chdir(dir)
	return dir
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version.Info()+"\n", out)
}

func TestAnalyzeJSON(t *testing.T) {
	projectDir(t)

	out, err := execute(t, "analyze", "--format", "json", ".")
	require.NoError(t, err)

	var decoded reporter.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	require.Len(t, decoded.Classes, 2)
	assert.Equal(t, 2, decoded.Summary.TotalClasses)
}

func TestAnalyzeGateFails(t *testing.T) {
	projectDir(t)

	out, err := execute(t, "analyze", "--min-dip", "50", "order_service.rb")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGateFailed)
	assert.Contains(t, out, "OrderService")

	_, err = execute(t, "analyze", "--min-dip", "50", "calculator.rb")
	assert.NoError(t, err)
}

func TestAnalyzeConfigFileThresholds(t *testing.T) {
	dir := projectDir(t)
	cfg := "thresholds:\n  total: 95\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".solid-score.yml"), []byte(cfg), 0o644))

	_, err := execute(t, "analyze", "order_service.rb")
	assert.ErrorIs(t, err, ErrGateFailed)
}

func TestAnalyzeRejectsUnknownFormat(t *testing.T) {
	projectDir(t)
	_, err := execute(t, "analyze", "--format", "xml")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrGateFailed)
}

func TestReportCommand(t *testing.T) {
	projectDir(t)

	out, err := execute(t, "report", "calculator.rb")
	require.NoError(t, err)
	assert.Contains(t, out, "Calculator\n")
	assert.Contains(t, out, "public add(required a, required b)")
}
