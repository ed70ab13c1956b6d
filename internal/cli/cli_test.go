package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/nestindex/pkg/errors"
	pkgio "github.com/matzehuels/nestindex/pkg/io"
	"github.com/matzehuels/nestindex/pkg/nesting"
	"github.com/matzehuels/nestindex/pkg/observability"
)

// isolate points the cache and config directories at fresh temp dirs.
func isolate(t *testing.T) (cacheHome, configHome string) {
	t.Helper()
	cacheHome, configHome = t.TempDir(), t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Cleanup(observability.Reset)
	return cacheHome, configHome
}

func runCLI(t *testing.T, args ...string) (string, *CLI, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), c, err
}

func decodeResult(t *testing.T, out string) nesting.Result {
	t.Helper()
	var res nesting.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	return res
}

func TestIndexCommandJSON(t *testing.T) {
	isolate(t)
	out, _, err := runCLI(t, "index", "123132", "--json", "--no-cache")
	if err != nil {
		t.Fatalf("index error: %v", err)
	}
	res := decodeResult(t, out)
	if res.Index != 2 || res.Circular || res.Policy != "tau" {
		t.Errorf("result = %+v, want linear index 2 under tau", res)
	}
	if got := res.Trace.String(); got != "{123132, 1221, ε} obtained by: remove-letter(1), drop-maximal-sequences" {
		t.Errorf("trace = %q", got)
	}
}

func TestIndexCommandCircular(t *testing.T) {
	isolate(t)
	out, _, err := runCLI(t, "index", "1,2,2,3,1,3", "--circular", "--json", "--no-cache")
	if err != nil {
		t.Fatalf("index error: %v", err)
	}
	res := decodeResult(t, out)
	if res.Index != 1 || res.Witness.String() != "121233" {
		t.Errorf("circular result = index %d witness %s, want 1 and 121233", res.Index, res.Witness)
	}
}

func TestIndexCommandRejectsNonDOW(t *testing.T) {
	isolate(t)
	_, _, err := runCLI(t, "index", "121", "--no-cache")
	if !errors.Is(err, errors.ErrCodeNotDoubleOccurrence) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeNotDoubleOccurrence)
	}

	_, _, err = runCLI(t, "index", "123132", "--policy", "longest", "--no-cache")
	if !errors.Is(err, errors.ErrCodeInvalidPolicy) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidPolicy)
	}
}

func TestIndexCommandUsesCache(t *testing.T) {
	cacheHome, _ := isolate(t)

	if _, _, err := runCLI(t, "index", "12342143"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	_, c, err := runCLI(t, "index", "12342143")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if hits := c.counters.CacheHits.Load(); hits != 1 {
		t.Errorf("second run had %d cache hits, want 1", hits)
	}
	if evals := c.counters.Evaluations.Load(); evals != 0 {
		t.Errorf("second run evaluated %d words, want 0", evals)
	}
	if _, err := os.Stat(filepath.Join(cacheHome, appName)); err != nil {
		t.Errorf("cache directory missing: %v", err)
	}

	_, c, err = runCLI(t, "index", "12342143", "--refresh")
	if err != nil {
		t.Fatal(err)
	}
	if c.counters.Evaluations.Load() != 1 {
		t.Error("--refresh should recompute the result")
	}
}

func TestIndexCommandBadgerBackend(t *testing.T) {
	_, configHome := isolate(t)
	writeFile(t, configHome, filepath.Join(appName, "config.toml"), "cache_backend = \"badger\"\n")

	if _, _, err := runCLI(t, "index", "1221"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	_, c, err := runCLI(t, "index", "1221")
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if c.counters.CacheHits.Load() != 1 {
		t.Error("badger backend should serve the second run from cache")
	}
}

func TestConfigFlagPrecedence(t *testing.T) {
	_, configHome := isolate(t)
	writeFile(t, configHome, filepath.Join(appName, "config.toml"), "circular = true\nno_cache = true\n")

	out, _, err := runCLI(t, "index", "122313", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if res := decodeResult(t, out); !res.Circular || res.Index != 1 {
		t.Errorf("config circular = true not applied: %+v", res)
	}

	out, _, err = runCLI(t, "index", "122313", "--json", "--circular=false")
	if err != nil {
		t.Fatal(err)
	}
	if res := decodeResult(t, out); res.Circular || res.Index != 2 {
		t.Errorf("--circular=false should override the config: %+v", res)
	}
}

func TestExplicitConfigFlag(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "run.yaml", "policy: sigma\nno_cache: true\n")

	out, _, err := runCLI(t, "--config", path, "index", "12332144", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if res := decodeResult(t, out); res.Policy != "sigma" || res.Index != 2 {
		t.Errorf("sigma policy from config not applied: %+v", res)
	}

	_, _, err = runCLI(t, "--config", filepath.Join(t.TempDir(), "none.toml"), "index", "11")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing --config file error = %v", err)
	}
}

const batchWords = `# sample
11 123132
121
1212
`

func TestBatchCommandText(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "words.txt", batchWords)

	out, _, err := runCLI(t, "batch", path, "--no-cache", "-j", "2")
	if err != nil {
		t.Fatalf("batch error: %v", err)
	}
	want := "11: 1\n123132: 2\n121: not DOW\n1212: 1\n"
	if out != want {
		t.Errorf("batch output = %q, want %q", out, want)
	}
}

func TestBatchCommandJSONFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "words.txt", batchWords)
	outPath := filepath.Join(dir, "report.json")

	if _, _, err := runCLI(t, "batch", path, "-o", outPath, "--no-cache"); err != nil {
		t.Fatalf("batch error: %v", err)
	}
	report, err := pkgio.ImportReport(outPath)
	if err != nil {
		t.Fatalf("ImportReport: %v", err)
	}
	if len(report.Outcomes) != 4 || report.Stats.Failed != 1 || report.Stats.MaxIndex != 2 {
		t.Errorf("report stats = %+v over %d outcomes", report.Stats, len(report.Outcomes))
	}
	if report.Outcomes[2].Code != errors.ErrCodeNotDoubleOccurrence {
		t.Errorf("outcome for 121 has code %q", report.Outcomes[2].Code)
	}
}

func TestBatchCommandInvalidFormat(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "words.txt", "11\n")
	_, _, err := runCLI(t, "batch", path, "--format", "xml")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestCountCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "words.txt", batchWords)

	out, _, err := runCLI(t, "count", path, "--plain", "--no-cache")
	if err != nil {
		t.Fatalf("count error: %v", err)
	}
	if want := "NI = 1: 2\nNI = 2: 1\n"; out != want {
		t.Errorf("count output = %q, want %q", out, want)
	}

	// A saved report gives the same histogram without evaluating again.
	report := filepath.Join(dir, "report.json")
	if _, _, err := runCLI(t, "batch", path, "-o", report, "--no-cache"); err != nil {
		t.Fatal(err)
	}
	out, c, err := runCLI(t, "count", report, "--plain")
	if err != nil {
		t.Fatal(err)
	}
	if want := "NI = 1: 2\nNI = 2: 1\n"; out != want {
		t.Errorf("count of report = %q, want %q", out, want)
	}
	if c.counters.Evaluations.Load() != 0 {
		t.Error("counting a saved report should not evaluate words")
	}
}

func TestCountCommandTable(t *testing.T) {
	isolate(t)
	path := writeFile(t, t.TempDir(), "words.txt", batchWords)
	out, _, err := runCLI(t, "count", path, "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Index", "Words", "66.7%", "33.3%"} {
		if !strings.Contains(out, want) {
			t.Errorf("histogram table missing %q:\n%s", want, out)
		}
	}
}

func TestIsosCommand(t *testing.T) {
	isolate(t)
	out, _, err := runCLI(t, "isos", "122313", "--json", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	res := decodeResult(t, out)
	if !res.Circular || len(res.Candidates) != 6 || res.Index != 1 {
		t.Errorf("isos result = %+v", res)
	}

	out, _, err = runCLI(t, "isos", "1234425135", "--reversals", "--json", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	if res := decodeResult(t, out); len(res.Candidates) != 20 || res.Index != 2 {
		t.Errorf("isos with reversals = %d candidates, index %d; want 20 and 2", len(res.Candidates), res.Index)
	}
}

func TestIsosCommandTable(t *testing.T) {
	isolate(t)
	out, _, err := runCLI(t, "isos", "123132", "--no-cache")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"121323", "123213", "123132", iconSuccess} {
		if !strings.Contains(out, want) {
			t.Errorf("isos table missing %q:\n%s", want, out)
		}
	}
}

func TestMetricsFlag(t *testing.T) {
	isolate(t)
	metrics := filepath.Join(t.TempDir(), "nestindex.prom")
	if _, _, err := runCLI(t, "--metrics", metrics, "index", "123132", "--no-cache"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(metrics)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	if !strings.Contains(string(data), "nestindex_search_rounds_total 2") {
		t.Errorf("metrics missing search rounds:\n%s", data)
	}
}

func TestCachePathCommand(t *testing.T) {
	cacheHome, _ := isolate(t)
	out, _, err := runCLI(t, "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(cacheHome, appName) + "\n"; out != want {
		t.Errorf("cache path = %q, want %q", out, want)
	}
}

func TestCacheClearCommand(t *testing.T) {
	isolate(t)
	if _, _, err := runCLI(t, "index", "1221"); err != nil {
		t.Fatal(err)
	}
	if _, _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	_, c, err := runCLI(t, "index", "1221")
	if err != nil {
		t.Fatal(err)
	}
	if c.counters.CacheHits.Load() != 0 {
		t.Error("result survived cache clear")
	}
}

func TestCacheClearAll(t *testing.T) {
	_, configHome := isolate(t)
	if _, _, err := runCLI(t, "index", "1221"); err != nil {
		t.Fatal(err)
	}
	writeFile(t, configHome, filepath.Join(appName, "config.toml"), "cache_backend = \"badger\"\n")

	// The file entry survives clearing only the badger backend.
	if _, _, err := runCLI(t, "cache", "clear"); err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(filepath.Join(configHome, appName, "config.toml")); err != nil {
		t.Fatal(err)
	}
	_, c, err := runCLI(t, "index", "1221")
	if err != nil {
		t.Fatal(err)
	}
	if c.counters.CacheHits.Load() != 1 {
		t.Fatal("clearing badger removed the file cache entry")
	}

	if _, _, err := runCLI(t, "cache", "clear", "--all"); err != nil {
		t.Fatalf("cache clear --all: %v", err)
	}
	_, c, err = runCLI(t, "index", "1221")
	if err != nil {
		t.Fatal(err)
	}
	if c.counters.CacheHits.Load() != 0 {
		t.Error("result survived cache clear --all")
	}
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)
	for _, shell := range completionShells {
		out, _, err := runCLI(t, "completion", shell)
		if err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out, appName) {
			t.Errorf("completion %s script does not mention %s", shell, appName)
		}
	}
	if _, _, err := runCLI(t, "completion", "tcsh"); err == nil {
		t.Error("unknown shell should be rejected")
	}
}
