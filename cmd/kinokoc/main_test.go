package main

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

const addSrc = `fn[1] add(a, b) {
  c = add(a, b);
}
`

func TestTokens(t *testing.T) {
	filename := writeTempKinokoFile(t, "x = 'a';")
	code, out, errOut := captureOutput(t, func() int {
		return run([]string{"tokens", filename})
	})

	if code != 0 {
		t.Fatalf("tokens exit=%d\nstderr:\n%s", code, errOut)
	}
	if errOut != "" {
		t.Fatalf("unexpected stderr:\n%s", errOut)
	}
	for _, want := range []string{"POSITION", "BLOCK", "identifier", `"x"`, "97 ('a')", `";"`} {
		if !strings.Contains(out, want) {
			t.Errorf("token table missing %q:\n%s", want, out)
		}
	}
	if n := strings.Count(out, "\n"); n != 2+4 {
		t.Errorf("token table has %d lines, want 6:\n%s", n, out)
	}
}

func TestTokensLexicalError(t *testing.T) {
	filename := writeTempKinokoFile(t, "fn[0] main() {\n  x = 1 @ 2;\n}")
	code, out, errOut := captureOutput(t, func() int {
		return run([]string{"--no-color", "tokens", filename})
	})

	if code != 1 {
		t.Fatalf("tokens exit=%d, want 1", code)
	}
	if out != "" {
		t.Errorf("unexpected stdout:\n%s", out)
	}
	want := filename + `:2:9: lexical error: unrecognized character '@' in block 6 "@"`
	if !strings.HasPrefix(errOut, want) {
		t.Errorf("stderr:\n%s\nwant prefix:\n%s", errOut, want)
	}
	if !strings.Contains(errOut, "2 |   x = 1 @ 2;\n  |         ^\n") {
		t.Errorf("stderr missing excerpt:\n%s", errOut)
	}
}

func TestParseText(t *testing.T) {
	filename := writeTempKinokoFile(t, addSrc)
	code, out, errOut := captureOutput(t, func() int {
		return run([]string{"parse", filename})
	})

	if code != 0 {
		t.Fatalf("parse exit=%d\nstderr:\n%s", code, errOut)
	}
	for _, want := range []string{"Declare", "FunctionDeclare add(a, b) [1]", "Substitute", "Call add", `Name ` + filename + `:2:11 "a"`} {
		if !strings.Contains(out, want) {
			t.Errorf("AST missing %q:\n%s", want, out)
		}
	}
}

func TestParseJSON(t *testing.T) {
	filename := writeTempKinokoFile(t, addSrc)
	code, out, errOut := captureOutput(t, func() int {
		return run([]string{"parse", "--format", "json", filename})
	})

	if code != 0 {
		t.Fatalf("parse exit=%d\nstderr:\n%s", code, errOut)
	}
	var root map[string]interface{}
	if err := json.Unmarshal([]byte(out), &root); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if root["op"] != "Declare" || len(root["children"].([]interface{})) != 1 {
		t.Errorf("root = %v", root)
	}
}

func TestParseYAML(t *testing.T) {
	filename := writeTempKinokoFile(t, addSrc)
	code, out, errOut := captureOutput(t, func() int {
		return run([]string{"parse", "-f", "yaml", filename})
	})

	if code != 0 {
		t.Fatalf("parse exit=%d\nstderr:\n%s", code, errOut)
	}
	var root struct {
		Op       string `yaml:"op"`
		Children []struct {
			Name   string   `yaml:"name"`
			Params []string `yaml:"params"`
			RetNum int      `yaml:"retnum"`
		} `yaml:"children"`
	}
	if err := yaml.Unmarshal([]byte(out), &root); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if root.Op != "Declare" || len(root.Children) != 1 {
		t.Fatalf("root = %+v", root)
	}
	fn := root.Children[0]
	if fn.Name != "add" || strings.Join(fn.Params, ",") != "a,b" || fn.RetNum != 1 {
		t.Errorf("function = %+v", fn)
	}
}

func TestParseBadFormat(t *testing.T) {
	filename := writeTempKinokoFile(t, addSrc)
	code, _, errOut := captureOutput(t, func() int {
		return run([]string{"--no-color", "parse", "--format", "xml", filename})
	})

	if code != 1 {
		t.Fatalf("parse exit=%d, want 1", code)
	}
	if !strings.HasPrefix(errOut, "error: format must be text, json or yaml") {
		t.Errorf("stderr:\n%s", errOut)
	}
}

func TestParseSyntaxError(t *testing.T) {
	filename := writeTempKinokoFile(t, "fn[0] main() {\n  x = 1\n}\n")
	code, out, errOut := captureOutput(t, func() int {
		return run([]string{"--no-color", "--context", "1", "parse", filename})
	})

	if code != 1 {
		t.Fatalf("parse exit=%d, want 1", code)
	}
	if out != "" {
		t.Errorf("unexpected stdout:\n%s", out)
	}
	want := filename + `:3:1: unexpected token: in statement: unexpected "}", expected ";"
2 |   x = 1
3 | }
  | ^
`
	if errOut != want {
		t.Errorf("stderr:\n%s\nwant:\n%s", errOut, want)
	}
}

func TestCheck(t *testing.T) {
	good := writeTempKinokoFile(t, addSrc+"fn[0] main() { add(1, 2); }\n")
	bad := writeTempKinokoFile(t, "fn[0] main( { }")
	missing := filepath.Join(t.TempDir(), "missing.kn")

	code, out, errOut := captureOutput(t, func() int {
		return run([]string{"--no-color", "check", good, bad, missing})
	})

	if code != 1 {
		t.Fatalf("check exit=%d, want 1", code)
	}
	if out != good+": ok: 2 declarations\n" {
		t.Errorf("stdout = %q", out)
	}
	if !strings.Contains(errOut, bad+`:1:13: unexpected token: in argument list`) {
		t.Errorf("stderr missing diagnostic for %s:\n%s", bad, errOut)
	}
	if !strings.Contains(errOut, "error: open "+missing) {
		t.Errorf("stderr missing open error:\n%s", errOut)
	}
}

func TestCheckAllOK(t *testing.T) {
	a := writeTempKinokoFile(t, addSrc)
	b := writeTempKinokoFile(t, "")

	code, out, errOut := captureOutput(t, func() int {
		return run([]string{"check", a, b})
	})

	if code != 0 {
		t.Fatalf("check exit=%d\nstderr:\n%s", code, errOut)
	}
	want := a + ": ok: 1 declarations\n" + b + ": ok: 0 declarations\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "kinoko.yaml")
	if err := os.WriteFile(cfg, []byte("format: json\nmax_source_bytes: 4096\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	filename := writeTempKinokoFile(t, addSrc)

	code, out, errOut := captureOutput(t, func() int {
		return run([]string{"--config", cfg, "parse", filename})
	})

	if code != 0 {
		t.Fatalf("parse exit=%d\nstderr:\n%s", code, errOut)
	}
	if !strings.HasPrefix(out, "{") || !strings.Contains(out, `"op": "FunctionDeclare"`) {
		t.Errorf("config format not applied:\n%s", out)
	}
}

func TestConfigFileInvalid(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "kinoko.toml")
	if err := os.WriteFile(cfg, []byte(`log_level = "chatty"`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	code, _, errOut := captureOutput(t, func() int {
		return run([]string{"--config", cfg, "version"})
	})

	if code != 1 {
		t.Fatalf("exit=%d, want 1", code)
	}
	if !strings.Contains(errOut, "log_level must be") {
		t.Errorf("stderr:\n%s", errOut)
	}
}

func TestSourceSizeLimit(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "kinoko.toml")
	if err := os.WriteFile(cfg, []byte("max_source_bytes = 16\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	filename := writeTempKinokoFile(t, addSrc)

	code, out, errOut := captureOutput(t, func() int {
		return run([]string{"--config", cfg, "--no-color", "tokens", filename})
	})

	if code != 1 {
		t.Fatalf("tokens exit=%d, want 1", code)
	}
	if out != "" {
		t.Errorf("unexpected stdout:\n%s", out)
	}
	if !strings.Contains(errOut, "source exceeds 16 bytes") {
		t.Errorf("stderr:\n%s", errOut)
	}
}

func TestDebugLogging(t *testing.T) {
	filename := writeTempKinokoFile(t, addSrc)
	code, _, errOut := captureOutput(t, func() int {
		return run([]string{"--log-level", "debug", "check", filename})
	})

	if code != 0 {
		t.Fatalf("check exit=%d\nstderr:\n%s", code, errOut)
	}
	for _, want := range []string{"level=DEBUG", `msg="config loaded"`, `msg="file read"`, `msg="check done"`, "run="} {
		if !strings.Contains(errOut, want) {
			t.Errorf("log missing %q:\n%s", want, errOut)
		}
	}
}

func TestQuietByDefault(t *testing.T) {
	filename := writeTempKinokoFile(t, "fn[0] f() {")
	_, _, errOut := captureOutput(t, func() int {
		return run([]string{"--no-color", "check", filename})
	})

	if strings.Contains(errOut, "level=") {
		t.Errorf("default level should not log info records:\n%s", errOut)
	}
}

func TestVersion(t *testing.T) {
	code, out, _ := captureOutput(t, func() int {
		return run([]string{"version"})
	})

	if code != 0 {
		t.Fatalf("version exit=%d", code)
	}
	if !strings.HasPrefix(out, "kinokoc version "+Version+"\n") {
		t.Errorf("stdout = %q", out)
	}
}

func TestUsageErrors(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"tokens"}, "error: accepts 1 arg(s), received 0"},
		{[]string{"check"}, "error: requires at least 1 arg(s), only received 0"},
		{[]string{"frobnicate"}, `error: unknown command "frobnicate"`},
	}

	for _, tt := range tests {
		code, _, errOut := captureOutput(t, func() int {
			return run(append([]string{"--no-color"}, tt.args...))
		})
		if code != 1 {
			t.Errorf("%v: exit=%d, want 1", tt.args, code)
		}
		if !strings.HasPrefix(errOut, tt.want) {
			t.Errorf("%v: stderr = %q, want prefix %q", tt.args, errOut, tt.want)
		}
	}
}

func writeTempKinokoFile(t *testing.T, src string) string {
	t.Helper()
	dir := t.TempDir()
	filename := filepath.Join(dir, "input.kn")
	if err := os.WriteFile(filename, []byte(src), 0o600); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return filename
}

func captureOutput(t *testing.T, fn func() int) (code int, stdout string, stderr string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stdout: %v", err)
	}
	rErr, wErr, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe stderr: %v", err)
	}

	os.Stdout = wOut
	os.Stderr = wErr

	code = fn()

	_ = wOut.Close()
	_ = wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	outBytes, _ := io.ReadAll(rOut)
	errBytes, _ := io.ReadAll(rErr)
	_ = rOut.Close()
	_ = rErr.Close()

	return code, string(outBytes), string(errBytes)
}
