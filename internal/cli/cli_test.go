package cli

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/image-fx-mcp/internal/config"
)

// run executes the command tree with args and returns stdout and stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvImagesDir, "")
	t.Setenv(config.EnvJPEGQuality, "")
	defer slog.SetDefault(slog.Default())

	cmd := NewRootCommand(BuildInfo{Version: "1.2.3", BuildTime: "today", GitCommit: "abc123"})
	var stdout, stderr bytes.Buffer
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writePNG(t *testing.T, dir, name string, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode PNG: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("failed to write PNG: %v", err)
	}
	return path
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "", "--version")
	if err != nil {
		t.Fatalf("--version failed: %v", err)
	}
	if !strings.HasPrefix(out, "image-fx 1.2.3 (built today, commit abc123") {
		t.Errorf("version output: got %q", out)
	}
}

func TestAlgorithms(t *testing.T) {
	out, _, err := run(t, "", "algorithms")
	if err != nil {
		t.Fatalf("algorithms failed: %v", err)
	}
	for _, want := range []string{"NAME", "gradientImageSobel", "waveAxis,waveOffset,amplitude,waveLength,waveType", "addLuminosityRGB is an alias of addLuminosity"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}

func TestApply(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir, "in.png", 10, 6, color.RGBA{10, 20, 30, 255})
	outPath := filepath.Join(dir, "out.png")

	out, _, err := run(t, "", "apply", in, outPath, "-a", "scale", "-p", "width=4,height=3")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if !strings.Contains(out, "4x3, 1 frame(s), png") {
		t.Errorf("summary: got %q", out)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("output bounds: got %v, want 4x3", img.Bounds())
	}
}

func TestApply_Errors(t *testing.T) {
	dir := t.TempDir()
	in := writePNG(t, dir, "in.png", 2, 2, color.White)
	outPath := filepath.Join(dir, "out.png")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"missing algorithm flag", []string{"apply", in, outPath}, "algorithm"},
		{"unknown algorithm", []string{"apply", in, outPath, "-a", "posterize"}, "unknown algorithm"},
		{"missing parameter", []string{"apply", in, outPath, "-a", "blur"}, "missing parameter"},
		{"one argument", []string{"apply", in}, "accepts 2 arg(s)"},
		{"bad log level", []string{"--log-level", "loud", "apply", in, outPath, "-a", "negative"}, "--log-level"},
		{"bad quality", []string{"--jpeg-quality", "0", "apply", in, outPath, "-a", "negative"}, "--jpeg-quality"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, "", tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error: got %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestServe(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, dir, "a.png", 3, 2, color.White)

	stdin := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"image_list","arguments":{}}}` + "\n"
	out, logs, err := run(t, stdin, "serve", "--images-dir", dir, "--log-level", "debug")
	if err != nil {
		t.Fatalf("serve failed: %v", err)
	}

	var resp struct {
		ID     int `json:"id"`
		Result struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
	}
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &resp); err != nil {
		t.Fatalf("invalid response %q: %v", out, err)
	}
	if resp.ID != 1 || len(resp.Result.Content) != 1 {
		t.Fatalf("response: got %+v", resp)
	}
	if !strings.Contains(resp.Result.Content[0].Text, `"size": "3*2*3"`) {
		t.Errorf("image_list should report the preloaded image: %s", resp.Result.Content[0].Text)
	}

	if !strings.Contains(logs, "level=DEBUG") {
		t.Errorf("debug logs should be written to stderr:\n%s", logs)
	}
	if strings.Contains(out, "level=") {
		t.Error("logs must not be written to stdout")
	}
}

func TestServe_MissingImagesDir(t *testing.T) {
	_, _, err := run(t, "", "serve", "--images-dir", filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Error("expected an error for a missing images directory")
	}
}
