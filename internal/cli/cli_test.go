package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const movieSRT = `1
00:00:01,000 --> 00:00:04,000
Hello, world!

2
00:00:03,000 --> 00:00:06,000
Overlapping
second line
`

// runs the root command with fresh flag values and returns its stdout
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	resetFlags(rootCmd)
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configFile, []byte("subtitles:\n  enabled: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(append([]string{"--config", configFile}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func writeMovie(t *testing.T) (dir, media string) {
	t.Helper()
	dir = t.TempDir()
	media = filepath.Join(dir, "movie.mkv")
	if err := os.WriteFile(media, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "subs"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "subs", "movie.srt"), []byte(movieSRT), 0644); err != nil {
		t.Fatal(err)
	}
	return dir, media
}

func TestFindCommand(t *testing.T) {
	dir, media := writeMovie(t)

	out, err := execute(t, "find", media)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if strings.TrimSpace(out) != filepath.Join(dir, "subs", "movie.srt") {
		t.Errorf("unexpected output %q", out)
	}

	out, err = execute(t, "find", filepath.Join(dir, "other.mkv"))
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if strings.TrimSpace(out) != "no subtitles" {
		t.Errorf("unexpected output %q", out)
	}
}

func TestAtCommand(t *testing.T) {
	_, media := writeMovie(t)

	out, err := execute(t, "at", media, "3500", "00:07.000")
	if err != nil {
		t.Fatalf("at failed: %v", err)
	}

	want := "[00:00:03,500]\n" +
		"  #2 00:00:03,000 --> 00:00:06,000  Overlapping / second line\n" +
		"  #1 00:00:01,000 --> 00:00:04,000  Hello, world!\n" +
		"[00:00:07,000]\n" +
		"  (nothing)\n"
	if out != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestAtCommandChronologicalWithDelay(t *testing.T) {
	_, media := writeMovie(t)

	out, err := execute(t, "--delay", "1s", "at", media, "4.5s", "--chronological")
	if err != nil {
		t.Fatalf("at failed: %v", err)
	}

	want := "[00:00:04,500]\n" +
		"  #1 00:00:01,000 --> 00:00:04,000  Hello, world!\n" +
		"  #2 00:00:03,000 --> 00:00:06,000  Overlapping / second line\n"
	if out != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", out, want)
	}
}

func TestAtCommandInvalidPosition(t *testing.T) {
	_, media := writeMovie(t)

	if _, err := execute(t, "at", media, "later"); err == nil {
		t.Error("expected error for invalid position")
	}
}

func TestInspectCommand(t *testing.T) {
	dir, media := writeMovie(t)

	out, err := execute(t, "inspect", media)
	if err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	for _, want := range []string{
		"File:    " + filepath.Join(dir, "subs", "movie.srt"),
		"Format:  srt",
		"Entries: 2",
		"Span:    00:00:01,000 --> 00:00:06,000",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestInspectCommandNoSubtitles(t *testing.T) {
	dir := t.TempDir()
	media := filepath.Join(dir, "movie.mkv")
	if err := os.WriteFile(media, []byte("video"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "inspect", media)
	if err == nil || !strings.Contains(err.Error(), "no subtitles") {
		t.Errorf("expected no subtitles error, got %v", err)
	}
}

func TestConvertCommand(t *testing.T) {
	dir, media := writeMovie(t)
	output := filepath.Join(dir, "out", "movie.vtt")

	if _, err := execute(t, "convert", media, "-f", "vtt", "-o", output); err != nil {
		t.Fatalf("convert failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "WEBVTT\n\n1\n00:00:01.000 --> 00:00:04.000\nHello, world!\n") {
		t.Errorf("unexpected output:\n%s", data)
	}

	out, err := execute(t, "at", output, "5s")
	if err != nil {
		t.Fatalf("at on converted file failed: %v", err)
	}
	if !strings.Contains(out, "Overlapping / second line") {
		t.Errorf("converted file lost an entry:\n%s", out)
	}
}

func TestConvertCommandRefusesOverwrite(t *testing.T) {
	dir, _ := writeMovie(t)
	srt := filepath.Join(dir, "subs", "movie.srt")

	if _, err := execute(t, "convert", srt, "-f", "srt"); err == nil {
		t.Error("expected error when output equals input")
	}
}

func TestPlayCommand(t *testing.T) {
	_, media := writeMovie(t)

	out, err := execute(t, "play", media, "--from", "3500", "--to", "3600", "--speed", "10", "--tick-rate", "100")
	if err != nil {
		t.Fatalf("play failed: %v", err)
	}
	// the first tick lands at the start position, give or take a millisecond
	if !strings.HasPrefix(out, "[00:00:03,50") {
		t.Errorf("expected playback to start at 3.5s:\n%s", out)
	}
	want := "  #1 00:00:01,000 --> 00:00:04,000  Hello, world!\n" +
		"  #2 00:00:03,000 --> 00:00:06,000  Overlapping / second line\n"
	if !strings.Contains(out, want) {
		t.Errorf("expected both captions earliest first:\n%s", out)
	}
}
