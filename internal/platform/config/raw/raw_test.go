package raw

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfGet(t *testing.T) {
	t.Setenv("APP_NAME", " nutriscope ")
	t.Setenv("LOG_LEVEL", " info ")

	root := New()
	logc := root.Prefix("LOG_")

	tests := []struct {
		name string
		conf Conf
		key  string
		def  string
		want string
	}{
		{name: "root hit trimmed", conf: root, key: "APP_NAME", def: "x", want: "nutriscope"},
		{name: "prefixed hit", conf: logc, key: "LEVEL", def: "x", want: "info"},
		{name: "missing returns default", conf: logc, key: "MISSING", def: "defv", want: "defv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conf.Get(tt.key, tt.def); got != tt.want {
				t.Fatalf("Get(%q) = %q, want %q", tt.key, got, tt.want)
			}
		})
	}
}

func TestConfGetBool(t *testing.T) {
	c := New().Prefix("LOG_")
	t.Setenv("LOG_T1", "true")
	t.Setenv("LOG_T2", "1")
	t.Setenv("LOG_T3", " YES ")
	t.Setenv("LOG_F1", "no")

	tests := []struct {
		key  string
		def  bool
		want bool
	}{
		{"T1", false, true},
		{"T2", false, true},
		{"T3", false, true},
		{"F1", true, false},
		{"MISSING", true, true},
	}
	for _, tt := range tests {
		if got := c.GetBool(tt.key, tt.def); got != tt.want {
			t.Fatalf("GetBool(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestConfGetInt(t *testing.T) {
	c := New().Prefix("SYS_")
	t.Setenv("SYS_OK", " 42 ")
	t.Setenv("SYS_NONNUM", "12x")
	t.Setenv("SYS_NEG", "-5")

	tests := []struct {
		key  string
		def  int
		want int
	}{
		{"OK", 0, 42},
		{"NONNUM", 9, 9},
		{"NEG", 3, 3},
		{"MISSING", 11, 11},
	}
	for _, tt := range tests {
		if got := c.GetInt(tt.key, tt.def); got != tt.want {
			t.Fatalf("GetInt(%q) = %d, want %d", tt.key, got, tt.want)
		}
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("DOTENV_PROBE_A=from-file\nDOTENV_PROBE_B=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DOTENV_PROBE_B", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("DOTENV_PROBE_A") })

	loaded, err := LoadDotenv(path)
	if err != nil || !loaded {
		t.Fatalf("LoadDotenv = %v, %v", loaded, err)
	}
	if got := os.Getenv("DOTENV_PROBE_A"); got != "from-file" {
		t.Fatalf("A = %q, want from-file", got)
	}
	if got := os.Getenv("DOTENV_PROBE_B"); got != "from-env" {
		t.Fatalf("existing env must win, got %q", got)
	}
}

func TestLoadDotenv_MissingFileIsNotAnError(t *testing.T) {
	loaded, err := LoadDotenv(filepath.Join(t.TempDir(), "nope.env"))
	if err != nil || loaded {
		t.Fatalf("missing file: loaded=%v err=%v", loaded, err)
	}
}
