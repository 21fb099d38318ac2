package utils

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func TestReturnNonDefault(t *testing.T) {
	tests := []struct {
		name       string
		a          interface{}
		b          interface{}
		defaultVal interface{}
		want       interface{}
		wantErr    bool
	}{
		{
			name:       "Both defaults",
			a:          "default",
			b:          "default",
			defaultVal: "default",
			want:       "default",
		},
		{
			name:       "A non-default",
			a:          "non-default",
			b:          "default",
			defaultVal: "default",
			want:       "non-default",
		},
		{
			name:       "B non-default",
			a:          "default",
			b:          "non-default",
			defaultVal: "default",
			want:       "non-default",
		},
		{
			name:       "Both non-default",
			a:          "non-default-a",
			b:          "non-default-b",
			defaultVal: "default",
			want:       "default",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReturnNonDefault(tt.a, tt.b, tt.defaultVal)
			if (err != nil) != tt.wantErr {
				t.Errorf("ReturnNonDefault() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && !errors.Is(err, ErrMutuallyExclusive) {
				t.Errorf("expected ErrMutuallyExclusive, got: %v", err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ReturnNonDefault() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRunMigrationCallback(t *testing.T) {
	var migrationCalled bool
	migrationCb := func(configDirPath string) error {
		migrationCalled = true
		return nil
	}

	err := runMigrationCallback(migrationCb, "/path/to/config")
	if err != nil {
		t.Errorf("Unexpected error running migration callback: %v", err)
	}
	if !migrationCalled {
		t.Error("Expected migration callback to be called")
	}

	migrationCalled = false
	err = runMigrationCallback(nil, "/path/to/config")
	if err != nil {
		t.Errorf("Unexpected error running nil migration callback: %v", err)
	}
	if migrationCalled {
		t.Error("Expected migration callback not to be called")
	}
}

func TestCreateConfigDir(t *testing.T) {
	configDirPath := filepath.Join(t.TempDir(), ".mathobj")

	err := CreateConfigDir(configDirPath)
	if err != nil {
		t.Errorf("Unexpected error creating config directory: %v", err)
	}
	if _, err := os.Stat(configDirPath); os.IsNotExist(err) {
		t.Error("Expected config directory to exist")
	}

	err = CreateConfigDir(configDirPath)
	if err != nil {
		t.Errorf("Unexpected error creating existing config directory: %v", err)
	}
}

type testConf struct {
	Name    string `json:"name"`
	Model   string `json:"model"`
	Verbose bool   `json:"verbose"`
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Run("creates default when missing", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), ".mathobj")
		dflt := testConf{Name: "default", Model: "m"}
		got, err := LoadConfigFromFile(dir, "conf.json", nil, &dflt)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, got, dflt)
		if _, err := os.Stat(filepath.Join(dir, "conf.json")); err != nil {
			t.Fatalf("expected config file to be created: %v", err)
		}
	})

	t.Run("file values win and missing fields are appended", func(t *testing.T) {
		dir := t.TempDir()
		err := os.WriteFile(filepath.Join(dir, "conf.json"), []byte(`{"name": "from-file"}`), 0o644)
		if err != nil {
			t.Fatal(err)
		}
		dflt := testConf{Name: "default", Model: "m"}
		got, err := LoadConfigFromFile(dir, "conf.json", nil, &dflt)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		testboil.FailTestIfDiff(t, got, testConf{Name: "from-file", Model: "m"})

		var onDisk testConf
		if err := ReadAndUnmarshal(filepath.Join(dir, "conf.json"), &onDisk); err != nil {
			t.Fatal(err)
		}
		testboil.FailTestIfDiff(t, onDisk.Model, "m")
	})

	t.Run("broken json errors", func(t *testing.T) {
		dir := t.TempDir()
		err := os.WriteFile(filepath.Join(dir, "conf.json"), []byte(`{"name": `), 0o644)
		if err != nil {
			t.Fatal(err)
		}
		_, err = LoadConfigFromFile(dir, "conf.json", nil, &testConf{})
		if err == nil {
			t.Fatal("expected error on malformed config")
		}
	})
}

func TestWriteFile_replacesContent(t *testing.T) {
	p := filepath.Join(t.TempDir(), "f.json")
	if err := WriteFile(p, &testConf{Name: "a"}); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(p, &testConf{Name: "b"}); err != nil {
		t.Fatal(err)
	}
	var got testConf
	if err := ReadAndUnmarshal(p, &got); err != nil {
		t.Fatal(err)
	}
	testboil.FailTestIfDiff(t, got.Name, "b")
	entries, err := os.ReadDir(filepath.Dir(p))
	if err != nil {
		t.Fatal(err)
	}
	testboil.FailTestIfDiff(t, len(entries), 1)
}

func TestGetConfigDir_override(t *testing.T) {
	t.Setenv("MATHOBJ_CONFIG_HOME", "/some/where")
	got, err := GetConfigDir()
	if err != nil {
		t.Fatal(err)
	}
	testboil.FailTestIfDiff(t, got, "/some/where")
}

func TestGetCacheDir_override(t *testing.T) {
	t.Setenv("MATHOBJ_CACHE_HOME", "/cache/here")
	got, err := GetCacheDir()
	if err != nil {
		t.Fatal(err)
	}
	testboil.FailTestIfDiff(t, got, "/cache/here")
}
