package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "mdwarehouse"

// envConfigPath names a config file that replaces the project config.
const envConfigPath = envVarPrefix + "CONFIG"

// ConfigPaths holds the config files found for one run. Empty fields mean
// no file was found at that layer.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

// Source is one config file layer, named for logs and error messages.
type Source struct {
	Name string
	Path string
}

// Sources lists the layers to load, lowest precedence first, honoring the
// skip flags in opts. Layers without a file are omitted.
func (p *ConfigPaths) Sources(opts LoadOptions) []Source {
	layers := []struct {
		src  Source
		skip bool
	}{
		{Source{"system", p.System}, opts.IgnoreSystemConfig},
		{Source{"user", p.User}, opts.IgnoreUserConfig},
		{Source{"project", p.Project}, opts.IgnoreProjectConfig},
		{Source{"explicit", p.Explicit}, false},
	}

	var out []Source
	for _, layer := range layers {
		if layer.skip || layer.src.Path == "" {
			continue
		}
		out = append(out, layer.src)
	}
	return out
}

//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{
	".mdwarehouse.yml",
	".mdwarehouse.yaml",
	"mdwarehouse.yml",
	"mdwarehouse.yaml",
}

//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds the system, user and project config files for workDir.
// MDWAREHOUSE_CONFIG, when set, stands in for the project config and must
// name an existing file.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context cancelled: %w", err)
	}

	paths := &ConfigPaths{
		System: findConfigInDir(systemConfigDir()),
		User:   findConfigInDir(userConfigDir()),
	}

	if env := os.Getenv(envConfigPath); env != "" {
		if !fileExists(env) {
			return nil, fmt.Errorf("%s: config file %q not found", envConfigPath, env)
		}
		paths.Project = env
		return paths, nil
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Project = project

	return paths, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		programData := os.Getenv("ProgramData")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, appName)
	}
	return filepath.Join("/etc", appName)
}

func userConfigDir() string {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

func findConfigInDir(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig walks upward from startDir looking for a project config.
// The walk stops at a VCS root, the home directory or the filesystem root.
// It returns "" when nothing is found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		startDir = wd
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("context cancelled: %w", err)
		}

		for _, name := range projectConfigFiles {
			if path := filepath.Join(dir, name); fileExists(path) {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if isVCSRoot(dir) || (home != "" && dir == home) || parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
