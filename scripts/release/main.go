package main

import (
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const (
	buildPath      = "./build"
	archivesPath   = "./build/archives"
	executableName = "monthgrid"
	moduleName     = "github.com/monthgrid/monthgrid"
	versionPackage = moduleName + "/internal/monthgrid"
)

type archiveType int

const (
	archiveTypeTarGz archiveType = iota
	archiveTypeZip
)

type buildTarget struct {
	os        string
	arch      string
	armV      int
	extension string
	archive   archiveType
}

func (t buildTarget) binaryName() string {
	if t.arch == "arm" {
		return fmt.Sprintf("%s-%s-%sv%d", executableName, t.os, t.arch, t.armV)
	}

	return fmt.Sprintf("%s-%s-%s%s", executableName, t.os, t.arch, t.extension)
}

var buildTargets = []buildTarget{
	{os: "windows", arch: "amd64", extension: ".exe", archive: archiveTypeZip},
	{os: "windows", arch: "arm64", extension: ".exe", archive: archiveTypeZip},
	{os: "darwin", arch: "amd64"},
	{os: "darwin", arch: "arm64"},
	{os: "linux", arch: "amd64"},
	{os: "linux", arch: "arm64"},
	{os: "linux", arch: "arm", armV: 7},
}

func main() {
	flags := flag.NewFlagSet("release", flag.ExitOnError)
	tag := flags.String("tag", "", "Version to stamp into the binaries, defaults to the latest git tag")
	allowDirty := flags.Bool("allow-dirty", false, "Build even with uncommitted changes")

	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	if err := run(*tag, *allowDirty); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(version string, allowDirty bool) error {
	if !allowDirty {
		dirty, err := hasUncommittedChanges()
		if err != nil {
			return err
		}

		if dirty {
			return fmt.Errorf("there are uncommitted changes - commit, stash or discard them first")
		}
	}

	if version == "" {
		var err error
		if version, err = versionFromGit(); err != nil {
			return fmt.Errorf("reading version from git: %w", err)
		}
	}

	if err := os.RemoveAll(buildPath); err != nil {
		return err
	}

	if err := os.MkdirAll(archivesPath, 0o755); err != nil {
		return err
	}

	archives := make([]string, 0, len(buildTargets))

	for _, target := range buildTargets {
		fmt.Printf("Building %s for %s/%s\n", version, target.os, target.arch)

		archive, err := build(version, target)
		if err != nil {
			return fmt.Errorf("building %s: %w", target.binaryName(), err)
		}

		archives = append(archives, archive)
	}

	return writeChecksums(filepath.Join(archivesPath, "SHA256SUMS"), archives)
}

func hasUncommittedChanges() (bool, error) {
	output, err := exec.Command("git", "status", "--porcelain").CombinedOutput()
	if err != nil {
		return false, err
	}

	return len(output) > 0, nil
}

func versionFromGit() (string, error) {
	output, err := exec.Command("git", "describe", "--tags", "--abbrev=0").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}

	return strings.TrimSpace(string(output)), nil
}

func build(version string, target buildTarget) (string, error) {
	name := target.binaryName()
	binaryPath := filepath.Join(buildPath, name)

	ldflags := fmt.Sprintf("-s -w -X %s.buildVersion=%s", versionPackage, version)

	cmd := exec.Command("go", "build", "-trimpath", "-ldflags", ldflags, "-o", binaryPath, ".")
	cmd.Env = append(os.Environ(), "GOOS="+target.os, "GOARCH="+target.arch, "CGO_ENABLED=0")

	if target.arch == "arm" {
		cmd.Env = append(cmd.Env, fmt.Sprintf("GOARM=%d", target.armV))
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%w: %s", err, output)
	}

	return archiveFile(name, binaryPath, target.archive)
}

func archiveFile(name string, binaryPath string, t archiveType) (string, error) {
	var cmd *exec.Cmd
	var archivePath string

	switch t {
	case archiveTypeZip:
		archivePath = filepath.Join(archivesPath, name+".zip")
		cmd = exec.Command("zip", "-j", archivePath, binaryPath)
	default:
		archivePath = filepath.Join(archivesPath, name+".tar.gz")
		cmd = exec.Command("tar", "-C", buildPath, "-czf", archivePath, name)
	}

	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("archiving: %w: %s", err, output)
	}

	return archivePath, nil
}

func writeChecksums(path string, files []string) error {
	var lines strings.Builder

	for _, file := range files {
		sum, err := fileSHA256(file)
		if err != nil {
			return err
		}

		fmt.Fprintf(&lines, "%s  %s\n", sum, filepath.Base(file))
	}

	return os.WriteFile(path, []byte(lines.String()), 0o644)
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, f); err != nil {
		return "", err
	}

	return hex.EncodeToString(hash.Sum(nil)), nil
}
