package git

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
)

// CurrentBranch returns the branch checked out in cwd ("HEAD" when detached).
func (c *Client) CurrentBranch(ctx context.Context, cwd string, call CallOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	res, err := c.run(ctx, cwd, call, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// RevisionOptions configures Revision.
type RevisionOptions struct {
	CallOptions
	Rev   string // default HEAD
	Short bool
}

// Revision resolves a revision (branch, tag, HEAD, ...) to a commit hash.
func (c *Client) Revision(ctx context.Context, cwd string, o RevisionOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	args := []string{"rev-parse"}
	if o.Short {
		args = append(args, "--short")
	}
	args = append(args, defaultString(o.Rev, "HEAD"))

	res, err := c.run(ctx, cwd, o.CallOptions, args...)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// CloneOptions configures Clone.
type CloneOptions struct {
	CallOptions
	URL        string
	Repository string // deprecated alias of URL
	Opts       Opts
	Identity   []string
	HTTPSUser  string
	HTTPSPass  string
}

// Clone clones a repository into cwd.
func (c *Client) Clone(ctx context.Context, cwd string, o CloneOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	url := deprecated(ctx, "clone", o.URL, o.Repository, "url", "repository")
	if url == "" {
		return "", invalidArgf("Missing 'url' argument")
	}
	url, err := addHTTPBasicAuth(url, o.HTTPSUser, o.HTTPSPass)
	if err != nil {
		return "", err
	}

	args, err := withOpts([]string{"clone", url, cwd}, o.Opts)
	if err != nil {
		return "", err
	}
	res, err := c.runAuth(ctx, "", o.CallOptions, o.Identity, args...)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// Describe returns the most recent tag reachable from rev (default HEAD).
func (c *Client) Describe(ctx context.Context, cwd, rev string, call CallOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	res, err := c.run(ctx, cwd, call, "describe", defaultString(rev, "HEAD"))
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// ArchiveOptions configures Archive.
type ArchiveOptions struct {
	CallOptions
	Rev    string // default HEAD
	Format string // e.g. tar, zip; empty lets git infer it from the output name
	Fmt    string // deprecated alias of Format

	// Prefix prepended to every path in the archive; include a trailing
	// slash to get a top-level directory. nil uses the base name of cwd as
	// that directory, an empty string adds no prefix.
	Prefix *string

	// Overwrite allows replacing an existing output file.
	Overwrite bool
}

// Archive writes an archive of rev to output. Both paths must be absolute.
func (c *Client) Archive(ctx context.Context, cwd, output string, o ArchiveOptions) error {
	if err := checkAbs(cwd, output); err != nil {
		return err
	}
	if !o.Overwrite {
		if _, err := os.Stat(output); err == nil {
			return invalidArgf("Output file '%s' already exists", output)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return invalidArgf("Unable to check output file '%s': %v", output, err)
		}
	}

	args := []string{"archive"}
	prefix := filepath.Base(cwd) + "/"
	if o.Prefix != nil {
		prefix = *o.Prefix
	}
	if prefix != "" {
		args = append(args, "--prefix", prefix)
	}
	if format := deprecated(ctx, "archive", o.Format, o.Fmt, "format", "fmt"); format != "" {
		args = append(args, "--format", format)
	}
	args = append(args, "--output", output, defaultString(o.Rev, "HEAD"))

	_, err := c.run(ctx, cwd, o.CallOptions, args...)
	return err
}

// Shared is the value of `git init --shared`. The zero value omits the flag.
type Shared struct {
	value string
	set   bool
}

// SharedValue passes s verbatim, e.g. "group", "all" or "0660".
func SharedValue(s string) Shared {
	return Shared{value: s, set: true}
}

// SharedPerm passes an octal permission given as its digits, e.g. 660
// becomes "0660".
func SharedPerm(perm int) Shared {
	return Shared{value: "0" + strconv.Itoa(perm), set: true}
}

// SharedFlag passes "true" or "false".
func SharedFlag(b bool) Shared {
	return Shared{value: strconv.FormatBool(b), set: true}
}

// InitOptions configures Init.
type InitOptions struct {
	CallOptions
	Bare           bool
	Template       string
	SeparateGitDir string
	Shared         Shared
	Opts           Opts
}

// Init creates a repository at cwd.
func (c *Client) Init(ctx context.Context, cwd string, o InitOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	args := []string{"init"}
	if o.Bare {
		args = append(args, "--bare")
	}
	if o.Template != "" {
		args = append(args, "--template", o.Template)
	}
	if o.SeparateGitDir != "" {
		args = append(args, "--separate-git-dir", o.SeparateGitDir)
	}
	if o.Shared.set {
		args = append(args, "--shared", o.Shared.value)
	}
	args, err := withOpts(args, o.Opts)
	if err != nil {
		return "", err
	}
	args = append(args, cwd)

	res, err := c.run(ctx, "", o.CallOptions, args...)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// SubmoduleOptions configures Submodule.
type SubmoduleOptions struct {
	CallOptions
	Opts     Opts
	Identity []string

	// Init is no longer supported and is rejected. Use the "init" command or
	// pass --init to "update".
	Init bool
}

// Submodule runs `git submodule <command>`, e.g. "update" or "sync".
func (c *Client) Submodule(ctx context.Context, cwd, command string, o SubmoduleOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	if o.Init {
		return "", invalidArgf("The 'init' argument is no longer supported. Either set 'command' to 'init', or include '--init' in the opts and set 'command' to 'update'.")
	}
	args, err := withOpts([]string{"submodule", command}, o.Opts)
	if err != nil {
		return "", err
	}
	res, err := c.runAuth(ctx, cwd, o.CallOptions, o.Identity, args...)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// RevParse runs `git rev-parse [opts] rev`.
func (c *Client) RevParse(ctx context.Context, cwd, rev string, opts Opts, call CallOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	args, err := withOpts([]string{"rev-parse"}, opts)
	if err != nil {
		return "", err
	}
	res, err := c.run(ctx, cwd, call, append(args, rev)...)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

// SymbolicRefOptions configures SymbolicRef.
type SymbolicRefOptions struct {
	CallOptions
	Value string // new target; empty reads the ref
	Opts  Opts
}

// SymbolicRef reads, sets or (with -d in opts) deletes a symbolic ref.
func (c *Client) SymbolicRef(ctx context.Context, cwd, ref string, o SymbolicRefOptions) (string, error) {
	if err := checkAbs(cwd); err != nil {
		return "", err
	}
	opts, err := FormatOpts(o.Opts)
	if err != nil {
		return "", err
	}
	if o.Value != "" && (slices.Contains(opts, "-d") || slices.Contains(opts, "--delete")) {
		return "", invalidArgf("Value cannot be set for symbolic ref if -d/--delete is included in opts")
	}

	args := append([]string{"symbolic-ref"}, opts...)
	args = append(args, ref)
	if o.Value != "" {
		args = append(args, o.Value)
	}
	res, err := c.run(ctx, cwd, o.CallOptions, args...)
	if err != nil {
		return "", err
	}
	return res.Stdout, nil
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// splitRev shell-splits a revision argument so "-i HEAD~3" works.
func splitRev(rev string) ([]string, error) {
	return FormatOpts(OptString(strings.TrimSpace(rev)))
}
