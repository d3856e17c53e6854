package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"cssc"
	"cssc/compress"
	"cssc/config"
	"cssc/state"
)

// runMinify processes SOURCE (a css file or a directory tree of css files)
// and writes results to DESTINATION.
func runMinify(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	env.NoDirs = cmd.Bool("nodirs")
	env.Overwrite = cmd.Bool("overwrite")

	if cmd.Args().Len() == 0 {
		return fmt.Errorf("no input source has been specified")
	}
	if cmd.Args().Len() > 2 {
		env.Log.Warn("Malformed command line, too many arguments", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	src := cmd.Args().Get(0)
	dst := cmd.Args().Get(1)

	opts := env.Cfg.Minify.Options(env.Log)
	if cmd.Bool("no-restructure") {
		opts.Restructure = compress.Bool(false)
	}
	if cmd.IsSet("comments") {
		opts.Comments = compress.ParseCommentPolicy(cmd.String("comments"))
	}

	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("unable to access source '%s': %w", src, err)
	}

	if !fi.IsDir() {
		return minifyFile(env, src, filepath.Base(src), dst, cmd.Bool("block"), &opts)
	}

	if cmd.Bool("block") {
		return fmt.Errorf("declaration list mode expects a single file, not a directory")
	}

	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}

	// keep going on per-file failures, collect them all
	var (
		count int
		errs  error
	)
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, werr error) error {
		if werr != nil {
			return werr
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".css") {
			return nil
		}
		rel, rerr := filepath.Rel(src, path)
		if rerr != nil || env.NoDirs {
			rel = filepath.Base(path)
		}
		count++
		if ferr := minifyFile(env, path, rel, dst, false, &opts); ferr != nil {
			env.Log.Error("Unable to process file", zap.String("file", path), zap.Error(ferr))
			errs = multierr.Append(errs, ferr)
		}
		return nil
	})
	if err != nil {
		return multierr.Append(errs, err)
	}
	if count == 0 {
		env.Log.Warn("No css files found", zap.String("source", src))
	}
	return errs
}

// minifyFile compresses a single stylesheet. When dst is empty the result
// goes to stdout, when dst is an existing directory the output name is
// derived from rel, otherwise dst is used as the output file name.
func minifyFile(env *state.LocalEnv, path, rel, dst string, block bool, opts *compress.Options) error {

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("unable to read source '%s': %w", path, err)
	}
	env.Rpt.StoreData(filepath.ToSlash(filepath.Join("input", rel)), data)

	var res cssc.Result
	if block {
		res, err = cssc.MinifyBlock(string(data), opts)
	} else {
		res, err = cssc.Minify(string(data), opts)
	}
	if err != nil {
		return fmt.Errorf("unable to minify '%s': %w", path, err)
	}
	env.Rpt.StoreData(filepath.ToSlash(filepath.Join("output", rel)), []byte(res.CSS))

	env.Log.Info("File processed",
		zap.String("file", path),
		zap.Int("size in", len(data)),
		zap.Int("size out", len(res.CSS)))

	if len(dst) == 0 {
		_, err = fmt.Fprintln(os.Stdout, res.CSS)
		return err
	}

	out := dst
	if fi, serr := os.Stat(dst); serr == nil && fi.IsDir() {
		out = filepath.Join(dst, outputName(rel))
	} else if strings.HasSuffix(dst, string(os.PathSeparator)) {
		out = filepath.Join(dst, outputName(rel))
	}

	if err = os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return fmt.Errorf("unable to create output directory for '%s': %w", out, err)
	}
	if !env.Overwrite {
		if _, serr := os.Stat(out); serr == nil {
			return fmt.Errorf("destination '%s' already exists, use --overwrite to replace it", out)
		}
	}
	if err = os.WriteFile(out, []byte(res.CSS), 0644); err != nil {
		return fmt.Errorf("unable to write destination '%s': %w", out, err)
	}
	return nil
}

// outputName derives the output file name, keeping any relative directory
// part intact.
func outputName(rel string) string {
	dir, base := filepath.Split(rel)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(dir, config.CleanFileName(base)+".min.css")
}
