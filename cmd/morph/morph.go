// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	goimage "image"
	"math"
	"os"
	"path/filepath"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	hwyimage "github.com/ajroetker/go-highway/hwy/contrib/image"
	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/ajroetker/go-morpho/morpho"
	"github.com/ajroetker/go-morpho/morpho/se"
	"github.com/ajroetker/go-morpho/morpho/value"
)

// morphFlags are the flags shared by dilate and erode.
type morphFlags struct {
	se           string
	outDir       string
	format       string
	depth        string
	tileWidth    int
	tileHeight   int
	parallel     bool
	workers      int
	files        int
	padding      string
	paddingValue float64
	noDecompose  bool
}

func (f *morphFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.se, "se", "", "structuring element: "+seSyntax)
	fl.StringVarP(&f.outDir, "out", "o", ".", "output directory")
	fl.StringVar(&f.format, "format", "", "output format: png, tiff or bmp (default: same as input)")
	fl.StringVar(&f.depth, "depth", "", "sample depth: auto, 8 or 16")
	fl.IntVar(&f.tileWidth, "tile-width", 0, "tile width in pixels")
	fl.IntVar(&f.tileHeight, "tile-height", 0, "tile height in pixels")
	fl.BoolVar(&f.parallel, "parallel", false, "dispatch tiles over a worker pool")
	fl.IntVar(&f.workers, "workers", 0, "worker pool size (0: GOMAXPROCS)")
	fl.IntVarP(&f.files, "jobs", "j", 0, "number of files processed concurrently")
	fl.StringVar(&f.padding, "padding", "", "border mode: identity, constant, mirror, clamp or wrap")
	fl.Float64Var(&f.paddingValue, "padding-value", 0, "fill value of the constant border mode")
	fl.BoolVar(&f.noDecompose, "no-decompose", false, "use the offset accumulation path for every element")
}

// applyConfig replaces the values of the flags not set on the command line
// with the matching config values.
func (f *morphFlags) applyConfig(cmd *cobra.Command, cfg *Config) {
	changed := cmd.Flags().Changed
	if !changed("se") {
		f.se = cfg.SE
	}
	if !changed("depth") {
		f.depth = cfg.Depth
	}
	if !changed("tile-width") {
		f.tileWidth = cfg.Tile.Width
	}
	if !changed("tile-height") {
		f.tileHeight = cfg.Tile.Height
	}
	if !changed("parallel") {
		f.parallel = cfg.Execution.Parallel
	}
	if !changed("workers") {
		f.workers = cfg.Execution.Workers
	}
	if !changed("jobs") {
		f.files = cfg.Execution.Files
	}
	if !changed("padding") {
		f.padding = cfg.Padding.Mode
	}
	if !changed("padding-value") {
		f.paddingValue = cfg.Padding.Value
	}
	if !changed("no-decompose") {
		f.noDecompose = !cfg.Decompose
	}
}

// job is a validated dilate or erode request.
type job struct {
	erode        bool
	se           se.StructuringElement
	outDir       string
	ext          string
	depth        int
	tileWidth    int
	tileHeight   int
	parallel     bool
	padding      morpho.PaddingMode
	paddingValue float64
	decompose    bool
	pool         workerpool.Executor
}

func (f *morphFlags) job(erode bool) (*job, error) {
	s, err := parseSE(f.se)
	if err != nil {
		return nil, err
	}
	pad, err := morpho.ParsePaddingMode(f.padding)
	if err != nil {
		return nil, err
	}
	depth, err := parseDepth(f.depth)
	if err != nil {
		return nil, err
	}
	var ext string
	if f.format != "" {
		ext = "." + strings.TrimPrefix(strings.ToLower(f.format), ".")
		if _, err := encoderFor("out" + ext); err != nil {
			return nil, err
		}
	}
	if f.workers < 0 {
		return nil, fmt.Errorf("--workers must not be negative")
	}
	return &job{
		erode:        erode,
		se:           s,
		outDir:       f.outDir,
		ext:          ext,
		depth:        depth,
		tileWidth:    f.tileWidth,
		tileHeight:   f.tileHeight,
		parallel:     f.parallel,
		padding:      pad,
		paddingValue: f.paddingValue,
		decompose:    !f.noDecompose,
	}, nil
}

func newMorphCmd(a *app, name, short string) *cobra.Command {
	var f morphFlags
	cmd := &cobra.Command{
		Use:   name + " [flags] input...",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.applyConfig(cmd, a.cfg)
			j, err := f.job(name == "erode")
			if err != nil {
				return err
			}
			if err := os.MkdirAll(j.outDir, 0o755); err != nil {
				return err
			}
			if j.parallel {
				pool := workerpool.New(f.workers)
				defer pool.Close()
				j.pool = pool
			}

			p := newProgress(a.logger)
			if err := runFiles(cmd.Context(), a.logger, j, args, f.files); err != nil {
				return err
			}
			p.done(fmt.Sprintf("%s: processed %d files", name, len(args)), "se", fmt.Sprint(j.se))
			return nil
		},
	}
	f.register(cmd)
	return cmd
}

// runFiles processes paths with at most limit files in flight. The first
// error cancels the files not yet started.
func runFiles(ctx context.Context, logger *charmlog.Logger, j *job, paths []string, limit int) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return processFile(logger, j, path)
		})
	}
	return g.Wait()
}

func (j *job) outputPath(src string) string {
	base := filepath.Base(src)
	if j.ext != "" {
		base = strings.TrimSuffix(base, filepath.Ext(base)) + j.ext
	}
	return filepath.Join(j.outDir, base)
}

func processFile(logger *charmlog.Logger, j *job, src string) error {
	dst := j.outputPath(src)
	if same(src, dst) {
		return fmt.Errorf("%s: output would overwrite the input", src)
	}
	if _, err := encoderFor(dst); err != nil {
		return err
	}
	m, err := readImage(src)
	if err != nil {
		return err
	}

	p := newProgress(logger)
	var out goimage.Image
	wide := j.depth == 16 || (j.depth == 0 && isWide(m))
	if wide {
		res, err := apply(j, toGray16(m))
		if err != nil {
			return fmt.Errorf("%s: %w", src, err)
		}
		out = fromGray16(res)
	} else {
		res, err := apply(j, toGray8(m))
		if err != nil {
			return fmt.Errorf("%s: %w", src, err)
		}
		out = fromGray8(res)
	}
	if err := writeImage(dst, out); err != nil {
		return err
	}
	b := m.Bounds()
	p.done(dst, "size", fmt.Sprintf("%dx%d", b.Dx(), b.Dy()), "wide", wide)
	return nil
}

func apply[T uint8 | uint16](j *job, img *hwyimage.Image[T]) (*hwyimage.Image[T], error) {
	opts := &morpho.Options[T]{
		TileWidth:            j.tileWidth,
		TileHeight:           j.tileHeight,
		Parallel:             j.parallel,
		Pool:                 j.pool,
		Padding:              j.padding,
		PaddingValue:         sampleValue[T](j.paddingValue),
		DisableDecomposition: !j.decompose,
	}
	if j.erode {
		return morpho.Erode(img, j.se, opts)
	}
	return morpho.Dilate(img, j.se, opts)
}

// sampleValue rounds v and clamps it to the range of T.
func sampleValue[T uint8 | uint16](v float64) T {
	hi := float64(value.Highest[T]())
	return T(math.Round(min(max(v, 0), hi)))
}

func same(a, b string) bool {
	aa, err1 := filepath.Abs(a)
	bb, err2 := filepath.Abs(b)
	return err1 == nil && err2 == nil && aa == bb
}
