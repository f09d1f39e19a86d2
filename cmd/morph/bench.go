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
	"fmt"
	"math/rand"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	hwyimage "github.com/ajroetker/go-highway/hwy/contrib/image"
	"github.com/ajroetker/go-highway/hwy/contrib/workerpool"
	"github.com/ajroetker/go-morpho/morpho"
	"github.com/ajroetker/go-morpho/morpho/se"
)

type benchResult struct {
	radius     int
	path       string
	mean, std  float64 // milliseconds
	megapixels float64 // per second
}

func newBenchCmd(a *app) *cobra.Command {
	var (
		size       int
		radii      []int
		iterations int
		parallel   bool
		workers    int
		fallback   bool
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time disc dilations of a synthetic image",
		Long:  `bench dilates a random size×size 8-bit image by eight-line discs of the given radii and reports the mean and standard deviation of the wall time per call.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if size <= 0 || iterations <= 0 {
				return fmt.Errorf("--size and --iterations must be positive")
			}
			img := benchImage(size, 1)
			opts := &morpho.Options[uint8]{
				TileWidth:  a.cfg.Tile.Width,
				TileHeight: a.cfg.Tile.Height,
				Parallel:   parallel,
			}
			if parallel {
				pool := workerpool.New(workers)
				defer pool.Close()
				opts.Pool = pool
			}

			var results []benchResult
			for _, r := range radii {
				disc, err := se.NewDisc(float64(r), se.EightLines)
				if err != nil {
					return err
				}
				paths := []bool{false}
				if fallback {
					paths = append(paths, true)
				}
				for _, slow := range paths {
					o := *opts
					o.DisableDecomposition = slow
					res, err := runBench(img, disc, &o, iterations)
					if err != nil {
						return err
					}
					res.radius = r
					res.path = "lines"
					if slow {
						res.path = "offsets"
					}
					a.logger.Debug("bench", "radius", r, "path", res.path, "mean_ms", res.mean)
					results = append(results, res)
				}
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "radius\tpath\tmean ms\tstddev ms\tMpx/s\n")
			for _, res := range results {
				fmt.Fprintf(tw, "%d\t%s\t%.3f\t%.3f\t%.1f\n", res.radius, res.path, res.mean, res.std, res.megapixels)
			}
			return tw.Flush()
		},
	}
	fl := cmd.Flags()
	fl.IntVar(&size, "size", 1024, "image width and height")
	fl.IntSliceVar(&radii, "radius", []int{5, 20, 60}, "disc radii")
	fl.IntVarP(&iterations, "iterations", "n", 10, "timed calls per radius")
	fl.BoolVar(&parallel, "parallel", true, "dispatch tiles over a worker pool")
	fl.IntVar(&workers, "workers", 0, "worker pool size (0: GOMAXPROCS)")
	fl.BoolVar(&fallback, "fallback", false, "also time the offset accumulation path")
	return cmd
}

func benchImage(size int, seed int64) *hwyimage.Image[uint8] {
	rng := rand.New(rand.NewSource(seed))
	img := hwyimage.NewImage[uint8](size, size)
	for y := range size {
		row := img.RowSlice(y)
		for x := range row {
			row[x] = uint8(rng.Intn(256))
		}
	}
	return img
}

// runBench times iterations calls after one warm-up call.
func runBench(img *hwyimage.Image[uint8], s se.StructuringElement, opts *morpho.Options[uint8], iterations int) (benchResult, error) {
	if _, err := morpho.Dilate(img, s, opts); err != nil {
		return benchResult{}, err
	}
	ms := make([]float64, iterations)
	for i := range ms {
		start := time.Now()
		if _, err := morpho.Dilate(img, s, opts); err != nil {
			return benchResult{}, err
		}
		ms[i] = float64(time.Since(start).Microseconds()) / 1e3
	}
	mean, std := stat.MeanStdDev(ms, nil)
	if iterations == 1 {
		std = 0
	}
	var mpx float64
	if mean > 0 {
		mpx = float64(img.Width()*img.Height()) / 1e6 / (mean / 1e3)
	}
	return benchResult{mean: mean, std: std, megapixels: mpx}, nil
}
