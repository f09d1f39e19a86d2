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
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-highway/hwy"
)

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print the SIMD target and CPU features",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fprintf(cmd, "simd:     %s (%d bytes)\n", hwy.CurrentName(), hwy.CurrentWidth())
			fprintf(cmd, "lanes:    uint8=%d uint16=%d float32=%d\n",
				hwy.MaxLanes[uint8](), hwy.MaxLanes[uint16](), hwy.MaxLanes[float32]())
			fprintf(cmd, "platform: %s/%s, %d CPUs, GOMAXPROCS=%d\n",
				runtime.GOOS, runtime.GOARCH, runtime.NumCPU(), runtime.GOMAXPROCS(0))
			fprintf(cmd, "features: %s\n", strings.Join(cpuFeatures(), " "))
			return nil
		},
	}
}

type feature struct {
	name string
	ok   bool
}

func cpuFeatures() []string {
	var features []feature
	switch runtime.GOARCH {
	case "amd64", "386":
		features = []feature{
			{"sse4.1", cpu.X86.HasSSE41},
			{"avx", cpu.X86.HasAVX},
			{"avx2", cpu.X86.HasAVX2},
			{"fma", cpu.X86.HasFMA},
			{"avx512f", cpu.X86.HasAVX512F},
			{"avx512bw", cpu.X86.HasAVX512BW},
		}
	case "arm64":
		features = []feature{
			{"asimd", cpu.ARM64.HasASIMD},
			{"fphp", cpu.ARM64.HasFPHP},
			{"sve", cpu.ARM64.HasSVE},
			{"sve2", cpu.ARM64.HasSVE2},
		}
	}
	var names []string
	for _, f := range features {
		if f.ok {
			names = append(names, f.name)
		}
	}
	if len(names) == 0 {
		return []string{"none"}
	}
	return names
}
