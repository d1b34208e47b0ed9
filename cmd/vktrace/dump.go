// Copyright (C) 2019 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
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
	"io"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/google/vktrace/core/log"
	"github.com/google/vktrace/vktrace/packet"
	"github.com/google/vktrace/vktrace/transport"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var dumpFlags struct {
	limit   int
	summary bool
}

var dumpCmd = &cobra.Command{
	Use:   "dump <trace>",
	Short: "List the packets of a trace file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := os.Open(args[0])
		if err != nil {
			return log.Errf(cmd.Context(), err, "Opening %v", args[0])
		}
		defer in.Close()
		return dump(cmd.Context(), in, cmd.OutOrStdout(), dumpFlags.limit, dumpFlags.summary)
	},
}

func init() {
	flags := dumpCmd.Flags()
	flags.IntVarP(&dumpFlags.limit, "limit", "n", 0, "maximum number of packets to list, 0 for all")
	flags.BoolVarP(&dumpFlags.summary, "summary", "s", false, "only print the per-command totals")
}

type callTotal struct {
	call  packet.CallID
	count int
	bytes uint64
}

// dump writes a line per packet read from in, followed by per-command
// totals.
func dump(ctx context.Context, in io.Reader, out io.Writer, limit int, summary bool) error {
	r, err := transport.NewFileReader(in)
	if err != nil {
		return err
	}
	defer r.Close()
	h := r.Header()
	fmt.Fprintf(out, "capture %v version %d (%v %v, %d-bit pointers, compressed %v)\n",
		h.Capture, h.Version, h.OS, h.Architecture, h.PointerSize*8, h.Flags&transport.Compressed != 0)

	totals := map[packet.CallID]*callTotal{}
	count, size := 0, uint64(0)
	for {
		p, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return log.Errf(ctx, err, "Reading packet %d", count)
		}
		ph := p.Header()
		t, ok := totals[ph.Call]
		if !ok {
			t = &callTotal{call: ph.Call}
			totals[ph.Call] = t
		}
		t.count++
		t.bytes += ph.Size
		if !summary && (limit == 0 || count < limit) {
			duration := int64(0)
			if ph.CallEnd > ph.CallBegin {
				duration = int64(ph.CallEnd - ph.CallBegin)
			}
			fmt.Fprintf(out, "%6d %-40v thread %-6d %8s %sns\n",
				ph.Sequence, ph.Call, ph.Thread, humanize.Bytes(ph.Size), humanize.Comma(duration))
		}
		count++
		size += ph.Size
	}

	sorted := make([]*callTotal, 0, len(totals))
	for _, t := range totals {
		sorted = append(sorted, t)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].call < sorted[j].call })
	for _, t := range sorted {
		fmt.Fprintf(out, "%-40v %6d %8s\n", t.call, t.count, humanize.Bytes(t.bytes))
	}
	fmt.Fprintf(out, "%d packets, %s\n", count, humanize.Bytes(size))
	return nil
}
