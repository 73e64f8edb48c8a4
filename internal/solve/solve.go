// Package solve runs the parallel scan over an input source and folds
// the per-worker tables into a single store.
package solve

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Shahab96/1brc/internal/chunk"
	"github.com/Shahab96/1brc/internal/input"
	"github.com/Shahab96/1brc/internal/parse"
	"github.com/Shahab96/1brc/internal/stats"
)

type Options struct {
	// Workers is the number of chunks scanned in parallel. Values below
	// one are treated as one.
	Workers int
	Engine  stats.Engine
	// Log receives per-worker timing lines when set.
	Log *log.Logger
}

// Run scans the whole source and returns the merged per-key aggregates.
// Workers process disjoint line-aligned chunks into private tables; a
// single goroutine folds finished tables into the store, so the result
// does not depend on worker count or scheduling.
func Run(src input.Source, opt Options) (*stats.InfoStore, error) {
	workers := opt.Workers
	if workers < 1 {
		workers = 1
	}
	ranges, err := chunk.Plan(src, src.Size(), workers)
	if err != nil {
		return nil, fmt.Errorf("failed to plan chunks: %w", err)
	}

	var mapped []byte
	if bs, ok := src.(input.ByteSource); ok {
		mapped = bs.Bytes()
	}

	tables := make(chan stats.Table, workers)
	var eg errgroup.Group
	for i := range ranges {
		id, rng := i, ranges[i]
		eg.Go(func() error {
			table, err := process(src, mapped, rng, opt, id)
			if err != nil {
				return err
			}
			tables <- table
			return nil
		})
	}

	// the fold must stay single threaded, only this goroutine touches
	// the store until the channel is drained
	store := stats.NewInfoStore()
	merged := make(chan struct{})
	go func() {
		defer close(merged)
		for table := range tables {
			table.Drain(store.Merge)
		}
	}()

	err = eg.Wait()
	close(tables)
	<-merged
	if err != nil {
		return nil, fmt.Errorf("failed to solve: %w", err)
	}
	return store, nil
}

func process(src input.Source, mapped []byte, rng chunk.Range, opt Options, id int) (stats.Table, error) {
	start := time.Now()
	table, err := stats.NewTable(opt.Engine)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch {
	case rng.Len() == 0:
	case mapped != nil:
		data = mapped[rng.Start:rng.End]
	default:
		if data, err = readChunk(src, rng); err != nil {
			return nil, err
		}
	}

	lines := 0
	rest := data
	for len(rest) > 0 {
		var line []byte
		if i := bytes.IndexByte(rest, '\n'); i != -1 {
			line, rest = rest[:i], rest[i+1:]
		} else {
			line, rest = rest, nil
		}
		rec, err := parse.Line(line)
		if err != nil {
			return nil, fmt.Errorf("failed to parse line %q: %w", line, err)
		}
		table.Add(rec.Key, rec.Value)
		lines++
	}

	if opt.Log != nil {
		opt.Log.Printf("worker %d: %d bytes, %d lines, %d keys in %v",
			id, len(data), lines, table.Len(), time.Since(start))
	}
	return table, nil
}

func readChunk(src input.Source, rng chunk.Range) ([]byte, error) {
	buf := make([]byte, rng.Len())
	n, err := src.ReadAt(buf, rng.Start)
	if int64(n) != rng.Len() {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("failed to read chunk at offset %d: %w", rng.Start, err)
	}
	return buf, nil
}
