package main

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	lsystem "github.com/htdebeer/virtual-botanical-laboratory-sub000"
	"github.com/htdebeer/virtual-botanical-laboratory-sub000/interchange/lsif"
)

const (
	sequencerQueueSize = 5
	orderQueueSize     = 5
	outQueueSize       = 5
)

func newStreamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stream",
		Short: "Run LSIF jobs read from stdin and write their results to stdout",
		Long: "stream reads a YAML stream of LSIF jobs, derives them in parallel and " +
			"writes one result document per job, in the order the jobs came in.",
		Args: cobra.NoArgs,
		RunE: runStream,
	}
	cmd.Flags().IntP("workers", "w", 4, "Number of jobs derived at the same time")
	cmd.Flags().String("dir", ".", "Directory relative job files are read from")
	return cmd
}

func runStream(cmd *cobra.Command, _ []string) error {
	workers, _ := cmd.Flags().GetInt("workers")
	if workers < 1 {
		return exitError(exitGeneric, "--workers must be at least 1, got %d", workers)
	}
	dir, _ := cmd.Flags().GetString("dir")

	log := logger(cmd)
	total, failed, err := listen(cmd.Context(), cmd.OutOrStdout(), cmd.InOrStdin(), dir, workers, log)
	if err != nil {
		return exitError(exitParse, "reading jobs: %v", err)
	}
	log.Info("stream done", "jobs", total, "failed", failed)
	if failed > 0 {
		return exitError(exitGeneric, "%d of %d jobs failed", failed, total)
	}
	return nil
}

// listen feeds the jobs of r through the pipeline and writes the results to
// w. A job that fails is reported in its result document; a stream that
// cannot be decoded stops the intake and is returned as an error once the
// jobs already read are written.
func listen(ctx context.Context, w io.Writer, r io.Reader, dir string, workers int, log *slog.Logger) (total, failed int, err error) {
	in, out := buildPipeline(ctx, workers, log)

	written := make(chan error, 1)
	go func() {
		enc := lsif.NewEncoder(w)
		var werr error
		for result := range out {
			total++
			if result.Error != "" {
				failed++
			}
			if werr == nil {
				werr = enc.Encode(result)
			}
		}
		if werr == nil {
			werr = enc.Close()
		}
		written <- werr
	}()

	dec := lsif.NewDecoder(r)
	dec.Dir = dir
	var decodeErr error
	for {
		job, derr := dec.Decode()
		if derr == io.EOF {
			break
		}
		if derr != nil {
			decodeErr = derr
			break
		}
		in <- job
	}
	close(in)

	werr := <-written
	if decodeErr != nil {
		return total, failed, decodeErr
	}
	return total, failed, werr
}

type order struct {
	seq    int
	job    *lsif.Format
	result *lsif.Result
}

func buildPipeline(ctx context.Context, workers int, log *slog.Logger) (in chan<- *lsif.Format, out <-chan *lsif.Result) {
	sequencerQueue := make(chan *lsif.Format, sequencerQueueSize)
	orderInQueue := make(chan *order, orderQueueSize)
	orderOutQueue := make(chan *order, orderQueueSize)
	outQueue := make(chan *lsif.Result, outQueueSize)

	go sequence(sequencerQueue, orderInQueue)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			run(ctx, orderInQueue, orderOutQueue, log.With("worker", worker))
		}(i)
	}
	go func() {
		wg.Wait()
		close(orderOutQueue)
	}()

	go resolve(orderOutQueue, outQueue)

	return sequencerQueue, outQueue
}

// sequence numbers the jobs in arrival order.
func sequence(in <-chan *lsif.Format, orderInQueue chan<- *order) {
	seq := 0
	for job := range in {
		orderInQueue <- &order{seq: seq, job: job}
		seq++
	}
	close(orderInQueue)
}

func run(ctx context.Context, orderInQueue <-chan *order, orderOutQueue chan<- *order, log *slog.Logger) {
	for o := range orderInQueue {
		o.result = runJob(ctx, o.job, log.With("seq", o.seq))
		orderOutQueue <- o
	}
}

func runJob(ctx context.Context, job *lsif.Format, log *slog.Logger) *lsif.Result {
	runID := uuid.NewString()
	log = log.With("run_id", runID)

	fail := func(err error) *lsif.Result {
		log.Error("job failed", "name", job.Name, "error", err)
		result := lsif.Failure(job.Name, err)
		result.ID = runID
		return result
	}

	parameters, err := job.Import()
	if err != nil {
		return fail(err)
	}
	ls := lsystem.New(parameters, lsystem.WithLogger(log))
	if err := derive(ctx, ls, job.Steps, runID); err != nil {
		return fail(err)
	}

	result := lsif.NewResult(ls)
	result.ID = runID
	log.Debug("job done", "name", result.Name, "modules", result.Modules)
	return result
}

// resolve puts the orders back in sequence. Orders arriving early wait in
// pending until their predecessors are out.
func resolve(orderOutQueue <-chan *order, outQueue chan<- *lsif.Result) {
	next := 0
	pending := make(map[int]*order)
	for o := range orderOutQueue {
		pending[o.seq] = o
		for {
			ready, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			outQueue <- ready.result
			next++
		}
	}
	close(outQueue)
}
