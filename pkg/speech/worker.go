package speech

import (
	"context"
	"errors"
	"sync"

	"github.com/golang/glog"
	"github.com/google/uuid"
)

// DefaultBacklog is the default number of jobs queued in a Worker.
const DefaultBacklog = 16

var (
	// ErrStopped indicates the Worker is no longer running.
	ErrStopped = errors.New("worker stopped")
	// ErrBusy is returned by TryDoWith when the backlog is full.
	ErrBusy = errors.New("worker busy")
)

// Result is the result of a Job.
type Result struct {
	ID  string
	Err error
}

// Job is an operation queued in a Worker.
type Job struct {
	id       string
	name     string
	fn       func(*Device) error
	resultCh chan Result
}

// ID returns the job ID.
func (j *Job) ID() string {
	return j.id
}

// Name returns the job name.
func (j *Job) Name() string {
	return j.name
}

// ResultChan returns the chan to retrieve result.
func (j *Job) ResultChan() <-chan Result {
	return j.resultCh
}

// Wait waits for the result.
func (j *Job) Wait(ctx context.Context) error {
	select {
	case res := <-j.resultCh:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (j *Job) done(err error) {
	j.resultCh <- Result{ID: j.id, Err: err}
}

// Worker owns a Device and runs jobs on it one at a time. A Worker runs
// once: after Run returned, all jobs fail with ErrStopped.
type Worker struct {
	dev  *Device
	jobs chan *Job
	done chan struct{}

	stopOnce sync.Once
	lock     sync.RWMutex
	stopped  bool
}

// NewWorker creates a Worker.
func NewWorker(dev *Device) *Worker {
	return &Worker{
		dev:  dev,
		jobs: make(chan *Job, DefaultBacklog),
		done: make(chan struct{}),
	}
}

// Do queues fn with a new ID.
func (w *Worker) Do(name string, fn func(*Device) error) *Job {
	return w.DoWith(uuid.NewString(), name, fn)
}

// DoWith queues fn with the specified ID. It blocks while the backlog is
// full.
func (w *Worker) DoWith(id, name string, fn func(*Device) error) *Job {
	return w.enqueue(newJob(id, name, fn), true)
}

// TryDoWith queues fn like DoWith but never blocks. The job fails with
// ErrBusy if the backlog is full.
func (w *Worker) TryDoWith(id, name string, fn func(*Device) error) *Job {
	return w.enqueue(newJob(id, name, fn), false)
}

func newJob(id, name string, fn func(*Device) error) *Job {
	return &Job{id: id, name: name, fn: fn, resultCh: make(chan Result, 1)}
}

func (w *Worker) enqueue(job *Job, wait bool) *Job {
	w.lock.RLock()
	defer w.lock.RUnlock()
	if w.stopped {
		job.done(ErrStopped)
		return job
	}
	if !wait {
		select {
		case w.jobs <- job:
		default:
			job.done(ErrBusy)
		}
		return job
	}
	select {
	case w.jobs <- job:
	case <-w.done:
		job.done(ErrStopped)
	}
	return job
}

// Exec queues the named command.
func (w *Worker) Exec(name string, args []string) *Job {
	return w.Do(name, func(d *Device) error {
		return Exec(d, name, args)
	})
}

// Run implements Runnable. Jobs still queued when ctx is done fail with
// ErrStopped. Run returns ErrStopped if the Worker already stopped.
func (w *Worker) Run(ctx context.Context) error {
	w.lock.RLock()
	stopped := w.stopped
	w.lock.RUnlock()
	if stopped {
		return ErrStopped
	}
	defer w.stop()
	for {
		// a done ctx wins over queued jobs
		if err := ctx.Err(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case job := <-w.jobs:
			glog.V(2).Infof("job %s[%s] start", job.name, job.id)
			err := job.fn(w.dev)
			if err != nil {
				glog.Errorf("job %s[%s] failed: %v", job.name, job.id, err)
			} else {
				glog.V(2).Infof("job %s[%s] done", job.name, job.id)
			}
			job.done(err)
		}
	}
}

func (w *Worker) stop() {
	w.stopOnce.Do(func() { close(w.done) })
	w.lock.Lock()
	w.stopped = true
	w.lock.Unlock()
	for {
		select {
		case job := <-w.jobs:
			job.done(ErrStopped)
		default:
			return
		}
	}
}
