package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// batchSpinner animates "Evaluating done/total words..." on w while a batch
// runs. It stops on Stop or when its context is cancelled.
type batchSpinner struct {
	w       io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once

	mu    sync.Mutex
	done  int
	total int
	width int // widest line written so far
}

func newBatchSpinner(ctx context.Context, w io.Writer, total int) *batchSpinner {
	ctx, cancel := context.WithCancel(ctx)
	return &batchSpinner{
		w:       w,
		ctx:     ctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
		total:   total,
	}
}

func (s *batchSpinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// Advance records how many words have finished. It is safe to call from the
// batch's worker goroutines.
func (s *batchSpinner) Advance(done int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if done > s.done {
		s.done = done
	}
}

func (s *batchSpinner) message() string {
	return fmt.Sprintf("Evaluating %d/%d words...", s.done, s.total)
}

func (s *batchSpinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	msg := s.message()
	s.width = max(s.width, len(msg)+2)
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(msg))
}

// Stop halts the animation and clears the line. Extra calls are no-ops.
func (s *batchSpinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		<-s.stopped
	})
}

func (s *batchSpinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width))
	}
}
