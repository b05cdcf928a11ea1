package voice

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// ErrRecognizerBusy is returned when the results buffer of a TextRecognizer is full
var ErrRecognizerBusy = errors.New("recognizer busy")

// TextRecognizer is a Recognizer for headless use: every job succeeds at once
// and typed lines are heard as final hypotheses.
type TextRecognizer struct {
	mu            sync.Mutex
	results       chan Result
	nextGrammarID uint32
	closed        bool
}

var _ Recognizer = &TextRecognizer{}

func NewTextRecognizer(bufferSize int) *TextRecognizer {
	return &TextRecognizer{
		results:       make(chan Result, bufferSize),
		nextGrammarID: 1,
	}
}

func (r *TextRecognizer) Post(job Job) error {
	var data json.RawMessage
	if job.Command == CommandAddGrammar {
		r.mu.Lock()
		id := r.nextGrammarID
		r.nextGrammarID++
		r.mu.Unlock()
		data = json.RawMessage(fmt.Sprintf("%d", id))
	}
	return r.emit(Result{ID: job.CallbackID, Data: data})
}

// Hear reports line as a final hypothesis
func (r *TextRecognizer) Hear(line string) error {
	return r.emit(Result{Hyp: line, Final: true})
}

func (r *TextRecognizer) Results() <-chan Result {
	return r.results
}

// Close ends the results stream
func (r *TextRecognizer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	close(r.results)
}

func (r *TextRecognizer) emit(result Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return ErrRecognizerClosed
	}
	select {
	case r.results <- result:
		return nil
	default:
		return ErrRecognizerBusy
	}
}
