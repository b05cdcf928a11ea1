package voice

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRecognizer struct {
	posted  chan Job
	results chan Result
	postErr error
}

func newFakeRecognizer() *fakeRecognizer {
	return &fakeRecognizer{
		posted:  make(chan Job, 16),
		results: make(chan Result, 16),
	}
}

func (r *fakeRecognizer) Post(job Job) error {
	if r.postErr != nil {
		return r.postErr
	}
	r.posted <- job
	return nil
}

func (r *fakeRecognizer) Results() <-chan Result {
	return r.results
}

type hypothesis struct {
	hyp   string
	final bool
}

type recordingHandler struct {
	heard chan hypothesis
}

func (h *recordingHandler) HandleHypothesis(hyp string, final bool) {
	h.heard <- hypothesis{hyp: hyp, final: final}
}

func nextJob(t *testing.T, r *fakeRecognizer) Job {
	t.Helper()
	select {
	case job := <-r.posted:
		return job
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a job")
		return Job{}
	}
}

func startBridge(t *testing.T, b *Bridge) (context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	errChan := make(chan error, 1)
	go func() {
		errChan <- b.Start(ctx)
	}()
	t.Cleanup(cancel)
	return cancel, errChan
}

func TestBridge_StartupChain(t *testing.T) {
	recognizer := newFakeRecognizer()
	b := NewBridge(NewBridgeOptions{
		Recognizer: recognizer,
		Grammars: []Grammar{
			{Title: "First", NumStates: 1},
			{Title: "Second", NumStates: 1},
		},
	})
	cancel, errChan := startBridge(t, b)

	job := nextJob(t, recognizer)
	assert.Equal(t, CommandLazyLoad, job.Command)
	encoded, err := json.Marshal(job.Data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"folders":[],"files":[["/","kws.txt","../kws.txt"],["/","kws.dict","../kws.dict"]]}`, string(encoded))
	recognizer.results <- Result{ID: job.CallbackID}

	job = nextJob(t, recognizer)
	assert.Equal(t, CommandInitialize, job.Command)
	encoded, err = json.Marshal(job.Data)
	require.NoError(t, err)
	assert.JSONEq(t, `[["-kws","kws.txt"],["-dict","kws.dict"]]`, string(encoded))
	recognizer.results <- Result{ID: job.CallbackID}

	job = nextJob(t, recognizer)
	assert.Equal(t, CommandAddWords, job.Command)
	encoded, err = json.Marshal(job.Data)
	require.NoError(t, err)
	assert.Contains(t, string(encoded), `["ACTION","AE K SH AH N"]`)
	recognizer.results <- Result{ID: job.CallbackID}

	job = nextJob(t, recognizer)
	assert.Equal(t, CommandAddGrammar, job.Command)
	assert.Equal(t, "First", job.Data.(Grammar).Title)
	select {
	case <-b.Ready():
		t.Fatal("ready before every grammar was added")
	default:
	}
	recognizer.results <- Result{ID: job.CallbackID, Data: json.RawMessage(`4`)}

	job = nextJob(t, recognizer)
	assert.Equal(t, "Second", job.Data.(Grammar).Title)
	recognizer.results <- Result{ID: job.CallbackID, Data: json.RawMessage(`5`)}

	select {
	case <-b.Ready():
	case <-time.After(time.Second):
		t.Fatal("bridge never became ready")
	}
	assert.Equal(t, []GrammarID{
		{ID: 4, Title: "First"},
		{ID: 5, Title: "Second"},
		{ID: KeywordSpottingGrammarID, Title: "Keyword spotting"},
	}, b.Grammars())

	cancel()
	assert.NoError(t, <-errChan)
}

func TestBridge_ForwardsHypotheses(t *testing.T) {
	recognizer := newFakeRecognizer()
	handler := &recordingHandler{heard: make(chan hypothesis, 4)}
	b := NewBridge(NewBridgeOptions{Recognizer: recognizer, Handler: handler})
	startBridge(t, b)
	nextJob(t, recognizer)

	recognizer.results <- Result{Hyp: "ACT"}
	recognizer.results <- Result{Hyp: "ACTION", Final: true}
	recognizer.results <- Result{Status: StatusError, Command: CommandAddWords, Code: "3"}
	recognizer.results <- Result{ID: "unknown"}
	recognizer.results <- Result{Hyp: "ONE", Final: true}

	for _, want := range []hypothesis{
		{hyp: "ACT", final: false},
		{hyp: "ACTION", final: true},
		{hyp: "ONE", final: true},
	} {
		select {
		case got := <-handler.heard:
			assert.Equal(t, want, got)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for a hypothesis")
		}
	}
}

func TestBridge_RecognizerClosed(t *testing.T) {
	recognizer := newFakeRecognizer()
	b := NewBridge(NewBridgeOptions{Recognizer: recognizer})
	_, errChan := startBridge(t, b)
	nextJob(t, recognizer)

	close(recognizer.results)

	select {
	case err := <-errChan:
		assert.ErrorIs(t, err, ErrRecognizerClosed)
	case <-time.After(time.Second):
		t.Fatal("bridge did not stop")
	}
}

func TestBridge_PostFailure(t *testing.T) {
	recognizer := newFakeRecognizer()
	recognizer.postErr = errors.New("worker gone")
	b := NewBridge(NewBridgeOptions{Recognizer: recognizer})

	err := b.Start(context.Background())
	assert.Error(t, err)
	assert.Zero(t, b.callbacks.Pending())
}

func TestBridge_WithTextRecognizer(t *testing.T) {
	recognizer := NewTextRecognizer(16)
	toggled := make(chan struct{}, 1)
	router := NewCommandRouter()
	router.Handle("action", func() { toggled <- struct{}{} })
	b := NewBridge(NewBridgeOptions{Recognizer: recognizer, Handler: router})
	_, errChan := startBridge(t, b)

	select {
	case <-b.Ready():
	case <-time.After(time.Second):
		t.Fatal("bridge never became ready")
	}
	assert.Equal(t, []GrammarID{
		{ID: 1, Title: "Commands"},
		{ID: KeywordSpottingGrammarID, Title: "Keyword spotting"},
	}, b.Grammars())

	require.NoError(t, recognizer.Hear("action"))
	select {
	case <-toggled:
	case <-time.After(time.Second):
		t.Fatal("command was not routed")
	}

	recognizer.Close()
	assert.ErrorIs(t, <-errChan, ErrRecognizerClosed)
	assert.ErrorIs(t, recognizer.Hear("action"), ErrRecognizerClosed)
}
