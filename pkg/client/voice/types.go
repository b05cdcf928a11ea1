package voice

import "encoding/json"

// Command names understood by the recognizer
const (
	CommandLazyLoad   = "lazyLoad"
	CommandInitialize = "initialize"
	CommandAddWords   = "addWords"
	CommandAddGrammar = "addGrammar"
)

// StatusError marks a result reporting a failed job
const StatusError = "error"

// KeywordSpottingGrammarID is the grammar id of keyword spotting, which is always available
const KeywordSpottingGrammarID uint32 = 0

// Job is a request posted to the recognizer. CallbackID is echoed back as Result.ID.
type Job struct {
	Command    string      `json:"command"`
	Data       interface{} `json:"data,omitempty"`
	CallbackID string      `json:"callbackId,omitempty"`
}

// Result is a message coming back from the recognizer. A single result may carry
// a callback response, a hypothesis and an error status at the same time.
type Result struct {
	ID      string          `json:"id,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Hyp     string          `json:"hyp,omitempty"`
	Final   bool            `json:"final,omitempty"`
	Status  string          `json:"status,omitempty"`
	Command string          `json:"command,omitempty"`
	Code    string          `json:"code,omitempty"`
}

// Recognizer is an asynchronous speech recognizer
type Recognizer interface {
	Post(job Job) error
	Results() <-chan Result
}

// CommandHandler receives recognised hypotheses
type CommandHandler interface {
	HandleHypothesis(hyp string, final bool)
}

// Word is a dictionary entry in CMU format
type Word struct {
	Word          string
	Pronunciation string
}

// MarshalJSON encodes the word as a [word, pronunciation] pair
func (w Word) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{w.Word, w.Pronunciation})
}

type Transition struct {
	From int    `json:"from"`
	To   int    `json:"to"`
	Word string `json:"word"`
}

// Grammar is a finite state grammar over dictionary words
type Grammar struct {
	Title       string       `json:"-"`
	NumStates   int          `json:"numStates"`
	Start       int          `json:"start"`
	End         int          `json:"end"`
	Transitions []Transition `json:"transitions"`
}

// GrammarID is a grammar registered with the recognizer
type GrammarID struct {
	ID    uint32
	Title string
}

// KeywordFile is a file the recognizer loads before initialising
type KeywordFile struct {
	Folder string
	Name   string
	URL    string
}

func (f KeywordFile) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]string{f.Folder, f.Name, f.URL})
}

type lazyLoadData struct {
	Folders []string      `json:"folders"`
	Files   []KeywordFile `json:"files"`
}
