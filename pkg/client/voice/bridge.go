package voice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/cbodonnell/torchlight/pkg/callbacks"
	"github.com/cbodonnell/torchlight/pkg/log"
)

// ErrRecognizerClosed is returned by Start when the recognizer stops sending results
var ErrRecognizerClosed = errors.New("recognizer closed")

// Bridge feeds the recognizer its vocabulary and forwards what it hears to a CommandHandler
type Bridge struct {
	recognizer     Recognizer
	handler        CommandHandler
	callbacks      *callbacks.Manager
	keywordFiles   []KeywordFile
	initializeArgs [][2]string
	words          []Word
	grammars       []Grammar

	mu         sync.RWMutex
	grammarIDs []GrammarID
	ready      chan struct{}
	readyOnce  sync.Once
}

// NewBridgeOptions contains options for creating a new Bridge.
// Nil vocabulary fields fall back to the defaults.
type NewBridgeOptions struct {
	Recognizer     Recognizer
	Handler        CommandHandler
	KeywordFiles   []KeywordFile
	InitializeArgs [][2]string
	Words          []Word
	Grammars       []Grammar
}

func NewBridge(opts NewBridgeOptions) *Bridge {
	keywordFiles := opts.KeywordFiles
	if keywordFiles == nil {
		keywordFiles = DefaultKeywordFiles
	}
	initializeArgs := opts.InitializeArgs
	if initializeArgs == nil {
		initializeArgs = DefaultInitializeArgs
	}
	words := opts.Words
	if words == nil {
		words = DefaultWords
	}
	grammars := opts.Grammars
	if grammars == nil {
		grammars = DefaultGrammars
	}

	return &Bridge{
		recognizer:     opts.Recognizer,
		handler:        opts.Handler,
		callbacks:      callbacks.NewManager(),
		keywordFiles:   keywordFiles,
		initializeArgs: initializeArgs,
		words:          words,
		grammars:       grammars,
		ready:          make(chan struct{}),
	}
}

// Start runs the startup chain and then handles results until ctx is done
// or the recognizer closes its results channel.
func (b *Bridge) Start(ctx context.Context) error {
	if err := b.postJob(Job{
		Command: CommandLazyLoad,
		Data:    lazyLoadData{Folders: []string{}, Files: b.keywordFiles},
	}, b.initialize); err != nil {
		return err
	}

	results := b.recognizer.Results()
	for {
		select {
		case <-ctx.Done():
			return nil
		case result, ok := <-results:
			if !ok {
				return ErrRecognizerClosed
			}
			b.handleResult(result)
		}
	}
}

// Ready is closed once every grammar has been registered
func (b *Bridge) Ready() <-chan struct{} {
	return b.ready
}

// Grammars returns the registered grammars, keyword spotting last
func (b *Bridge) Grammars() []GrammarID {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ids := make([]GrammarID, len(b.grammarIDs))
	copy(ids, b.grammarIDs)
	return ids
}

func (b *Bridge) postJob(job Job, cb callbacks.Callback) error {
	job.CallbackID = b.callbacks.Add(cb)
	if err := b.recognizer.Post(job); err != nil {
		b.callbacks.Remove(job.CallbackID)
		return fmt.Errorf("failed to post %s: %v", job.Command, err)
	}
	return nil
}

func (b *Bridge) handleResult(result Result) {
	if result.ID != "" {
		if err := b.callbacks.Resolve(result.ID, result.Data); err != nil {
			log.Warn("Recognizer answered an unknown job: %v", err)
		}
	}
	if result.Hyp != "" && b.handler != nil {
		b.handler.HandleHypothesis(result.Hyp, result.Final)
	}
	if result.Status == StatusError {
		log.Error("Error in %s with code %s", result.Command, result.Code)
	}
}

func (b *Bridge) initialize(json.RawMessage) {
	if err := b.postJob(Job{Command: CommandInitialize, Data: b.initializeArgs}, b.addWords); err != nil {
		log.Error("Failed to initialize recognizer: %v", err)
	}
}

func (b *Bridge) addWords(json.RawMessage) {
	if err := b.postJob(Job{Command: CommandAddWords, Data: b.words}, func(json.RawMessage) {
		b.addGrammar(0)
	}); err != nil {
		log.Error("Failed to add words: %v", err)
	}
}

// addGrammar registers grammars[index] and continues with the next one once it has an id
func (b *Bridge) addGrammar(index int) {
	if index >= len(b.grammars) {
		b.markReady()
		return
	}

	grammar := b.grammars[index]
	err := b.postJob(Job{Command: CommandAddGrammar, Data: grammar}, func(data json.RawMessage) {
		var id uint32
		if err := json.Unmarshal(data, &id); err != nil {
			log.Error("Failed to read id of grammar %s: %v", grammar.Title, err)
		} else {
			b.mu.Lock()
			b.grammarIDs = append(b.grammarIDs, GrammarID{ID: id, Title: grammar.Title})
			b.mu.Unlock()
		}
		b.addGrammar(index + 1)
	})
	if err != nil {
		log.Error("Failed to add grammar %s: %v", grammar.Title, err)
	}
}

func (b *Bridge) markReady() {
	b.readyOnce.Do(func() {
		b.mu.Lock()
		b.grammarIDs = append(b.grammarIDs, GrammarID{ID: KeywordSpottingGrammarID, Title: "Keyword spotting"})
		b.mu.Unlock()
		log.Info("Recognizer ready")
		close(b.ready)
	})
}
