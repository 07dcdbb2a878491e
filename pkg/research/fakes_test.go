package research

import (
	"context"
	"errors"
	"log/slog"
)

// discard silences phase logging in tests.
var discard = slog.New(slog.DiscardHandler)

// fakeLLM replays scripted responses in call order.
type fakeLLM struct {
	responses []string
	err       error
	calls     [][]Message
}

func (f *fakeLLM) Chat(_ context.Context, msgs []Message) (string, error) {
	f.calls = append(f.calls, msgs)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", errors.New("fakeLLM: no scripted response left")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

// fakeSearch serves canned results per query, or a fixed error.
type fakeSearch struct {
	byQuery map[string][]SearchResult
	err     error
	queries []string
}

func (f *fakeSearch) Search(_ context.Context, query string, _ SearchOptions) ([]SearchResult, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.byQuery[query], nil
}

func webResult(title, rawURL string) SearchResult {
	return SearchResult{Title: title, URL: rawURL, Snippet: title + " snippet", Source: "web"}
}
