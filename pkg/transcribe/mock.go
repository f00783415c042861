package transcribe

import "context"

// MockService is a scripted Service for tests: it records requests, replays
// any scripted updates through the OnUpdate callback, and returns a fixed
// result.
type MockService struct {
	Requests [][]JobRequest
	Updates  []Update
	Result   *BatchResult
	Err      error
}

func (m *MockService) Transcribe(_ context.Context, reqs []JobRequest, opts Options) (*BatchResult, error) {
	m.Requests = append(m.Requests, reqs)
	if m.Err != nil {
		return nil, m.Err
	}
	for _, u := range m.Updates {
		if opts.OnUpdate != nil {
			opts.OnUpdate(u)
		}
	}
	if m.Result != nil {
		return m.Result, nil
	}
	return ResultFromRequests(reqs, StatusSucceeded), nil
}
