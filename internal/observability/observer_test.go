// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogOperation_OnlyAtDebug(t *testing.T) {
	var buf bytes.Buffer
	obs := NewObserver(Metrics, &buf)
	obs.LogOperation(OperationData{Component: "router", Operation: "route"})
	if buf.Len() != 0 {
		t.Errorf("metrics level should not emit operations, got %q", buf.String())
	}

	obs = NewObserver(Debug, &buf)
	obs.LogOperation(OperationData{Component: "router", Operation: "route", Success: true})
	var decoded OperationData
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if decoded.Component != "router" || !decoded.Success {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestLogFileEvent_AtMetrics(t *testing.T) {
	var buf bytes.Buffer
	obs := NewObserver(Metrics, &buf)
	obs.LogFileEvent(FileEvent{Path: "a.txt", Outcome: "extracted", Matches: 3})
	if !strings.Contains(buf.String(), `"a.txt"`) {
		t.Errorf("event not emitted: %q", buf.String())
	}

	buf.Reset()
	obs = NewObserver(Off, &buf)
	obs.LogFileEvent(FileEvent{Path: "a.txt", Outcome: "extracted"})
	if buf.Len() != 0 {
		t.Errorf("off level should be silent, got %q", buf.String())
	}
}

func TestNilObserverSafe(t *testing.T) {
	var obs *Observer
	done := obs.StartTiming("x", "y", "z")
	done(true, nil)
	obs.LogOperation(OperationData{})
	obs.LogFileEvent(FileEvent{})
}
