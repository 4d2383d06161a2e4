package control

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/op/go-logging"

	"wayl.io/wrd/common/log"
	"wayl.io/wrd/common/util"
	"wayl.io/wrd/common/version"
)

type fakeCounter struct{ n int }

func (f fakeCounter) ActiveSessionCount() int { return f.n }

func newTestControlServer(n int) *ControlServer {
	return NewControlServer(log.SetupLogging("test", logging.CRITICAL, false), fakeCounter{n})
}

func TestHandleVersion(t *testing.T) {
	cs := newTestControlServer(0)
	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	cs.handleVersion(rec, req)

	if got := rec.Body.String(); got != version.CURRENT_VERSION.String() {
		t.Fatalf("handleVersion: got %q, want %q", got, version.CURRENT_VERSION.String())
	}
}

func TestHandlePingReportsSessionCount(t *testing.T) {
	cs := newTestControlServer(3)
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	cs.handlePing(rec, req)

	want := "pong 3 host=" + util.MachineName()
	if got := rec.Body.String(); got != want {
		t.Fatalf("handlePing: got %q, want %q", got, want)
	}
	if !strings.HasPrefix(rec.Body.String(), "pong 3") {
		t.Fatalf("handlePing missing session count prefix: %q", rec.Body.String())
	}
}
