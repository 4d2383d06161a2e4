// Package client is wrctl's control-socket client library, mirroring
// krd's daemon/client: plain HTTP-over-UNIX-socket requests against
// the control server, no framing of its own.
package client

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/blang/semver"

	"wayl.io/wrd/common/socket"
	"wayl.io/wrd/common/util"
	"wayl.io/wrd/common/version"
)

// ErrOldDaemonRunning mirrors krd's ErrOldKrdRunning: the control
// socket answered, but its version doesn't match this client's.
var ErrOldDaemonRunning = fmt.Errorf(util.Red("a different version of wrd is running; restart it and try again"))

// dialTimeout bounds how long wrctl waits on a ping to a wedged
// daemon before giving up, the way krdclient never blocks forever on
// DaemonDialWithTimeout.
const dialTimeout = 3 * time.Second

func dial(controlSocket string) (net.Conn, error) {
	conn, err := socket.DialWithTimeout(controlSocket, dialTimeout)
	if err != nil {
		return nil, util.ErrConnectingToDaemon
	}
	return conn, nil
}

func doGet(controlSocket, path string) (*http.Response, error) {
	conn, err := dial(controlSocket)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		conn.Close()
		return nil, err
	}
	if err := req.Write(conn); err != nil {
		conn.Close()
		return nil, util.ErrConnectingToDaemon
	}
	resp, err := http.ReadResponse(bufio.NewReader(conn), req)
	if err != nil {
		conn.Close()
		return nil, util.ErrConnectingToDaemon
	}
	return resp, nil
}

// RequestVersion fetches the daemon's build version over its control
// socket, the way client.RequestKrdVersionOver does.
func RequestVersion(controlSocket string) (semver.Version, error) {
	resp, err := doGet(controlSocket, "/version")
	if err != nil {
		return semver.Version{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return semver.Version{}, util.ErrConnectingToDaemon
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return semver.Version{}, err
	}
	return semver.Make(string(body))
}

// IsLatestDaemonRunning reports whether the running wrd matches this
// client binary's own version.
func IsLatestDaemonRunning(controlSocket string) (bool, error) {
	v, err := RequestVersion(controlSocket)
	if err != nil {
		return false, err
	}
	return v.Compare(version.CURRENT_VERSION) == 0, nil
}

// Ping hits /ping and returns the raw response body, e.g.
// "pong 3 host=myhost".
func Ping(controlSocket string) (string, error) {
	resp, err := doGet(controlSocket, "/ping")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", util.ErrConnectingToDaemon
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}
