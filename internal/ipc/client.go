package ipc

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	"style-watcher/pkg/core"
)

// SendCommand delivers req to the instance listening on path.
func SendCommand(path string, req Request, log core.Logger) (Response, error) {
	if path == "" {
		path = DefaultSocketPath
	}

	log.Debug("Attempting to connect to socket server", "path", path)

	conn, err := net.DialTimeout("unix", path, 2*time.Second)
	if err != nil {
		return Response{}, fmt.Errorf("no running instance at %s: %w", path, err)
	}
	defer conn.Close()
	_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

	encoder := json.NewEncoder(conn)
	if err := encoder.Encode(req); err != nil {
		return Response{}, fmt.Errorf("failed to encode request: %w", err)
	}

	log.Debug("Request sent successfully", "command", req.Command)

	var resp Response
	decoder := json.NewDecoder(conn)
	if err := decoder.Decode(&resp); err != nil {
		return Response{}, fmt.Errorf("failed to decode response: %w", err)
	}

	log.Debug("Response received", "status", resp.Status, "message", resp.Message)
	if resp.Status != "success" {
		return resp, fmt.Errorf("%s failed: %s", req.Command, resp.Message)
	}
	return resp, nil
}
