package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/mastercactapus/gcheck/check"
	"github.com/mastercactapus/gcheck/gcode"
)

// lintReply answers one websocket message: the issues for that line
// given everything sent before it on this connection.
type lintReply struct {
	Line   int           `json:"line"`
	Issues []check.Issue `json:"issues,omitempty"`
}

// lint runs an interactive session: each text message is one G-code
// line, checked against the modal state accumulated over the
// connection.
func (s *Server) lint(w http.ResponseWriter, req *http.Request) {
	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		s.log.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	st := check.NewState()
	for n := 1; ; n++ {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		ln := gcode.ParseLine(n, string(msg))
		reply := lintReply{Line: n, Issues: s.analyzer.CheckLine(ln, st)}
		st.Apply(ln)
		if err := conn.WriteJSON(reply); err != nil {
			s.log.Warn("websocket write", zap.Error(err))
			return
		}
	}
}
