package connection

import (
	"errors"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	maxWriteWsRetries uint8         = 2
	backOffFactor     uint8         = 2
	gracePeriod       time.Duration = time.Minute * 2
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	reconnectionAfterAbnormalClosure(conn *websocket.Conn) bool
	handleReadFromConnErr(err error, retries uint8) uint8
	writeToConnWithRetry(msg interface{}, msgType uint8) error
	onConnErr(err error) uint8
}

// Session is one client connection. The game uuid is kept so a client
// reconnecting with its session id resumes the same match.
type Session struct {
	id                     string
	conn                   *websocket.Conn
	gameUuid               string
	reconnectionSignalChan chan struct{}
	awaitingReconnection   bool
	createdAt              time.Time
	mu                     sync.Mutex
}

func NewSession(id string, conn *websocket.Conn) *Session {
	return &Session{
		id:                     id,
		conn:                   conn,
		reconnectionSignalChan: make(chan struct{}),
		createdAt:              time.Now(),
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn
}

func (s *Session) GameUuid() string {
	return s.gameUuid
}

func (s *Session) SetGameUuid(gameUuid string) {
	s.gameUuid = gameUuid
}

func (s *Session) logger() *log.Entry {
	fields := log.Fields{"session": s.id}
	if s.gameUuid != "" {
		fields["game"] = s.gameUuid
	}
	if conn := s.Conn(); conn != nil {
		fields["remote_addr"] = conn.RemoteAddr().String()
	}
	return log.WithFields(fields)
}

func (s *Session) onConnErr(err error) uint8 {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		s.logger().Warnln("timeout error:", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		s.logger().Warnln("high server load/traffic error:", err)
		return ConnLoopRetry
	}

	// Happens if the IOS client goes to background
	if websocket.IsCloseError(err, websocket.CloseAbnormalClosure) {
		s.logger().Warnln("abnormal closure error:", err)
		return ConnLoopAbnormalClosureRetry
	}

	if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		s.logger().Infoln("close error:", err)
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		s.logger().Errorln("critical error:", err)
		return ConnLoopBreak
	}

	/*
		The client is probably not ours (binary frames, bad utf-8, huge
		messages). Break so it cannot flood the server with junk.
	*/
	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		s.logger().Warnln("non-critical error:", err)
		return ConnLoopBreak
	}

	s.logger().Errorln("unexpected error:", err)
	return ConnLoopBreak
}

// Writes to the connection of that session with a linear backoff on
// retryable errors.
func (s *Session) writeToConnWithRetry(msg interface{}, msgType uint8) error {
	var retries uint8
	conn := s.Conn()

writeLoop:
	for {
		var err error

		switch msgType {
		case MessageTypeJSON:
			err = conn.WriteJSON(msg)

		case MessageTypeBytes:
			respBytes, ok := msg.([]byte)
			if !ok {
				return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
			}
			err = conn.WriteMessage(websocket.TextMessage, respBytes)

		default:
			return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write with retry")
		}

		if err == nil {
			return nil
		}

		switch s.onConnErr(err) {
		case ConnLoopRetry:
			if retries < maxWriteWsRetries {
				retries++
				s.logger().Warnf("writing to ws failed; retrying... (retry no. %d)", retries)
				time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
				continue writeLoop
			}
			s.logger().Errorf("max retries reached for writing to ws: %s", err)
			return NewConnErr(ConnLoopBreak)

		case ConnLoopAbnormalClosureRetry:
			return NewConnErr(ConnLoopAbnormalClosureRetry)

		default:
			return NewConnErr(ConnLoopBreak).AddDesc("breaking write loop due to: " + err.Error())
		}
	}
}

// Maps a read error to the next step of the read loop.
func (s *Session) handleReadFromConnErr(err error, retries uint8) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopAbnormalClosureRetry:
		return ConnLoopAbnormalClosureRetry

	case ConnLoopRetry:
		if retries < maxWriteWsRetries {
			s.logger().Warnf("failed to read from ws conn; retrying... (retry no. %d)", retries)
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
			return ConnLoopContinue
		}
		return ConnLoopBreak

	default:
		s.logger().Infof("break ws conn loop due to: %s", err)
		return ConnLoopBreak
	}
}

// Only a session waiting in its grace period accepts a new conn.
func (s *Session) reconnectionAfterAbnormalClosure(conn *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.awaitingReconnection {
		return false
	}

	// Signal for reconnection
	close(s.reconnectionSignalChan)

	if s.conn != nil {
		_ = s.conn.Close()
	}
	s.conn = conn
	s.awaitingReconnection = false
	s.reconnectionSignalChan = make(chan struct{})
	return true
}

func (s *Session) awaitReconnection() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.awaitingReconnection = true
	return s.reconnectionSignalChan
}

func (s *Session) stopAwaitingReconnection() {
	s.mu.Lock()
	s.awaitingReconnection = false
	s.mu.Unlock()
}

var _ ConnectionHandler = (*Session)(nil)
