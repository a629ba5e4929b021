package api

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sqlc-dev/pqtype"
	log "github.com/sirupsen/logrus"

	"github.com/saeidalz13/battleship-ai/db/sqlc"
	mb "github.com/saeidalz13/battleship-ai/models/battleship"
	mc "github.com/saeidalz13/battleship-ai/models/connection"
)

const (
	URLQuerySessionIDKeyword string = "sessionID"
)

var upgrader = websocket.Upgrader{
	// good average time since this is not a high-latency operation such as video streaming
	HandshakeTimeout: time.Second * 5,

	ReadBufferSize:  2048,
	WriteBufferSize: 2048,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type RequestProcessor struct {
	sessionManager mc.SessionManager
	gameManager    mb.GameManager
	analytics      *sqlc.AnalyticsManager
	ipnet          net.IPNet
}

func NewRequestProcessor(
	sessionManager mc.SessionManager,
	gameManager mb.GameManager,
	analytics *sqlc.AnalyticsManager,
) RequestProcessor {
	return RequestProcessor{
		sessionManager: sessionManager,
		gameManager:    gameManager,
		analytics:      analytics,
		ipnet:          findServerIpNet(),
	}
}

// findServerIpNet returns the first IPv4 address of an interface that
// is up. Loopback is the fallback so the server also runs in sandboxes.
func findServerIpNet() net.IPNet {
	loopback := net.IPNet{IP: net.IPv4(127, 0, 0, 1).To4(), Mask: net.CIDRMask(32, 32)}

	ifaces, err := net.Interfaces()
	if err != nil {
		log.Warnln("failed to list interfaces:", err)
		return loopback
	}

	for _, iface := range ifaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}

		addrs, err := iface.Addrs()
		if err != nil {
			continue
		}

		for _, addr := range addrs {
			ipnet, ok := addr.(*net.IPNet)
			if !ok {
				continue
			}
			if ip := ipnet.IP.To4(); ip != nil && !ip.IsLoopback() {
				return net.IPNet{IP: ip, Mask: net.CIDRMask(32, 32)}
			}
		}
	}
	return loopback
}

// Expose this method to use it in testing
func (rp RequestProcessor) GetIpNet() net.IPNet {
	return rp.ipnet
}

func (rp RequestProcessor) inet() pqtype.Inet {
	return sqlc.NewInet(rp.ipnet)
}

func (rp RequestProcessor) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnln("could not upgrade connection:", err)
		return
	}

	sessionIdQuery := r.URL.Query().Get(URLQuerySessionIDKeyword)
	if sessionIdQuery == "" {
		log.WithField("remote_addr", conn.RemoteAddr().String()).Infoln("a new connection established")
		rp.processSessionRequests(rp.sessionManager.GenerateNewSession(conn))
		return
	}

	// The session loop waiting in its grace period picks up the new conn
	if _, err := rp.sessionManager.ReconnectSession(sessionIdQuery, conn); err != nil {
		_ = conn.WriteJSON(mc.NewMessage[mc.NoPayload](mc.CodeReceivedInvalidSessionID))
		_ = conn.Close()
	}
}

func (rp RequestProcessor) recordAnalytics(fn func(ctx context.Context) error) {
	if !rp.analytics.Enabled() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), sqlc.QuerierCtxTimeout)
	defer cancel()

	// for now not killing the game for it
	if err := fn(ctx); err != nil {
		log.Errorln("analytics:", err)
	}
}

func (rp RequestProcessor) processSessionRequests(session *mc.Session) {
	var sessionGame *mb.Game
	sessionId := session.Id()
	logger := log.WithField("session", sessionId)

	defer func() {
		if sessionGame != nil {
			rp.gameManager.TerminateGame(sessionGame.Uuid())
		}
		if conn := session.Conn(); conn != nil {
			_ = conn.Close()
		}
		rp.sessionManager.TerminateSession(sessionId)
		logger.Infoln("session terminated")
	}()

	resp := mc.NewMessage[mc.RespSessionId](mc.CodeSessionID)
	resp.AddPayload(mc.RespSessionId{SessionID: sessionId})
	if err := rp.sessionManager.WriteToSessionConn(session, resp, mc.MessageTypeJSON); err != nil {
		return
	}

sessionLoop:
	for {
		// A WebSocket frame can be one of 6 types: text=1, binary=2, ping=9, pong=10, close=8 and continuation=0
		// https://www.rfc-editor.org/rfc/rfc6455.html#section-11.8
		_, payload, err := rp.sessionManager.ReadFromSessionConn(session)
		if err != nil {
			break sessionLoop
		}

		code, err := mc.FetchCodeFromMsg(payload)
		if err != nil {
			msg := mc.NewMessage[mc.NoPayload](mc.CodeSignalAbsent)
			msg.AddError("incoming req payload must contain 'code' field", "")
			if err := rp.sessionManager.WriteToSessionConn(session, msg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			continue sessionLoop
		}

		switch code {

		// A new game replaces whatever game this session had
		case mc.CodeCreateGame:
			if sessionGame != nil {
				rp.gameManager.TerminateGame(sessionGame.Uuid())
				sessionGame = nil
			}

			game, respMsg := NewRequest(payload).HandleCreateGame(rp.gameManager)
			if game != nil {
				sessionGame = game
				session.SetGameUuid(game.Uuid())
				logger = logger.WithField("game", game.Uuid())
				logger.Infoln("game created")
				rp.recordAnalytics(func(ctx context.Context) error {
					return rp.analytics.IncrementGamesCreatedCount(ctx, rp.inet())
				})
			}

			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}

		// The human has selected their grid and is ready to start
		case mc.CodeReady:
			respMsg := NewRequest(payload).HandleReadyPlayer(sessionGame)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil {
				continue sessionLoop
			}

			if sessionGame.IsReadyToStart() {
				respStartGame := mc.NewMessage[mc.NoPayload](mc.CodeStartGame)
				if err := rp.sessionManager.WriteToSessionConn(session, respStartGame, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

		// The human fires first; unless that ends the game, the
		// computer answers right away with its own shot.
		case mc.CodeAttack:
			respMsg := NewRequest(payload).HandleAttack(sessionGame)
			if err := rp.sessionManager.WriteToSessionConn(session, respMsg, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
			if respMsg.Error != nil {
				continue sessionLoop
			}

			if !sessionGame.IsFinished() {
				respComputer := NewRequest().HandleComputerAttack(sessionGame)
				if respComputer.Error != nil {
					logger.Errorln("computer attack failed:", respComputer.Error.ErrorDetails)
				}
				if err := rp.sessionManager.WriteToSessionConn(session, respComputer, mc.MessageTypeJSON); err != nil {
					break sessionLoop
				}
			}

			if sessionGame.IsFinished() {
				if err := rp.endGame(session, sessionGame); err != nil {
					break sessionLoop
				}
			}

		default:
			respInvalidSignal := mc.NewMessage[mc.NoPayload](mc.CodeInvalidSignal)
			respInvalidSignal.AddError("", "invalid code in the incoming payload")
			if err := rp.sessionManager.WriteToSessionConn(session, respInvalidSignal, mc.MessageTypeJSON); err != nil {
				break sessionLoop
			}
		}
	}
}

func (rp RequestProcessor) endGame(session *mc.Session, game *mb.Game) error {
	human := game.Human()
	log.WithFields(log.Fields{
		"session":      session.Id(),
		"game":         game.Uuid(),
		"human_status": human.MatchStatus(),
		"ai_shots":     len(game.Engine().History()),
	}).Infoln("game over")

	rp.recordAnalytics(func(ctx context.Context) error {
		if err := rp.analytics.AddComputerShots(ctx, rp.inet(), len(game.Engine().History())); err != nil {
			return err
		}
		if human.MatchStatus() == mb.PlayerMatchStatusLost {
			return rp.analytics.IncrementComputerWinsCount(ctx, rp.inet())
		}
		return nil
	})

	respEndGame := mc.NewMessage[mc.RespEndGame](mc.CodeEndGame)
	respEndGame.AddPayload(mc.RespEndGame{PlayerMatchStatus: human.MatchStatus()})
	return rp.sessionManager.WriteToSessionConn(session, respEndGame, mc.MessageTypeJSON)
}
