package handler

import (
	"context"
	"encoding/json"
	"flight_desk/desk"
	"flight_desk/helper"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

var deskOptions desk.Options

// ConfigureDesk sets the clock, audit window and logger of every desk
// opened afterwards.
func ConfigureDesk(opts desk.Options) {
	deskOptions = opts
}

// wsSink serializes writes; the desk emits from its loop, its timers and
// its filter goroutines.
type wsSink struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSink) Send(e desk.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(e)
}

// DeskWebsocket runs one operator desk for the lifetime of the connection.
func DeskWebsocket(c *websocket.Conn) {
	ctx, cancel := context.WithCancel(context.Background())
	d := desk.New(helper.Store, &wsSink{conn: c}, deskOptions)
	defer func() {
		cancel()
		d.Close()
	}()
	log := deskOptions.Logger.With().Str("desk", d.ID).Logger()
	log.Info().Str("remote", c.RemoteAddr().String()).Msg("desk connected")
	defer log.Info().Msg("desk disconnected")

	commands := make(chan desk.Command)
	go func() {
		defer close(commands)
		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Warn().Err(err).Msg("desk read")
				}
				return
			}
			var cmd desk.Command
			if err := json.Unmarshal(msg, &cmd); err != nil {
				log.Debug().Err(err).Msg("ignoring malformed command")
				continue
			}
			select {
			case commands <- cmd:
			case <-ctx.Done():
				return
			}
		}
	}()

	refreshes, stop := helper.Store.Subscribe(ctx)
	defer stop()
	if refreshes != nil {
		go func() {
			for r := range refreshes {
				if r.Origin == d.ID {
					continue
				}
				if err := d.Reload(ctx, r.Kind); err != nil {
					log.Warn().Err(err).Str("kind", string(r.Kind)).Msg("refresh from another desk")
				}
			}
		}()
	}

	if err := d.Start(ctx); err != nil {
		log.Error().Err(err).Msg("desk start")
	}
	if err := d.Run(ctx, commands); err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("desk loop")
	}
}
