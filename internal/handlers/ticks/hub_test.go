package ticks_test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/rpg-toolkit/events"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/campus-api/internal/daytime"
	"github.com/KirkDiggler/campus-api/internal/errors"
	"github.com/KirkDiggler/campus-api/internal/handlers/ticks"
	"github.com/KirkDiggler/campus-api/internal/services/tickbus"
)

type HubTestSuite struct {
	suite.Suite
	clock  *daytime.Clock
	hub    *ticks.Hub
	server *httptest.Server
}

func (s *HubTestSuite) SetupTest() {
	bus := events.NewBus()

	hub, err := ticks.NewHub(&ticks.Config{EventBus: bus})
	s.Require().NoError(err)

	pub, err := tickbus.New(&tickbus.Config{EventBus: bus, WorldID: "campus"})
	s.Require().NoError(err)

	cfg := daytime.DefaultConfig()
	cfg.StartAtSeconds = 23*3600 + 30*60
	clock, err := daytime.New(cfg)
	s.Require().NoError(err)
	s.Require().NoError(clock.Subscribe(pub))

	s.clock = clock
	s.hub = hub
	s.server = httptest.NewServer(hub)
}

func (s *HubTestSuite) TearDownTest() {
	s.hub.Close()
	s.server.Close()
}

func (s *HubTestSuite) dial() *websocket.Conn {
	url := "ws" + strings.TrimPrefix(s.server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = conn.Close() })
	return conn
}

func (s *HubTestSuite) waitForClients(n int) {
	s.Require().Eventually(func() bool { return s.hub.Len() == n }, 2*time.Second, 10*time.Millisecond)
}

func (s *HubTestSuite) read(conn *websocket.Conn) ticks.Message {
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	var msg ticks.Message
	s.Require().NoError(conn.ReadJSON(&msg))
	return msg
}

func (s *HubTestSuite) TestStreamsTicks() {
	conn := s.dial()
	s.waitForClients(1)

	s.Require().NoError(s.clock.SkipMinutes(15))

	s.Equal(ticks.Message{
		Type:      tickbus.EventTick,
		WorldID:   "campus",
		Phase:     95,
		DayIndex:  0,
		DayOfWeek: "Sunday",
		Hour:      23.75,
		Time:      "23:45",
	}, s.read(conn))
}

func (s *HubTestSuite) TestDayStartedPrecedesMidnightTick() {
	conn := s.dial()
	s.waitForClients(1)

	s.Require().NoError(s.clock.SkipMinutes(30))

	s.Equal(tickbus.EventTick, s.read(conn).Type)

	started := s.read(conn)
	s.Equal(tickbus.EventDayStarted, started.Type)
	s.Equal(int64(1), started.DayIndex)
	s.Equal("Monday", started.DayOfWeek)

	midnight := s.read(conn)
	s.Equal(tickbus.EventTick, midnight.Type)
	s.Equal("00:00", midnight.Time)
}

func (s *HubTestSuite) TestEveryClientReceives() {
	first := s.dial()
	second := s.dial()
	s.waitForClients(2)

	s.Require().NoError(s.clock.SkipMinutes(15))

	s.Equal("23:45", s.read(first).Time)
	s.Equal("23:45", s.read(second).Time)
}

func (s *HubTestSuite) TestDisconnectUnregisters() {
	conn := s.dial()
	s.waitForClients(1)

	s.Require().NoError(conn.Close())
	s.waitForClients(0)

	// delivering with no clients is fine
	s.NoError(s.clock.SkipMinutes(15))
}

func (s *HubTestSuite) TestCloseDisconnectsClients() {
	conn := s.dial()
	s.waitForClients(1)

	s.hub.Close()
	s.Equal(0, s.hub.Len())

	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_, _, err := conn.ReadMessage()
	s.Error(err)
}

func (s *HubTestSuite) TestSendBufferFor() {
	// a week at 15 minute phases: 672 ticks and up to 8 day starts
	s.Equal(680, ticks.SendBufferFor(7*24*time.Hour, 900))
	s.Equal(ticks.DefaultSendBuffer, ticks.SendBufferFor(time.Hour, 900))
	s.Equal(ticks.DefaultSendBuffer, ticks.SendBufferFor(0, 900))
}

func (s *HubTestSuite) TestWeekSkipReachesClient() {
	bus := events.NewBus()
	hub, err := ticks.NewHub(&ticks.Config{
		EventBus:   bus,
		SendBuffer: ticks.SendBufferFor(7*24*time.Hour, daytime.DefaultPhaseLengthSeconds),
	})
	s.Require().NoError(err)
	defer hub.Close()

	pub, err := tickbus.New(&tickbus.Config{EventBus: bus, WorldID: "campus"})
	s.Require().NoError(err)
	clock, err := daytime.New(daytime.DefaultConfig())
	s.Require().NoError(err)
	s.Require().NoError(clock.Subscribe(pub))

	server := httptest.NewServer(hub)
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http"), nil)
	s.Require().NoError(err)
	defer func() { _ = conn.Close() }()
	s.Require().Eventually(func() bool { return hub.Len() == 1 }, 2*time.Second, 10*time.Millisecond)

	s.Require().NoError(clock.SkipHours(7 * 24))
	s.Equal(1, hub.Len())

	var got, days int
	for got < 7*96+7 {
		msg := s.read(conn)
		got++
		if msg.Type == tickbus.EventDayStarted {
			days++
		}
	}
	s.Equal(7, days)
}

func (s *HubTestSuite) TestConfigValidation() {
	_, err := ticks.NewHub(nil)
	s.True(errors.IsInvalidArgument(err))

	_, err = ticks.NewHub(&ticks.Config{})
	s.Require().Error(err)
	s.Contains(err.Error(), "EventBus")

	_, err = ticks.NewHub(&ticks.Config{EventBus: events.NewBus(), SendBuffer: -1})
	s.True(errors.IsInvalidArgument(err))
}

func TestHubTestSuite(t *testing.T) {
	suite.Run(t, new(HubTestSuite))
}
