package wspush

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	. "github.com/smartystreets/goconvey/convey"
)

type frame struct {
	Generation int `json:"generation"`
}

type brushEvent struct {
	Position int `json:"position"`
	StrokeID int `json:"strokeId"`
}

func TestClientPublishesFrames(t *testing.T) {
	Convey("Given a server pushing frames over a websocket", t, func() {
		updates := make(chan frame, 4)
		brushes := make(chan brushEvent, 4)

		mux := http.NewServeMux()
		mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
			cli, err := New(updates, brushes, w, r)
			if err != nil {
				return
			}
			_ = cli.Sync()
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		wsURL := "ws" + srv.URL[len("http"):] + "/ws"
		conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
		So(err, ShouldBeNil)
		defer conn.Close()

		Convey("A pushed frame arrives at the client as JSON", func() {
			updates <- frame{Generation: 7}

			conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			_, raw, err := conn.ReadMessage()
			So(err, ShouldBeNil)

			var got frame
			So(json.Unmarshal(raw, &got), ShouldBeNil)
			So(got.Generation, ShouldEqual, 7)
		})

		Convey("A brush event sent by the client is forwarded to the brushes channel", func() {
			evt := brushEvent{Position: 42, StrokeID: 3}
			raw, _ := json.Marshal(evt)
			So(conn.WriteMessage(websocket.TextMessage, raw), ShouldBeNil)

			select {
			case got := <-brushes:
				So(got, ShouldResemble, evt)
			case <-time.After(2 * time.Second):
				t.Fatal("timed out waiting for brush event")
			}
		})
	})
}
