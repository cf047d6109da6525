// Tail follows a running sentinel's alert feed over websocket and prints
// each event, one line per alert.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/websocket"
)

// envelope mirrors the dashboard's websocket framing.
type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// alertPayload is the subset of an alert event shown on one line.
type alertPayload struct {
	Time         time.Time `json:"time"`
	ScenarioName string    `json:"scenario_name"`
	Confidence   float64   `json:"confidence"`
	Level        string    `json:"alert_level"`
}

func main() {
	addr := flag.String("addr", "localhost:8090", "Sentinel dashboard address")
	raw := flag.Bool("raw", false, "Print raw JSON envelopes")
	flag.Parse()

	u := url.URL{Scheme: "ws", Host: *addr, Path: "/ws/alerts"}
	log.Printf("connecting to %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		log.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				log.Printf("connection closed: %v", err)
				return
			}
			printMessage(data, *raw)
		}
	}()

	select {
	case <-done:
	case <-interrupt:
		// Polite close, then give the server a moment to reply
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		select {
		case <-done:
		case <-time.After(time.Second):
		}
	}
}

func printMessage(data []byte, raw bool) {
	if raw {
		fmt.Println(string(data))
		return
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		fmt.Println(string(data))
		return
	}

	switch env.Type {
	case "alert":
		var a alertPayload
		if err := json.Unmarshal(env.Payload, &a); err != nil {
			fmt.Println(string(env.Payload))
			return
		}
		fmt.Printf("%s  %-7s %-30s %.3f\n",
			a.Time.Format("15:04:05"), a.Level, a.ScenarioName, a.Confidence)
	case "reload":
		fmt.Printf("-- scenarios reloaded: %s\n", string(env.Payload))
	default:
		fmt.Printf("-- %s: %s\n", env.Type, string(env.Payload))
	}
}
