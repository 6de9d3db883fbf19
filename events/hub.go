package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/cuecafe/pos/models"
)

// Event types pushed to connected dashboards.
const (
	EventOrderUpdate   = "order_update"
	EventOrderDelete   = "order_delete"
	EventSessionUpdate = "session_update"
	EventLowStock      = "low_stock"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected dashboard client and serializes broadcasts.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection to the set with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderUpdate pushes a changed order to every client.
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{Event: EventOrderUpdate, Data: order})
}

// BroadcastOrderDelete announces a removed order by id.
func BroadcastOrderDelete(orderID uint) {
	broadcast(Message{Event: EventOrderDelete, Data: map[string]uint{"order_id": orderID}})
}

// BroadcastSessionUpdate pushes a started or finished play session.
func BroadcastSessionUpdate(session models.PlaySession) {
	broadcast(Message{Event: EventSessionUpdate, Data: session})
}

// BroadcastLowStock warns staff that an item fell to its threshold.
func BroadcastLowStock(item models.InventoryItem) {
	broadcast(Message{Event: EventLowStock, Data: item})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	if len(hub.clients) == 0 {
		return
	}

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
		}
	}
}
