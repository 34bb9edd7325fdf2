package realtime

import (
	"context"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-audit-api/internal/domain"
	"github.com/vfg2006/creative-audit-api/internal/usecases/syncing"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	TopicViews = "views"

	auditJobPrefix = "audit_job:"
	syncPrefix     = "sync:"

	EventBatchProgress = "batch_progress"
	EventSyncSession   = "sync_session"
	EventSyncDismissed = "sync_dismissed"
	EventInvalidate    = "invalidate"
)

func AuditJobTopic(jobID string) string {
	return auditJobPrefix + jobID
}

func SyncTopic(integrationID string) string {
	return syncPrefix + integrationID
}

// ValidTopic aceita os tópicos de lote, de sincronização e o de telas
func ValidTopic(topic string) bool {
	if topic == TopicViews {
		return true
	}
	for _, prefix := range []string{auditJobPrefix, syncPrefix} {
		if strings.HasPrefix(topic, prefix) && len(topic) > len(prefix) {
			return true
		}
	}
	return false
}

// Message é o envelope enviado pelo websocket
type Message struct {
	Event string              `json:"event"`
	Topic string              `json:"topic"`
	Data  jsoniter.RawMessage `json:"data,omitempty"`
}

// Hub mantém tópico -> clientes e repassa os snapshots dos orquestradores.
// Guarda a última mensagem de cada tópico para quem conecta no meio do lote.
type Hub struct {
	mu     sync.RWMutex
	topics map[string]map[string]*Client
	last   map[string]Message
}

func NewHub() *Hub {
	return &Hub{
		topics: make(map[string]map[string]*Client),
		last:   make(map[string]Message),
	}
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	if h.topics[c.Topic] == nil {
		h.topics[c.Topic] = make(map[string]*Client)
	}
	h.topics[c.Topic][c.ID] = c
	last, hasLast := h.last[c.Topic]
	h.mu.Unlock()

	if hasLast {
		c.enqueue(last)
	}

	logrus.WithFields(logrus.Fields{"client_id": c.ID, "topic": c.Topic}).Debug("Cliente conectado ao tópico")
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if clients, ok := h.topics[c.Topic]; ok {
		delete(clients, c.ID)
		if len(clients) == 0 {
			delete(h.topics, c.Topic)
		}
	}
	h.mu.Unlock()

	logrus.WithFields(logrus.Fields{"client_id": c.ID, "topic": c.Topic}).Debug("Cliente saiu do tópico")
}

// Subscribers devolve quantos clientes estão no tópico
func (h *Hub) Subscribers(topic string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[topic])
}

// Broadcast envia para os clientes locais do tópico. Cliente com buffer cheio perde a mensagem.
func (h *Hub) Broadcast(topic, event string, payload interface{}, retain bool) {
	data, err := json.Marshal(payload)
	if err != nil {
		logrus.WithField("topic", topic).WithError(err).Error("Erro ao serializar mensagem do websocket")
		return
	}
	msg := Message{Event: event, Topic: topic, Data: data}

	h.mu.Lock()
	if retain {
		h.last[topic] = msg
	}
	clients := make([]*Client, 0, len(h.topics[topic]))
	for _, c := range h.topics[topic] {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		c.enqueue(msg)
	}
}

func (h *Hub) forget(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.last, topic)
}

func (h *Hub) OnBatchProgress(progress domain.BatchProgress) {
	h.Broadcast(AuditJobTopic(progress.JobID), EventBatchProgress, progress, true)
}

func (h *Hub) OnSyncSession(session syncing.Session) {
	h.Broadcast(SyncTopic(session.IntegrationID), EventSyncSession, session, true)
}

func (h *Hub) OnSyncDismissed(integrationID string) {
	topic := SyncTopic(integrationID)
	h.forget(topic)
	h.Broadcast(topic, EventSyncDismissed, map[string]string{"integration_id": integrationID}, false)
}

// Invalidate avisa as telas para recarregar os dados espelhados
func (h *Hub) Invalidate(_ context.Context, views ...syncing.View) {
	h.Broadcast(TopicViews, EventInvalidate, map[string][]syncing.View{"views": views}, false)
}
