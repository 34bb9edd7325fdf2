package handler

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/creative-audit-api/internal/realtime"
	"github.com/vfg2006/creative-audit-api/pkg/apiErrors"
)

// ProgressStream assina um tópico de lote, de sincronização ou de telas
func ProgressStream(hub *realtime.Hub, upgrader websocket.Upgrader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		topic := r.URL.Query().Get("topic")
		if !realtime.ValidTopic(topic) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tópico inválido", map[string]string{"topic": topic})
			return
		}

		// Upgrade já respondeu ao cliente quando falha
		if err := hub.Serve(upgrader, w, r, topic); err != nil {
			logrus.WithField("topic", topic).WithError(err).Warn("Erro ao abrir websocket")
		}
	})
}
