package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/api/handlers"
)

// Server exposes the engine's read-only query surface. All mutations go
// through the ledger-facing operations, never HTTP.
type Server struct {
	eh         handlers.EngineHandler
	listenAddr string
	logger     *zap.Logger
}

func NewServer(eh handlers.EngineHandler, address string, logger *zap.Logger) Server {
	return Server{
		eh:         eh,
		listenAddr: address,
		logger: logger.With(
			zap.String("module", "api-server"),
			zap.String("instance_id", uuid.NewString()),
		),
	}
}

func (s Server) Start() {
	router := mux.NewRouter()

	router.HandleFunc("/auctions/{id}", s.eh.GetAuction).Methods("GET")
	router.HandleFunc("/sequencers/{chain}/{sender}", s.eh.GetSequencer).Methods("GET")
	router.HandleFunc("/params", s.eh.GetParams).Methods("GET")
	router.HandleFunc("/health", s.eh.Health).Methods("GET")

	s.logger.Info("starting server", zap.String("address", s.listenAddr))
	s.logger.Fatal("server stopped", zap.Error(http.ListenAndServe(s.listenAddr, router)))
}
