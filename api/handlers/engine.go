package handlers

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/wormhole-foundation/example-liquidity-layer-sub002/types"
)

// EngineQuerier is the read-only slice of the engine the API exposes.
type EngineQuerier interface {
	GetAuction(types.OrderHash) (*types.Auction, error)
	GetSequencer(types.SequencerKey) (*types.FastFillSequencer, error)
	Paused() bool
}

// ParamsQuerier exposes the active parameter version.
type ParamsQuerier interface {
	Active() (uint32, types.AuctionParameters, error)
}

type EngineHandler struct {
	engine EngineQuerier
	params ParamsQuerier
	logger *zap.Logger
}

func NewEngineHandler(engine EngineQuerier, params ParamsQuerier, logger *zap.Logger) EngineHandler {
	return EngineHandler{
		engine: engine,
		params: params,
		logger: logger.With(zap.String("module", "api-handler")),
	}
}

func (h EngineHandler) GetAuction(w http.ResponseWriter, r *http.Request) {
	hash, err := types.OrderHashFromHex(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	auction, err := h.engine.GetAuction(hash)
	if errors.Is(err, types.ErrNoAuction) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		h.serverError(w, err)
		return
	}
	h.writeJSON(w, auction)
}

func (h EngineHandler) GetSequencer(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	chain, err := strconv.ParseUint(vars["chain"], 10, 16)
	if err != nil {
		http.Error(w, "invalid chain id", http.StatusBadRequest)
		return
	}
	senderBytes, err := hex.DecodeString(vars["sender"])
	if err != nil || len(senderBytes) != 32 {
		http.Error(w, "sender must be 32 hex-encoded bytes", http.StatusBadRequest)
		return
	}
	key := types.SequencerKey{SourceChain: uint16(chain)}
	copy(key.Sender[:], senderBytes)

	seq, err := h.engine.GetSequencer(key)
	if err != nil {
		h.serverError(w, err)
		return
	}
	if seq == nil {
		http.Error(w, "no sequencer for key", http.StatusNotFound)
		return
	}
	h.writeJSON(w, seq)
}

func (h EngineHandler) GetParams(w http.ResponseWriter, r *http.Request) {
	id, params, err := h.params.Active()
	if err != nil {
		h.serverError(w, err)
		return
	}
	h.writeJSON(w, struct {
		ConfigID uint32                  `json:"config_id"`
		Params   types.AuctionParameters `json:"params"`
	}{id, params})
}

func (h EngineHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, struct {
		Paused bool `json:"paused"`
	}{h.engine.Paused()})
}

func (h EngineHandler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}

func (h EngineHandler) serverError(w http.ResponseWriter, err error) {
	h.logger.Error("request failed", zap.Error(err))
	http.Error(w, "internal error", http.StatusInternalServerError)
}
