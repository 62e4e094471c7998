package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/tokenized/voting-contract/internal/platform/node"
	"github.com/tokenized/voting-contract/internal/vote"

	"github.com/julienschmidt/httprouter"
)

// Health reports whether the host is serving.
type Health struct {
	Config *node.Config
	Store  *vote.Store
	App    *node.App
}

type healthStatus struct {
	Status   string   `json:"status"`
	Contract string   `json:"contract"`
	Version  string   `json:"version"`
	Methods  []string `json:"methods"`
	Votes    int      `json:"votes"`
}

// Check replies with the host status and the number of recorded votes.
func (h *Health) Check(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	b, err := json.Marshal(healthStatus{
		Status:   "ok",
		Contract: h.Config.ContractName,
		Version:  h.Config.Version,
		Methods:  h.App.Methods(),
		Votes:    h.Store.Len(),
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respond(w, http.StatusOK, b)
}
